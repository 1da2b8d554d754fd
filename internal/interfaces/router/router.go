package router

import (
	"context"
	"net/http"

	"vibemarket-backend/internal/application/access"
	logosvc "vibemarket-backend/internal/application/logos"
	modsvc "vibemarket-backend/internal/application/moderation"
	"vibemarket-backend/internal/application/notifications"
	subsvc "vibemarket-backend/internal/application/submission"
	vibesvc "vibemarket-backend/internal/application/vibes"
	votesvc "vibemarket-backend/internal/application/votes"
	"vibemarket-backend/internal/config"
	"vibemarket-backend/internal/infrastructure/cache"
	"vibemarket-backend/internal/infrastructure/database"
	natspub "vibemarket-backend/internal/infrastructure/messaging/nats"
	adminhandler "vibemarket-backend/internal/interfaces/handlers/admin"
	healthhandler "vibemarket-backend/internal/interfaces/handlers/health"
	logohandler "vibemarket-backend/internal/interfaces/handlers/logos"
	sitemaphandler "vibemarket-backend/internal/interfaces/handlers/sitemap"
	subhandler "vibemarket-backend/internal/interfaces/handlers/submissions"
	vibehandler "vibemarket-backend/internal/interfaces/handlers/vibes"
	"vibemarket-backend/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type gormDBPinger struct {
	db *gorm.DB
}

func (g *gormDBPinger) PingContext(ctx context.Context) error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Deps are the outside resources the app runs against. CreateApp opens them from
// config; tests pass them in directly.
type Deps struct {
	DB        *gorm.DB
	Redis     *redis.Client
	Publisher *natspub.Publisher
	Notifier  notifications.Sender
}

func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, error) {
	deps := Deps{}

	if cfg.DatabaseURL != "" {
		db, err := database.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, nil, err
		}
		deps.DB = db
	}

	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, nil, nil, err
		}
		deps.Redis = redis.NewClient(opt)
	}

	if cfg.NatsURL != "" {
		pub, err := natspub.NewPublisher(cfg.NatsURL)
		if err != nil {
			log.Warn().Err(err).Msg("NATS unavailable, lifecycle events will not be published")
		} else {
			deps.Publisher = pub
		}
	}

	deps.Notifier = NewNotifier(cfg)

	return Build(cfg, deps), deps.DB, deps.Redis, nil
}

// NewNotifier picks the moderation email transport: Brevo when an API key is set,
// SMTP when a host is set, nothing otherwise.
func NewNotifier(cfg *config.Config) notifications.Sender {
	switch {
	case cfg.SendinblueAPIKey != "":
		return &notifications.BrevoClient{APIKey: cfg.SendinblueAPIKey, MailFrom: cfg.MailFrom}
	case cfg.SMTPHost != "":
		return &notifications.SMTPSender{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUser,
			Password: cfg.SMTPPassword,
			MailFrom: cfg.MailFrom,
		}
	}
	return nil
}

// NewLogoStorage picks where logos are uploaded: Supabase storage when its URL
// and service key are set, an S3 compatible endpoint otherwise, nothing if neither.
func NewLogoStorage(cfg *config.Config) logosvc.Storage {
	switch {
	case cfg.SupabaseURL != "" && cfg.SupabaseSecretKey != "":
		return &logosvc.SupabaseStorage{BaseURL: cfg.SupabaseURL, SecretKey: cfg.SupabaseSecretKey}
	case cfg.S3Endpoint != "":
		s, err := logosvc.NewMinioStorage(cfg.S3Endpoint, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Region, cfg.S3UseSSL)
		if err != nil {
			log.Warn().Err(err).Msg("S3 logo storage unavailable, logo uploads disabled")
			return nil
		}
		return s
	}
	return nil
}

// Build registers middleware and routes over already opened dependencies.
func Build(cfg *config.Config, deps Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage:   true,
		ErrorHandler:            middleware.ErrorHandler,
		EnableTrustedProxyCheck: true,
	})

	app.Use(middleware.CORS(middleware.CORSConfig{
		AllowedSuffix: cfg.FrontendURLEndsWith,
		DevPassword:   cfg.DevPassword,
		Production:    cfg.Env == "production",
	}))
	app.Use(middleware.Tracing())
	app.Use(middleware.HealthMarker(deps.Redis))
	app.Use(middleware.RouteLogger())
	app.Use(middleware.Identity(cfg.SupabaseJWTSecret))

	hh := &healthhandler.Handlers{
		Rdb:            deps.Redis,
		SiteURL:        cfg.SiteBaseURL,
		HealthAdminKey: cfg.HealthAdminKey,
	}
	if deps.DB != nil {
		hh.DB = &gormDBPinger{db: deps.DB}
	}
	if deps.Publisher != nil {
		hh.Broker = deps.Publisher
		app.Hooks().OnShutdown(func() error {
			deps.Publisher.Close()
			return nil
		})
	}
	app.Get("/reset", hh.Reset)
	app.Get("/health/json", hh.JSON)
	app.Get("/health/errors", hh.Errors)

	if deps.DB == nil {
		log.Warn().Msg("no database configured, vibe routes disabled")
		return app
	}

	gate := access.NewGate(cfg.AdminEmails)

	// Interface fields stay nil unless the dependency exists.
	var feedCache *cache.FeedCache
	var invalidator modsvc.Invalidator
	var readCache vibesvc.FeedCache
	if deps.Redis != nil {
		feedCache = cache.NewFeedCache(deps.Redis, cfg.FeedCacheTTL)
		invalidator = feedCache
		readCache = feedCache
	}
	var publisher modsvc.Publisher
	if deps.Publisher != nil {
		publisher = deps.Publisher
	}

	vs := &vibesvc.Service{DB: deps.DB, Gate: gate, Cache: readCache}
	votes := &votesvc.Service{DB: deps.DB, Cache: invalidator}
	subs := &subsvc.Service{DB: deps.DB, Publisher: publisher, PaymentLink: cfg.StripePaymentLink}
	mods := &modsvc.Service{
		DB:          deps.DB,
		Gate:        gate,
		Cache:       invalidator,
		Publisher:   publisher,
		Notifier:    deps.Notifier,
		SiteBaseURL: cfg.SiteBaseURL,
	}

	sh := &sitemaphandler.Handlers{Service: vs, BaseURL: cfg.SiteBaseURL}
	app.Get("/sitemap.xml", sh.Sitemap)

	vh := &vibehandler.Handlers{Service: vs, Votes: votes}
	subh := &subhandler.Handlers{Service: subs}
	vg := app.Group("/api/v1/vibes")
	vg.Get("/", vh.Feed)
	vg.Get("/featured", vh.Featured)
	vg.Get("/trending", vh.Trending)
	vg.Get("/tags", vh.Tags)
	vg.Get("/mine", middleware.RequireIdentity(), vh.Mine)
	vg.Get("/:id", vh.Get)
	vg.Post("/", middleware.RequireIdentity(), subh.Submit)
	vg.Post("/:id/vote", vh.Vote)

	if storage := NewLogoStorage(cfg); storage != nil {
		lh := &logohandler.Handlers{Service: &logosvc.Service{Storage: storage, Bucket: cfg.LogoBucket}}
		vg.Post("/logo-upload", middleware.RequireIdentity(), lh.Sign)
	}

	ah := &adminhandler.Handlers{Service: mods}
	ag := app.Group("/api/v1/admin/vibes", middleware.RequireAdmin(gate))
	ag.Get("/pending", ah.Pending)
	ag.Put("/:id/approve", ah.Approve)
	ag.Put("/:id/reject", ah.Reject)

	return app
}

func Handler(app *fiber.App) http.Handler {
	return adaptor.FiberApp(app)
}
