package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration (env + Viper).
type Config struct {
	Env                 string
	Port                string
	DatabaseURL         string
	RedisURL            string
	SupabaseJWTSecret   string   // HS256 secret used to verify bearer tokens from the identity provider
	AdminEmails         []string // ADMIN_EMAILS, comma separated; compared case-insensitively
	StripePaymentLink   string
	FrontendURLEndsWith string
	DevPassword         string
	HealthAdminKey      string
	NatsURL             string
	SendinblueAPIKey    string // SENDINBLUE_API_KEY for moderation emails (Brevo)
	MailFrom            string // MAIL_FROM sender email (default noreply@vibemarket.tech)
	SMTPHost            string // used when no Brevo key is set
	SMTPPort            int
	SMTPUser            string
	SMTPPassword        string
	SiteBaseURL         string // public site, used for sitemap and email links
	SupabaseURL         string // project URL for logo uploads
	SupabaseSecretKey   string // service_role key; anon keys cannot sign uploads
	LogoBucket          string
	S3Endpoint          string // S3 compatible logo storage, used when Supabase is not configured
	S3AccessKey         string
	S3SecretKey         string
	S3Region            string
	S3UseSSL            bool
	FeedCacheTTL        time.Duration
}

// Load loads config from env and optional .env file.
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("FEED_CACHE_TTL", "60s")
	viper.SetDefault("LOGO_BUCKET", "vibe-logos")

	port := viper.GetString("PORT")
	if port == "" {
		port = "8080"
	}
	env := viper.GetString("APP_ENV")
	if env == "" {
		env = "development"
	}

	dbURL := viper.GetString("DATABASE_URL_DEV")
	if env == "production" {
		dbURL = viper.GetString("DATABASE_URL_PROD")
	} else if env == "test" {
		dbURL = viper.GetString("DATABASE_URL_TEST")
	}
	if dbURL == "" {
		dbURL = os.Getenv("DATABASE_URL_DEV")
	}

	return &Config{
		Env:                 env,
		Port:                port,
		DatabaseURL:         dbURL,
		RedisURL:            viper.GetString("REDIS_URL"),
		SupabaseJWTSecret:   viper.GetString("SUPABASE_JWT_SECRET"),
		AdminEmails:         SplitList(viper.GetString("ADMIN_EMAILS")),
		StripePaymentLink:   viper.GetString("STRIPE_PAYMENT_LINK"),
		FrontendURLEndsWith: viper.GetString("FRONTEND_URL_ENDS_WITH"),
		DevPassword:         viper.GetString("DEV_PASSWORD"),
		HealthAdminKey:      viper.GetString("HEALTH_ADMIN_KEY"),
		NatsURL:             viper.GetString("NATS_URL"),
		SendinblueAPIKey:    viper.GetString("SENDINBLUE_API_KEY"),
		MailFrom:            viper.GetString("MAIL_FROM"),
		SMTPHost:            viper.GetString("SMTP_HOST"),
		SMTPPort:            viper.GetInt("SMTP_PORT"),
		SMTPUser:            viper.GetString("SMTP_USER"),
		SMTPPassword:        viper.GetString("SMTP_PASSWORD"),
		SiteBaseURL:         siteBaseURL(viper.GetString("SITE_BASE_URL")),
		FeedCacheTTL:        viper.GetDuration("FEED_CACHE_TTL"),
		SupabaseURL:         viper.GetString("SUPABASE_URL"),
		SupabaseSecretKey:   viper.GetString("SUPABASE_SECRET_KEY"),
		LogoBucket:          viper.GetString("LOGO_BUCKET"),
		S3Endpoint:          viper.GetString("S3_ENDPOINT"),
		S3AccessKey:         viper.GetString("S3_ACCESS_KEY"),
		S3SecretKey:         viper.GetString("S3_SECRET_KEY"),
		S3Region:            viper.GetString("S3_REGION"),
		S3UseSSL:            viper.GetBool("S3_USE_SSL"),
	}, nil
}

// SplitList splits a comma separated value, dropping empty items.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func siteBaseURL(s string) string {
	s = strings.TrimRight(strings.TrimSpace(s), "/")
	if s == "" {
		return "https://vibemarket.tech"
	}
	return s
}
