package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"vibemarket-backend/internal/application/access"
	"vibemarket-backend/internal/application/moderation"
	"vibemarket-backend/internal/domain"
	"vibemarket-backend/internal/infrastructure/cache"
	"vibemarket-backend/internal/interfaces/router"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

// operatorID is recorded as the actor on events written by vibectl.
const operatorID = "vibectl"

var pendingCmd = &cobra.Command{
	Use:   "pending",
	Short: "List vibes waiting for review, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, caller, err := moderationService()
		if err != nil {
			return err
		}
		queue, err := svc.Pending(cmd.Context(), caller)
		if err != nil {
			return err
		}
		return printVibes(cmd.OutOrStdout(), queue)
	},
}

var approveCmd = &cobra.Command{
	Use:   "approve <id>",
	Short: "Approve a pending vibe",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return decide(cmd, args[0], func(svc *moderation.Service, ctx context.Context, caller *access.Identity, id uuid.UUID) (*domain.Vibe, error) {
			return svc.Approve(ctx, caller, id)
		})
	},
}

var rejectCmd = &cobra.Command{
	Use:   "reject <id>",
	Short: "Reject a pending vibe",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return decide(cmd, args[0], func(svc *moderation.Service, ctx context.Context, caller *access.Identity, id uuid.UUID) (*domain.Vibe, error) {
			return svc.Reject(ctx, caller, id)
		})
	},
}

func init() {
	rootCmd.AddCommand(pendingCmd, approveCmd, rejectCmd)
}

type decision func(svc *moderation.Service, ctx context.Context, caller *access.Identity, id uuid.UUID) (*domain.Vibe, error)

func decide(cmd *cobra.Command, rawID string, fn decision) error {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return fmt.Errorf("invalid vibe id %q", rawID)
	}
	svc, caller, err := moderationService()
	if err != nil {
		return err
	}
	vibe, err := fn(svc, cmd.Context(), caller, id)
	if err != nil {
		return err
	}
	return printVibes(cmd.OutOrStdout(), []domain.Vibe{*vibe})
}

// moderationService builds the same service the API uses. The feed cache is
// only invalidated when REDIS_URL is set.
func moderationService() (*moderation.Service, *access.Identity, error) {
	cfg, err := loadEnv()
	if err != nil {
		return nil, nil, err
	}
	db, err := openDB(cfg)
	if err != nil {
		return nil, nil, err
	}
	gate := access.NewGate(cfg.AdminEmails)
	caller := &access.Identity{ID: operatorID, Email: adminEmail}
	if !gate.IsAdmin(caller) {
		return nil, nil, fmt.Errorf("%q is not in ADMIN_EMAILS", adminEmail)
	}
	svc := &moderation.Service{
		DB:          db,
		Gate:        gate,
		Notifier:    router.NewNotifier(cfg),
		SiteBaseURL: cfg.SiteBaseURL,
	}
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		svc.Cache = cache.NewFeedCache(redis.NewClient(opt), cfg.FeedCacheTTL)
	}
	return svc, caller, nil
}

func printVibes(w io.Writer, vibes []domain.Vibe) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(vibes)
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tPLAN\tSTATUS\tCREATOR\tCREATED")
	for _, v := range vibes {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			v.ID, v.Title, v.Plan, v.Status, v.CreatorName, v.CreatedAt.Format("2006-01-02 15:04"))
	}
	return tw.Flush()
}
