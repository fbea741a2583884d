// Command ideagen ingests YouTube channel catalogs into a per-user store.
package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/marcNY/youtube-idea-generator/config"
	"github.com/marcNY/youtube-idea-generator/ingest"
	"github.com/marcNY/youtube-idea-generator/retry"
	"github.com/marcNY/youtube-idea-generator/storage"
	"github.com/marcNY/youtube-idea-generator/youtube"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type app struct {
	cfg   *config.Config
	log   zerolog.Logger
	store storage.Store
}

func newRootCmd() *cobra.Command {
	var (
		a       app
		userID  string
		verbose bool
	)

	root := &cobra.Command{
		Use:           "ideagen",
		Short:         "Ingest YouTube channel videos and comments into a per-user store",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			a.cfg = cfg

			level := zerolog.InfoLevel
			if verbose {
				level = zerolog.DebugLevel
			}
			a.log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
				Level(level).
				With().Timestamp().Logger()

			if cfg.DatabaseURL != "" {
				store, err := storage.NewPostgresStore(cmd.Context(), cfg.DatabaseURL)
				if err != nil {
					return err
				}
				a.store = store
			} else {
				a.log.Warn().Msg("no database configured, using in-memory store")
				a.store = storage.NewMemoryStore()
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.store != nil {
				_ = a.store.Close()
			}
		},
	}

	root.PersistentFlags().StringVar(&userID, "user", "", "owning user identity")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newChannelsCmd(&a, &userID),
		newSyncCmd(&a, &userID),
		newRefreshCmd(&a, &userID),
	)
	return root
}

// catalog builds the injected upstream client from configuration.
func (a *app) catalog(ctx context.Context) (youtube.Catalog, error) {
	retryCfg := retry.DefaultConfig()
	retryCfg.MaxRetries = a.cfg.MaxRetries
	retryCfg.InitialBackoff = a.cfg.InitialBackoff
	retryCfg.MaxBackoff = a.cfg.MaxBackoff
	retryCfg.Multiplier = a.cfg.BackoffMultiplier

	return youtube.NewClient(ctx, a.cfg.APIKey,
		youtube.WithRateLimit(a.cfg.RequestsPerSecond, 10),
		youtube.WithRetry(retryCfg),
	)
}

func newChannelsCmd(a *app, userID *string) *cobra.Command {
	channels := &cobra.Command{
		Use:   "channels",
		Short: "Manage registered channels",
	}

	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Register a channel name for ingestion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ch := &storage.Channel{Name: args[0], UserID: *userID}
			if err := a.store.CreateChannel(cmd.Context(), ch); err != nil {
				return err
			}
			a.log.Info().Str("channel", ch.Name).Str("id", ch.ID).Msg("channel registered")
			return nil
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List registered channels",
		RunE: func(cmd *cobra.Command, args []string) error {
			chs, err := a.store.ListChannels(cmd.Context(), *userID)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tCHANNEL ID\tREGISTERED")
			for _, ch := range chs {
				resolved := ch.YouTubeID
				if resolved == "" {
					resolved = "(unresolved)"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", ch.Name, resolved, ch.CreatedAt.Format(time.DateOnly))
			}
			return w.Flush()
		},
	}

	channels.AddCommand(add, list)
	return channels
}

func newSyncCmd(a *app, userID *string) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Ingest videos and comments for every registered channel",
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := a.catalog(cmd.Context())
			if err != nil {
				return err
			}

			svc := ingest.New(catalog, a.store,
				ingest.WithLogger(a.log),
				ingest.WithCommentLimit(a.cfg.CommentLimit),
			)

			videos, err := svc.IngestAll(cmd.Context(), *userID)
			if err != nil {
				return err
			}

			if len(videos) == 0 {
				fmt.Println("No new videos.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "VIDEO ID\tTITLE\tPUBLISHED\tVIEWS")
			for _, v := range videos {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\n",
					v.YouTubeID, truncate(v.Title, 50), v.PublishedAt.Format(time.DateOnly), v.ViewCount)
			}
			w.Flush()
			fmt.Fprintf(os.Stderr, "\nTotal: %d new videos\n", len(videos))
			return nil
		},
	}
}

func newRefreshCmd(a *app, userID *string) *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Refresh view/like/comment counters for stored videos",
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := a.catalog(cmd.Context())
			if err != nil {
				return err
			}

			svc := ingest.New(catalog, a.store, ingest.WithLogger(a.log))
			return svc.RefreshStatistics(cmd.Context(), *userID)
		},
	}
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
