package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/stormlightlabs/inkwell/internal/config"
	"github.com/stormlightlabs/inkwell/internal/theme"
)

// SyncerFactory builds the theme syncer for a project directory.
type SyncerFactory func(cfg config.Config, dir string, log zerolog.Logger) *theme.Syncer

// newDefaultSyncer fetches over HTTP and writes into the configured themes directory.
func newDefaultSyncer(cfg config.Config, dir string, log zerolog.Logger) *theme.Syncer {
	return &theme.Syncer{
		Fetcher:    theme.NewHTTPFetcher(cfg.Themes.UserAgent, cfg.Themes.Timeout),
		Store:      theme.DirStore{Dir: cfg.ThemesDir(dir)},
		Log:        log,
		ListingURL: cfg.Themes.ListingURL,
		Delay:      cfg.Themes.Delay,
	}
}

// NewThemesCmd creates the themes command group.
func NewThemesCmd(reader FileReader, newSyncer SyncerFactory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "themes",
		Short: "Manage base16 colour palettes",
		Args:  cobra.NoArgs,
	}
	cmd.AddCommand(newThemesSyncCmdWithGetCWD(reader, newSyncer, os.Getwd))
	return cmd
}

func newThemesSyncCmdWithGetCWD(reader FileReader, newSyncer SyncerFactory, getwd func() (string, error)) *cobra.Command {
	var (
		out        string
		listingURL string
		delay      time.Duration
	)

	cmd := &cobra.Command{
		Use:          "sync",
		Short:        "Download every base16 scheme into the themes directory",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := resolveProjectDir(cmd, getwd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			cfg, err := loadConfig(ctx, reader, dir)
			if err != nil {
				return err
			}
			if out != "" {
				cfg.Themes.Dir = out
			}
			if listingURL != "" {
				cfg.Themes.ListingURL = listingURL
			}
			if cmd.Flags().Changed("delay") {
				if delay < 0 {
					return fmt.Errorf("--delay must not be negative")
				}
				cfg.Themes.Delay = delay
			}

			log, err := newLogger(cmd, cfg)
			if err != nil {
				return err
			}

			report, err := newSyncer(cfg, dir, log).Sync(ctx)
			for _, f := range report.Failures {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s: %v\n", sanitizePath(f.Name), f.Err)
			}
			if err != nil {
				return fmt.Errorf("syncing themes: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d themes to %s (%d skipped, %d failed)\n",
				len(report.Written), sanitizePath(cfg.ThemesDir(dir)), len(report.Skipped), len(report.Failures))
			return nil
		},
	}

	cmd.Flags().String("project", "", "project directory (default: current directory)")
	cmd.Flags().StringVar(&out, "out", "", "output directory (default from "+config.FileName+")")
	cmd.Flags().StringVar(&listingURL, "listing-url", "", "scheme listing URL (default from "+config.FileName+")")
	cmd.Flags().DurationVar(&delay, "delay", 0, "pause between downloads (default from "+config.FileName+")")

	return cmd
}
