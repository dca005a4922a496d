package commands

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/vcrobe/counter/internal/devserver"
	"github.com/vcrobe/counter/internal/wasmbuild"
)

func serveCmd() *cobra.Command {
	var (
		port     string
		watchDir string
		debounce time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Build, serve and rebuild on change with live reload",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := devserver.LoadConfig()
			if err != nil {
				return err
			}
			if port != "" {
				cfg.Port = port
			}
			if watchDir != "" {
				cfg.WatchDir = watchDir
			}
			if debounce > 0 {
				cfg.Debounce = debounce
			}

			buildCfg, err := wasmbuild.LoadConfig()
			if err != nil {
				return err
			}
			b := wasmbuild.New(devBuildConfig(cfg, buildCfg), runner, logger)

			// The first build has to succeed; later failures are shown in the browser.
			if err := buildSite(cmd.Context(), b); err != nil {
				return err
			}

			srv := devserver.New(cfg, func(ctx context.Context) error {
				return buildSite(ctx, b)
			}, logger)
			return srv.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "listen port (default 8080)")
	cmd.Flags().StringVar(&watchDir, "watch", "", "source tree to watch (default .)")
	cmd.Flags().DurationVar(&debounce, "debounce", 0, "quiet period before a rebuild (default 100ms)")
	return cmd
}

// devBuildConfig points the build at the directory the dev server serves.
// Dev builds are never stripped, whatever COUNTER_BUILD_RELEASE says.
func devBuildConfig(dev devserver.Config, b wasmbuild.Config) wasmbuild.Config {
	b.Release = false
	b.OutDir = dev.StaticDir
	return b
}
