// Package commands implements the counterdev CLI: build, serve and render.
package commands

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vcrobe/counter/internal/wasmbuild"
)

var (
	verbose bool
	logger  *slog.Logger
	// runner runs the go command for build and serve; nil means exec.
	runner wasmbuild.Runner
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "counterdev",
		Short:         "Build and serve the counter WASM app",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
			slog.SetDefault(logger)
			return nil
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(buildCmd(), serveCmd(), renderCmd())
	return root
}

// Execute runs the CLI until it finishes or gets SIGINT/SIGTERM.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := newRootCmd()
	if err := root.ExecuteContext(ctx); err != nil {
		root.PrintErrln("Error:", err)
		return err
	}
	return nil
}
