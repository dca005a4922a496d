package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vcrobe/counter/internal/wasmbuild"
	"github.com/vcrobe/counter/internal/web"
)

func buildCmd() *cobra.Command {
	var (
		release bool
		outDir  string
		entry   string
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Compile the counter to WASM and write the static site",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := wasmbuild.LoadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("release") {
				cfg.Release = release
			}
			if outDir != "" {
				cfg.OutDir = outDir
			}
			if entry != "" {
				cfg.Entry = entry
			}

			b := wasmbuild.New(cfg, runner, logger)
			if err := buildSite(cmd.Context(), b); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Build done: %s\n", b.OutDir())
			return nil
		},
	}

	cmd.Flags().BoolVar(&release, "release", false, "stripped build into dist/")
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "output directory (default build/ or dist/)")
	cmd.Flags().StringVar(&entry, "entry", "", "package to compile (default ./cmd/counter)")
	return cmd
}

// buildSite compiles the module and writes index.html and the stylesheet.
func buildSite(ctx context.Context, b *wasmbuild.Builder) error {
	if err := b.Build(ctx); err != nil {
		return err
	}
	return web.WriteAssets(ctx, b.OutDir())
}
