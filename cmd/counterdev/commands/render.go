package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vcrobe/counter/internal/web"
)

func renderCmd() *cobra.Command {
	var page bool

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Print the HTML of the counter in its initial state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := web.Prerender()
			if err != nil {
				return err
			}
			if page {
				return web.Page(web.PageData{Body: body}).Render(cmd.Context(), cmd.OutOrStdout())
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), body)
			return err
		},
	}

	cmd.Flags().BoolVar(&page, "page", false, "wrap in the full host page")
	return cmd
}
