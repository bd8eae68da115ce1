package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/vango-dev/showcase/app/routes"
	"github.com/vango-dev/showcase/pkg/render"
	"github.com/vango-dev/showcase/pkg/server"
	"github.com/vango-dev/showcase/pkg/vdom"
)

func renderCmd() *cobra.Command {
	var (
		pretty bool
		page   bool
	)

	cmd := &cobra.Command{
		Use:   "render PATH",
		Short: "Render a page to stdout without starting a server",
		Long: `Render mounts a fresh instance at PATH, renders it once and prints
the HTML. Event handlers are not reachable from the output.

Examples:
  showcase render /
  showcase render /dashboard/profile/alice --pretty
  showcase render /about --page`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := render.RendererConfig{Pretty: pretty, EventPath: server.EventPath}
			inst, err := server.NewInstance(uuid.NewString(), routes.App(routes.Router()), args[0], cfg)
			if err != nil {
				return err
			}
			defer inst.Close()

			html, err := inst.Render()
			if err != nil {
				return err
			}
			if inst.NotFound() {
				fmt.Fprintf(cmd.ErrOrStderr(), "no route matches %s\n", inst.Location())
			}

			out := cmd.OutOrStdout()
			if !page {
				_, err := fmt.Fprintln(out, html)
				return err
			}
			return render.NewRenderer(cfg).RenderPage(out, render.PageData{
				Body:     vdom.Raw(html),
				Title:    "Showcase",
				Path:     inst.Location(),
				Styles:   []string{routes.Stylesheet},
				NoClient: true,
			})
		},
	}

	cmd.Flags().BoolVar(&pretty, "pretty", false, "Indent the HTML")
	cmd.Flags().BoolVar(&page, "page", false, "Wrap the body in a complete document")
	return cmd
}
