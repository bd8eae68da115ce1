package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vango-dev/showcase/app/routes"
)

func routesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "List the route table",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			routes.Router().Walk(func(pattern string, depth int) {
				fmt.Fprintf(out, "%s%s\n", strings.Repeat("  ", depth), pattern)
			})
		},
	}
}
