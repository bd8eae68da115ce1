// Command showcase serves the showcase application and offers a few
// headless helpers around its route table.
package main

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/vango-dev/showcase/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		printError(os.Stderr, err, useColor(os.Stderr))
		os.Exit(1)
	}
}

// printError writes err to w. Coded errors get the multi-line layout with
// detail and hint; anything else is printed on one line.
func printError(w io.Writer, err error, color bool) {
	var coded *errors.Error
	if stderrors.As(err, &coded) {
		fmt.Fprint(w, coded.Pretty(color))
		return
	}
	fmt.Fprint(w, (&errors.Error{Message: err.Error()}).Pretty(color))
}

// useColor reports whether f is a terminal and NO_COLOR is unset.
func useColor(f *os.File) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "showcase",
		Short: "A small server-driven UI with routing and a shared session store",
		Long: `Showcase renders a four page application on the server.

Pages are Go components. Browsers receive HTML and a thin client that
forwards clicks, form submissions and navigation over a WebSocket,
falling back to plain links and form posts without JavaScript.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	rootCmd.AddCommand(
		serveCmd(),
		renderCmd(),
		routesCmd(),
		configCmd(),
		versionCmd(),
	)
	return rootCmd
}
