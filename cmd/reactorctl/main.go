package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ┬─┐┌─┐┌─┐┌─┐┌┬┐┌─┐┬─┐┌─┐┌┬┐┬
  ├┬┘├┤ ├─┤│   │ │ │├┬┘│   │ │
  ┴└─└─┘┴ ┴└─┘ ┴ └─┘┴└─└─┘ ┴ ┴─┘
`

func main() {
	rootCmd := &cobra.Command{
		Use:   "reactorctl",
		Short: "Operate the reactive runtime's demo collaborator",
		Long: `reactorctl drives the fine-grained reactivity runtime in pkg/reactive.

  • serve   runs the HTTP+WebSocket dashboard collaborator
  • inspect prints a snapshot of the live node graph
  • bench   drives the scheduler and reports drain-latency percentiles`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		serveCmd(),
		inspectCmd(),
		benchCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		os.Exit(1)
	}
}

func printBanner() {
	fmt.Print(banner)
}

func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}

func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}
