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

func main() {
	rootCmd := &cobra.Command{
		Use:   "toastify-demo",
		Short: "Toast notification server demo",
		Long: `toastify-demo runs the toastify notification core behind an HTTP API.

Connected websocket clients each get their own display surface and
receive notification lifecycle frames; the REST endpoints dispatch,
update, and dismiss notifications from any process.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		serveCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("toastify-demo %s (commit %s, built %s)\n", version, commit, date)
		},
	}
}
