package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var serverURL string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "taskd",
	Short: "taskd - Redis-backed task record service",
	Long: `taskd stores task records (id, title, author, description) in Redis
and exposes create, read and update operations over HTTP/JSON.

Run "taskd serve" to start the server, then use "taskd create",
"taskd get" and "taskd update" to talk to it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
	FParseErrWhitelist: cobra.FParseErrWhitelist{},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	// Errors are printed by the printer package; keep cobra quiet
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
	return rootCmd.Execute()
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(v, c, d string) {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", v, c, d)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8080", "Base URL of the taskd server")
}
