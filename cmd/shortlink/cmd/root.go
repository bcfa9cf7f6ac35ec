package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/jrsteele09/go-shortlink-client/internal/config"
)

var (
	apiURL  string
	dataDir string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "shortlink",
	Short: "Shortlink is a command-line client for the URL-shortening service",
	Long: `A command-line client for the URL-shortening service: sign in with
credentials or Google, create and manage short links, and read click
analytics. Tokens are kept locally and refreshed silently when they expire.`,
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, args []string) {
		displayAppname(config.New().GetAppName())
		_ = cmd.Help()
	},
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "backend base URL (overrides API_URL)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "directory for local session storage (overrides FOLDER)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}
