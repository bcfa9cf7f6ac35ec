package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats [short-code]",
	Short: "Show click analytics",
	Long: `Without arguments, shows aggregate statistics across all your links.
With a short code, shows statistics for that link only.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		if err := a.requireSession(); err != nil {
			return err
		}

		if len(args) == 1 {
			stats, err := a.client.URLStats(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Short URL: %s\n", stats.ShortURL)
			fmt.Printf("Target:    %s\n", stats.LongURL)
			fmt.Printf("Clicks:    %d\n", stats.Clicks)
			fmt.Printf("Created:   %s\n", stats.CreatedAt.Format(time.DateOnly))
			if stats.ExpiresAt != nil {
				fmt.Printf("Expires:   %s\n", stats.ExpiresAt.Format(time.DateOnly))
			}
			return nil
		}

		stats, err := a.client.UserStats(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("Total links:      %d\n", stats.TotalURLs)
		fmt.Printf("Total clicks:     %d\n", stats.TotalClicks)
		fmt.Printf("Avg clicks/link:  %s\n", stats.AvgClicksPerURL)
		if stats.MostClickedURL != nil {
			fmt.Printf("Most clicked:     %s (%d clicks, %s)\n",
				stats.MostClickedURL.ShortCode, stats.MostClickedURL.Clicks, stats.MostClickedURL.LongURL)
		}
		if stats.MostRecentURL != nil {
			fmt.Printf("Most recent:      %s (created %s)\n",
				stats.MostRecentURL.ShortCode, stats.MostRecentURL.CreatedAt.Format(time.DateOnly))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
