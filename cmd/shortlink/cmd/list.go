package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/jrsteele09/go-shortlink-client/model"
)

var (
	listPage  int
	listLimit int
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List your short links",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		if err := a.requireSession(); err != nil {
			return err
		}

		var urls []model.ShortURL
		if listPage > 0 {
			page, err := a.client.ListURLsPage(cmd.Context(), listPage, listLimit)
			if err != nil {
				return err
			}
			urls = page.URLs
			defer fmt.Printf("\nPage %d of %d links total\n", page.Page, page.Total)
		} else {
			urls, err = a.client.ListURLs(cmd.Context())
			if err != nil {
				return err
			}
		}

		if len(urls) == 0 {
			fmt.Println("No short links yet. Create one with `shortlink shorten <url>`.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "CODE\tSHORT URL\tCLICKS\tCREATED\tEXPIRES\tTARGET")
		for _, u := range urls {
			expires := "-"
			if u.ExpiresAt != nil {
				expires = u.ExpiresAt.Format("2006-01-02")
			}
			fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\t%s\n",
				u.ShortCode, u.ShortURL, u.Clicks,
				u.CreatedAt.Format(time.DateOnly), expires, u.LongURL)
		}
		return w.Flush()
	},
}

func init() {
	listCmd.Flags().IntVar(&listPage, "page", 0, "page number (omit to list everything)")
	listCmd.Flags().IntVar(&listLimit, "limit", 20, "links per page")
	rootCmd.AddCommand(listCmd)
}
