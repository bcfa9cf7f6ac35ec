package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jrsteele09/go-shortlink-client/internal/utils"
	"github.com/jrsteele09/go-shortlink-client/model"
	"github.com/jrsteele09/go-shortlink-client/validation"
)

var shortenExpires string

var shortenCmd = &cobra.Command{
	Use:   "shorten <long-url>",
	Short: "Create a short link",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		if err := a.requireSession(); err != nil {
			return err
		}

		v := validation.NewValidator()
		longURL := args[0]
		if err := v.ValidateLongURL(longURL); err != nil {
			return err
		}

		var expiresAt *time.Time
		if shortenExpires != "" {
			parsed, err := time.Parse("2006-01-02", shortenExpires)
			if err != nil {
				return fmt.Errorf("invalid expiry date %q, expected YYYY-MM-DD", shortenExpires)
			}
			expiresAt = utils.Ptr(parsed)
		}
		if err := v.ValidateExpiry(expiresAt); err != nil {
			return err
		}

		short, err := a.client.Shorten(cmd.Context(), model.CreateURLRequest{
			LongURL:   longURL,
			ExpiresAt: expiresAt,
		})
		if err != nil {
			return err
		}

		fmt.Println(short.ShortURL)
		return nil
	},
}

func init() {
	shortenCmd.Flags().StringVar(&shortenExpires, "expires", "", "expiry date (YYYY-MM-DD)")
	rootCmd.AddCommand(shortenCmd)
}
