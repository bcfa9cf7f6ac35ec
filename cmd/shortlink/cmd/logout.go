package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and clear the local session",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		// Server-side invalidation is best effort; the local session is
		// cleared whatever the backend says.
		if err := a.client.Logout(cmd.Context()); err != nil {
			a.logger.Debug().Err(err).Msg("server-side logout failed")
		}
		if err := a.store.Clear(); err != nil {
			return err
		}

		fmt.Println("Signed out")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}
