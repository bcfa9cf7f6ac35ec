package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jrsteele09/go-shortlink-client/internal/utils"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in account",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		if err := a.requireSession(); err != nil {
			return err
		}

		user, err := a.client.Me(cmd.Context())
		if err != nil {
			return err
		}
		a.store.SetUser(user)

		fmt.Printf("Username: %s\n", user.Username)
		fmt.Printf("Email:    %s\n", user.Email)
		if name := fmt.Sprintf("%s %s", utils.Value(user.FirstName), utils.Value(user.LastName)); name != " " {
			fmt.Printf("Name:     %s\n", name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}
