package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jrsteele09/go-shortlink-client/model"
	"github.com/jrsteele09/go-shortlink-client/validation"
)

var (
	registerUsername string
	registerEmail    string
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new account",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		username := registerUsername
		if username == "" {
			username = prompt("Username: ")
		}
		email := registerEmail
		if email == "" {
			email = prompt("Email: ")
		}
		password := prompt("Password: ")
		confirm := prompt("Confirm password: ")

		if errs := validation.NewValidator().ValidateRegistration(username, email, password, confirm); errs != nil {
			return printFieldErrors(errs)
		}

		resp, err := a.client.Register(cmd.Context(), model.RegisterRequest{
			Username: username,
			Email:    email,
			Password: password,
		})
		if err != nil {
			return err
		}

		if resp.Message != "" {
			fmt.Println(resp.Message)
		} else {
			fmt.Println("Account created. Run `shortlink login` to sign in.")
		}
		return nil
	},
}

func init() {
	registerCmd.Flags().StringVarP(&registerUsername, "username", "u", "", "account username")
	registerCmd.Flags().StringVarP(&registerEmail, "email", "e", "", "account email")
	rootCmd.AddCommand(registerCmd)
}
