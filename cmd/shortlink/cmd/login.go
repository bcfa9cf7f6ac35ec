package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jrsteele09/go-shortlink-client/validation"
)

var (
	loginUsername string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in with username and password",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		username := loginUsername
		if username == "" {
			username = prompt("Username: ")
		}
		password := loginPassword
		if password == "" {
			password = prompt("Password: ")
		}

		if errs := validation.NewValidator().ValidateLogin(username, password); errs != nil {
			return printFieldErrors(errs)
		}

		pair, err := a.client.Login(cmd.Context(), username, password)
		if err != nil {
			return err
		}
		if err := a.store.SetCredentials(pair.AccessToken, pair.RefreshToken, nil); err != nil {
			return err
		}

		// Profile fetch is cosmetic; the session is already established.
		if user, err := a.client.Me(cmd.Context()); err == nil {
			a.store.SetUser(user)
			fmt.Printf("Signed in as %s\n", user.Username)
		} else {
			fmt.Println("Signed in")
		}
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "account username")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "account password (prompted when omitted)")
	rootCmd.AddCommand(loginCmd)
}

func prompt(label string) string {
	fmt.Print(label)
	reader := bufio.NewReader(os.Stdin)
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}

func printFieldErrors(errs validation.FieldErrors) error {
	for field, msg := range errs {
		fmt.Fprintf(os.Stderr, "  %s: %s\n", field, msg)
	}
	return fmt.Errorf("validation failed")
}
