package cmd

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jrsteele09/go-shortlink-client/oauthcb"
)

const googleLoginTimeout = 5 * time.Minute

var googleCmd = &cobra.Command{
	Use:   "google",
	Short: "Sign in with Google",
	Long: `Starts a local callback listener, opens the backend's Google sign-in
page in a browser, and waits for the redirect carrying the tokens.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		state := uuid.New().String()
		receiver, err := oauthcb.New(a.cfg.GetCallbackPort(), state, oauthcb.WithLogger(a.logger))
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), googleLoginTimeout)
		defer cancel()
		receiver.Start(ctx)

		authURL := a.client.GoogleAuthURL(receiver.RedirectURI(), state)
		fmt.Println("Open this URL in your browser to sign in with Google:")
		fmt.Printf("\n  %s\n\n", authURL)
		openBrowser(authURL)

		fmt.Println("Waiting for the sign-in to complete...")
		pair, err := receiver.Wait(ctx)
		if err != nil {
			return err
		}

		if err := a.store.SetCredentials(pair.AccessToken, pair.RefreshToken, nil); err != nil {
			return err
		}

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
	rootCmd.AddCommand(googleCmd)
}

// openBrowser is best effort; the URL is printed either way.
func openBrowser(url string) {
	var c *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		c = exec.Command("open", url)
	case "windows":
		c = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		c = exec.Command("xdg-open", url)
	}
	_ = c.Start()
}
