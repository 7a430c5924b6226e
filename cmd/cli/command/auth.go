package command

// auth.go holds the commands that talk to a running API server.

import (
	"fmt"

	"editorial/cmd/cli/authentication"
	"editorial/cmd/cli/command/client"
	"editorial/internal/http-api/dto"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check that the API server and its database are up",
	RunE: func(cmd *cobra.Command, args []string) error {
		health, err := client.NewHTTPClient(apiURL).Health()
		if err != nil {
			if health != nil {
				color.Yellow("API is up, database is %s", health.Database)
			}
			return err
		}
		success("API is %s, database is %s", health.Status, health.Database)
		return nil
	},
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the API server and keep the session in the OS keyring",
	RunE: func(cmd *cobra.Command, args []string) error {
		var req dto.LoginRequest
		req.Email, _ = cmd.Flags().GetString("email")
		req.Password, _ = cmd.Flags().GetString("password")

		resp, err := client.NewHTTPClient(apiURL).Login(&req)
		if err != nil {
			return err
		}

		err = authentication.StoreTokens(&authentication.StoredCredentials{
			APIURL:    apiURL,
			Token:     resp.Token,
			Email:     resp.User.Email,
			ExpiresAt: resp.ExpiresAt.Unix(),
		})
		if err != nil {
			return fmt.Errorf("store session: %w", err)
		}

		success("Logged in as %s (%s)", resp.User.Email, resp.User.Role)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		creds, err := authentication.GetTokens()
		if err != nil {
			return err
		}

		c := client.NewHTTPClient(creds.APIURL)
		c.SetToken(creds.Token)
		if err := c.Logout(); err != nil {
			// the local copy goes either way
			color.Yellow("server logout failed: %v", err)
		}
		if err := authentication.DeleteTokens(); err != nil {
			return err
		}
		success("Logged out")
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the admin report counters of the logged-in server",
	RunE: func(cmd *cobra.Command, args []string) error {
		creds, err := authentication.GetTokens()
		if err != nil {
			return err
		}

		c := client.NewHTTPClient(creds.APIURL)
		c.SetToken(creds.Token)
		stats, err := c.Stats()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Users:         %d (authors %d, staff %d, reviewers %d, admins %d)\n",
			stats.UsersTotal, stats.UsersAuthors, stats.UsersStaff, stats.UsersReviewers, stats.UsersAdmins)
		fmt.Fprintf(out, "Publications:  %d\n", stats.PublicationsTotal)
		fmt.Fprintf(out, "Manuscripts:   %d (published %d, in review %d)\n",
			stats.ManuscriptsTotal, stats.PublishedManuscripts, stats.InReview)
		fmt.Fprintf(out, "Contacts:      %d (new %d, done %d)\n",
			stats.ContactsTotal, stats.ContactsNew, stats.ContactsDone)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pingCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(statsCmd)

	loginCmd.Flags().StringP("email", "e", "", "Account email")
	loginCmd.Flags().StringP("password", "p", "", "Account password")
	loginCmd.MarkFlagRequired("email")
	loginCmd.MarkFlagRequired("password")
}
