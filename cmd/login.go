package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/bnema/dna-analyser-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newLoginCmd(app *app) *cobra.Command {
	var (
		account      string
		password     string
		savePassword bool
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in as host or a registered account and store the session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			secret := password
			if account != domain.HostAccount && secret == "" {
				stored, err := app.secretStore.Get(cmd.Context(), domain.PasswordSecretKey(account))
				if err != nil && !errors.Is(err, domain.ErrSecretNotFound) {
					return fmt.Errorf("resolve password: %w", err)
				}
				secret = stored
			}

			session, err := app.auth.Login(cmd.Context(), account, secret, app.cfg.Server)
			if err != nil {
				return err
			}

			if savePassword && password != "" {
				if err := app.secretStore.Put(cmd.Context(), domain.PasswordSecretKey(account), password); err != nil {
					return fmt.Errorf("save password: %w", err)
				}
			}

			if app.jsonOutput {
				return writeJSON(cmd, sessionView(session, time.Now()))
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Logged in to %s as %s (user %s)\n", session.Server, session.Account, session.UserID)
			return nil
		},
	}

	cmd.Flags().StringVar(&account, "account", domain.HostAccount, "Account email, or host for the guest account")
	cmd.Flags().StringVar(&password, "password", "", "Account password (falls back to DNAA_PASSWORD, then the secret store)")
	cmd.Flags().BoolVar(&savePassword, "save-password", false, "Store --password in the secret store for later logins")

	return cmd
}

func newLogoutCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.auth.Logout(cmd.Context()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func newWhoamiCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the stored session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, err := app.auth.Current(cmd.Context())
			if err != nil && !errors.Is(err, domain.ErrSessionExpired) {
				return err
			}

			view := sessionView(session, time.Now())
			if app.jsonOutput {
				if writeErr := writeJSON(cmd, view); writeErr != nil {
					return writeErr
				}
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "server:  %s\naccount: %s\nuser:    %s\nexpires: %s\n", view.Server, view.Account, view.UserID, view.Expires)
			return err
		},
	}
}

type sessionOutput struct {
	Server  string `json:"server"`
	Account string `json:"account"`
	UserID  string `json:"user_id"`
	Expires string `json:"expires"`
	Expired bool   `json:"expired"`
}

func sessionView(session domain.Session, now time.Time) sessionOutput {
	expires := "never"
	if !session.ExpiresAt.IsZero() {
		expires = session.ExpiresAt.Local().Format(time.RFC3339)
	}
	return sessionOutput{
		Server:  session.Server,
		Account: session.Account,
		UserID:  session.UserID,
		Expires: expires,
		Expired: errors.Is(session.Check(now), domain.ErrSessionExpired),
	}
}
