package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/desertthunder/mvx/internal/server"
	"github.com/desertthunder/mvx/internal/shared"
	"github.com/urfave/cli/v3"
)

// AuthLogin signs in with email/password, or through the system browser when
// --browser is set.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	mgr, _, err := r.sessionManager(ctx)
	if err != nil {
		return err
	}

	if cmd.Bool("browser") {
		refreshToken, err := r.browserLogin(ctx)
		if err != nil {
			return err
		}
		if err := mgr.Adopt(ctx, refreshToken); err != nil {
			return err
		}
	} else {
		email := cmd.String("email")
		password := cmd.String("password")
		if email == "" || password == "" {
			return fmt.Errorf("%w: --email and --password are required (or use --browser)", shared.ErrMissingArgument)
		}
		if err := mgr.Login(ctx, email, password); err != nil {
			return err
		}
	}

	user := mgr.User()
	if user == nil {
		return shared.ErrAuthFailed
	}

	r.logger.Info("signed in", "uid", user.UID)
	return r.writePlain("✓ Signed in as %s\n", user.Email)
}

// AuthSignup creates a new account and signs in.
func (r *Runner) AuthSignup(ctx context.Context, cmd *cli.Command) error {
	mgr, _, err := r.sessionManager(ctx)
	if err != nil {
		return err
	}

	email := cmd.String("email")
	password := cmd.String("password")
	if email == "" || password == "" {
		return fmt.Errorf("%w: --email and --password are required", shared.ErrMissingArgument)
	}

	if err := mgr.Signup(ctx, email, password); err != nil {
		return err
	}

	r.logger.Info("account created", "email", email)
	return r.writePlain("✓ Account created, signed in as %s\n", email)
}

// AuthLogout revokes the current session.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	mgr, _, err := r.sessionManager(ctx)
	if err != nil {
		return err
	}

	if mgr.User() == nil {
		return r.writePlain("Not signed in\n")
	}

	if err := mgr.Logout(ctx); err != nil {
		return fmt.Errorf("failed to sign out: %w", err)
	}
	return r.writePlain("✓ Signed out\n")
}

// AuthWhoami prints the resolved session state.
func (r *Runner) AuthWhoami(ctx context.Context, cmd *cli.Command) error {
	mgr, _, err := r.sessionManager(ctx)
	if err != nil {
		return err
	}

	user := mgr.User()
	if user == nil {
		return r.writePlain("Not signed in (%s)\n", mgr.State())
	}

	r.writePlain("Signed in\n")
	r.writePlain("Email: %s\n", user.Email)
	if user.DisplayName != "" {
		r.writePlain("Name: %s\n", user.DisplayName)
	}
	r.writePlain("UID: %s\n", user.UID)
	return nil
}

// browserLogin runs the loopback flow: serve /callback, open the hosted login
// page, and wait for the redirect carrying a refresh token.
func (r *Runner) browserLogin(ctx context.Context) (string, error) {
	if r.config.Identity.LoginPageURL == "" {
		return "", fmt.Errorf("%w: identity.login_page_url is not configured", shared.ErrMissingConfig)
	}

	state := shared.GenerateID()
	handler := server.NewCallbackHandler(state)

	router := server.NewBasicRouter()
	router.Handler(handler)

	addr := fmt.Sprintf("localhost:%d", r.config.Identity.CallbackPort)
	srv := &http.Server{Addr: addr, Handler: router}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			r.logger.Errorf("callback server error: %v", err)
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	loginURL := fmt.Sprintf("%s?state=%s&redirect_uri=http://%s/callback", r.config.Identity.LoginPageURL, state, addr)
	r.writePlain("Opening browser to complete sign-in...\n")
	if err := shared.OpenBrowser(loginURL); err != nil {
		r.logger.Warnf("could not open browser: %v", err)
		r.writePlain("Visit this URL to sign in:\n%s\n", loginURL)
	}

	select {
	case result := <-handler.Result():
		if err := result.Error(); err != nil {
			return "", fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
		}
		return result.RefreshToken, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
