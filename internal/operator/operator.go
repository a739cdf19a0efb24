// Package operator prepares an admin gateway session for the command line tools.
package operator

import (
	"context"
	"fmt"
	"log"
	"os"

	"localwear-storefront/internal/config"
	"localwear-storefront/internal/domain"
	"localwear-storefront/internal/gateway"
	"localwear-storefront/internal/session"
	"localwear-storefront/internal/storage"
)

// Credentials are optional. Without them the tools reuse the session saved by the storefront.
// An empty Password falls back to ADMIN_PASSWORD, read when the session is opened so a value
// from .env is seen.
type Credentials struct {
	Email    string
	Password string
}

// Admin is an authenticated gateway client backed by the durable session.
type Admin struct {
	Client *gateway.Client
	Store  *session.Store
	close  func()
}

func (a *Admin) Close() {
	if a.close != nil {
		a.close()
	}
}

// AdminSession opens the configured session storage and makes sure it holds an admin login.
func AdminSession(ctx context.Context, cfg config.Config, logger *log.Logger, creds Credentials) (*Admin, error) {
	repo, closeFn, err := storage.Open(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("open session storage: %w", err)
	}
	store := session.New(ctx, repo, logger)
	client := gateway.New(cfg.APIBase, store, gateway.WithLogger(logger))
	admin := &Admin{Client: client, Store: store, close: closeFn}

	if creds.Email != "" {
		if creds.Password == "" {
			creds.Password = os.Getenv("ADMIN_PASSWORD")
		}
		res, err := client.Authenticate(ctx, gateway.Credentials{Email: creds.Email, Password: creds.Password})
		if err != nil {
			admin.Close()
			return nil, fmt.Errorf("login: %w", err)
		}
		store.Login(ctx, res.Token, res.User)
	}

	identity, ok := store.Identity()
	if !ok {
		admin.Close()
		return nil, fmt.Errorf("no saved session, pass -email and -password: %w", domain.ErrAuth)
	}
	if !identity.IsAdmin() {
		admin.Close()
		return nil, fmt.Errorf("%s is not an admin: %w", identity.Email, domain.ErrAuth)
	}
	return admin, nil
}
