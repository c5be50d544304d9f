package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"restaurant-order-api/models"
	"restaurant-order-api/store"

	"golang.org/x/crypto/bcrypt"
)

// TokenIssuer mints bearer tokens for authenticated admins.
type TokenIssuer interface {
	Issue(username string) (string, error)
}

// AdminGate checks operator credentials and hands out tokens.
type AdminGate struct {
	admins *store.Admins
	tokens TokenIssuer
	log    *slog.Logger
}

func NewAdminGate(admins *store.Admins, tokens TokenIssuer, log *slog.Logger) *AdminGate {
	return &AdminGate{admins: admins, tokens: tokens, log: log}
}

// Authenticate returns a token when username and password match a stored admin.
// Unknown users and wrong passwords are indistinguishable to the caller.
func (g *AdminGate) Authenticate(ctx context.Context, username, password string) (string, error) {
	admin, err := g.admins.FindByUsername(ctx, username)
	if errors.Is(err, store.ErrNotFound) {
		return "", ErrUnauthorized
	}
	if err != nil {
		return "", storeErr("find admin", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		g.log.Warn("admin login rejected", slog.String("username", username))
		return "", ErrUnauthorized
	}
	token, err := g.tokens.Issue(admin.Username)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	g.log.Info("admin logged in", slog.String("username", admin.Username))
	return token, nil
}

// EnsureAdmin creates the operator account if no admin exists yet.
func (g *AdminGate) EnsureAdmin(ctx context.Context, username, password string) (bool, error) {
	n, err := g.admins.Count(ctx)
	if err != nil {
		return false, storeErr("count admins", err)
	}
	if n > 0 {
		return false, nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return false, fmt.Errorf("hash admin password: %w", err)
	}
	if err := g.admins.Create(ctx, &models.AdminAccount{Username: username, PasswordHash: string(hash)}); err != nil {
		return false, storeErr("create admin", err)
	}
	return true, nil
}
