package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/nkraev/pos-backend/internal/hash"
	"github.com/nkraev/pos-backend/internal/logging"
	"github.com/nkraev/pos-backend/internal/repo"
	"github.com/nkraev/pos-backend/internal/tokens"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type Identity struct {
	Username string
	Role     string
}

// AuthService issues and verifies bearer tokens. Tokens are stateless: no
// revocation list, valid until the embedded expiry.
type AuthService struct {
	Repo      *repo.GormRepo
	JWTSecret []byte
	AccessTTL time.Duration
}

func (s *AuthService) Issue(ctx context.Context, username, password string) (string, error) {
	l := logging.FromContext(ctx).With("svc", "auth.issue", "username", username)

	user, err := s.Repo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("issue_failed", "status", 401, "reason", "unknown username")
			return "", ErrInvalidCredentials
		}
		l.Error("issue_failed", "status", 500, "error", err)
		return "", err
	}

	if !hash.CheckPassword(user.PasswordHash, password) {
		l.Warn("issue_failed", "status", 401, "reason", "password mismatch")
		return "", ErrInvalidCredentials
	}

	token, err := tokens.SignAccessToken(user.Username, user.Role, s.JWTSecret, s.AccessTTL)
	if err != nil {
		l.Error("issue_failed", "status", 500, "error", err)
		return "", err
	}
	return token, nil
}

func (s *AuthService) Verify(ctx context.Context, raw string) (*Identity, error) {
	claims, err := tokens.AccessClaimsFromToken(raw, s.JWTSecret)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	// The subject must still resolve to a credential: tokens for deleted
	// users die immediately even before the embedded expiry.
	if _, err := s.Repo.GetUserByUsername(ctx, claims.Subject); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: subject no longer exists", ErrInvalidToken)
		}
		return nil, err
	}

	return &Identity{Username: claims.Subject, Role: claims.Role}, nil
}

func (s *AuthService) RequireAdmin(id *Identity) error {
	if id == nil || id.Role != RoleAdmin {
		return fmt.Errorf("%w: admin role required", ErrForbidden)
	}
	return nil
}
