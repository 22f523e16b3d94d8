package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nkraev/pos-backend/internal/hash"
	"github.com/nkraev/pos-backend/internal/models"
	"github.com/nkraev/pos-backend/internal/repo"
)

func seedUser(t *testing.T, r *repo.GormRepo, username, password, role string) {
	t.Helper()

	hashed, err := hash.HashPassword(password)
	require.NoError(t, err)
	require.NoError(t, r.CreateUser(context.Background(), &models.User{
		Username:     username,
		PasswordHash: hashed,
		Role:         role,
	}))
}

func TestAuthService_IssueAndVerify(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &AuthService{Repo: r, JWTSecret: []byte("test-secret"), AccessTTL: time.Minute}
	ctx := context.Background()

	seedUser(t, r, "cashier", "pass123", RoleUser)

	token, err := svc.Issue(ctx, "cashier", "pass123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	id, err := svc.Verify(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "cashier", id.Username)
	assert.Equal(t, RoleUser, id.Role)
}

func TestAuthService_Issue_RejectsBadCredentials(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &AuthService{Repo: r, JWTSecret: []byte("test-secret"), AccessTTL: time.Minute}
	ctx := context.Background()

	seedUser(t, r, "cashier", "pass123", RoleUser)

	_, err := svc.Issue(ctx, "cashier", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Issue(ctx, "nobody", "pass123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Verify_RejectsExpiredToken(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &AuthService{Repo: r, JWTSecret: []byte("test-secret"), AccessTTL: -time.Minute}
	ctx := context.Background()

	seedUser(t, r, "cashier", "pass123", RoleUser)

	token, err := svc.Issue(ctx, "cashier", "pass123")
	require.NoError(t, err)

	_, err = svc.Verify(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthService_Verify_RejectsWrongKey(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	ctx := context.Background()

	seedUser(t, r, "cashier", "pass123", RoleUser)

	issuer := &AuthService{Repo: r, JWTSecret: []byte("key-one"), AccessTTL: time.Minute}
	token, err := issuer.Issue(ctx, "cashier", "pass123")
	require.NoError(t, err)

	verifier := &AuthService{Repo: r, JWTSecret: []byte("key-two"), AccessTTL: time.Minute}
	_, err = verifier.Verify(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthService_Verify_RejectsDeletedSubject(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &AuthService{Repo: r, JWTSecret: []byte("test-secret"), AccessTTL: time.Minute}
	ctx := context.Background()

	seedUser(t, r, "temp", "pass123", RoleUser)

	token, err := svc.Issue(ctx, "temp", "pass123")
	require.NoError(t, err)

	require.NoError(t, r.DB.Where("username = ?", "temp").Delete(&models.User{}).Error)

	_, err = svc.Verify(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthService_RequireAdmin(t *testing.T) {
	t.Parallel()

	svc := &AuthService{}

	assert.NoError(t, svc.RequireAdmin(&Identity{Username: "boss", Role: RoleAdmin}))
	assert.ErrorIs(t, svc.RequireAdmin(&Identity{Username: "clerk", Role: RoleUser}), ErrForbidden)
	assert.ErrorIs(t, svc.RequireAdmin(nil), ErrForbidden)
}
