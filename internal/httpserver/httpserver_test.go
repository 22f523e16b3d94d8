package httpserver

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/nkraev/pos-backend/internal/hash"
	authmw "github.com/nkraev/pos-backend/internal/middleware/auth"
	"github.com/nkraev/pos-backend/internal/models"
	"github.com/nkraev/pos-backend/internal/mykafka"
	"github.com/nkraev/pos-backend/internal/repo"
	"github.com/nkraev/pos-backend/internal/service"
)

type testEnv struct {
	Echo *echo.Echo
	Repo *repo.GormRepo
	Auth *service.AuthService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	require.NoError(t, err)

	// every pooled connection of an in-memory sqlite gets its own database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Item{},
		&models.Customer{},
		&models.Order{},
		&models.OrderItem{},
		&models.User{},
	))

	r := repo.New(db)
	auth := &service.AuthService{Repo: r, JWTSecret: []byte("test-secret"), AccessTTL: time.Minute}
	prod := mykafka.NewProducer(nil)

	e := echo.New()
	Register(e, &Deps{
		DB:              db,
		AuthHandler:     &AuthHandler{Svc: auth},
		ItemHandler:     &ItemHandler{Svc: &service.CatalogService{Repo: r}, Producer: prod},
		OrderHandler:    &OrderHandler{Svc: &service.OrderService{Repo: r}, Producer: prod},
		CustomerHandler: &CustomerHandler{Svc: &service.CustomerService{Repo: r}, Producer: prod},
		ReportHandler:   &ReportHandler{Svc: &service.ReportService{Repo: r}},
		AuthMW:          authmw.New(auth),
	})

	return &testEnv{Echo: e, Repo: r, Auth: auth}
}

func (env *testEnv) seedUser(t *testing.T, username, password, role string) {
	t.Helper()

	hashed, err := hash.HashPassword(password)
	require.NoError(t, err)
	require.NoError(t, env.Repo.CreateUser(context.Background(), &models.User{
		Username:     username,
		PasswordHash: hashed,
		Role:         role,
	}))
}

func (env *testEnv) token(t *testing.T, username, password string) string {
	t.Helper()

	token, err := env.Auth.Issue(context.Background(), username, password)
	require.NoError(t, err)
	return token
}
