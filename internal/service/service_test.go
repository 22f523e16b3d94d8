package service

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/nkraev/pos-backend/internal/models"
	"github.com/nkraev/pos-backend/internal/repo"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	require.NoError(t, err)

	// every pooled connection of an in-memory sqlite gets its own database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	return db
}

func newTestRepo(t *testing.T) *repo.GormRepo {
	t.Helper()

	db := openTestDB(t)
	require.NoError(t, db.AutoMigrate(
		&models.Item{},
		&models.Customer{},
		&models.Order{},
		&models.OrderItem{},
		&models.User{},
	))
	return repo.New(db)
}
