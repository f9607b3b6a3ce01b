package store_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sarisari-inventory/internal/domain/entity"
	"github.com/jhoicas/sarisari-inventory/internal/infrastructure/store"
	"github.com/jhoicas/sarisari-inventory/pkg/config"
)

func TestOpen_SQLite(t *testing.T) {
	cfg := &config.Config{
		Store:     config.StoreConfig{Driver: config.DriverSQLite},
		SQLite:    config.SQLiteConfig{Path: filepath.Join(t.TempDir(), "store.db")},
		Inventory: config.InventoryConfig{LockTimeout: time.Second},
	}
	s, err := store.Open(context.Background(), cfg)
	require.NoError(t, err)
	defer s.Close()

	assert.Equal(t, config.DriverSQLite, s.Driver)
	id, err := s.Products.Create(context.Background(), &entity.Product{
		Name: "Arroz", Quantity: 1, Price: decimal.NewFromInt(5),
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	})
	require.NoError(t, err)
	assert.Positive(t, id)
}

func TestOpen_DriverDesconocido(t *testing.T) {
	_, err := store.Open(context.Background(), &config.Config{Store: config.StoreConfig{Driver: "mongo"}})
	assert.Error(t, err)
}
