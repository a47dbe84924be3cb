package sales

import (
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"gymcore-backend/internal/models"
)

func newStockDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Product{}))
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, stock int) *models.Product {
	t.Helper()

	p := &models.Product{
		Name:          "Protein Bar",
		Price:         decimal.NewFromInt(50),
		StockQuantity: stock,
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

func currentStock(t *testing.T, db *gorm.DB, id uuid.UUID) int {
	t.Helper()

	var p models.Product
	require.NoError(t, db.First(&p, "id = ?", id).Error)
	return p.StockQuantity
}

func TestClampedStock(t *testing.T) {
	tests := []struct {
		name    string
		current int
		qty     int
		want    int
	}{
		{"normal debit", 10, 3, 7},
		{"exact depletion", 5, 5, 0},
		{"oversell clamps to zero", 2, 5, 0},
		{"zero stock stays zero", 0, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, clampedStock(tt.current, tt.qty))
		})
	}
}

func TestDebitStock(t *testing.T) {
	db := newStockDB(t)
	p := seedProduct(t, db, 10)

	require.NoError(t, debitStock(db, p.ID, 3))
	assert.Equal(t, 7, currentStock(t, db, p.ID))

	// Overselling drains to zero, never below.
	require.NoError(t, debitStock(db, p.ID, 20))
	assert.Equal(t, 0, currentStock(t, db, p.ID))
}

func TestDebitStockUnknownProduct(t *testing.T) {
	db := newStockDB(t)

	err := debitStock(db, uuid.New(), 1)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCreditStock(t *testing.T) {
	db := newStockDB(t)
	p := seedProduct(t, db, 2)

	require.NoError(t, creditStock(db, p.ID, 5))
	assert.Equal(t, 7, currentStock(t, db, p.ID))
}

func TestCreditStockMissingProductIsNoop(t *testing.T) {
	db := newStockDB(t)

	// The sale can outlive its product; restoring stock then does nothing.
	assert.NoError(t, creditStock(db, uuid.New(), 5))
}
