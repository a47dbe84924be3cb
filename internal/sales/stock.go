package sales

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"gymcore-backend/internal/models"
)

// clampedStock floors the decremented stock at zero. Overselling truncates
// silently instead of failing; kept until the product owner decides otherwise.
func clampedStock(current, qty int) int {
	if s := current - qty; s > 0 {
		return s
	}
	return 0
}

// debitStock reads the product and persists max(0, stock - qty). The read and
// the write are independent round trips with no lock; concurrent writers to
// the same product race last-write-wins (accepted, see SPEC_FULL.md §6).
func debitStock(db *gorm.DB, productID uuid.UUID, qty int) error {
	var product models.Product
	if err := db.First(&product, "id = ?", productID).Error; err != nil {
		return err
	}

	newStock := clampedStock(product.StockQuantity, qty)
	return db.Model(&models.Product{}).
		Where("id = ?", productID).
		Update("stock_quantity", newStock).Error
}

// creditStock adds qty back to the product's stock. A missing product is
// skipped, not an error: the sale may outlive its product and the restore is
// then a no-op.
func creditStock(db *gorm.DB, productID uuid.UUID, qty int) error {
	var product models.Product
	if err := db.First(&product, "id = ?", productID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil
		}
		return err
	}

	return db.Model(&models.Product{}).
		Where("id = ?", productID).
		Update("stock_quantity", product.StockQuantity+qty).Error
}
