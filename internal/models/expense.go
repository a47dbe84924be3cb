package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Expense struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name      string          `gorm:"size:100;not null"`
	Amount    decimal.Decimal `gorm:"type:numeric;not null"`
	Date      time.Time       `gorm:"index;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (e *Expense) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
