package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Sale struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductID     uuid.UUID `gorm:"type:uuid;index;not null"`
	Product       Product
	Quantity      int             `gorm:"not null"`
	TotalAmount   decimal.Decimal `gorm:"type:numeric;not null"`
	PaymentMethod *string         `gorm:"size:20"`
	StaffID       *uuid.UUID      `gorm:"type:uuid;index"`
	Staff         *User           `gorm:"foreignKey:StaffID"`
	CreatedAt     time.Time       `gorm:"index"`
	UpdatedAt     time.Time
}

func (s *Sale) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
