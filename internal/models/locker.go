package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Locker struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name           string    `gorm:"size:100;not null"`
	LockerNumber   string    `gorm:"size:20;index;not null"`
	PaymentMethod  PaymentMethod   `gorm:"size:20;not null"`
	Amount         decimal.Decimal `gorm:"type:numeric;not null"`
	RegisteredDate time.Time       `gorm:"not null"`
	ExpirationDate time.Time       `gorm:"index;not null"`
	StaffID        *uuid.UUID      `gorm:"type:uuid;index"`
	Staff          *User           `gorm:"foreignKey:StaffID"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (l *Locker) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
