package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PaymentMethod string

const (
	PaymentCash    PaymentMethod = "Cash"
	PaymentGcash   PaymentMethod = "Gcash"
	PaymentPartial PaymentMethod = "Partial"
)

type RegistrationType string

const (
	RegistrationMonthly    RegistrationType = "Monthly" // the only renewable kind
	RegistrationMembership RegistrationType = "Membership"
)

// Customer rows are deduplicated by ContactNo. Active/expired is derived from
// ExpirationDate against the local date, never stored as a flag.
type Customer struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name             string    `gorm:"size:100;not null"`
	Address          *string   `gorm:"size:255"`
	ContactNo        string    `gorm:"size:30;index;not null"`
	PaymentMethod    PaymentMethod    `gorm:"size:20;not null"`
	Amount           decimal.Decimal  `gorm:"type:numeric;not null"`
	PartialAmount    *decimal.Decimal `gorm:"type:numeric"`
	RemainingAmount  decimal.Decimal  `gorm:"type:numeric;not null"`
	RegistrationType RegistrationType `gorm:"size:20;not null"`
	StartDate        time.Time        `gorm:"not null"`
	ExpirationDate   time.Time        `gorm:"index;not null"`
	StaffID          *uuid.UUID       `gorm:"type:uuid;index"`
	Staff            *User            `gorm:"foreignKey:StaffID"`
	CreatedAt        time.Time        `gorm:"index"`
	UpdatedAt        time.Time
}

func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
