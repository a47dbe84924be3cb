package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type LogEntryType string

const (
	LogTypeRegular LogEntryType = "regular" // member visit, no charge
	LogTypeStudent LogEntryType = "student"
	LogTypeWalkIn  LogEntryType = "walk-in"
)

// LogEntry is one logbook row: a visit at the front desk. Regular entries
// carry no amount and no payment method.
type LogEntry struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name          string    `gorm:"size:100;not null"`
	Address       *string   `gorm:"size:255"`
	Type          LogEntryType     `gorm:"size:20;not null"`
	Amount        *decimal.Decimal `gorm:"type:numeric"`
	PaymentMethod *string          `gorm:"size:20"`
	StaffID       *uuid.UUID       `gorm:"type:uuid;index"`
	Staff         *User            `gorm:"foreignKey:StaffID"`
	CreatedAt     time.Time        `gorm:"index"`
	UpdatedAt     time.Time
}

func (l *LogEntry) TableName() string { return "logbook" }

func (l *LogEntry) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
