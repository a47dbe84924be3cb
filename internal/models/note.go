package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Note struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Content   string    `gorm:"size:1000;not null"`
	StaffID   *uuid.UUID `gorm:"type:uuid;index"`
	Staff     *User      `gorm:"foreignKey:StaffID"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (n *Note) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
