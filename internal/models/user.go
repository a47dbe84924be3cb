package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRole string

const (
	RoleStaff UserRole = "staff"
	RoleAdmin UserRole = "admin"
)

type User struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name           string    `gorm:"size:100;not null"`
	Username       string    `gorm:"size:100;uniqueIndex;not null"`
	Email          string    `gorm:"size:100;uniqueIndex;not null"` // synthetic: <username>@<domain>
	PasswordHash   string    `gorm:"size:255;not null"`
	Role           UserRole  `gorm:"size:20;not null"`
	EmailConfirmed bool      `gorm:"not null;default:false"`
	LastSignInAt   *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
