package models

import (
	"time"

	"github.com/amcdesk/amcdesk-backend/pkg/enums"
)

// AdminUser is a back-office operator account.
type AdminUser struct {
	ID           int64              `gorm:"column:id;primaryKey;autoIncrement"`
	Email        string             `gorm:"column:email;uniqueIndex;not null"`
	Name         string             `gorm:"column:name;not null"`
	PasswordHash string             `gorm:"column:password_hash;not null"`
	Role         string             `gorm:"column:role;not null;default:'admin'"`
	Status       enums.RecordStatus `gorm:"column:status;not null;default:'active'"`
	CreatedAt    time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
