package models

import (
	"time"

	"github.com/amcdesk/amcdesk-backend/pkg/enums"
)

// Category groups products by equipment type.
type Category struct {
	ID        int64              `gorm:"column:id;primaryKey;autoIncrement"`
	Name      string             `gorm:"column:name;not null"`
	Details   *string            `gorm:"column:details"`
	Status    enums.RecordStatus `gorm:"column:status;not null;default:'active'"`
	CreatedAt time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
