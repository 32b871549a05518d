package models

import (
	"time"

	"github.com/amcdesk/amcdesk-backend/pkg/enums"
)

// Product is a maintainable equipment model covered by invoices and proposals.
type Product struct {
	ID         int64              `gorm:"column:id;primaryKey;autoIncrement"`
	Name       string             `gorm:"column:name;not null"`
	Details    *string            `gorm:"column:details"`
	BrandID    *int64             `gorm:"column:brand_id;index"`
	CategoryID *int64             `gorm:"column:category_id;index"`
	Model      *string            `gorm:"column:model"`
	Status     enums.RecordStatus `gorm:"column:status;not null;default:'active'"`
	Brand      *Brand             `gorm:"foreignKey:BrandID"`
	Category   *Category          `gorm:"foreignKey:CategoryID"`
	CreatedAt  time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
