package models

import (
	"time"

	"github.com/amcdesk/amcdesk-backend/pkg/enums"
)

// Customer is the master record for a contracting business.
type Customer struct {
	ID            int64              `gorm:"column:id;primaryKey;autoIncrement"`
	Name          string             `gorm:"column:name;not null"`
	Details       *string            `gorm:"column:details"`
	ContactPerson *string            `gorm:"column:contact_person"`
	Email         *string            `gorm:"column:email"`
	Address       *string            `gorm:"column:address"`
	Status        enums.RecordStatus `gorm:"column:status;not null;default:'active'"`
	Locations     []CustomerLocation `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
