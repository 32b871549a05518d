package models

import (
	"time"

	"github.com/amcdesk/amcdesk-backend/pkg/enums"
)

// CustomerLocation is a serviceable site belonging to a customer.
type CustomerLocation struct {
	ID            int64              `gorm:"column:id;primaryKey;autoIncrement"`
	CustomerID    int64              `gorm:"column:customer_id;not null;index"`
	DisplayName   string             `gorm:"column:display_name;not null"`
	Location      *string            `gorm:"column:location"`
	ContactPerson *string            `gorm:"column:contact_person"`
	Email         *string            `gorm:"column:email"`
	Phone1        *string            `gorm:"column:phone1"`
	Phone2        *string            `gorm:"column:phone2"`
	Address       *string            `gorm:"column:address"`
	City          *string            `gorm:"column:city"`
	State         *string            `gorm:"column:state"`
	PIN           *string            `gorm:"column:pin"`
	GSTIN         *string            `gorm:"column:gstin"`
	PAN           *string            `gorm:"column:pan"`
	Status        enums.RecordStatus `gorm:"column:status;not null;default:'active'"`
	Customer      *Customer          `gorm:"foreignKey:CustomerID"`
	CreatedAt     time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
