package models

import (
	"time"

	"github.com/amcdesk/amcdesk-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// Invoice is a billed delivery of products to a customer. Total, Subtotal and
// GrandTotal are derived from the linked items plus Discount; clients never
// write them directly.
type Invoice struct {
	ID          int64               `gorm:"column:id;primaryKey;autoIncrement"`
	CustomerID  int64               `gorm:"column:customer_id;not null;index"`
	LocationID  *int64              `gorm:"column:location_id;index"`
	InvoiceNo   string              `gorm:"column:invoice_no;uniqueIndex;not null"`
	InvoiceDate time.Time           `gorm:"column:invoice_date;not null"`
	Total       decimal.Decimal     `gorm:"column:total;type:numeric(12,2);not null;default:0"`
	Discount    decimal.Decimal     `gorm:"column:discount;type:numeric(12,2);not null;default:0"`
	Subtotal    decimal.Decimal     `gorm:"column:subtotal;type:numeric(12,2);not null;default:0"`
	GrandTotal  decimal.Decimal     `gorm:"column:grand_total;type:numeric(12,2);not null;default:0"`
	Status      enums.InvoiceStatus `gorm:"column:status;not null;default:'pending'"`
	Customer    *Customer           `gorm:"foreignKey:CustomerID"`
	Location    *CustomerLocation   `gorm:"foreignKey:LocationID"`
	Items       []InvoiceItem       `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
