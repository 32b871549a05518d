package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceItem is one covered unit on an invoice. Amount is the line's total
// contribution, not a unit price.
type InvoiceItem struct {
	ID        int64           `gorm:"column:id;primaryKey;autoIncrement"`
	InvoiceID int64           `gorm:"column:invoice_id;not null;index"`
	ProductID int64           `gorm:"column:product_id;not null;index"`
	SerialNo  *string         `gorm:"column:serial_no"`
	Quantity  int             `gorm:"column:quantity;not null;default:1"`
	Amount    decimal.Decimal `gorm:"column:amount;type:numeric(12,2);not null;default:0"`
	Product   *Product        `gorm:"foreignKey:ProductID"`
	Invoice   *Invoice        `gorm:"foreignKey:InvoiceID"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
