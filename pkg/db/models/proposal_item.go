package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProposalItem is one covered unit on an AMC proposal. InvoiceID records which
// invoice the unit was originally delivered under.
type ProposalItem struct {
	ID         int64             `gorm:"column:id;primaryKey;autoIncrement"`
	ProposalID int64             `gorm:"column:proposal_id;not null;index"`
	LocationID *int64            `gorm:"column:location_id;index"`
	InvoiceID  *int64            `gorm:"column:invoice_id;index"`
	ProductID  int64             `gorm:"column:product_id;not null;index"`
	SerialNo   *string           `gorm:"column:serial_no"`
	SACCode    *string           `gorm:"column:sac_code"`
	Quantity   int               `gorm:"column:quantity;not null;default:1"`
	Rate       decimal.Decimal   `gorm:"column:rate;type:numeric(12,2);not null;default:0"`
	Amount     decimal.Decimal   `gorm:"column:amount;type:numeric(12,2);not null;default:0"`
	Proposal   *AmcProposal      `gorm:"foreignKey:ProposalID"`
	Location   *CustomerLocation `gorm:"foreignKey:LocationID"`
	Invoice    *Invoice          `gorm:"foreignKey:InvoiceID"`
	Product    *Product          `gorm:"foreignKey:ProductID"`
	CreatedAt  time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
