package models

import (
	"time"

	"github.com/amcdesk/amcdesk-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// AmcProposal is a priced AMC offer. Total, TaxAmount and GrandTotal are
// derived from the linked items and the manual AdditionalCharge, Discount and
// TaxRate inputs; clients never write them directly.
type AmcProposal struct {
	ID               int64                `gorm:"column:id;primaryKey;autoIncrement"`
	ProposalNo       string               `gorm:"column:proposal_no;uniqueIndex;not null"`
	ProposalDate     time.Time            `gorm:"column:proposal_date;not null"`
	AMCStartDate     time.Time            `gorm:"column:amc_start_date;not null"`
	AMCEndDate       time.Time            `gorm:"column:amc_end_date;not null"`
	CustomerID       int64                `gorm:"column:customer_id;not null;index"`
	ContractNo       *string              `gorm:"column:contract_no"`
	BillingAddress   *string              `gorm:"column:billing_address"`
	DocLink          *string              `gorm:"column:doc_link"`
	TermsConditions  *string              `gorm:"column:terms_conditions"`
	Total            decimal.Decimal      `gorm:"column:total;type:numeric(12,2);not null;default:0"`
	AdditionalCharge decimal.Decimal      `gorm:"column:additional_charge;type:numeric(12,2);not null;default:0"`
	Discount         decimal.Decimal      `gorm:"column:discount;type:numeric(12,2);not null;default:0"`
	TaxRate          decimal.Decimal      `gorm:"column:tax_rate;type:numeric(5,2);not null;default:0"`
	TaxAmount        decimal.Decimal      `gorm:"column:tax_amount;type:numeric(12,2);not null;default:0"`
	GrandTotal       decimal.Decimal      `gorm:"column:grand_total;type:numeric(12,2);not null;default:0"`
	ProposalStatus   enums.ProposalStatus `gorm:"column:proposal_status;not null;default:'new'"`
	Customer         *Customer            `gorm:"foreignKey:CustomerID"`
	Items            []ProposalItem       `gorm:"foreignKey:ProposalID;constraint:OnDelete:CASCADE"`
	CreatedAt        time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}
