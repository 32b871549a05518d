package proposals

import (
	"time"

	"github.com/amcdesk/amcdesk-backend/pkg/db/models"
	"github.com/amcdesk/amcdesk-backend/pkg/pagination"
	"github.com/shopspring/decimal"
)

// ItemInput carries the writable fields of a single covered unit.
type ItemInput struct {
	ProductID  int64           `json:"product_id" validate:"required,gt=0"`
	LocationID *int64          `json:"location_id" validate:"omitempty,gt=0"`
	InvoiceID  *int64          `json:"invoice_id" validate:"omitempty,gt=0"`
	SerialNo   *string         `json:"serial_no" validate:"omitempty,max=100"`
	SACCode    *string         `json:"sac_code" validate:"omitempty,max=20"`
	Quantity   int             `json:"quantity" validate:"omitempty,gte=1"`
	Rate       decimal.Decimal `json:"rate"`
	Amount     decimal.Decimal `json:"amount"`
}

// ItemUpdateInput additionally allows moving the unit to another proposal.
type ItemUpdateInput struct {
	ItemInput
	ProposalID *int64 `json:"proposal_id" validate:"omitempty,gt=0"`
}

// CreateInput carries the writable proposal fields plus its initial units.
type CreateInput struct {
	CustomerID       int64           `json:"customer_id" validate:"required,gt=0"`
	ProposalNo       string          `json:"proposal_no" validate:"required,min=1,max=50"`
	ProposalDate     time.Time       `json:"proposal_date" validate:"required"`
	AMCStartDate     time.Time       `json:"amc_start_date" validate:"required"`
	AMCEndDate       time.Time       `json:"amc_end_date" validate:"required"`
	ContractNo       *string         `json:"contract_no" validate:"omitempty,max=50"`
	BillingAddress   *string         `json:"billing_address"`
	TermsConditions  *string         `json:"terms_conditions"`
	AdditionalCharge decimal.Decimal `json:"additional_charge"`
	Discount         decimal.Decimal `json:"discount"`
	TaxRate          decimal.Decimal `json:"tax_rate"`
	Status           *string         `json:"proposal_status" validate:"omitempty,oneof=new sent accepted rejected expired"`
	Items            []ItemInput     `json:"items" validate:"omitempty,dive"`
}

// UpdateInput carries the proposal header fields for updates. The pricing
// inputs are pointers so callers can leave them untouched; totals are
// recomputed only when at least one of them is present.
type UpdateInput struct {
	CustomerID       int64            `json:"customer_id" validate:"required,gt=0"`
	ProposalNo       string           `json:"proposal_no" validate:"required,min=1,max=50"`
	ProposalDate     time.Time        `json:"proposal_date" validate:"required"`
	AMCStartDate     time.Time        `json:"amc_start_date" validate:"required"`
	AMCEndDate       time.Time        `json:"amc_end_date" validate:"required"`
	ContractNo       *string          `json:"contract_no" validate:"omitempty,max=50"`
	BillingAddress   *string          `json:"billing_address"`
	TermsConditions  *string          `json:"terms_conditions"`
	AdditionalCharge *decimal.Decimal `json:"additional_charge"`
	Discount         *decimal.Decimal `json:"discount"`
	TaxRate          *decimal.Decimal `json:"tax_rate"`
	Status           *string          `json:"proposal_status" validate:"omitempty,oneof=new sent accepted rejected expired"`
}

// ListParams filters the proposal list.
type ListParams struct {
	Pagination pagination.Params
	Search     string
	Status     string
	CustomerID int64
}

// ItemListParams filters the covered unit list. A ProposalID of zero lists
// units across all proposals.
type ItemListParams struct {
	Pagination pagination.Params
	ProposalID int64
}

// ItemListResult is a page of covered units.
type ItemListResult struct {
	Items []models.ProposalItem
	Meta  pagination.Meta
}
