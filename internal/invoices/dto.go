package invoices

import (
	"time"

	"github.com/amcdesk/amcdesk-backend/pkg/db/models"
	"github.com/amcdesk/amcdesk-backend/pkg/pagination"
	"github.com/shopspring/decimal"
)

// ItemInput carries the writable fields of a single invoice line.
type ItemInput struct {
	ProductID int64           `json:"product_id" validate:"required,gt=0"`
	SerialNo  *string         `json:"serial_no" validate:"omitempty,max=100"`
	Quantity  int             `json:"quantity" validate:"omitempty,gte=1"`
	Amount    decimal.Decimal `json:"amount"`
}

// ItemUpdateInput additionally allows moving the line to another invoice.
type ItemUpdateInput struct {
	ItemInput
	InvoiceID *int64 `json:"invoice_id" validate:"omitempty,gt=0"`
}

// CreateInput carries the writable invoice fields plus its initial lines.
type CreateInput struct {
	CustomerID  int64           `json:"customer_id" validate:"required,gt=0"`
	LocationID  *int64          `json:"location_id" validate:"omitempty,gt=0"`
	InvoiceNo   string          `json:"invoice_no" validate:"required,min=1,max=50"`
	InvoiceDate time.Time       `json:"invoice_date" validate:"required"`
	Discount    decimal.Decimal `json:"discount"`
	Status      *string         `json:"status" validate:"omitempty,oneof=pending paid cancelled"`
	Items       []ItemInput     `json:"items" validate:"omitempty,dive"`
}

// UpdateInput carries the invoice header fields for updates. Lines are managed
// through the item operations. A nil Discount leaves the stored discount
// untouched.
type UpdateInput struct {
	CustomerID  int64            `json:"customer_id" validate:"required,gt=0"`
	LocationID  *int64           `json:"location_id" validate:"omitempty,gt=0"`
	InvoiceNo   string           `json:"invoice_no" validate:"required,min=1,max=50"`
	InvoiceDate time.Time        `json:"invoice_date" validate:"required"`
	Discount    *decimal.Decimal `json:"discount"`
	Status      *string          `json:"status" validate:"omitempty,oneof=pending paid cancelled"`
}

// ListParams filters the invoice list.
type ListParams struct {
	Pagination pagination.Params
	Search     string
	Status     string
	CustomerID int64
}

// ItemListParams filters the invoice line list. An InvoiceID of zero lists
// lines across all invoices.
type ItemListParams struct {
	Pagination pagination.Params
	InvoiceID  int64
}

// ItemListResult is a page of invoice lines.
type ItemListResult struct {
	Items []models.InvoiceItem
	Meta  pagination.Meta
}
