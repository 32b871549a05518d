package totals

import (
	"context"

	"github.com/amcdesk/amcdesk-backend/pkg/db/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormStore implements Store on top of the shared GORM connection.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore constructs a totals store tied to the provided GORM DB.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// WithTx returns a copy of the store bound to the supplied transaction.
func (s *GormStore) WithTx(tx *gorm.DB) Store {
	return &GormStore{db: tx}
}

// InvoiceDiscount loads the stored discount for the invoice, proving the row
// exists in the same query.
func (s *GormStore) InvoiceDiscount(ctx context.Context, invoiceID int64) (decimal.Decimal, error) {
	var invoice models.Invoice
	if err := s.db.WithContext(ctx).
		Select("id", "discount").
		First(&invoice, "id = ?", invoiceID).Error; err != nil {
		return decimal.Zero, err
	}
	return invoice.Discount, nil
}

// InvoiceItemAmounts returns the amount column of every item on the invoice.
func (s *GormStore) InvoiceItemAmounts(ctx context.Context, invoiceID int64) ([]decimal.Decimal, error) {
	var rows []models.InvoiceItem
	if err := s.db.WithContext(ctx).
		Select("amount").
		Where("invoice_id = ?", invoiceID).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	amounts := make([]decimal.Decimal, len(rows))
	for i, row := range rows {
		amounts[i] = row.Amount
	}
	return amounts, nil
}

// SaveInvoiceTotals writes the derived invoice columns.
func (s *GormStore) SaveInvoiceTotals(ctx context.Context, invoiceID int64, totals InvoiceTotals) error {
	return s.db.WithContext(ctx).
		Model(&models.Invoice{}).
		Where("id = ?", invoiceID).
		Updates(map[string]any{
			"total":       totals.Total,
			"subtotal":    totals.Subtotal,
			"grand_total": totals.GrandTotal,
		}).Error
}

// ProposalInputs loads the adjustment columns for the proposal, proving the
// row exists in the same query.
func (s *GormStore) ProposalInputs(ctx context.Context, proposalID int64) (ProposalInputs, error) {
	var proposal models.AmcProposal
	if err := s.db.WithContext(ctx).
		Select("id", "additional_charge", "discount", "tax_rate").
		First(&proposal, "id = ?", proposalID).Error; err != nil {
		return ProposalInputs{}, err
	}
	return ProposalInputs{
		AdditionalCharge: proposal.AdditionalCharge,
		Discount:         proposal.Discount,
		TaxRate:          proposal.TaxRate,
	}, nil
}

// ProposalItemAmounts returns the amount column of every item on the proposal.
func (s *GormStore) ProposalItemAmounts(ctx context.Context, proposalID int64) ([]decimal.Decimal, error) {
	var rows []models.ProposalItem
	if err := s.db.WithContext(ctx).
		Select("amount").
		Where("proposal_id = ?", proposalID).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	amounts := make([]decimal.Decimal, len(rows))
	for i, row := range rows {
		amounts[i] = row.Amount
	}
	return amounts, nil
}

// SaveProposalTotals writes the derived proposal columns.
func (s *GormStore) SaveProposalTotals(ctx context.Context, proposalID int64, totals ProposalTotals) error {
	return s.db.WithContext(ctx).
		Model(&models.AmcProposal{}).
		Where("id = ?", proposalID).
		Updates(map[string]any{
			"total":       totals.Total,
			"tax_amount":  totals.TaxAmount,
			"grand_total": totals.GrandTotal,
		}).Error
}
