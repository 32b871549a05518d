package totals

import (
	"context"
	"errors"
	"fmt"

	pkgerrors "github.com/amcdesk/amcdesk-backend/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var oneHundred = decimal.NewFromInt(100)

// InvoiceTotals holds the derived money columns for an invoice.
type InvoiceTotals struct {
	Total      decimal.Decimal
	Subtotal   decimal.Decimal
	GrandTotal decimal.Decimal
}

// ProposalInputs are the operator-entered adjustments that feed the proposal
// computation alongside the item amounts.
type ProposalInputs struct {
	AdditionalCharge decimal.Decimal
	Discount         decimal.Decimal
	TaxRate          decimal.Decimal
}

// ProposalTotals holds the derived money columns for a proposal.
type ProposalTotals struct {
	Total      decimal.Decimal
	TaxAmount  decimal.Decimal
	GrandTotal decimal.Decimal
}

// Store is the persistence surface the recalculator needs. Implementations
// must return gorm.ErrRecordNotFound when the parent row does not exist.
type Store interface {
	InvoiceDiscount(ctx context.Context, invoiceID int64) (decimal.Decimal, error)
	InvoiceItemAmounts(ctx context.Context, invoiceID int64) ([]decimal.Decimal, error)
	SaveInvoiceTotals(ctx context.Context, invoiceID int64, totals InvoiceTotals) error

	ProposalInputs(ctx context.Context, proposalID int64) (ProposalInputs, error)
	ProposalItemAmounts(ctx context.Context, proposalID int64) ([]decimal.Decimal, error)
	SaveProposalTotals(ctx context.Context, proposalID int64, totals ProposalTotals) error
}

// ComputeInvoiceTotals derives invoice money columns from item amounts and the
// stored discount. Missing items yield a zero baseline minus nothing; the
// discount still applies.
func ComputeInvoiceTotals(amounts []decimal.Decimal, discount decimal.Decimal) InvoiceTotals {
	total := sum(amounts)
	subtotal := total.Sub(discount)
	return InvoiceTotals{
		Total:      total,
		Subtotal:   subtotal,
		GrandTotal: subtotal,
	}
}

// ComputeProposalTotals derives proposal money columns. Tax applies to the item
// total plus the additional charge, before the discount comes off.
func ComputeProposalTotals(amounts []decimal.Decimal, inputs ProposalInputs) ProposalTotals {
	total := sum(amounts)
	taxable := total.Add(inputs.AdditionalCharge)
	taxAmount := taxable.Mul(inputs.TaxRate.Div(oneHundred)).Round(2)
	grandTotal := taxable.Add(taxAmount).Sub(inputs.Discount)
	return ProposalTotals{
		Total:      total,
		TaxAmount:  taxAmount,
		GrandTotal: grandTotal,
	}
}

// Recalculator recomputes and persists derived totals for invoices and
// proposals.
type Recalculator struct {
	store Store
}

// NewRecalculator builds a recalculator bound to the provided store.
func NewRecalculator(store Store) (*Recalculator, error) {
	if store == nil {
		return nil, fmt.Errorf("totals store required")
	}
	return &Recalculator{store: store}, nil
}

// WithTx rebinds the recalculator to a transaction when the underlying store
// supports it; otherwise the receiver is returned unchanged.
func (r *Recalculator) WithTx(tx *gorm.DB) *Recalculator {
	if rebindable, ok := r.store.(interface{ WithTx(tx *gorm.DB) Store }); ok {
		return &Recalculator{store: rebindable.WithTx(tx)}
	}
	return r
}

// RecalculateInvoice recomputes the invoice totals from its current items and
// writes them back. It is idempotent and never writes when the invoice is
// missing.
func (r *Recalculator) RecalculateInvoice(ctx context.Context, invoiceID int64) (InvoiceTotals, error) {
	discount, err := r.store.InvoiceDiscount(ctx, invoiceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return InvoiceTotals{}, pkgerrors.New(pkgerrors.CodeNotFound, "invoice not found")
		}
		return InvoiceTotals{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup invoice")
	}

	amounts, err := r.store.InvoiceItemAmounts(ctx, invoiceID)
	if err != nil {
		return InvoiceTotals{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load invoice items")
	}

	computed := ComputeInvoiceTotals(amounts, discount)
	if err := r.store.SaveInvoiceTotals(ctx, invoiceID, computed); err != nil {
		return InvoiceTotals{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save invoice totals")
	}
	return computed, nil
}

// RecalculateProposal recomputes the proposal totals from its current items and
// stored adjustment inputs and writes them back.
func (r *Recalculator) RecalculateProposal(ctx context.Context, proposalID int64) (ProposalTotals, error) {
	inputs, err := r.store.ProposalInputs(ctx, proposalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ProposalTotals{}, pkgerrors.New(pkgerrors.CodeNotFound, "proposal not found")
		}
		return ProposalTotals{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup proposal")
	}

	amounts, err := r.store.ProposalItemAmounts(ctx, proposalID)
	if err != nil {
		return ProposalTotals{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load proposal items")
	}

	computed := ComputeProposalTotals(amounts, inputs)
	if err := r.store.SaveProposalTotals(ctx, proposalID, computed); err != nil {
		return ProposalTotals{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save proposal totals")
	}
	return computed, nil
}

func sum(amounts []decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, amount := range amounts {
		total = total.Add(amount)
	}
	return total
}
