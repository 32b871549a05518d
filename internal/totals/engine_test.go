package totals

import (
	"context"
	"testing"

	pkgerrors "github.com/amcdesk/amcdesk-backend/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func dec(value string) decimal.Decimal {
	d, err := decimal.NewFromString(value)
	if err != nil {
		panic(err)
	}
	return d
}

func TestComputeInvoiceTotals(t *testing.T) {
	cases := []struct {
		name     string
		amounts  []decimal.Decimal
		discount decimal.Decimal
		want     InvoiceTotals
	}{
		{
			name:     "two items with discount",
			amounts:  []decimal.Decimal{dec("1000"), dec("2500")},
			discount: dec("300"),
			want:     InvoiceTotals{Total: dec("3500"), Subtotal: dec("3200"), GrandTotal: dec("3200")},
		},
		{
			name:     "no items",
			amounts:  nil,
			discount: decimal.Zero,
			want:     InvoiceTotals{Total: dec("0"), Subtotal: dec("0"), GrandTotal: dec("0")},
		},
		{
			name:     "no items with discount goes negative",
			amounts:  nil,
			discount: dec("50"),
			want:     InvoiceTotals{Total: dec("0"), Subtotal: dec("-50"), GrandTotal: dec("-50")},
		},
		{
			name:     "negative discount raises totals",
			amounts:  []decimal.Decimal{dec("100")},
			discount: dec("-25"),
			want:     InvoiceTotals{Total: dec("100"), Subtotal: dec("125"), GrandTotal: dec("125")},
		},
		{
			name:     "fractional amounts stay exact",
			amounts:  []decimal.Decimal{dec("0.10"), dec("0.20")},
			discount: dec("0.05"),
			want:     InvoiceTotals{Total: dec("0.30"), Subtotal: dec("0.25"), GrandTotal: dec("0.25")},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ComputeInvoiceTotals(tc.amounts, tc.discount)
			assertDecimal(t, "total", tc.want.Total, got.Total)
			assertDecimal(t, "subtotal", tc.want.Subtotal, got.Subtotal)
			assertDecimal(t, "grand_total", tc.want.GrandTotal, got.GrandTotal)
		})
	}
}

func TestComputeProposalTotals(t *testing.T) {
	cases := []struct {
		name    string
		amounts []decimal.Decimal
		inputs  ProposalInputs
		want    ProposalTotals
	}{
		{
			name:    "charge discount and tax",
			amounts: []decimal.Decimal{dec("5000")},
			inputs: ProposalInputs{
				AdditionalCharge: dec("500"),
				Discount:         dec("200"),
				TaxRate:          dec("18"),
			},
			want: ProposalTotals{Total: dec("5000"), TaxAmount: dec("990"), GrandTotal: dec("6290")},
		},
		{
			name:    "zero tax rate",
			amounts: []decimal.Decimal{dec("1200"), dec("800")},
			inputs: ProposalInputs{
				AdditionalCharge: decimal.Zero,
				Discount:         dec("100"),
				TaxRate:          decimal.Zero,
			},
			want: ProposalTotals{Total: dec("2000"), TaxAmount: dec("0"), GrandTotal: dec("1900")},
		},
		{
			name:    "no items",
			amounts: nil,
			inputs:  ProposalInputs{},
			want:    ProposalTotals{Total: dec("0"), TaxAmount: dec("0"), GrandTotal: dec("0")},
		},
		{
			name:    "tax rounds to paise",
			amounts: []decimal.Decimal{dec("1000.33")},
			inputs: ProposalInputs{
				TaxRate: dec("18"),
			},
			// 1000.33 * 0.18 = 180.0594 -> 180.06
			want: ProposalTotals{Total: dec("1000.33"), TaxAmount: dec("180.06"), GrandTotal: dec("1180.39")},
		},
		{
			name:    "charge only",
			amounts: nil,
			inputs: ProposalInputs{
				AdditionalCharge: dec("250"),
				TaxRate:          dec("10"),
			},
			want: ProposalTotals{Total: dec("0"), TaxAmount: dec("25"), GrandTotal: dec("275")},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ComputeProposalTotals(tc.amounts, tc.inputs)
			assertDecimal(t, "total", tc.want.Total, got.Total)
			assertDecimal(t, "tax_amount", tc.want.TaxAmount, got.TaxAmount)
			assertDecimal(t, "grand_total", tc.want.GrandTotal, got.GrandTotal)
		})
	}
}

func TestRecalculateInvoicePersistsTotals(t *testing.T) {
	store := newStubStore()
	store.invoices[7] = dec("300")
	store.invoiceItems[7] = []decimal.Decimal{dec("1000"), dec("2500")}

	recalc, err := NewRecalculator(store)
	if err != nil {
		t.Fatalf("new recalculator: %v", err)
	}

	got, err := recalc.RecalculateInvoice(context.Background(), 7)
	if err != nil {
		t.Fatalf("recalculate: %v", err)
	}
	assertDecimal(t, "total", dec("3500"), got.Total)
	assertDecimal(t, "grand_total", dec("3200"), got.GrandTotal)

	saved, ok := store.savedInvoice[7]
	if !ok {
		t.Fatal("expected invoice totals to be saved")
	}
	assertDecimal(t, "saved total", dec("3500"), saved.Total)
	assertDecimal(t, "saved subtotal", dec("3200"), saved.Subtotal)
}

func TestRecalculateInvoiceIsIdempotent(t *testing.T) {
	store := newStubStore()
	store.invoices[3] = decimal.Zero
	store.invoiceItems[3] = []decimal.Decimal{dec("99.99")}

	recalc, _ := NewRecalculator(store)

	first, err := recalc.RecalculateInvoice(context.Background(), 3)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	second, err := recalc.RecalculateInvoice(context.Background(), 3)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	assertDecimal(t, "total", first.Total, second.Total)
	assertDecimal(t, "subtotal", first.Subtotal, second.Subtotal)
	assertDecimal(t, "grand_total", first.GrandTotal, second.GrandTotal)
	if store.invoiceSaves != 2 {
		t.Fatalf("expected 2 saves, got %d", store.invoiceSaves)
	}
}

func TestRecalculateInvoiceMissingParent(t *testing.T) {
	store := newStubStore()

	recalc, _ := NewRecalculator(store)
	_, err := recalc.RecalculateInvoice(context.Background(), 42)
	if err == nil {
		t.Fatal("expected error for missing invoice")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
	if store.invoiceSaves != 0 {
		t.Fatal("missing invoice must not trigger a write")
	}
}

func TestRecalculateInvoiceLastItemDeleted(t *testing.T) {
	store := newStubStore()
	store.invoices[5] = decimal.Zero

	recalc, _ := NewRecalculator(store)
	got, err := recalc.RecalculateInvoice(context.Background(), 5)
	if err != nil {
		t.Fatalf("recalculate: %v", err)
	}
	assertDecimal(t, "total", decimal.Zero, got.Total)
	assertDecimal(t, "subtotal", decimal.Zero, got.Subtotal)
	assertDecimal(t, "grand_total", decimal.Zero, got.GrandTotal)
}

func TestRecalculateProposalPersistsTotals(t *testing.T) {
	store := newStubStore()
	store.proposals[11] = ProposalInputs{
		AdditionalCharge: dec("500"),
		Discount:         dec("200"),
		TaxRate:          dec("18"),
	}
	store.proposalItems[11] = []decimal.Decimal{dec("5000")}

	recalc, _ := NewRecalculator(store)
	got, err := recalc.RecalculateProposal(context.Background(), 11)
	if err != nil {
		t.Fatalf("recalculate: %v", err)
	}
	assertDecimal(t, "tax_amount", dec("990"), got.TaxAmount)
	assertDecimal(t, "grand_total", dec("6290"), got.GrandTotal)

	saved, ok := store.savedProposal[11]
	if !ok {
		t.Fatal("expected proposal totals to be saved")
	}
	assertDecimal(t, "saved grand_total", dec("6290"), saved.GrandTotal)
}

func TestRecalculateProposalMissingParent(t *testing.T) {
	store := newStubStore()

	recalc, _ := NewRecalculator(store)
	_, err := recalc.RecalculateProposal(context.Background(), 9)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
	if store.proposalSaves != 0 {
		t.Fatal("missing proposal must not trigger a write")
	}
}

func TestNewRecalculatorRequiresStore(t *testing.T) {
	if _, err := NewRecalculator(nil); err == nil {
		t.Fatal("expected error for nil store")
	}
}

func assertDecimal(t *testing.T, field string, want, got decimal.Decimal) {
	t.Helper()
	if !want.Equal(got) {
		t.Fatalf("%s: expected %s, got %s", field, want, got)
	}
}

type stubStore struct {
	invoices     map[int64]decimal.Decimal
	invoiceItems map[int64][]decimal.Decimal
	savedInvoice map[int64]InvoiceTotals
	invoiceSaves int

	proposals     map[int64]ProposalInputs
	proposalItems map[int64][]decimal.Decimal
	savedProposal map[int64]ProposalTotals
	proposalSaves int
}

func newStubStore() *stubStore {
	return &stubStore{
		invoices:      make(map[int64]decimal.Decimal),
		invoiceItems:  make(map[int64][]decimal.Decimal),
		savedInvoice:  make(map[int64]InvoiceTotals),
		proposals:     make(map[int64]ProposalInputs),
		proposalItems: make(map[int64][]decimal.Decimal),
		savedProposal: make(map[int64]ProposalTotals),
	}
}

func (s *stubStore) InvoiceDiscount(_ context.Context, invoiceID int64) (decimal.Decimal, error) {
	discount, ok := s.invoices[invoiceID]
	if !ok {
		return decimal.Zero, gorm.ErrRecordNotFound
	}
	return discount, nil
}

func (s *stubStore) InvoiceItemAmounts(_ context.Context, invoiceID int64) ([]decimal.Decimal, error) {
	return s.invoiceItems[invoiceID], nil
}

func (s *stubStore) SaveInvoiceTotals(_ context.Context, invoiceID int64, totals InvoiceTotals) error {
	s.savedInvoice[invoiceID] = totals
	s.invoiceSaves++
	return nil
}

func (s *stubStore) ProposalInputs(_ context.Context, proposalID int64) (ProposalInputs, error) {
	inputs, ok := s.proposals[proposalID]
	if !ok {
		return ProposalInputs{}, gorm.ErrRecordNotFound
	}
	return inputs, nil
}

func (s *stubStore) ProposalItemAmounts(_ context.Context, proposalID int64) ([]decimal.Decimal, error) {
	return s.proposalItems[proposalID], nil
}

func (s *stubStore) SaveProposalTotals(_ context.Context, proposalID int64, totals ProposalTotals) error {
	s.savedProposal[proposalID] = totals
	s.proposalSaves++
	return nil
}
