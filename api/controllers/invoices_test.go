package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/amcdesk/amcdesk-backend/internal/invoices"
	"github.com/amcdesk/amcdesk-backend/pkg/db/models"
	pkgerrors "github.com/amcdesk/amcdesk-backend/pkg/errors"
)

type stubInvoiceService struct {
	invoice *models.Invoice
	item    *models.InvoiceItem
	list    *invoices.ListResult
	err     error

	itemList       *invoices.ItemListResult
	itemListParams *invoices.ItemListParams
}

func (s stubInvoiceService) Create(ctx context.Context, input invoices.CreateInput) (*models.Invoice, error) {
	return s.invoice, s.err
}

func (s stubInvoiceService) Get(ctx context.Context, id int64) (*models.Invoice, error) {
	return s.invoice, s.err
}

func (s stubInvoiceService) List(ctx context.Context, params invoices.ListParams) (*invoices.ListResult, error) {
	return s.list, s.err
}

func (s stubInvoiceService) Update(ctx context.Context, id int64, input invoices.UpdateInput) (*models.Invoice, error) {
	return s.invoice, s.err
}

func (s stubInvoiceService) Delete(ctx context.Context, id int64) error {
	return s.err
}

func (s stubInvoiceService) AddItem(ctx context.Context, invoiceID int64, input invoices.ItemInput) (*models.InvoiceItem, error) {
	return s.item, s.err
}

func (s stubInvoiceService) GetItem(ctx context.Context, invoiceID, itemID int64) (*models.InvoiceItem, error) {
	return s.item, s.err
}

func (s stubInvoiceService) ListItems(ctx context.Context, params invoices.ItemListParams) (*invoices.ItemListResult, error) {
	if s.itemListParams != nil {
		*s.itemListParams = params
	}
	return s.itemList, s.err
}

func (s stubInvoiceService) UpdateItem(ctx context.Context, invoiceID, itemID int64, input invoices.ItemUpdateInput) (*models.InvoiceItem, error) {
	return s.item, s.err
}

func (s stubInvoiceService) DeleteItem(ctx context.Context, invoiceID, itemID int64) error {
	return s.err
}

func withRouteParam(req *http.Request, key, value string) *http.Request {
	rctx, ok := req.Context().Value(chi.RouteCtxKey).(*chi.Context)
	if !ok {
		rctx = chi.NewRouteContext()
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	}
	rctx.URLParams.Add(key, value)
	return req
}

func TestInvoiceCreateSuccess(t *testing.T) {
	invoice := &models.Invoice{
		ID:         7,
		InvoiceNo:  "INV-001",
		Total:      decimal.NewFromInt(3500),
		Subtotal:   decimal.NewFromInt(3200),
		GrandTotal: decimal.NewFromInt(3200),
	}
	handler := InvoiceCreate(stubInvoiceService{invoice: invoice}, nil)

	body := bytes.NewBufferString(`{"customer_id":1,"invoice_no":"INV-001","invoice_date":"2026-04-01T00:00:00Z","discount":"300","items":[{"product_id":2,"amount":"3500"}]}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/invoices", body)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", rec.Code, rec.Body.String())
	}

	var envelope struct {
		Data models.Invoice `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !envelope.Data.GrandTotal.Equal(decimal.NewFromInt(3200)) {
		t.Fatalf("expected grand total 3200 got %s", envelope.Data.GrandTotal)
	}
}

func TestInvoiceCreateRejectsMissingCustomer(t *testing.T) {
	handler := InvoiceCreate(stubInvoiceService{}, nil)

	body := bytes.NewBufferString(`{"invoice_no":"INV-001","invoice_date":"2026-04-01T00:00:00Z"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/invoices", body)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestInvoiceGetNotFound(t *testing.T) {
	handler := InvoiceGet(stubInvoiceService{err: pkgerrors.New(pkgerrors.CodeNotFound, "invoice not found")}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/invoices/99", nil)
	req = withRouteParam(req, "invoiceID", "99")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", rec.Code)
	}
}

func TestInvoiceGetRejectsBadID(t *testing.T) {
	handler := InvoiceGet(stubInvoiceService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/invoices/abc", nil)
	req = withRouteParam(req, "invoiceID", "abc")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestInvoiceItemListScopesToRouteInvoice(t *testing.T) {
	var captured invoices.ItemListParams
	handler := InvoiceItemList(stubInvoiceService{
		itemList:       &invoices.ItemListResult{},
		itemListParams: &captured,
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/invoices/7/items/", nil)
	req = withRouteParam(req, "invoiceID", "7")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
	if captured.InvoiceID != 7 {
		t.Fatalf("expected invoice scope 7 got %d", captured.InvoiceID)
	}
}

func TestInvoiceItemListTopLevelFilter(t *testing.T) {
	var captured invoices.ItemListParams
	handler := InvoiceItemList(stubInvoiceService{
		itemList:       &invoices.ItemListResult{},
		itemListParams: &captured,
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/invoice-items?invoice_id=9", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
	if captured.InvoiceID != 9 {
		t.Fatalf("expected invoice filter 9 got %d", captured.InvoiceID)
	}
}

func TestInvoiceItemGetScopedNotFound(t *testing.T) {
	handler := InvoiceItemGet(stubInvoiceService{err: pkgerrors.New(pkgerrors.CodeNotFound, "invoice item not found")}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/invoices/1/items/5", nil)
	req = withRouteParam(req, "invoiceID", "1")
	req = withRouteParam(req, "itemID", "5")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", rec.Code)
	}
}

func TestInvoiceCreateNilService(t *testing.T) {
	handler := InvoiceCreate(nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/invoices", bytes.NewBufferString(`{}`))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 got %d", rec.Code)
	}
}
