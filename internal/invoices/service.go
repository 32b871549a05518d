package invoices

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/amcdesk/amcdesk-backend/internal/totals"
	"github.com/amcdesk/amcdesk-backend/pkg/db"
	"github.com/amcdesk/amcdesk-backend/pkg/db/models"
	"github.com/amcdesk/amcdesk-backend/pkg/enums"
	pkgerrors "github.com/amcdesk/amcdesk-backend/pkg/errors"
	"github.com/amcdesk/amcdesk-backend/pkg/pagination"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// ListResult is a page of invoices.
type ListResult struct {
	Items []models.Invoice
	Meta  pagination.Meta
}

// Service exposes invoice and invoice line semantics. Every mutation that can
// change the derived money columns recomputes them in the same transaction.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*models.Invoice, error)
	Get(ctx context.Context, id int64) (*models.Invoice, error)
	List(ctx context.Context, params ListParams) (*ListResult, error)
	Update(ctx context.Context, id int64, input UpdateInput) (*models.Invoice, error)
	Delete(ctx context.Context, id int64) error

	AddItem(ctx context.Context, invoiceID int64, input ItemInput) (*models.InvoiceItem, error)
	GetItem(ctx context.Context, invoiceID, itemID int64) (*models.InvoiceItem, error)
	ListItems(ctx context.Context, params ItemListParams) (*ItemListResult, error)
	UpdateItem(ctx context.Context, invoiceID, itemID int64, input ItemUpdateInput) (*models.InvoiceItem, error)
	DeleteItem(ctx context.Context, invoiceID, itemID int64) error
}

type service struct {
	repo   Repository
	tx     txRunner
	recalc *totals.Recalculator
}

// ServiceParams bundles the dependencies required to build an invoice service.
type ServiceParams struct {
	Repo         Repository
	TxRunner     txRunner
	Recalculator *totals.Recalculator
}

// NewService constructs an invoice service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("invoice repository required")
	}
	if params.TxRunner == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if params.Recalculator == nil {
		return nil, fmt.Errorf("totals recalculator required")
	}
	return &service{
		repo:   params.Repo,
		tx:     params.TxRunner,
		recalc: params.Recalculator,
	}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.Invoice, error) {
	invoiceNo := strings.TrimSpace(input.InvoiceNo)
	if invoiceNo == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invoice_no is required")
	}
	status, err := resolveStatus(input.Status)
	if err != nil {
		return nil, err
	}

	var created *models.Invoice
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		exists, err := repo.CustomerExists(ctx, input.CustomerID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup customer")
		}
		if !exists {
			return pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
		}

		if err := ensureInvoiceNoFree(ctx, repo, invoiceNo, 0); err != nil {
			return err
		}

		invoice := &models.Invoice{
			CustomerID:  input.CustomerID,
			LocationID:  input.LocationID,
			InvoiceNo:   invoiceNo,
			InvoiceDate: input.InvoiceDate,
			Discount:    input.Discount,
			Status:      status,
		}
		if _, err := repo.Create(ctx, invoice); err != nil {
			return mapWriteError(err, "create invoice")
		}

		for _, line := range input.Items {
			item := buildItem(invoice.ID, line)
			if _, err := repo.CreateItem(ctx, item); err != nil {
				return mapWriteError(err, "create invoice item")
			}
		}

		if _, err := s.recalc.WithTx(tx).RecalculateInvoice(ctx, invoice.ID); err != nil {
			return err
		}

		created = invoice
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, created.ID)
}

func (s *service) Get(ctx context.Context, id int64) (*models.Invoice, error) {
	invoice, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "invoice not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup invoice")
	}
	return invoice, nil
}

func (s *service) List(ctx context.Context, params ListParams) (*ListResult, error) {
	params.Pagination = pagination.Normalize(params.Pagination)
	rows, total, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list invoices")
	}
	return &ListResult{
		Items: rows,
		Meta:  pagination.MetaFor(params.Pagination, total),
	}, nil
}

func (s *service) Update(ctx context.Context, id int64, input UpdateInput) (*models.Invoice, error) {
	invoiceNo := strings.TrimSpace(input.InvoiceNo)
	if invoiceNo == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invoice_no is required")
	}
	status, err := resolveStatus(input.Status)
	if err != nil {
		return nil, err
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		invoice, err := repo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "invoice not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup invoice")
		}

		if invoice.InvoiceNo != invoiceNo {
			if err := ensureInvoiceNoFree(ctx, repo, invoiceNo, invoice.ID); err != nil {
				return err
			}
		}

		exists, err := repo.CustomerExists(ctx, input.CustomerID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup customer")
		}
		if !exists {
			return pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
		}

		invoice.CustomerID = input.CustomerID
		invoice.LocationID = input.LocationID
		invoice.InvoiceNo = invoiceNo
		invoice.InvoiceDate = input.InvoiceDate
		if input.Discount != nil {
			invoice.Discount = *input.Discount
		}
		invoice.Status = status
		invoice.Customer = nil
		invoice.Location = nil
		invoice.Items = nil
		if err := repo.Update(ctx, invoice); err != nil {
			return mapWriteError(err, "update invoice")
		}

		_, err = s.recalc.WithTx(tx).RecalculateInvoice(ctx, invoice.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "invoice not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete invoice")
	}
	return nil
}

func (s *service) AddItem(ctx context.Context, invoiceID int64, input ItemInput) (*models.InvoiceItem, error) {
	if input.ProductID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product_id is required")
	}

	var created *models.InvoiceItem
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		item := buildItem(invoiceID, input)
		if _, err := repo.CreateItem(ctx, item); err != nil {
			return mapWriteError(err, "create invoice item")
		}

		// Recalculate proves the parent exists; a missing invoice rolls the
		// insert back.
		if _, err := s.recalc.WithTx(tx).RecalculateInvoice(ctx, invoiceID); err != nil {
			return err
		}

		created = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *service) GetItem(ctx context.Context, invoiceID, itemID int64) (*models.InvoiceItem, error) {
	item, err := s.repo.FindItemByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "invoice item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup invoice item")
	}
	if item.InvoiceID != invoiceID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "invoice item not found")
	}
	return item, nil
}

func (s *service) ListItems(ctx context.Context, params ItemListParams) (*ItemListResult, error) {
	params.Pagination = pagination.Normalize(params.Pagination)
	rows, total, err := s.repo.ListItems(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list invoice items")
	}
	return &ItemListResult{
		Items: rows,
		Meta:  pagination.MetaFor(params.Pagination, total),
	}, nil
}

func (s *service) UpdateItem(ctx context.Context, invoiceID, itemID int64, input ItemUpdateInput) (*models.InvoiceItem, error) {
	if input.ProductID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product_id is required")
	}

	var updated *models.InvoiceItem
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		item, err := repo.FindItemByID(ctx, itemID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "invoice item not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup invoice item")
		}
		if item.InvoiceID != invoiceID {
			return pkgerrors.New(pkgerrors.CodeNotFound, "invoice item not found")
		}

		originalInvoiceID := item.InvoiceID
		targetInvoiceID := originalInvoiceID
		if input.InvoiceID != nil && *input.InvoiceID > 0 {
			targetInvoiceID = *input.InvoiceID
		}

		item.InvoiceID = targetInvoiceID
		item.ProductID = input.ProductID
		item.SerialNo = input.SerialNo
		item.Quantity = normalizeQuantity(input.Quantity)
		item.Amount = input.Amount
		item.Invoice = nil
		item.Product = nil
		if err := repo.UpdateItem(ctx, item); err != nil {
			return mapWriteError(err, "update invoice item")
		}

		engine := s.recalc.WithTx(tx)
		if _, err := engine.RecalculateInvoice(ctx, originalInvoiceID); err != nil {
			return err
		}
		if targetInvoiceID != originalInvoiceID {
			if _, err := engine.RecalculateInvoice(ctx, targetInvoiceID); err != nil {
				return err
			}
		}

		updated = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *service) DeleteItem(ctx context.Context, invoiceID, itemID int64) error {
	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		item, err := repo.FindItemByID(ctx, itemID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "invoice item not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup invoice item")
		}
		if item.InvoiceID != invoiceID {
			return pkgerrors.New(pkgerrors.CodeNotFound, "invoice item not found")
		}

		if err := repo.DeleteItem(ctx, itemID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete invoice item")
		}

		_, err = s.recalc.WithTx(tx).RecalculateInvoice(ctx, invoiceID)
		return err
	})
}

func ensureInvoiceNoFree(ctx context.Context, repo Repository, invoiceNo string, selfID int64) error {
	existingID, err := repo.FindIDByInvoiceNo(ctx, invoiceNo)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check invoice number")
	}
	if existingID == selfID {
		return nil
	}
	return pkgerrors.New(pkgerrors.CodeDuplicate, "invoice number already exists")
}

func buildItem(invoiceID int64, input ItemInput) *models.InvoiceItem {
	return &models.InvoiceItem{
		InvoiceID: invoiceID,
		ProductID: input.ProductID,
		SerialNo:  input.SerialNo,
		Quantity:  normalizeQuantity(input.Quantity),
		Amount:    input.Amount,
	}
}

func normalizeQuantity(quantity int) int {
	if quantity <= 0 {
		return 1
	}
	return quantity
}

func resolveStatus(value *string) (enums.InvoiceStatus, error) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return enums.InvoiceStatusPending, nil
	}
	status, err := enums.ParseInvoiceStatus(*value)
	if err != nil {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "invalid status")
	}
	return status, nil
}

func mapWriteError(err error, message string) error {
	if db.IsUniqueViolation(err, "") {
		return pkgerrors.New(pkgerrors.CodeDuplicate, "invoice number already exists")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, message)
}
