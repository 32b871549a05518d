package invoices

import (
	"context"

	"github.com/amcdesk/amcdesk-backend/pkg/db/models"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// NewRepository constructs an invoice repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, invoice *models.Invoice) (*models.Invoice, error) {
	if err := r.db.WithContext(ctx).Create(invoice).Error; err != nil {
		return nil, err
	}
	return invoice, nil
}

func (r *repository) FindByID(ctx context.Context, id int64) (*models.Invoice, error) {
	var invoice models.Invoice
	if err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Location").
		Preload("Items").
		Preload("Items.Product").
		First(&invoice, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &invoice, nil
}

// FindIDByInvoiceNo returns the id of the invoice carrying the number, or
// gorm.ErrRecordNotFound when the number is free.
func (r *repository) FindIDByInvoiceNo(ctx context.Context, invoiceNo string) (int64, error) {
	var invoice models.Invoice
	if err := r.db.WithContext(ctx).
		Select("id").
		First(&invoice, "invoice_no = ?", invoiceNo).Error; err != nil {
		return 0, err
	}
	return invoice.ID, nil
}

func (r *repository) List(ctx context.Context, params ListParams) ([]models.Invoice, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Invoice{})
	if params.Search != "" {
		query = query.Where("LOWER(invoice_no) LIKE LOWER(?)", "%"+params.Search+"%")
	}
	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}
	if params.CustomerID > 0 {
		query = query.Where("customer_id = ?", params.CustomerID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.Invoice
	if err := query.
		Preload("Customer").
		Order("invoice_date DESC").Order("id DESC").
		Offset(params.Pagination.Offset()).
		Limit(params.Pagination.Limit).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *repository) Update(ctx context.Context, invoice *models.Invoice) error {
	return r.db.WithContext(ctx).Save(invoice).Error
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.Invoice{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) CustomerExists(ctx context.Context, customerID int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Customer{}).
		Where("id = ?", customerID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repository) CreateItem(ctx context.Context, item *models.InvoiceItem) (*models.InvoiceItem, error) {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

func (r *repository) FindItemByID(ctx context.Context, id int64) (*models.InvoiceItem, error) {
	var item models.InvoiceItem
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repository) ListItems(ctx context.Context, params ItemListParams) ([]models.InvoiceItem, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.InvoiceItem{})
	if params.InvoiceID > 0 {
		query = query.Where("invoice_id = ?", params.InvoiceID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.InvoiceItem
	if err := query.
		Preload("Product").
		Order("id ASC").
		Offset(params.Pagination.Offset()).
		Limit(params.Pagination.Limit).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *repository) UpdateItem(ctx context.Context, item *models.InvoiceItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *repository) DeleteItem(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.InvoiceItem{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
