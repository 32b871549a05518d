package invoices

import (
	"context"

	"github.com/amcdesk/amcdesk-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository defines persistence operations for invoice tables.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, invoice *models.Invoice) (*models.Invoice, error)
	FindByID(ctx context.Context, id int64) (*models.Invoice, error)
	FindIDByInvoiceNo(ctx context.Context, invoiceNo string) (int64, error)
	List(ctx context.Context, params ListParams) ([]models.Invoice, int64, error)
	Update(ctx context.Context, invoice *models.Invoice) error
	Delete(ctx context.Context, id int64) error
	CustomerExists(ctx context.Context, customerID int64) (bool, error)
	CreateItem(ctx context.Context, item *models.InvoiceItem) (*models.InvoiceItem, error)
	FindItemByID(ctx context.Context, id int64) (*models.InvoiceItem, error)
	ListItems(ctx context.Context, params ItemListParams) ([]models.InvoiceItem, int64, error)
	UpdateItem(ctx context.Context, item *models.InvoiceItem) error
	DeleteItem(ctx context.Context, id int64) error
}
