package proposals

import (
	"context"

	"github.com/amcdesk/amcdesk-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository defines persistence operations for proposal tables.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, proposal *models.AmcProposal) (*models.AmcProposal, error)
	FindByID(ctx context.Context, id int64) (*models.AmcProposal, error)
	FindIDByProposalNo(ctx context.Context, proposalNo string) (int64, error)
	List(ctx context.Context, params ListParams) ([]models.AmcProposal, int64, error)
	Update(ctx context.Context, proposal *models.AmcProposal) error
	Delete(ctx context.Context, id int64) error
	CustomerExists(ctx context.Context, customerID int64) (bool, error)
	CreateItem(ctx context.Context, item *models.ProposalItem) (*models.ProposalItem, error)
	FindItemByID(ctx context.Context, id int64) (*models.ProposalItem, error)
	ListItems(ctx context.Context, params ItemListParams) ([]models.ProposalItem, int64, error)
	UpdateItem(ctx context.Context, item *models.ProposalItem) error
	DeleteItem(ctx context.Context, id int64) error
}
