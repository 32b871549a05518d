package proposals

import (
	"context"

	"github.com/amcdesk/amcdesk-backend/pkg/db/models"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// NewRepository constructs a proposal repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, proposal *models.AmcProposal) (*models.AmcProposal, error) {
	if err := r.db.WithContext(ctx).Create(proposal).Error; err != nil {
		return nil, err
	}
	return proposal, nil
}

func (r *repository) FindByID(ctx context.Context, id int64) (*models.AmcProposal, error) {
	var proposal models.AmcProposal
	if err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Items").
		Preload("Items.Product").
		Preload("Items.Location").
		First(&proposal, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &proposal, nil
}

// FindIDByProposalNo returns the id of the proposal carrying the number, or
// gorm.ErrRecordNotFound when the number is free.
func (r *repository) FindIDByProposalNo(ctx context.Context, proposalNo string) (int64, error) {
	var proposal models.AmcProposal
	if err := r.db.WithContext(ctx).
		Select("id").
		First(&proposal, "proposal_no = ?", proposalNo).Error; err != nil {
		return 0, err
	}
	return proposal.ID, nil
}

func (r *repository) List(ctx context.Context, params ListParams) ([]models.AmcProposal, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.AmcProposal{})
	if params.Search != "" {
		query = query.Where("LOWER(proposal_no) LIKE LOWER(?)", "%"+params.Search+"%")
	}
	if params.Status != "" {
		query = query.Where("proposal_status = ?", params.Status)
	}
	if params.CustomerID > 0 {
		query = query.Where("customer_id = ?", params.CustomerID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.AmcProposal
	if err := query.
		Preload("Customer").
		Order("proposal_date DESC").Order("id DESC").
		Offset(params.Pagination.Offset()).
		Limit(params.Pagination.Limit).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *repository) Update(ctx context.Context, proposal *models.AmcProposal) error {
	return r.db.WithContext(ctx).Save(proposal).Error
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.AmcProposal{}, "id = ?", id)
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

func (r *repository) CreateItem(ctx context.Context, item *models.ProposalItem) (*models.ProposalItem, error) {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

func (r *repository) FindItemByID(ctx context.Context, id int64) (*models.ProposalItem, error) {
	var item models.ProposalItem
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repository) ListItems(ctx context.Context, params ItemListParams) ([]models.ProposalItem, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ProposalItem{})
	if params.ProposalID > 0 {
		query = query.Where("proposal_id = ?", params.ProposalID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.ProposalItem
	if err := query.
		Preload("Product").
		Preload("Location").
		Order("id ASC").
		Offset(params.Pagination.Offset()).
		Limit(params.Pagination.Limit).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *repository) UpdateItem(ctx context.Context, item *models.ProposalItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *repository) DeleteItem(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.ProposalItem{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
