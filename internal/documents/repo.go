package documents

import (
	"context"

	"github.com/amcdesk/amcdesk-backend/pkg/db/models"
	"github.com/amcdesk/amcdesk-backend/pkg/enums"
	"gorm.io/gorm"
)

// Repository persists generated documents and email audit rows, and stamps
// the owning proposal.
type Repository interface {
	FindProposal(ctx context.Context, id int64) (*models.AmcProposal, error)
	StampDocLink(ctx context.Context, proposalID int64, link string) error
	MarkProposalSent(ctx context.Context, proposalID int64) error
	CreateDocument(ctx context.Context, doc *models.ProposalDocument) error
	FindDocumentByID(ctx context.Context, id int64) (*models.ProposalDocument, error)
	ListDocuments(ctx context.Context, params DocumentListParams) ([]models.ProposalDocument, int64, error)
	CreateEmailRecord(ctx context.Context, record *models.EmailRecord) error
	FindEmailRecordByID(ctx context.Context, id int64) (*models.EmailRecord, error)
	ListEmailRecords(ctx context.Context, params EmailListParams) ([]models.EmailRecord, int64, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository constructs a document repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindProposal(ctx context.Context, id int64) (*models.AmcProposal, error) {
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

func (r *repository) StampDocLink(ctx context.Context, proposalID int64, link string) error {
	result := r.db.WithContext(ctx).
		Model(&models.AmcProposal{}).
		Where("id = ?", proposalID).
		Update("doc_link", link)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) MarkProposalSent(ctx context.Context, proposalID int64) error {
	result := r.db.WithContext(ctx).
		Model(&models.AmcProposal{}).
		Where("id = ?", proposalID).
		Update("proposal_status", enums.ProposalStatusSent)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) CreateDocument(ctx context.Context, doc *models.ProposalDocument) error {
	return r.db.WithContext(ctx).Create(doc).Error
}

func (r *repository) FindDocumentByID(ctx context.Context, id int64) (*models.ProposalDocument, error) {
	var doc models.ProposalDocument
	if err := r.db.WithContext(ctx).First(&doc, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *repository) ListDocuments(ctx context.Context, params DocumentListParams) ([]models.ProposalDocument, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ProposalDocument{})
	if params.ProposalNo != "" {
		query = query.Where("proposal_no = ?", params.ProposalNo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.ProposalDocument
	if err := query.
		Order("created_at DESC").Order("id DESC").
		Offset(params.Pagination.Offset()).
		Limit(params.Pagination.Limit).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *repository) CreateEmailRecord(ctx context.Context, record *models.EmailRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *repository) FindEmailRecordByID(ctx context.Context, id int64) (*models.EmailRecord, error) {
	var record models.EmailRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *repository) ListEmailRecords(ctx context.Context, params EmailListParams) ([]models.EmailRecord, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.EmailRecord{})
	if params.ProposalNo != "" {
		query = query.Where("proposal_no = ?", params.ProposalNo)
	}
	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.EmailRecord
	if err := query.
		Order("created_at DESC").Order("id DESC").
		Offset(params.Pagination.Offset()).
		Limit(params.Pagination.Limit).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}
