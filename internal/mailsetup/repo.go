package mailsetup

import (
	"context"

	"github.com/amcdesk/amcdesk-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository persists the single mail setup row.
type Repository interface {
	FindFirst(ctx context.Context) (*models.MailSetup, error)
	Save(ctx context.Context, setup *models.MailSetup) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository constructs a mail setup repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindFirst(ctx context.Context) (*models.MailSetup, error) {
	var setup models.MailSetup
	if err := r.db.WithContext(ctx).Order("id ASC").First(&setup).Error; err != nil {
		return nil, err
	}
	return &setup, nil
}

func (r *repository) Save(ctx context.Context, setup *models.MailSetup) error {
	return r.db.WithContext(ctx).Save(setup).Error
}
