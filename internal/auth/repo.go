package auth

import (
	"context"

	"github.com/amcdesk/amcdesk-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository exposes admin user persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an admin user repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByEmail looks up an admin account by lowercase email.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	var user models.AdminUser
	if err := r.db.WithContext(ctx).First(&user, "lower(email) = ?", email).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByID looks up an admin account by primary key.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.AdminUser, error) {
	var user models.AdminUser
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
