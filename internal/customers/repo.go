package customers

import (
	"context"

	"github.com/amcdesk/amcdesk-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository exposes customer and location persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a customer repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new customer row.
func (r *Repository) Create(ctx context.Context, customer *models.Customer) (*models.Customer, error) {
	if err := r.db.WithContext(ctx).Create(customer).Error; err != nil {
		return nil, err
	}
	return customer, nil
}

// FindByID loads a customer with its locations.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.WithContext(ctx).
		Preload("Locations").
		First(&customer, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

// List returns a page of customers plus the total row count for the filter.
func (r *Repository) List(ctx context.Context, params ListParams) ([]models.Customer, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Customer{})
	if params.Search != "" {
		pattern := "%" + params.Search + "%"
		query = query.Where("LOWER(name) LIKE LOWER(?) OR LOWER(contact_person) LIKE LOWER(?)", pattern, pattern)
	}
	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.Customer
	if err := query.
		Order("created_at DESC").Order("id DESC").
		Offset(params.Pagination.Offset()).
		Limit(params.Pagination.Limit).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// Update persists the mutable customer columns.
func (r *Repository) Update(ctx context.Context, customer *models.Customer) error {
	return r.db.WithContext(ctx).Save(customer).Error
}

// Delete removes the customer; locations cascade at the database level.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.Customer{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CreateLocation inserts a new location row for a customer.
func (r *Repository) CreateLocation(ctx context.Context, location *models.CustomerLocation) (*models.CustomerLocation, error) {
	if err := r.db.WithContext(ctx).Create(location).Error; err != nil {
		return nil, err
	}
	return location, nil
}

// FindLocationByID loads a single location row.
func (r *Repository) FindLocationByID(ctx context.Context, id int64) (*models.CustomerLocation, error) {
	var location models.CustomerLocation
	if err := r.db.WithContext(ctx).First(&location, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &location, nil
}

// ListLocations returns every location for the customer.
func (r *Repository) ListLocations(ctx context.Context, customerID int64) ([]models.CustomerLocation, error) {
	var rows []models.CustomerLocation
	if err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// UpdateLocation persists the mutable location columns.
func (r *Repository) UpdateLocation(ctx context.Context, location *models.CustomerLocation) error {
	return r.db.WithContext(ctx).Save(location).Error
}

// DeleteLocation removes a single location row.
func (r *Repository) DeleteLocation(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.CustomerLocation{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
