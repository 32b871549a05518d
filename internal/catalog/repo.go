package catalog

import (
	"context"

	"github.com/amcdesk/amcdesk-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository exposes brand, category, and product persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a catalog repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) CreateBrand(ctx context.Context, brand *models.Brand) (*models.Brand, error) {
	if err := r.db.WithContext(ctx).Create(brand).Error; err != nil {
		return nil, err
	}
	return brand, nil
}

func (r *Repository) FindBrandByID(ctx context.Context, id int64) (*models.Brand, error) {
	var brand models.Brand
	if err := r.db.WithContext(ctx).First(&brand, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &brand, nil
}

func (r *Repository) ListBrands(ctx context.Context, params ListParams) ([]models.Brand, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Brand{})
	query = applyFilters(query, params)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.Brand
	if err := query.
		Order("name ASC").Order("id ASC").
		Offset(params.Pagination.Offset()).
		Limit(params.Pagination.Limit).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *Repository) UpdateBrand(ctx context.Context, brand *models.Brand) error {
	return r.db.WithContext(ctx).Save(brand).Error
}

func (r *Repository) DeleteBrand(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, &models.Brand{}, id)
}

func (r *Repository) CreateCategory(ctx context.Context, category *models.Category) (*models.Category, error) {
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

func (r *Repository) FindCategoryByID(ctx context.Context, id int64) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *Repository) ListCategories(ctx context.Context, params ListParams) ([]models.Category, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Category{})
	query = applyFilters(query, params)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.Category
	if err := query.
		Order("name ASC").Order("id ASC").
		Offset(params.Pagination.Offset()).
		Limit(params.Pagination.Limit).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *Repository) UpdateCategory(ctx context.Context, category *models.Category) error {
	return r.db.WithContext(ctx).Save(category).Error
}

func (r *Repository) DeleteCategory(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, &models.Category{}, id)
}

func (r *Repository) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

func (r *Repository) FindProductByID(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).
		Preload("Brand").
		Preload("Category").
		First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *Repository) ListProducts(ctx context.Context, params ListParams) ([]models.Product, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Product{})
	query = applyFilters(query, params)
	if params.BrandID > 0 {
		query = query.Where("brand_id = ?", params.BrandID)
	}
	if params.CategoryID > 0 {
		query = query.Where("category_id = ?", params.CategoryID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.Product
	if err := query.
		Preload("Brand").
		Preload("Category").
		Order("name ASC").Order("id ASC").
		Offset(params.Pagination.Offset()).
		Limit(params.Pagination.Limit).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *Repository) UpdateProduct(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

func (r *Repository) DeleteProduct(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, &models.Product{}, id)
}

func applyFilters(query *gorm.DB, params ListParams) *gorm.DB {
	if params.Search != "" {
		query = query.Where("LOWER(name) LIKE LOWER(?)", "%"+params.Search+"%")
	}
	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}
	return query
}

func deleteByID(ctx context.Context, db *gorm.DB, model any, id int64) error {
	result := db.WithContext(ctx).Delete(model, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
