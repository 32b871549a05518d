package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/amcdesk/amcdesk-backend/pkg/db/models"
	"github.com/amcdesk/amcdesk-backend/pkg/enums"
	pkgerrors "github.com/amcdesk/amcdesk-backend/pkg/errors"
	"github.com/amcdesk/amcdesk-backend/pkg/pagination"
	"gorm.io/gorm"
)

type catalogRepository interface {
	CreateBrand(ctx context.Context, brand *models.Brand) (*models.Brand, error)
	FindBrandByID(ctx context.Context, id int64) (*models.Brand, error)
	ListBrands(ctx context.Context, params ListParams) ([]models.Brand, int64, error)
	UpdateBrand(ctx context.Context, brand *models.Brand) error
	DeleteBrand(ctx context.Context, id int64) error

	CreateCategory(ctx context.Context, category *models.Category) (*models.Category, error)
	FindCategoryByID(ctx context.Context, id int64) (*models.Category, error)
	ListCategories(ctx context.Context, params ListParams) ([]models.Category, int64, error)
	UpdateCategory(ctx context.Context, category *models.Category) error
	DeleteCategory(ctx context.Context, id int64) error

	CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error)
	FindProductByID(ctx context.Context, id int64) (*models.Product, error)
	ListProducts(ctx context.Context, params ListParams) ([]models.Product, int64, error)
	UpdateProduct(ctx context.Context, product *models.Product) error
	DeleteProduct(ctx context.Context, id int64) error
}

// BrandPage is a page of brands.
type BrandPage struct {
	Items []models.Brand
	Meta  pagination.Meta
}

// CategoryPage is a page of categories.
type CategoryPage struct {
	Items []models.Category
	Meta  pagination.Meta
}

// ProductPage is a page of products.
type ProductPage struct {
	Items []models.Product
	Meta  pagination.Meta
}

// Service exposes the catalog masters the billing modules reference.
type Service interface {
	CreateBrand(ctx context.Context, input BrandInput) (*models.Brand, error)
	GetBrand(ctx context.Context, id int64) (*models.Brand, error)
	ListBrands(ctx context.Context, params ListParams) (*BrandPage, error)
	UpdateBrand(ctx context.Context, id int64, input BrandInput) (*models.Brand, error)
	DeleteBrand(ctx context.Context, id int64) error

	CreateCategory(ctx context.Context, input CategoryInput) (*models.Category, error)
	GetCategory(ctx context.Context, id int64) (*models.Category, error)
	ListCategories(ctx context.Context, params ListParams) (*CategoryPage, error)
	UpdateCategory(ctx context.Context, id int64, input CategoryInput) (*models.Category, error)
	DeleteCategory(ctx context.Context, id int64) error

	CreateProduct(ctx context.Context, input ProductInput) (*models.Product, error)
	GetProduct(ctx context.Context, id int64) (*models.Product, error)
	ListProducts(ctx context.Context, params ListParams) (*ProductPage, error)
	UpdateProduct(ctx context.Context, id int64, input ProductInput) (*models.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
}

type service struct {
	repo catalogRepository
}

// NewService constructs a catalog service backed by the provided repository.
func NewService(repo catalogRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) CreateBrand(ctx context.Context, input BrandInput) (*models.Brand, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	status, err := resolveStatus(input.Status)
	if err != nil {
		return nil, err
	}
	created, err := s.repo.CreateBrand(ctx, &models.Brand{Name: name, Details: input.Details, Status: status})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create brand")
	}
	return created, nil
}

func (s *service) GetBrand(ctx context.Context, id int64) (*models.Brand, error) {
	brand, err := s.repo.FindBrandByID(ctx, id)
	if err != nil {
		return nil, notFoundOrDependency(err, "brand not found", "lookup brand")
	}
	return brand, nil
}

func (s *service) ListBrands(ctx context.Context, params ListParams) (*BrandPage, error) {
	params.Pagination = pagination.Normalize(params.Pagination)
	rows, total, err := s.repo.ListBrands(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list brands")
	}
	return &BrandPage{Items: rows, Meta: pagination.MetaFor(params.Pagination, total)}, nil
}

func (s *service) UpdateBrand(ctx context.Context, id int64, input BrandInput) (*models.Brand, error) {
	brand, err := s.GetBrand(ctx, id)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	status, err := resolveStatus(input.Status)
	if err != nil {
		return nil, err
	}
	brand.Name = name
	brand.Details = input.Details
	brand.Status = status
	if err := s.repo.UpdateBrand(ctx, brand); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update brand")
	}
	return brand, nil
}

func (s *service) DeleteBrand(ctx context.Context, id int64) error {
	if err := s.repo.DeleteBrand(ctx, id); err != nil {
		return notFoundOrDependency(err, "brand not found", "delete brand")
	}
	return nil
}

func (s *service) CreateCategory(ctx context.Context, input CategoryInput) (*models.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	status, err := resolveStatus(input.Status)
	if err != nil {
		return nil, err
	}
	created, err := s.repo.CreateCategory(ctx, &models.Category{Name: name, Details: input.Details, Status: status})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create category")
	}
	return created, nil
}

func (s *service) GetCategory(ctx context.Context, id int64) (*models.Category, error) {
	category, err := s.repo.FindCategoryByID(ctx, id)
	if err != nil {
		return nil, notFoundOrDependency(err, "category not found", "lookup category")
	}
	return category, nil
}

func (s *service) ListCategories(ctx context.Context, params ListParams) (*CategoryPage, error) {
	params.Pagination = pagination.Normalize(params.Pagination)
	rows, total, err := s.repo.ListCategories(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list categories")
	}
	return &CategoryPage{Items: rows, Meta: pagination.MetaFor(params.Pagination, total)}, nil
}

func (s *service) UpdateCategory(ctx context.Context, id int64, input CategoryInput) (*models.Category, error) {
	category, err := s.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	status, err := resolveStatus(input.Status)
	if err != nil {
		return nil, err
	}
	category.Name = name
	category.Details = input.Details
	category.Status = status
	if err := s.repo.UpdateCategory(ctx, category); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update category")
	}
	return category, nil
}

func (s *service) DeleteCategory(ctx context.Context, id int64) error {
	if err := s.repo.DeleteCategory(ctx, id); err != nil {
		return notFoundOrDependency(err, "category not found", "delete category")
	}
	return nil
}

func (s *service) CreateProduct(ctx context.Context, input ProductInput) (*models.Product, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	status, err := resolveStatus(input.Status)
	if err != nil {
		return nil, err
	}
	if err := s.checkProductRefs(ctx, input); err != nil {
		return nil, err
	}

	created, err := s.repo.CreateProduct(ctx, &models.Product{
		Name:       name,
		BrandID:    input.BrandID,
		CategoryID: input.CategoryID,
		Model:      input.Model,
		Details:    input.Details,
		Status:     status,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}
	return created, nil
}

func (s *service) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	product, err := s.repo.FindProductByID(ctx, id)
	if err != nil {
		return nil, notFoundOrDependency(err, "product not found", "lookup product")
	}
	return product, nil
}

func (s *service) ListProducts(ctx context.Context, params ListParams) (*ProductPage, error) {
	params.Pagination = pagination.Normalize(params.Pagination)
	rows, total, err := s.repo.ListProducts(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	return &ProductPage{Items: rows, Meta: pagination.MetaFor(params.Pagination, total)}, nil
}

func (s *service) UpdateProduct(ctx context.Context, id int64, input ProductInput) (*models.Product, error) {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	status, err := resolveStatus(input.Status)
	if err != nil {
		return nil, err
	}
	if err := s.checkProductRefs(ctx, input); err != nil {
		return nil, err
	}

	product.Name = name
	product.BrandID = input.BrandID
	product.CategoryID = input.CategoryID
	product.Model = input.Model
	product.Details = input.Details
	product.Status = status
	product.Brand = nil
	product.Category = nil
	if err := s.repo.UpdateProduct(ctx, product); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
	}
	return product, nil
}

func (s *service) DeleteProduct(ctx context.Context, id int64) error {
	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		return notFoundOrDependency(err, "product not found", "delete product")
	}
	return nil
}

func (s *service) checkProductRefs(ctx context.Context, input ProductInput) error {
	if input.BrandID != nil {
		if _, err := s.repo.FindBrandByID(ctx, *input.BrandID); err != nil {
			return notFoundOrDependency(err, "brand not found", "lookup brand")
		}
	}
	if input.CategoryID != nil {
		if _, err := s.repo.FindCategoryByID(ctx, *input.CategoryID); err != nil {
			return notFoundOrDependency(err, "category not found", "lookup category")
		}
	}
	return nil
}

func notFoundOrDependency(err error, notFoundMsg, wrapMsg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, notFoundMsg)
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, wrapMsg)
}

func resolveStatus(value *string) (enums.RecordStatus, error) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return enums.RecordStatusActive, nil
	}
	status, err := enums.ParseRecordStatus(*value)
	if err != nil {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "invalid status")
	}
	return status, nil
}
