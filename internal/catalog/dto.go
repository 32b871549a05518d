package catalog

import "github.com/amcdesk/amcdesk-backend/pkg/pagination"

// BrandInput carries the writable brand fields.
type BrandInput struct {
	Name    string  `json:"name" validate:"required,min=1,max=200"`
	Details *string `json:"details" validate:"omitempty,max=2000"`
	Status  *string `json:"status" validate:"omitempty,oneof=active inactive"`
}

// CategoryInput carries the writable category fields.
type CategoryInput struct {
	Name    string  `json:"name" validate:"required,min=1,max=200"`
	Details *string `json:"details" validate:"omitempty,max=2000"`
	Status  *string `json:"status" validate:"omitempty,oneof=active inactive"`
}

// ProductInput carries the writable product fields.
type ProductInput struct {
	Name       string  `json:"name" validate:"required,min=1,max=200"`
	BrandID    *int64  `json:"brand_id" validate:"omitempty,gt=0"`
	CategoryID *int64  `json:"category_id" validate:"omitempty,gt=0"`
	Model      *string `json:"model" validate:"omitempty,max=200"`
	Details    *string `json:"details" validate:"omitempty,max=2000"`
	Status     *string `json:"status" validate:"omitempty,oneof=active inactive"`
}

// ListParams filters the catalog lists. BrandID and CategoryID only apply to
// product listings.
type ListParams struct {
	Pagination pagination.Params
	Search     string
	Status     string
	BrandID    int64
	CategoryID int64
}
