package customers

import "github.com/amcdesk/amcdesk-backend/pkg/pagination"

// CustomerInput carries the writable customer fields.
type CustomerInput struct {
	Name          string  `json:"name" validate:"required,min=2,max=200"`
	Details       *string `json:"details" validate:"omitempty,max=2000"`
	ContactPerson *string `json:"contact_person" validate:"omitempty,max=200"`
	Email         *string `json:"email" validate:"omitempty,email"`
	Address       *string `json:"address" validate:"omitempty,max=2000"`
	Status        *string `json:"status" validate:"omitempty,oneof=active inactive"`
}

// LocationInput carries the writable customer location fields.
type LocationInput struct {
	DisplayName   string  `json:"display_name" validate:"required,min=2,max=200"`
	Location      *string `json:"location" validate:"omitempty,max=500"`
	ContactPerson *string `json:"contact_person" validate:"omitempty,max=200"`
	Email         *string `json:"email" validate:"omitempty,email"`
	Phone1        *string `json:"phone1" validate:"omitempty,max=20"`
	Phone2        *string `json:"phone2" validate:"omitempty,max=20"`
	Address       *string `json:"address" validate:"omitempty,max=2000"`
	City          *string `json:"city" validate:"omitempty,max=100"`
	State         *string `json:"state" validate:"omitempty,max=100"`
	PIN           *string `json:"pin" validate:"omitempty,max=10"`
	GSTIN         *string `json:"gstin" validate:"omitempty,max=15"`
	PAN           *string `json:"pan" validate:"omitempty,max=10"`
	Status        *string `json:"status" validate:"omitempty,oneof=active inactive"`
}

// ListParams filters the customer list.
type ListParams struct {
	Pagination pagination.Params
	Search     string
	Status     string
}
