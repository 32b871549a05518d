package customers

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

type customersRepository interface {
	Create(ctx context.Context, customer *models.Customer) (*models.Customer, error)
	FindByID(ctx context.Context, id int64) (*models.Customer, error)
	List(ctx context.Context, params ListParams) ([]models.Customer, int64, error)
	Update(ctx context.Context, customer *models.Customer) error
	Delete(ctx context.Context, id int64) error
	CreateLocation(ctx context.Context, location *models.CustomerLocation) (*models.CustomerLocation, error)
	FindLocationByID(ctx context.Context, id int64) (*models.CustomerLocation, error)
	ListLocations(ctx context.Context, customerID int64) ([]models.CustomerLocation, error)
	UpdateLocation(ctx context.Context, location *models.CustomerLocation) error
	DeleteLocation(ctx context.Context, id int64) error
}

// ListResult is a page of customers.
type ListResult struct {
	Items []models.Customer
	Meta  pagination.Meta
}

// Service exposes customer and location management semantics.
type Service interface {
	CreateCustomer(ctx context.Context, input CustomerInput) (*models.Customer, error)
	GetCustomer(ctx context.Context, id int64) (*models.Customer, error)
	ListCustomers(ctx context.Context, params ListParams) (*ListResult, error)
	UpdateCustomer(ctx context.Context, id int64, input CustomerInput) (*models.Customer, error)
	DeleteCustomer(ctx context.Context, id int64) error

	CreateLocation(ctx context.Context, customerID int64, input LocationInput) (*models.CustomerLocation, error)
	ListLocations(ctx context.Context, customerID int64) ([]models.CustomerLocation, error)
	UpdateLocation(ctx context.Context, customerID, locationID int64, input LocationInput) (*models.CustomerLocation, error)
	DeleteLocation(ctx context.Context, customerID, locationID int64) error
}

type service struct {
	repo customersRepository
}

// NewService constructs a customer service backed by the provided repository.
func NewService(repo customersRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("customer repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) CreateCustomer(ctx context.Context, input CustomerInput) (*models.Customer, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}

	status, err := resolveStatus(input.Status)
	if err != nil {
		return nil, err
	}

	customer := &models.Customer{
		Name:          name,
		Details:       input.Details,
		ContactPerson: input.ContactPerson,
		Email:         input.Email,
		Address:       input.Address,
		Status:        status,
	}
	created, err := s.repo.Create(ctx, customer)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create customer")
	}
	return created, nil
}

func (s *service) GetCustomer(ctx context.Context, id int64) (*models.Customer, error) {
	customer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup customer")
	}
	return customer, nil
}

func (s *service) ListCustomers(ctx context.Context, params ListParams) (*ListResult, error) {
	params.Pagination = pagination.Normalize(params.Pagination)
	rows, total, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list customers")
	}
	return &ListResult{
		Items: rows,
		Meta:  pagination.MetaFor(params.Pagination, total),
	}, nil
}

func (s *service) UpdateCustomer(ctx context.Context, id int64, input CustomerInput) (*models.Customer, error) {
	customer, err := s.GetCustomer(ctx, id)
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

	customer.Name = name
	customer.Details = input.Details
	customer.ContactPerson = input.ContactPerson
	customer.Email = input.Email
	customer.Address = input.Address
	customer.Status = status

	if err := s.repo.Update(ctx, customer); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update customer")
	}
	return customer, nil
}

func (s *service) DeleteCustomer(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete customer")
	}
	return nil
}

func (s *service) CreateLocation(ctx context.Context, customerID int64, input LocationInput) (*models.CustomerLocation, error) {
	if _, err := s.GetCustomer(ctx, customerID); err != nil {
		return nil, err
	}

	displayName := strings.TrimSpace(input.DisplayName)
	if displayName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "display_name is required")
	}
	status, err := resolveStatus(input.Status)
	if err != nil {
		return nil, err
	}

	location := &models.CustomerLocation{
		CustomerID:    customerID,
		DisplayName:   displayName,
		Location:      input.Location,
		ContactPerson: input.ContactPerson,
		Email:         input.Email,
		Phone1:        input.Phone1,
		Phone2:        input.Phone2,
		Address:       input.Address,
		City:          input.City,
		State:         input.State,
		PIN:           input.PIN,
		GSTIN:         input.GSTIN,
		PAN:           input.PAN,
		Status:        status,
	}
	created, err := s.repo.CreateLocation(ctx, location)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create location")
	}
	return created, nil
}

func (s *service) ListLocations(ctx context.Context, customerID int64) ([]models.CustomerLocation, error) {
	if _, err := s.GetCustomer(ctx, customerID); err != nil {
		return nil, err
	}
	rows, err := s.repo.ListLocations(ctx, customerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list locations")
	}
	return rows, nil
}

func (s *service) UpdateLocation(ctx context.Context, customerID, locationID int64, input LocationInput) (*models.CustomerLocation, error) {
	location, err := s.findOwnedLocation(ctx, customerID, locationID)
	if err != nil {
		return nil, err
	}

	displayName := strings.TrimSpace(input.DisplayName)
	if displayName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "display_name is required")
	}
	status, err := resolveStatus(input.Status)
	if err != nil {
		return nil, err
	}

	location.DisplayName = displayName
	location.Location = input.Location
	location.ContactPerson = input.ContactPerson
	location.Email = input.Email
	location.Phone1 = input.Phone1
	location.Phone2 = input.Phone2
	location.Address = input.Address
	location.City = input.City
	location.State = input.State
	location.PIN = input.PIN
	location.GSTIN = input.GSTIN
	location.PAN = input.PAN
	location.Status = status

	if err := s.repo.UpdateLocation(ctx, location); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update location")
	}
	return location, nil
}

func (s *service) DeleteLocation(ctx context.Context, customerID, locationID int64) error {
	if _, err := s.findOwnedLocation(ctx, customerID, locationID); err != nil {
		return err
	}
	if err := s.repo.DeleteLocation(ctx, locationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "location not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete location")
	}
	return nil
}

func (s *service) findOwnedLocation(ctx context.Context, customerID, locationID int64) (*models.CustomerLocation, error) {
	location, err := s.repo.FindLocationByID(ctx, locationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "location not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup location")
	}
	if location.CustomerID != customerID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "location not found")
	}
	return location, nil
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
