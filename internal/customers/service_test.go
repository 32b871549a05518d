package customers

import (
	"context"
	"testing"

	"github.com/amcdesk/amcdesk-backend/pkg/db/models"
	"github.com/amcdesk/amcdesk-backend/pkg/enums"
	pkgerrors "github.com/amcdesk/amcdesk-backend/pkg/errors"
	"gorm.io/gorm"
)

type stubRepo struct {
	customers  map[int64]*models.Customer
	locations  map[int64]*models.CustomerLocation
	nextID     int64
	listTotal  int64
	lastParams ListParams
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		customers: make(map[int64]*models.Customer),
		locations: make(map[int64]*models.CustomerLocation),
		nextID:    1,
	}
}

func (s *stubRepo) Create(_ context.Context, customer *models.Customer) (*models.Customer, error) {
	customer.ID = s.nextID
	s.nextID++
	s.customers[customer.ID] = customer
	return customer, nil
}

func (s *stubRepo) FindByID(_ context.Context, id int64) (*models.Customer, error) {
	customer, ok := s.customers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return customer, nil
}

func (s *stubRepo) List(_ context.Context, params ListParams) ([]models.Customer, int64, error) {
	s.lastParams = params
	rows := make([]models.Customer, 0, len(s.customers))
	for _, customer := range s.customers {
		rows = append(rows, *customer)
	}
	return rows, s.listTotal, nil
}

func (s *stubRepo) Update(_ context.Context, customer *models.Customer) error {
	if _, ok := s.customers[customer.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	s.customers[customer.ID] = customer
	return nil
}

func (s *stubRepo) Delete(_ context.Context, id int64) error {
	if _, ok := s.customers[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(s.customers, id)
	return nil
}

func (s *stubRepo) CreateLocation(_ context.Context, location *models.CustomerLocation) (*models.CustomerLocation, error) {
	location.ID = s.nextID
	s.nextID++
	s.locations[location.ID] = location
	return location, nil
}

func (s *stubRepo) FindLocationByID(_ context.Context, id int64) (*models.CustomerLocation, error) {
	location, ok := s.locations[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return location, nil
}

func (s *stubRepo) ListLocations(_ context.Context, customerID int64) ([]models.CustomerLocation, error) {
	var rows []models.CustomerLocation
	for _, location := range s.locations {
		if location.CustomerID == customerID {
			rows = append(rows, *location)
		}
	}
	return rows, nil
}

func (s *stubRepo) UpdateLocation(_ context.Context, location *models.CustomerLocation) error {
	if _, ok := s.locations[location.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	s.locations[location.ID] = location
	return nil
}

func (s *stubRepo) DeleteLocation(_ context.Context, id int64) error {
	if _, ok := s.locations[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(s.locations, id)
	return nil
}

func TestCreateCustomer(t *testing.T) {
	repo := newStubRepo()
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	created, err := svc.CreateCustomer(context.Background(), CustomerInput{Name: "  Acme Corp  "})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Name != "Acme Corp" {
		t.Fatalf("expected trimmed name, got %q", created.Name)
	}
	if created.Status != enums.RecordStatusActive {
		t.Fatalf("expected default active status, got %q", created.Status)
	}
}

func TestCreateCustomerValidation(t *testing.T) {
	repo := newStubRepo()
	svc, _ := NewService(repo)

	_, err := svc.CreateCustomer(context.Background(), CustomerInput{Name: "   "})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}

	bad := "paused"
	_, err = svc.CreateCustomer(context.Background(), CustomerInput{Name: "Acme", Status: &bad})
	typed = pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected VALIDATION_ERROR for bad status, got %v", err)
	}
}

func TestGetCustomerNotFound(t *testing.T) {
	repo := newStubRepo()
	svc, _ := NewService(repo)

	_, err := svc.GetCustomer(context.Background(), 99)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestListCustomersNormalizesPagination(t *testing.T) {
	repo := newStubRepo()
	repo.listTotal = 25
	svc, _ := NewService(repo)

	result, err := svc.ListCustomers(context.Background(), ListParams{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if repo.lastParams.Pagination.Page != 1 || repo.lastParams.Pagination.Limit != 10 {
		t.Fatalf("expected normalized defaults, got %+v", repo.lastParams.Pagination)
	}
	if result.Meta.Total != 25 || result.Meta.TotalPages != 3 {
		t.Fatalf("unexpected meta %+v", result.Meta)
	}
}

func TestUpdateCustomer(t *testing.T) {
	repo := newStubRepo()
	svc, _ := NewService(repo)
	created, _ := svc.CreateCustomer(context.Background(), CustomerInput{Name: "Acme"})

	inactive := "inactive"
	updated, err := svc.UpdateCustomer(context.Background(), created.ID, CustomerInput{Name: "Acme Ltd", Status: &inactive})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "Acme Ltd" || updated.Status != enums.RecordStatusInactive {
		t.Fatalf("unexpected update result %+v", updated)
	}
}

func TestDeleteCustomerNotFound(t *testing.T) {
	repo := newStubRepo()
	svc, _ := NewService(repo)

	err := svc.DeleteCustomer(context.Background(), 5)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestLocationLifecycle(t *testing.T) {
	repo := newStubRepo()
	svc, _ := NewService(repo)
	customer, _ := svc.CreateCustomer(context.Background(), CustomerInput{Name: "Acme"})

	location, err := svc.CreateLocation(context.Background(), customer.ID, LocationInput{DisplayName: "HQ"})
	if err != nil {
		t.Fatalf("create location: %v", err)
	}

	rows, err := svc.ListLocations(context.Background(), customer.ID)
	if err != nil {
		t.Fatalf("list locations: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 location, got %d", len(rows))
	}

	updated, err := svc.UpdateLocation(context.Background(), customer.ID, location.ID, LocationInput{DisplayName: "Head Office"})
	if err != nil {
		t.Fatalf("update location: %v", err)
	}
	if updated.DisplayName != "Head Office" {
		t.Fatalf("unexpected display name %q", updated.DisplayName)
	}

	if err := svc.DeleteLocation(context.Background(), customer.ID, location.ID); err != nil {
		t.Fatalf("delete location: %v", err)
	}
}

func TestLocationOwnershipEnforced(t *testing.T) {
	repo := newStubRepo()
	svc, _ := NewService(repo)
	first, _ := svc.CreateCustomer(context.Background(), CustomerInput{Name: "First"})
	second, _ := svc.CreateCustomer(context.Background(), CustomerInput{Name: "Second"})
	location, _ := svc.CreateLocation(context.Background(), first.ID, LocationInput{DisplayName: "HQ"})

	_, err := svc.UpdateLocation(context.Background(), second.ID, location.ID, LocationInput{DisplayName: "Stolen"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected NOT_FOUND for foreign location, got %v", err)
	}

	err = svc.DeleteLocation(context.Background(), second.ID, location.ID)
	typed = pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected NOT_FOUND for foreign delete, got %v", err)
	}
}

func TestCreateLocationRequiresCustomer(t *testing.T) {
	repo := newStubRepo()
	svc, _ := NewService(repo)

	_, err := svc.CreateLocation(context.Background(), 77, LocationInput{DisplayName: "HQ"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}
