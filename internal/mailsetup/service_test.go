package mailsetup

import (
	"context"
	"testing"

	"github.com/amcdesk/amcdesk-backend/pkg/db/models"
	pkgerrors "github.com/amcdesk/amcdesk-backend/pkg/errors"
	"gorm.io/gorm"
)

type stubRepo struct {
	setup *models.MailSetup
}

func (s *stubRepo) FindFirst(_ context.Context) (*models.MailSetup, error) {
	if s.setup == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.setup, nil
}

func (s *stubRepo) Save(_ context.Context, setup *models.MailSetup) error {
	if setup.ID == 0 {
		setup.ID = 1
	}
	s.setup = setup
	return nil
}

func validInput() Input {
	return Input{
		SMTPHost:     "smtp.example.com",
		SMTPPort:     587,
		SMTPUser:     "mailer",
		SMTPPassword: "secret",
		EnableSSL:    true,
		SenderName:   "AMC Desk",
		SenderEmail:  "Noreply@Example.com",
	}
}

func TestGetBeforeConfiguration(t *testing.T) {
	svc, err := NewService(&stubRepo{})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, err = svc.Get(context.Background())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestPutCreatesThenOverwrites(t *testing.T) {
	repo := &stubRepo{}
	svc, _ := NewService(repo)
	ctx := context.Background()

	created, err := svc.Put(ctx, validInput())
	if err != nil {
		t.Fatalf("first put: %v", err)
	}
	if created.ID != 1 {
		t.Fatalf("expected singleton row id 1, got %d", created.ID)
	}
	if created.SenderEmail != "noreply@example.com" {
		t.Fatalf("expected lowercased sender email, got %q", created.SenderEmail)
	}

	update := validInput()
	update.SMTPHost = "smtp2.example.com"
	updated, err := svc.Put(ctx, update)
	if err != nil {
		t.Fatalf("second put: %v", err)
	}
	if updated.ID != created.ID {
		t.Fatalf("expected the same row to be overwritten, got id %d", updated.ID)
	}
	if updated.SMTPHost != "smtp2.example.com" {
		t.Fatalf("expected host to change, got %q", updated.SMTPHost)
	}

	fetched, err := svc.Get(ctx)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if fetched.SMTPHost != "smtp2.example.com" {
		t.Fatalf("get returned stale host %q", fetched.SMTPHost)
	}
}

func TestPutRejectsBlankHost(t *testing.T) {
	svc, _ := NewService(&stubRepo{})

	input := validInput()
	input.SMTPHost = "   "
	_, err := svc.Put(context.Background(), input)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
}
