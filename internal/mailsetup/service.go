package mailsetup

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/amcdesk/amcdesk-backend/pkg/db/models"
	pkgerrors "github.com/amcdesk/amcdesk-backend/pkg/errors"
	"gorm.io/gorm"
)

// Input carries the writable SMTP delivery settings.
type Input struct {
	SMTPHost     string `json:"smtp_host" validate:"required,min=1,max=255"`
	SMTPPort     int    `json:"smtp_port" validate:"required,gte=1,lte=65535"`
	SMTPUser     string `json:"smtp_user" validate:"required,max=255"`
	SMTPPassword string `json:"smtp_password" validate:"required,max=255"`
	EnableSSL    bool   `json:"enable_ssl"`
	SenderName   string `json:"sender_name" validate:"required,max=100"`
	SenderEmail  string `json:"sender_email" validate:"required,email"`
}

// Service exposes the singleton mail setup. Put creates the row on first use
// and overwrites it afterwards.
type Service interface {
	Get(ctx context.Context) (*models.MailSetup, error)
	Put(ctx context.Context, input Input) (*models.MailSetup, error)
}

type service struct {
	repo Repository
}

// NewService constructs a mail setup service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("mail setup repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Get(ctx context.Context) (*models.MailSetup, error) {
	setup, err := s.repo.FindFirst(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "mail setup not configured")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup mail setup")
	}
	return setup, nil
}

func (s *service) Put(ctx context.Context, input Input) (*models.MailSetup, error) {
	host := strings.TrimSpace(input.SMTPHost)
	if host == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "smtp_host is required")
	}

	setup, err := s.repo.FindFirst(ctx)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup mail setup")
		}
		setup = &models.MailSetup{}
	}

	setup.SMTPHost = host
	setup.SMTPPort = input.SMTPPort
	setup.SMTPUser = strings.TrimSpace(input.SMTPUser)
	setup.SMTPPassword = input.SMTPPassword
	setup.EnableSSL = input.EnableSSL
	setup.SenderName = strings.TrimSpace(input.SenderName)
	setup.SenderEmail = strings.ToLower(strings.TrimSpace(input.SenderEmail))
	if err := s.repo.Save(ctx, setup); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save mail setup")
	}
	return setup, nil
}
