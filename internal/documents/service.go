package documents

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/amcdesk/amcdesk-backend/internal/mailsetup"
	"github.com/amcdesk/amcdesk-backend/pkg/db/models"
	"github.com/amcdesk/amcdesk-backend/pkg/enums"
	pkgerrors "github.com/amcdesk/amcdesk-backend/pkg/errors"
	"github.com/amcdesk/amcdesk-backend/pkg/pagination"
	"gorm.io/gorm"
)

// Service generates proposal documents and delivers them by email. Every
// email attempt leaves an EmailRecord row, successful or not.
type Service interface {
	Generate(ctx context.Context, proposalID int64, createdBy string) (*models.ProposalDocument, error)
	GetDocument(ctx context.Context, id int64) (*models.ProposalDocument, error)
	ListDocuments(ctx context.Context, params DocumentListParams) (*DocumentListResult, error)
	SendEmail(ctx context.Context, proposalID int64, input EmailInput, sentBy string) (*models.EmailRecord, error)
	GetEmailRecord(ctx context.Context, id int64) (*models.EmailRecord, error)
	ListEmailRecords(ctx context.Context, params EmailListParams) (*EmailListResult, error)
}

type service struct {
	repo     Repository
	mailRepo mailsetup.Repository
	renderer Renderer
	mailer   Mailer
}

// ServiceParams bundles the dependencies required to build a document service.
type ServiceParams struct {
	Repo          Repository
	MailSetupRepo mailsetup.Repository
	Renderer      Renderer
	Mailer        Mailer
}

// NewService constructs a document service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("document repository required")
	}
	if params.MailSetupRepo == nil {
		return nil, fmt.Errorf("mail setup repository required")
	}
	if params.Renderer == nil {
		return nil, fmt.Errorf("document renderer required")
	}
	if params.Mailer == nil {
		return nil, fmt.Errorf("mailer required")
	}
	return &service{
		repo:     params.Repo,
		mailRepo: params.MailSetupRepo,
		renderer: params.Renderer,
		mailer:   params.Mailer,
	}, nil
}

func (s *service) Generate(ctx context.Context, proposalID int64, createdBy string) (*models.ProposalDocument, error) {
	proposal, err := s.findProposal(ctx, proposalID)
	if err != nil {
		return nil, err
	}
	return s.generateFor(ctx, proposal, createdBy)
}

func (s *service) generateFor(ctx context.Context, proposal *models.AmcProposal, createdBy string) (*models.ProposalDocument, error) {
	link, err := s.renderer.Render(ctx, buildSnapshot(proposal))
	if err != nil {
		return nil, err
	}

	if err := s.repo.StampDocLink(ctx, proposal.ID, link); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "proposal not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "stamp document link")
	}
	proposal.DocLink = &link

	doc := &models.ProposalDocument{
		ProposalNo: proposal.ProposalNo,
		DocLink:    link,
		CreatedBy:  createdBy,
	}
	if err := s.repo.CreateDocument(ctx, doc); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record generated document")
	}
	return doc, nil
}

func (s *service) GetDocument(ctx context.Context, id int64) (*models.ProposalDocument, error) {
	doc, err := s.repo.FindDocumentByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "document not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup document")
	}
	return doc, nil
}

func (s *service) ListDocuments(ctx context.Context, params DocumentListParams) (*DocumentListResult, error) {
	params.Pagination = pagination.Normalize(params.Pagination)
	rows, total, err := s.repo.ListDocuments(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list documents")
	}
	return &DocumentListResult{
		Items: rows,
		Meta:  pagination.MetaFor(params.Pagination, total),
	}, nil
}

func (s *service) SendEmail(ctx context.Context, proposalID int64, input EmailInput, sentBy string) (*models.EmailRecord, error) {
	recipient := strings.ToLower(strings.TrimSpace(input.Email))
	if recipient == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}

	proposal, err := s.findProposal(ctx, proposalID)
	if err != nil {
		return nil, err
	}

	setup, err := s.mailRepo.FindFirst(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeMailNotConfigured, "mail setup not configured")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup mail setup")
	}

	// Sending implies a document; generate one when the proposal has none.
	if proposal.DocLink == nil || *proposal.DocLink == "" {
		if _, err := s.generateFor(ctx, proposal, sentBy); err != nil {
			return nil, err
		}
	}

	body, err := renderProposalEmail(proposalEmailData{
		CustomerName: customerName(proposal),
		ProposalNo:   proposal.ProposalNo,
		AMCStartDate: proposal.AMCStartDate.Format(dateLayout),
		AMCEndDate:   proposal.AMCEndDate.Format(dateLayout),
		GrandTotal:   proposal.GrandTotal.StringFixed(2),
		DocLink:      deref(proposal.DocLink),
		Note:         deref(input.Message),
		SenderName:   setup.SenderName,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "render proposal email")
	}

	subject := fmt.Sprintf("AMC Proposal %s", proposal.ProposalNo)
	if input.Subject != nil && strings.TrimSpace(*input.Subject) != "" {
		subject = strings.TrimSpace(*input.Subject)
	}

	record := &models.EmailRecord{
		ProposalNo: proposal.ProposalNo,
		Email:      recipient,
		SentBy:     sentBy,
	}

	sendErr := s.mailer.Send(ctx, setup, Message{
		To:       recipient,
		Subject:  subject,
		HTMLBody: body,
	})
	if sendErr != nil {
		record.Status = enums.EmailStatusFailed
		reason := sendErr.Error()
		record.Message = &reason
	} else {
		record.Status = enums.EmailStatusSent
	}

	if err := s.repo.CreateEmailRecord(ctx, record); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record email attempt")
	}

	if sendErr != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeEmailSend, sendErr, "send proposal email")
	}

	if proposal.ProposalStatus == enums.ProposalStatusNew {
		if err := s.repo.MarkProposalSent(ctx, proposal.ID); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark proposal sent")
		}
	}
	return record, nil
}

func (s *service) GetEmailRecord(ctx context.Context, id int64) (*models.EmailRecord, error) {
	record, err := s.repo.FindEmailRecordByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "email record not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup email record")
	}
	return record, nil
}

func (s *service) ListEmailRecords(ctx context.Context, params EmailListParams) (*EmailListResult, error) {
	params.Pagination = pagination.Normalize(params.Pagination)
	rows, total, err := s.repo.ListEmailRecords(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list email records")
	}
	return &EmailListResult{
		Items: rows,
		Meta:  pagination.MetaFor(params.Pagination, total),
	}, nil
}

func (s *service) findProposal(ctx context.Context, id int64) (*models.AmcProposal, error) {
	proposal, err := s.repo.FindProposal(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "proposal not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup proposal")
	}
	return proposal, nil
}

func customerName(proposal *models.AmcProposal) string {
	if proposal.Customer != nil {
		return proposal.Customer.Name
	}
	return "Customer"
}
