package documents

import (
	"github.com/amcdesk/amcdesk-backend/pkg/db/models"
	"github.com/amcdesk/amcdesk-backend/pkg/pagination"
)

// EmailInput carries the recipient and optional note for a proposal email.
type EmailInput struct {
	Email   string  `json:"email" validate:"required,email"`
	Subject *string `json:"subject" validate:"omitempty,max=200"`
	Message *string `json:"message"`
}

// DocumentListParams filters the generated document list.
type DocumentListParams struct {
	Pagination pagination.Params
	ProposalNo string
}

// DocumentListResult is a page of generated documents.
type DocumentListResult struct {
	Items []models.ProposalDocument
	Meta  pagination.Meta
}

// EmailListParams filters the email audit list.
type EmailListParams struct {
	Pagination pagination.Params
	ProposalNo string
	Status     string
}

// EmailListResult is a page of email audit rows.
type EmailListResult struct {
	Items []models.EmailRecord
	Meta  pagination.Meta
}
