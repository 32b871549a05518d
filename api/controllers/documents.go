package controllers

import (
	"net/http"

	"github.com/amcdesk/amcdesk-backend/api/middleware"
	"github.com/amcdesk/amcdesk-backend/api/responses"
	"github.com/amcdesk/amcdesk-backend/api/validators"
	"github.com/amcdesk/amcdesk-backend/internal/documents"
	pkgerrors "github.com/amcdesk/amcdesk-backend/pkg/errors"
	"github.com/amcdesk/amcdesk-backend/pkg/logger"
)

// ProposalDocumentGenerate renders a PDF for the proposal and stamps its link.
func ProposalDocumentGenerate(svc documents.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "document service unavailable"))
			return
		}

		proposalID, err := pathID(r, "proposalID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		doc, err := svc.Generate(r.Context(), proposalID, middleware.UserEmailFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, doc)
	}
}

// ProposalEmailSend emails the proposal document and records the attempt.
func ProposalEmailSend(svc documents.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "document service unavailable"))
			return
		}

		proposalID, err := pathID(r, "proposalID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body documents.EmailInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.SendEmail(r.Context(), proposalID, body, middleware.UserEmailFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, record)
	}
}

// DocumentList returns the generated document audit trail.
func DocumentList(svc documents.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "document service unavailable"))
			return
		}

		page, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params := documents.DocumentListParams{
			Pagination: page,
			ProposalNo: validators.SanitizeString(r.URL.Query().Get("proposal_no"), 50),
		}

		result, err := svc.ListDocuments(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteList(w, result.Items, result.Meta)
	}
}

// DocumentGet fetches one generated document row.
func DocumentGet(svc documents.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "document service unavailable"))
			return
		}

		id, err := pathID(r, "documentID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		doc, err := svc.GetDocument(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, doc)
	}
}

// EmailRecordGet fetches one email audit row.
func EmailRecordGet(svc documents.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "document service unavailable"))
			return
		}

		id, err := pathID(r, "recordID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.GetEmailRecord(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, record)
	}
}

// EmailRecordList returns the email audit trail.
func EmailRecordList(svc documents.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "document service unavailable"))
			return
		}

		page, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params := documents.EmailListParams{
			Pagination: page,
			ProposalNo: validators.SanitizeString(r.URL.Query().Get("proposal_no"), 50),
			Status:     validators.SanitizeString(r.URL.Query().Get("status"), 20),
		}

		result, err := svc.ListEmailRecords(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteList(w, result.Items, result.Meta)
	}
}
