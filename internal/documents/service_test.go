package documents

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/amcdesk/amcdesk-backend/pkg/db/models"
	"github.com/amcdesk/amcdesk-backend/pkg/enums"
	pkgerrors "github.com/amcdesk/amcdesk-backend/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type stubRepo struct {
	proposals map[int64]*models.AmcProposal
	documents []*models.ProposalDocument
	records   []*models.EmailRecord
}

func newStubRepo() *stubRepo {
	return &stubRepo{proposals: make(map[int64]*models.AmcProposal)}
}

func (s *stubRepo) FindProposal(_ context.Context, id int64) (*models.AmcProposal, error) {
	proposal, ok := s.proposals[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return proposal, nil
}

func (s *stubRepo) StampDocLink(_ context.Context, proposalID int64, link string) error {
	proposal, ok := s.proposals[proposalID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	proposal.DocLink = &link
	return nil
}

func (s *stubRepo) MarkProposalSent(_ context.Context, proposalID int64) error {
	proposal, ok := s.proposals[proposalID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	proposal.ProposalStatus = enums.ProposalStatusSent
	return nil
}

func (s *stubRepo) CreateDocument(_ context.Context, doc *models.ProposalDocument) error {
	doc.ID = int64(len(s.documents) + 1)
	s.documents = append(s.documents, doc)
	return nil
}

func (s *stubRepo) FindDocumentByID(_ context.Context, id int64) (*models.ProposalDocument, error) {
	for _, doc := range s.documents {
		if doc.ID == id {
			return doc, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubRepo) ListDocuments(_ context.Context, _ DocumentListParams) ([]models.ProposalDocument, int64, error) {
	rows := make([]models.ProposalDocument, 0, len(s.documents))
	for _, doc := range s.documents {
		rows = append(rows, *doc)
	}
	return rows, int64(len(rows)), nil
}

func (s *stubRepo) CreateEmailRecord(_ context.Context, record *models.EmailRecord) error {
	record.ID = int64(len(s.records) + 1)
	s.records = append(s.records, record)
	return nil
}

func (s *stubRepo) FindEmailRecordByID(_ context.Context, id int64) (*models.EmailRecord, error) {
	for _, record := range s.records {
		if record.ID == id {
			return record, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubRepo) ListEmailRecords(_ context.Context, _ EmailListParams) ([]models.EmailRecord, int64, error) {
	rows := make([]models.EmailRecord, 0, len(s.records))
	for _, record := range s.records {
		rows = append(rows, *record)
	}
	return rows, int64(len(rows)), nil
}

type stubMailSetupRepo struct {
	setup *models.MailSetup
}

func (s *stubMailSetupRepo) FindFirst(_ context.Context) (*models.MailSetup, error) {
	if s.setup == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.setup, nil
}

func (s *stubMailSetupRepo) Save(_ context.Context, setup *models.MailSetup) error {
	s.setup = setup
	return nil
}

type stubRenderer struct {
	calls int
	fail  bool
}

func (r *stubRenderer) Render(_ context.Context, snapshot Snapshot) (string, error) {
	r.calls++
	if r.fail {
		return "", pkgerrors.New(pkgerrors.CodeDocumentGeneration, "renderer down")
	}
	return fmt.Sprintf("var/documents/%s-%d.pdf", snapshot.ProposalNo, r.calls), nil
}

type stubMailer struct {
	sent []Message
	fail bool
}

func (m *stubMailer) Send(_ context.Context, _ *models.MailSetup, msg Message) error {
	if m.fail {
		return fmt.Errorf("connection refused")
	}
	m.sent = append(m.sent, msg)
	return nil
}

func seedProposal(repo *stubRepo) *models.AmcProposal {
	now := time.Now()
	proposal := &models.AmcProposal{
		ID:             1,
		ProposalNo:     "PROP-001",
		ProposalDate:   now,
		AMCStartDate:   now,
		AMCEndDate:     now.AddDate(1, 0, 0),
		CustomerID:     1,
		GrandTotal:     decimal.RequireFromString("6290"),
		ProposalStatus: enums.ProposalStatusNew,
		Customer:       &models.Customer{ID: 1, Name: "Acme Industries"},
	}
	repo.proposals[proposal.ID] = proposal
	return proposal
}

func configuredMailRepo() *stubMailSetupRepo {
	return &stubMailSetupRepo{setup: &models.MailSetup{
		ID:          1,
		SMTPHost:    "smtp.example.com",
		SMTPPort:    587,
		SMTPUser:    "mailer",
		SenderName:  "AMC Desk",
		SenderEmail: "noreply@example.com",
	}}
}

func newTestService(t *testing.T, repo *stubRepo, mailRepo *stubMailSetupRepo, renderer *stubRenderer, mailer *stubMailer) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Repo:          repo,
		MailSetupRepo: mailRepo,
		Renderer:      renderer,
		Mailer:        mailer,
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestGenerateStampsProposalAndRecordsDocument(t *testing.T) {
	repo := newStubRepo()
	proposal := seedProposal(repo)
	svc := newTestService(t, repo, configuredMailRepo(), &stubRenderer{}, &stubMailer{})

	doc, err := svc.Generate(context.Background(), proposal.ID, "admin@example.com")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if doc.ProposalNo != "PROP-001" {
		t.Fatalf("unexpected proposal no %q", doc.ProposalNo)
	}
	if doc.CreatedBy != "admin@example.com" {
		t.Fatalf("unexpected created_by %q", doc.CreatedBy)
	}
	if proposal.DocLink == nil || *proposal.DocLink != doc.DocLink {
		t.Fatalf("expected proposal stamped with %q, got %v", doc.DocLink, proposal.DocLink)
	}
	if len(repo.documents) != 1 {
		t.Fatalf("expected 1 document row, got %d", len(repo.documents))
	}
}

func TestGenerateMissingProposal(t *testing.T) {
	svc := newTestService(t, newStubRepo(), configuredMailRepo(), &stubRenderer{}, &stubMailer{})

	_, err := svc.Generate(context.Background(), 404, "admin@example.com")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestGenerateRendererFailureLeavesNoRows(t *testing.T) {
	repo := newStubRepo()
	proposal := seedProposal(repo)
	svc := newTestService(t, repo, configuredMailRepo(), &stubRenderer{fail: true}, &stubMailer{})

	_, err := svc.Generate(context.Background(), proposal.ID, "admin@example.com")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeDocumentGeneration {
		t.Fatalf("expected DOCUMENT_GENERATION_ERROR, got %v", err)
	}
	if len(repo.documents) != 0 {
		t.Fatalf("expected no document rows, got %d", len(repo.documents))
	}
	if proposal.DocLink != nil {
		t.Fatalf("expected doc link untouched, got %q", *proposal.DocLink)
	}
}

func TestSendEmailRecordsSuccessAndMarksProposal(t *testing.T) {
	repo := newStubRepo()
	proposal := seedProposal(repo)
	mailer := &stubMailer{}
	renderer := &stubRenderer{}
	svc := newTestService(t, repo, configuredMailRepo(), renderer, mailer)

	record, err := svc.SendEmail(context.Background(), proposal.ID, EmailInput{Email: "Buyer@Example.com"}, "admin@example.com")
	if err != nil {
		t.Fatalf("send email: %v", err)
	}
	if record.Status != enums.EmailStatusSent {
		t.Fatalf("expected sent status, got %q", record.Status)
	}
	if record.Email != "buyer@example.com" {
		t.Fatalf("expected lowercased recipient, got %q", record.Email)
	}
	if record.SentBy != "admin@example.com" {
		t.Fatalf("unexpected sent_by %q", record.SentBy)
	}
	// no document existed, so one is generated before sending
	if renderer.calls != 1 {
		t.Fatalf("expected one render, got %d", renderer.calls)
	}
	if len(mailer.sent) != 1 {
		t.Fatalf("expected one delivery, got %d", len(mailer.sent))
	}
	if proposal.ProposalStatus != enums.ProposalStatusSent {
		t.Fatalf("expected proposal marked sent, got %q", proposal.ProposalStatus)
	}
}

func TestSendEmailReusesExistingDocument(t *testing.T) {
	repo := newStubRepo()
	proposal := seedProposal(repo)
	link := "https://docs.example.com/prop-001.pdf"
	proposal.DocLink = &link
	renderer := &stubRenderer{}
	svc := newTestService(t, repo, configuredMailRepo(), renderer, &stubMailer{})

	if _, err := svc.SendEmail(context.Background(), proposal.ID, EmailInput{Email: "buyer@example.com"}, "admin@example.com"); err != nil {
		t.Fatalf("send email: %v", err)
	}
	if renderer.calls != 0 {
		t.Fatalf("expected no render for an existing document, got %d", renderer.calls)
	}
}

func TestSendEmailFailureStillWritesRecord(t *testing.T) {
	repo := newStubRepo()
	proposal := seedProposal(repo)
	svc := newTestService(t, repo, configuredMailRepo(), &stubRenderer{}, &stubMailer{fail: true})

	_, err := svc.SendEmail(context.Background(), proposal.ID, EmailInput{Email: "buyer@example.com"}, "admin@example.com")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeEmailSend {
		t.Fatalf("expected EMAIL_SEND_ERROR, got %v", err)
	}
	if len(repo.records) != 1 {
		t.Fatalf("expected a failed audit row, got %d", len(repo.records))
	}
	record := repo.records[0]
	if record.Status != enums.EmailStatusFailed {
		t.Fatalf("expected failed status, got %q", record.Status)
	}
	if record.Message == nil || *record.Message == "" {
		t.Fatal("expected delivery error kept in message")
	}
	if proposal.ProposalStatus != enums.ProposalStatusNew {
		t.Fatalf("expected proposal status untouched, got %q", proposal.ProposalStatus)
	}
}

func TestSendEmailWithoutMailSetup(t *testing.T) {
	repo := newStubRepo()
	proposal := seedProposal(repo)
	svc := newTestService(t, repo, &stubMailSetupRepo{}, &stubRenderer{}, &stubMailer{})

	_, err := svc.SendEmail(context.Background(), proposal.ID, EmailInput{Email: "buyer@example.com"}, "admin@example.com")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeMailNotConfigured {
		t.Fatalf("expected EMAIL_NOT_CONFIGURED, got %v", err)
	}
	if len(repo.records) != 0 {
		t.Fatalf("expected no audit rows, got %d", len(repo.records))
	}
}
