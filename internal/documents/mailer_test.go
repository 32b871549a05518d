package documents

import (
	"context"
	"strings"
	"testing"

	"github.com/amcdesk/amcdesk-backend/pkg/db/models"
)

func TestBuildMessageHeaders(t *testing.T) {
	setup := &models.MailSetup{
		SenderName:  "AMC Desk",
		SenderEmail: "desk@example.com",
	}
	payload := string(buildMessage(setup, Message{
		To:       "customer@example.com",
		Subject:  "AMC Proposal PROP-001",
		HTMLBody: "<html><body>hello</body></html>",
	}))

	for _, want := range []string{
		"From: AMC Desk <desk@example.com>\r\n",
		"To: customer@example.com\r\n",
		"Subject: AMC Proposal PROP-001\r\n",
		"Content-Type: text/html; charset=\"UTF-8\"\r\n",
	} {
		if !strings.Contains(payload, want) {
			t.Fatalf("expected header %q in message:\n%s", want, payload)
		}
	}
	if !strings.HasSuffix(payload, "<html><body>hello</body></html>") {
		t.Fatalf("expected body at end of message:\n%s", payload)
	}
}

func TestSendHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	mailer := NewSMTPMailer()
	err := mailer.Send(ctx, &models.MailSetup{SMTPHost: "localhost", SMTPPort: 2525}, Message{To: "x@example.com"})
	if err == nil {
		t.Fatal("expected error from cancelled context")
	}
}

func TestRenderProposalEmailIncludesDocumentLink(t *testing.T) {
	body, err := renderProposalEmail(proposalEmailData{
		CustomerName: "Acme Hospitals",
		ProposalNo:   "PROP-001",
		AMCStartDate: "2026-04-01",
		AMCEndDate:   "2027-03-31",
		GrandTotal:   "6290",
		DocLink:      "https://files.example.com/prop-001.pdf",
		SenderName:   "AMC Desk",
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(body, `<a href="https://files.example.com/prop-001.pdf">`) {
		t.Fatalf("expected document link in body:\n%s", body)
	}
}
