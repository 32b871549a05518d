package documents

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"html/template"
	"net/smtp"

	"github.com/amcdesk/amcdesk-backend/pkg/db/models"
)

// Message is one outbound proposal email.
type Message struct {
	To       string
	Subject  string
	HTMLBody string
}

// Mailer delivers a message using the stored SMTP settings.
type Mailer interface {
	Send(ctx context.Context, setup *models.MailSetup, msg Message) error
}

type smtpMailer struct{}

// NewSMTPMailer returns a Mailer backed by net/smtp. With EnableSSL the
// connection is opened over implicit TLS (port 465 style); otherwise STARTTLS
// is negotiated automatically when the server offers it.
func NewSMTPMailer() Mailer {
	return &smtpMailer{}
}

func (m *smtpMailer) Send(ctx context.Context, setup *models.MailSetup, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	addr := fmt.Sprintf("%s:%d", setup.SMTPHost, setup.SMTPPort)
	var auth smtp.Auth
	if setup.SMTPUser != "" {
		auth = smtp.PlainAuth("", setup.SMTPUser, setup.SMTPPassword, setup.SMTPHost)
	}

	payload := buildMessage(setup, msg)
	if setup.EnableSSL {
		return sendImplicitTLS(addr, setup.SMTPHost, auth, setup.SenderEmail, msg.To, payload)
	}
	return smtp.SendMail(addr, auth, setup.SenderEmail, []string{msg.To}, payload)
}

func buildMessage(setup *models.MailSetup, msg Message) []byte {
	headers := fmt.Sprintf(
		"From: %s <%s>\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n",
		setup.SenderName, setup.SenderEmail, msg.To, msg.Subject,
	)
	return []byte(headers + msg.HTMLBody)
}

func sendImplicitTLS(addr, host string, auth smtp.Auth, from, to string, payload []byte) error {
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: host})
	if err != nil {
		return err
	}

	client, err := smtp.NewClient(conn, host)
	if err != nil {
		conn.Close()
		return err
	}
	defer client.Close()

	if auth != nil {
		if err := client.Auth(auth); err != nil {
			return err
		}
	}
	if err := client.Mail(from); err != nil {
		return err
	}
	if err := client.Rcpt(to); err != nil {
		return err
	}
	writer, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := writer.Write(payload); err != nil {
		writer.Close()
		return err
	}
	if err := writer.Close(); err != nil {
		return err
	}
	return client.Quit()
}

var proposalEmailTemplate = template.Must(template.New("proposal_email").Parse(`<html>
<body>
<p>Dear {{.CustomerName}},</p>
<p>Please find our AMC proposal <strong>{{.ProposalNo}}</strong> covering
{{.AMCStartDate}} to {{.AMCEndDate}}.</p>
<p>Grand total: <strong>{{.GrandTotal}}</strong></p>
{{if .DocLink}}<p>Proposal document: <a href="{{.DocLink}}">{{.DocLink}}</a></p>{{end}}
{{if .Note}}<p>{{.Note}}</p>{{end}}
<p>Regards,<br>{{.SenderName}}</p>
</body>
</html>`))

type proposalEmailData struct {
	CustomerName string
	ProposalNo   string
	AMCStartDate string
	AMCEndDate   string
	GrandTotal   string
	DocLink      string
	Note         string
	SenderName   string
}

func renderProposalEmail(data proposalEmailData) (string, error) {
	var body bytes.Buffer
	if err := proposalEmailTemplate.Execute(&body, data); err != nil {
		return "", err
	}
	return body.String(), nil
}
