// Package notification sends claim lifecycle emails over SMTP. It is wired
// through the event bus and has no HTTP surface.
package notification

import (
	"context"
	"fmt"
	"net"
	"time"

	gomail "github.com/wneessen/go-mail"
)

// Sender delivers rendered notification emails.
type Sender interface {
	SendClaimAssembledEmail(ctx context.Context, toEmail string, data ClaimAssembledEmailData) error
	SendClaimFinalizedEmail(ctx context.Context, toEmail string, data ClaimFinalizedEmailData) error
}

// SMTPSender implements Sender using a direct SMTP connection via go-mail.
type SMTPSender struct {
	host      string
	port      int
	username  string
	password  string
	fromName  string
	fromEmail string
}

// NewSMTPSender creates a new SMTPSender with the given SMTP credentials.
func NewSMTPSender(host string, port int, username, password, fromEmail, fromName string) *SMTPSender {
	return &SMTPSender{
		host:      host,
		port:      port,
		username:  username,
		password:  password,
		fromName:  fromName,
		fromEmail: fromEmail,
	}
}

// Compile-time check that SMTPSender implements Sender.
var _ Sender = (*SMTPSender)(nil)

func (s *SMTPSender) send(ctx context.Context, toEmail, subject, htmlContent string) error {
	msg := gomail.NewMsg()
	if err := msg.FromFormat(s.fromName, s.fromEmail); err != nil {
		return fmt.Errorf("smtp from: %w", err)
	}
	if err := msg.To(toEmail); err != nil {
		return fmt.Errorf("smtp to: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextHTML, htmlContent)

	client, err := gomail.NewClient(s.host,
		gomail.WithPort(s.port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(s.username),
		gomail.WithPassword(s.password),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
		gomail.WithTimeout(15*time.Second),
		gomail.WithDialContextFunc(func(dctx context.Context, _ string, addr string) (net.Conn, error) {
			return (&net.Dialer{}).DialContext(dctx, "tcp4", addr)
		}),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}

	return nil
}

// SendClaimAssembledEmail notifies the owner that a claim draft is ready.
func (s *SMTPSender) SendClaimAssembledEmail(ctx context.Context, toEmail string, data ClaimAssembledEmailData) error {
	subject := fmt.Sprintf(subjectClaimAssembledFmt, data.ClaimName)
	content, err := renderEmailTemplate("claim_assembled.html", data)
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, subject, content)
}

// SendClaimFinalizedEmail notifies the owner that a claim has been locked
// for submission.
func (s *SMTPSender) SendClaimFinalizedEmail(ctx context.Context, toEmail string, data ClaimFinalizedEmailData) error {
	subject := fmt.Sprintf(subjectClaimFinalizedFmt, data.ClaimName)
	content, err := renderEmailTemplate("claim_finalized.html", data)
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, subject, content)
}
