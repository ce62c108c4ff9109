// Package mailer delivers transactional email through SendGrid.
package mailer

import (
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type Mailer struct {
	apiKey    string
	fromEmail string
	fromName  string
	baseURL   string
}

func New(apiKey, fromEmail, fromName, baseURL string) *Mailer {
	return &Mailer{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
		baseURL:   baseURL,
	}
}

func (m *Mailer) send(to, subject, plainText string) error {
	from := mail.NewEmail(m.fromName, m.fromEmail)
	recipient := mail.NewEmail("", to)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, "")

	client := sendgrid.NewSendClient(m.apiKey)
	resp, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", resp.StatusCode, resp.Body)
	}

	return nil
}

// SendOTP mails the one-time email verification code.
func (m *Mailer) SendOTP(email, code string) error {
	subject := "Verify your LinkNest account"
	body := fmt.Sprintf("Your verification code is: %s\n\nIt expires shortly. If you didn't request it, ignore this email.", code)

	return m.send(email, subject, body)
}

// SendInvite mails an organization invitation with the accept link.
func (m *Mailer) SendInvite(email, orgName, role, token string) error {
	inviteURL := fmt.Sprintf("%s/invite/accept/?token=%s", m.baseURL, token)

	subject := fmt.Sprintf("You have been invited to join %s on LinkNest", orgName)
	body := fmt.Sprintf("Hi %s,\n\nYou have been invited to join %s as %s.\n\nClick the link below to accept:\n%s\n\nThis invitation will expire in 7 days.",
		email, orgName, role, inviteURL)

	return m.send(email, subject, body)
}
