package mail

import (
	"bytes"
	"fmt"
	"html/template"

	"gopkg.in/gomail.v2"

	"github.com/udmdigital/lead-crm-api/internal/config"
)

var resetTemplate = template.Must(template.New("reset").Parse(`
<p>Hello,</p>
<p>A password reset was requested for your CRM account.</p>
<p>Use this token within one hour to choose a new password:</p>
<p><code>{{.Token}}</code></p>
<p>If you did not request this, you can ignore this message.</p>
`))

type resetData struct {
	Token string
}

// EmailSender delivers transactional mail over SMTP.
type EmailSender struct {
	cfg config.SMTPConfig
}

// NewEmailSender constructs a sender from SMTP configuration.
func NewEmailSender(cfg config.SMTPConfig) *EmailSender {
	return &EmailSender{cfg: cfg}
}

// SendPasswordReset emails a reset token to the account address.
func (s *EmailSender) SendPasswordReset(to, token string) error {
	if !s.cfg.Enabled() {
		return fmt.Errorf("smtp is not configured")
	}

	body, err := RenderResetBody(token)
	if err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Reset your CRM password")
	m.SetBody("text/html", body)

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.User, s.cfg.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("send reset email: %w", err)
	}

	return nil
}

// RenderResetBody produces the HTML body of the reset message.
func RenderResetBody(token string) (string, error) {
	var body bytes.Buffer
	if err := resetTemplate.Execute(&body, resetData{Token: token}); err != nil {
		return "", fmt.Errorf("render reset template: %w", err)
	}
	return body.String(), nil
}
