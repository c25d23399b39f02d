// Package email sends HTML mail through an SMTP relay.
package email

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"strings"
)

// Config holds SMTP configuration
type Config struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromName     string
	FromEmail    string
}

// Mailer sends HTML messages
type Mailer struct {
	config   Config
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewMailer creates a new mailer
func NewMailer(config Config) *Mailer {
	return &Mailer{config: config, sendMail: smtp.SendMail}
}

// Send delivers one HTML message to every recipient
func (m *Mailer) Send(to []string, subject, htmlBody string) error {
	if len(to) == 0 {
		return fmt.Errorf("email: no recipients")
	}
	addr := fmt.Sprintf("%s:%d", m.config.SMTPHost, m.config.SMTPPort)

	var auth smtp.Auth
	if m.config.SMTPUsername != "" {
		auth = smtp.PlainAuth("", m.config.SMTPUsername, m.config.SMTPPassword, m.config.SMTPHost)
	}

	if err := m.sendMail(addr, auth, m.config.FromEmail, to, m.buildMessage(to, subject, htmlBody)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func (m *Mailer) buildMessage(to []string, subject, htmlBody string) []byte {
	headers := fmt.Sprintf(
		"From: %s <%s>\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=\"UTF-8\"\r\n"+
			"\r\n",
		m.config.FromName,
		m.config.FromEmail,
		strings.Join(to, ", "),
		subject,
	)

	return []byte(headers + htmlBody)
}

// DigestRow is one labelled figure of the digest
type DigestRow struct {
	Label string
	Value string
}

// Digest is the content of the daily business summary mail
type Digest struct {
	ShopName string
	Date     string
	Figures  []DigestRow
	LowStock []DigestRow
}

var digestTemplate = template.Must(template.New("digest").Parse(digestHTML))

// RenderDigest renders d as an HTML document
func RenderDigest(d Digest) (string, error) {
	var buf bytes.Buffer
	if err := digestTemplate.Execute(&buf, d); err != nil {
		return "", err
	}
	return buf.String(), nil
}

const digestHTML = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>{{.ShopName}} daily digest</title>
</head>
<body style="margin: 0; padding: 24px; font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; background-color: #f4f7fa;">
    <table role="presentation" style="max-width: 600px; margin: 0 auto; background-color: #ffffff; border-radius: 12px; border-collapse: collapse;">
        <tr>
            <td colspan="2" style="padding: 24px 30px; border-bottom: 1px solid #e2e8f0;">
                <h1 style="color: #1a1a2e; margin: 0; font-size: 22px;">{{.ShopName}}</h1>
                <p style="color: #718096; margin: 4px 0 0 0;">Digest for {{.Date}}</p>
            </td>
        </tr>
        {{range .Figures}}
        <tr>
            <td style="padding: 8px 30px; color: #4a5568;">{{.Label}}</td>
            <td style="padding: 8px 30px; text-align: right; color: #1a1a2e;">{{.Value}}</td>
        </tr>
        {{end}}
        {{if .LowStock}}
        <tr>
            <td colspan="2" style="padding: 24px 30px 8px 30px;">
                <h2 style="color: #c53030; margin: 0; font-size: 18px;">Low stock</h2>
            </td>
        </tr>
        {{range .LowStock}}
        <tr>
            <td style="padding: 4px 30px; color: #4a5568;">{{.Label}}</td>
            <td style="padding: 4px 30px; text-align: right; color: #c53030;">{{.Value}}</td>
        </tr>
        {{end}}
        {{end}}
    </table>
</body>
</html>
`
