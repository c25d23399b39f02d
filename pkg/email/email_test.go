package email

import (
	"errors"
	"net/smtp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendBuildsMessage(t *testing.T) {
	m := NewMailer(Config{SMTPHost: "smtp.example.com", SMTPPort: 587, FromName: "Shop", FromEmail: "books@example.com"})

	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte
	var gotAuth smtp.Auth
	m.sendMail = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotAuth, gotFrom, gotTo, gotMsg = addr, a, from, to, msg
		return nil
	}

	require.NoError(t, m.Send([]string{"owner@example.com", "acct@example.com"}, "Daily digest", "<p>hi</p>"))
	assert.Equal(t, "smtp.example.com:587", gotAddr)
	assert.Nil(t, gotAuth)
	assert.Equal(t, "books@example.com", gotFrom)
	assert.Len(t, gotTo, 2)

	msg := string(gotMsg)
	assert.Contains(t, msg, "From: Shop <books@example.com>\r\n")
	assert.Contains(t, msg, "To: owner@example.com, acct@example.com\r\n")
	assert.Contains(t, msg, "Subject: Daily digest\r\n")
	assert.True(t, strings.HasSuffix(msg, "\r\n\r\n<p>hi</p>"))
}

func TestSendErrors(t *testing.T) {
	m := NewMailer(Config{SMTPHost: "smtp.example.com", SMTPPort: 25})
	assert.Error(t, m.Send(nil, "s", "b"))

	m.sendMail = func(string, smtp.Auth, string, []string, []byte) error { return errors.New("relay denied") }
	err := m.Send([]string{"a@example.com"}, "s", "b")
	assert.ErrorContains(t, err, "relay denied")
}

func TestRenderDigestEscapes(t *testing.T) {
	html, err := RenderDigest(Digest{
		ShopName: "Tom & Jerry",
		Date:     "2024-03-15",
		Figures:  []DigestRow{{Label: "Net profit", Value: "£1,200.00"}},
		LowStock: []DigestRow{{Label: "<Fan>", Value: "3"}},
	})
	require.NoError(t, err)
	assert.Contains(t, html, "Tom &amp; Jerry")
	assert.Contains(t, html, "Net profit")
	assert.Contains(t, html, "&lt;Fan&gt;")
	assert.Contains(t, html, "Low stock")
}
