// Package email sends transactional email through Resend.
//
// Bodies are rendered from HTML templates under templates/emails.
package email

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/agamjotsodhi/jobly/internal/config"
	"github.com/pkg/errors"
	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"
)

// Client wraps the Resend client and carries the sender identity.
//
// With no API key configured the client runs in dry-run mode: sends
// are logged but never reach the provider.
type Client struct {
	client *resend.Client
	from   string
	dryRun bool
	logger *zerolog.Logger
}

// NewClient creates an email Client using the Resend API key from config.
func NewClient(cfg *config.Config, logger *zerolog.Logger) *Client {
	return &Client{
		client: resend.NewClient(cfg.Integration.ResendAPIKey),
		from:   fmt.Sprintf("Jobly <%s>", cfg.Integration.EmailFrom),
		dryRun: cfg.Integration.ResendAPIKey == "",
		logger: logger,
	}
}

// SendEmail renders the named template with data and sends it to a single
// recipient. Template files live at templates/emails/<name>.html relative to
// the process working directory.
func (c *Client) SendEmail(to, subject string, templateName Template, data map[string]string) error {
	tmplPath := fmt.Sprintf("%s/%s.html", "templates/emails", templateName)

	tmpl, err := template.ParseFiles(tmplPath)
	if err != nil {
		return errors.Wrapf(err, "failed to parse email template %s", templateName)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return errors.Wrapf(err, "failed to execute email template %s", templateName)
	}

	if c.dryRun {
		c.logger.Info().
			Str("to", to).
			Str("subject", subject).
			Str("template", string(templateName)).
			Msg("No Resend API key configured, skipping email send")
		return nil
	}

	params := &resend.SendEmailRequest{
		From:    c.from,
		To:      []string{to},
		Subject: subject,
		Html:    body.String(),
	}

	if _, err := c.client.Emails.Send(params); err != nil {
		return errors.Wrap(err, "failed to send email")
	}

	c.logger.Debug().
		Str("to", to).
		Str("template", string(templateName)).
		Msg("Email sent")

	return nil
}
