package mailer

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"strings"

	mail "github.com/wneessen/go-mail"
)

const subject = "Your transcript summary"

// Config describes the SMTP transport.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Sender emails final summaries. It is a pure consumer of the
// summarization core's output.
type Sender struct {
	cfg Config
	log *slog.Logger
}

func NewSender(cfg Config, log *slog.Logger) *Sender {
	return &Sender{cfg: cfg, log: log}
}

// Send delivers one message carrying the summary as both a plain-text body
// and an HTML alternative to every recipient.
func (s *Sender) Send(
	ctx context.Context,
	summary string,
	recipients []string,
) error {
	msg := mail.NewMsg()

	if err := msg.From(s.cfg.From); err != nil {
		return fmt.Errorf("set sender address: %w", err)
	}
	if err := msg.To(recipients...); err != nil {
		return fmt.Errorf("set recipient addresses: %w", err)
	}

	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, summary)
	msg.AddAlternativeString(mail.TypeTextHTML, htmlBody(summary))

	client, err := mail.NewClient(s.cfg.Host, s.smtpOptions()...)
	if err != nil {
		return fmt.Errorf("create SMTP client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}

	s.log.InfoContext(ctx, "Summary email is sent",
		"recipientCount", len(recipients),
		"summaryChars", len(summary))

	return nil
}

// smtpOptions enables SMTP auth only when credentials are configured;
// unauthenticated relays reject AUTH with empty credentials.
func (s *Sender) smtpOptions() []mail.Option {
	opts := []mail.Option{mail.WithPort(s.cfg.Port)}

	if s.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(s.cfg.Username),
			mail.WithPassword(s.cfg.Password))
	}

	return opts
}

// htmlBody renders the summary as escaped HTML paragraphs.
func htmlBody(summary string) string {
	var b strings.Builder

	b.WriteString("<html><body>")
	for _, paragraph := range strings.Split(summary, "\n\n") {
		paragraph = strings.TrimSpace(paragraph)
		if paragraph == "" {
			continue
		}

		b.WriteString("<p>")
		b.WriteString(strings.ReplaceAll(html.EscapeString(paragraph), "\n", "<br>"))
		b.WriteString("</p>")
	}
	b.WriteString("</body></html>")

	return b.String()
}
