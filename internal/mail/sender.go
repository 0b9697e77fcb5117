// Package mail relays validated contact enquiries. The default sender only
// records enquiries server-side; SMTP forwarding is opt-in via config.
package mail

import (
	"context"
	"fmt"
	"html"
	"net/smtp"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/courtprep/backend/internal/model"
)

// Sender forwards a structured enquiry to wherever the operator reads them.
type Sender interface {
	SendEnquiry(ctx context.Context, e model.Enquiry) error
}

// LogSender records enquiries in the service log. Safe starting point when
// no SMTP relay is configured.
type LogSender struct {
	log zerolog.Logger
}

func NewLogSender(log zerolog.Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) SendEnquiry(ctx context.Context, e model.Enquiry) error {
	s.log.Info().
		Str("name", e.Name).
		Str("email", e.Email).
		Str("service", e.Service).
		Str("court_type", e.CourtType).
		Str("stage", e.Stage).
		Str("urgency", e.Urgency).
		Str("hearing_date", e.HearingDate).
		Str("court_location", e.CourtLocation).
		Str("preferred_contact", e.PreferredContact).
		Str("message", e.Message).
		Time("at", time.Now().UTC()).
		Msg("contact enquiry")
	return nil
}

// SMTPSender forwards enquiries as an HTML email.
type SMTPSender struct {
	host     string
	port     int
	username string
	password string
	from     string
	to       string
}

func NewSMTPSender(host string, port int, username, password, from, to string) *SMTPSender {
	return &SMTPSender{host: host, port: port, username: username, password: password, from: from, to: to}
}

func (s *SMTPSender) SendEnquiry(ctx context.Context, e model.Enquiry) error {
	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", s.from)
	fmt.Fprintf(&msg, "To: %s\r\n", s.to)
	fmt.Fprintf(&msg, "Subject: New enquiry from %s\r\n", sanitizeHeader(e.Name))
	msg.WriteString("MIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n")
	msg.WriteString(EnquiryHTML(e))

	addr := fmt.Sprintf("%s:%d", s.host, s.port)
	var a smtp.Auth
	if s.username != "" {
		a = smtp.PlainAuth("", s.username, s.password, s.host)
	}
	return smtp.SendMail(addr, a, s.from, []string{s.to}, []byte(msg.String()))
}

// EnquiryHTML renders the enquiry as an HTML body. All user-supplied content
// is escaped before embedding.
func EnquiryHTML(e model.Enquiry) string {
	rows := []struct{ label, value string }{
		{"Name", e.Name},
		{"Email", e.Email},
		{"Service", e.Service},
		{"Court type", e.CourtType},
		{"Stage", e.Stage},
		{"Urgency", e.Urgency},
		{"Hearing date", e.HearingDate},
		{"Court location", e.CourtLocation},
		{"Preferred contact", e.PreferredContact},
	}
	var b strings.Builder
	b.WriteString("<h2>New enquiry</h2>\n<table>\n")
	for _, r := range rows {
		if r.value == "" {
			continue
		}
		fmt.Fprintf(&b, "<tr><td><strong>%s</strong></td><td>%s</td></tr>\n",
			r.label, html.EscapeString(r.value))
	}
	b.WriteString("</table>\n")
	fmt.Fprintf(&b, "<p>%s</p>\n", html.EscapeString(e.Message))
	return b.String()
}

// sanitizeHeader strips CR/LF so user input cannot inject extra headers.
func sanitizeHeader(v string) string {
	v = strings.ReplaceAll(v, "\r", " ")
	return strings.ReplaceAll(v, "\n", " ")
}
