package mailer

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
)

// SMTPConfig holds the connection settings for the SMTP transport.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
}

func (c SMTPConfig) addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// SMTPTransport delivers messages over plain SMTP. net/smtp handles one
// connection per send, which keeps the transport safe for concurrent use
// without explicit locking.
type SMTPTransport struct {
	cfg SMTPConfig
}

var _ Transport = (*SMTPTransport)(nil)

// NewSMTPTransport builds an SMTP transport. Call Verify before serving
// traffic to confirm reachability.
func NewSMTPTransport(cfg SMTPConfig) *SMTPTransport {
	return &SMTPTransport{cfg: cfg}
}

// Send delivers one message. The envelope sender is extracted from the
// formatted From header.
func (t *SMTPTransport) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var auth smtp.Auth
	if t.cfg.Username != "" {
		auth = smtp.PlainAuth("", t.cfg.Username, t.cfg.Password, t.cfg.Host)
	}

	body := buildMIME(msg)
	return smtp.SendMail(t.cfg.addr(), auth, envelopeSender(msg.From), []string{msg.To}, body)
}

// Verify dials the server and performs the SMTP handshake, then quits. It
// does not authenticate; reachability is what startup needs to know.
func (t *SMTPTransport) Verify(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	client, err := smtp.Dial(t.cfg.addr())
	if err != nil {
		return fmt.Errorf("smtp verify: %w", err)
	}
	return client.Quit()
}

// Close is a no-op: connections are per send.
func (t *SMTPTransport) Close() error {
	return nil
}

func buildMIME(msg Message) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", msg.From)
	fmt.Fprintf(&b, "To: %s\r\n", msg.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.HTML)
	return []byte(b.String())
}

// envelopeSender pulls the bare address out of `"Name" <addr>` formatted
// headers; a bare address passes through unchanged.
func envelopeSender(from string) string {
	if open := strings.LastIndex(from, "<"); open >= 0 {
		if end := strings.LastIndex(from, ">"); end > open {
			return from[open+1 : end]
		}
	}
	return from
}
