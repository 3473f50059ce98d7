// Copyright (c) 2026 Recenzo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package mailer provides the outbound email collaborator.

It is used for exactly one thing: dispatching signup confirmation codes.
Delivery guarantees are out of scope — the caller treats a failed dispatch
as non-fatal, logs it, and lets the user trigger a resend via signup.

Implementations:

  - SMTPMailer: production dispatch through a configured SMTP relay.
  - DevMailer: development fallback that logs the message instead of sending.
*/
package mailer

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"
)

// Mailer is the narrow contract the auth service depends on.
type Mailer interface {
	// Send dispatches a plain-text message. It blocks for the duration of
	// the SMTP exchange; the caller decides whether failure matters.
	Send(ctx context.Context, to, subject, body string) error
}

// # SMTP Implementation

// SMTPMailer sends mail through an authenticated SMTP relay.
type SMTPMailer struct {
	addr string
	auth smtp.Auth
	from string
}

// NewSMTPMailer constructs an [SMTPMailer].
//
// # Parameters
//   - host, port: the relay endpoint.
//   - username, password: relay credentials; auth is skipped when username is empty.
//   - from: the envelope sender address.
func NewSMTPMailer(host string, port int, username, password, from string) *SMTPMailer {
	var auth smtp.Auth
	if username != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}

	return &SMTPMailer{
		addr: fmt.Sprintf("%s:%d", host, port),
		auth: auth,
		from: from,
	}
}

// Send implements [Mailer].
func (mailer *SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	// net/smtp has no context support; honor cancellation before dialing.
	if err := ctx.Err(); err != nil {
		return err
	}

	message := strings.Join([]string{
		"From: " + mailer.from,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"utf-8\"",
		"",
		body,
	}, "\r\n")

	if err := smtp.SendMail(mailer.addr, mailer.auth, mailer.from, []string{to}, []byte(message)); err != nil {
		return fmt.Errorf("mailer: smtp send failed: %w", err)
	}

	return nil
}

// # Development Implementation

// DevMailer logs outbound mail instead of sending it.
//
// Used when no SMTP relay is configured, so local signups still surface the
// confirmation code (in the server log) without external infrastructure.
type DevMailer struct {
	logger *slog.Logger
}

// NewDevMailer constructs a [DevMailer].
func NewDevMailer(logger *slog.Logger) *DevMailer {
	return &DevMailer{logger: logger}
}

// Send implements [Mailer] by writing the message to the structured log.
func (mailer *DevMailer) Send(ctx context.Context, to, subject, body string) error {
	mailer.logger.InfoContext(ctx, "dev_mail_dispatched",
		slog.String("to", to),
		slog.String("subject", subject),
		slog.String("body", body),
	)
	return nil
}
