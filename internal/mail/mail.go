// Package mail is the outbound notification sink. Callers hand it a
// recipient, subject and HTML body; delivery failures are reported through a
// validation builder rather than returned.
package mail

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"docflow/pkg/email"
	"docflow/pkg/requestcontext"
	"docflow/pkg/validation"
)

const (
	CodeInvalidRecipient = "invalid_recipient"
	CodeDeliveryFailed   = "mail_delivery_failed"
	CodeInvalidMessage   = "invalid_message"
)

var ErrNoGateway = errors.New("mail gateway is required")

// Message is what a gateway delivers.
type Message struct {
	ID        uuid.UUID `json:"id"`
	To        string    `json:"to"`
	Subject   string    `json:"subject"`
	HTMLBody  string    `json:"html_body"`
	CreatedAt time.Time `json:"created_at"`
}

// Gateway hands a message to the mail transport.
type Gateway interface {
	Deliver(ctx context.Context, msg Message) error
}

// Sink validates messages and forwards them to a Gateway.
type Sink struct {
	gateway Gateway
	logger  *slog.Logger
}

type Option func(*Sink)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Sink) {
		s.logger = logger
	}
}

func NewSink(gateway Gateway, opts ...Option) (*Sink, error) {
	if gateway == nil {
		return nil, ErrNoGateway
	}
	s := &Sink{gateway: gateway, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Send delivers one message. It never returns an error and never panics:
// every failure becomes an error entry in result.
func (s *Sink) Send(ctx context.Context, to, subject, htmlBody string, result *validation.Builder) {
	if result == nil {
		result = validation.NewBuilder()
	}
	defer func() {
		if r := recover(); r != nil {
			s.logger.ErrorContext(ctx, "mail gateway panicked", "to", to, "panic", r)
			result.AddError(CodeDeliveryFailed, fmt.Sprintf("Не удалось отправить письмо на %s", to))
		}
	}()

	if !email.LooksLikeAddress(to) {
		result.AddError(CodeInvalidRecipient, fmt.Sprintf("Некорректный адрес получателя: %q", to))
		return
	}
	if subject == "" || htmlBody == "" {
		result.AddError(CodeInvalidMessage, "Письмо без темы или текста не может быть отправлено")
		return
	}

	msg := Message{
		ID:        uuid.New(),
		To:        email.Normalize(to),
		Subject:   subject,
		HTMLBody:  htmlBody,
		CreatedAt: requestcontext.Now(ctx),
	}
	if err := s.gateway.Deliver(ctx, msg); err != nil {
		s.logger.WarnContext(ctx, "mail delivery failed", "to", msg.To, "message_id", msg.ID, "error", err)
		result.AddError(CodeDeliveryFailed, fmt.Sprintf("Не удалось отправить письмо на %s", msg.To))
		return
	}
	s.logger.DebugContext(ctx, "mail delivered", "to", msg.To, "message_id", msg.ID)
}
