package mail

import (
	"context"
	"log/slog"

	"docflow/pkg/email"
)

// LogGateway only logs messages. Used in development when no broker is configured.
type LogGateway struct {
	logger *slog.Logger
}

func NewLogGateway(logger *slog.Logger) *LogGateway {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogGateway{logger: logger}
}

func (g *LogGateway) Deliver(ctx context.Context, msg Message) error {
	g.logger.InfoContext(ctx, "mail message",
		"message_id", msg.ID,
		"to", msg.To,
		"to_name", email.DisplayName(msg.To),
		"subject", msg.Subject,
		"body_bytes", len(msg.HTMLBody),
	)
	return nil
}
