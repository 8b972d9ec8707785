package notify

import (
	"context"
	"log/slog"
)

// LogNotifier delivers reset codes by writing them to the log. It stands
// in for a mail sender in development and single-host deployments.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a LogNotifier over the given logger.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogNotifier{logger: logger}
}

// Send logs the code. It never fails.
func (n *LogNotifier) Send(ctx context.Context, email, code string) error {
	n.logger.InfoContext(ctx, "password reset code issued", "email", email, "code", code)
	return nil
}
