package notify

import (
	"context"
	"log/slog"

	"dispatch/internal/core/ports"
)

var _ ports.ChangeNotifier = LogNotifier{}

// LogNotifier writes every change to the log. It is used when no broker is configured.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) LogNotifier {
	return LogNotifier{logger: logger.With("component", "order_change_notifier")}
}

func (n LogNotifier) NotifyOrderChanged(ctx context.Context, change ports.OrderChanged) error {
	n.logger.InfoContext(ctx, "order changed",
		"order_id", change.OrderID.String(),
		"dealership_id", change.DealershipID.String(),
		"status", change.Status.String(),
		"deleted", change.Deleted,
	)
	return nil
}
