package chatobs

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"nasdaq-earnings-bot/internal/interfaces"
	"nasdaq-earnings-bot/internal/logger"
	"nasdaq-earnings-bot/internal/trace"
)

type observableNotifier struct {
	notifier interfaces.Notifier
}

var _ interfaces.Notifier = (*observableNotifier)(nil)

func Wrap(n interfaces.Notifier) interfaces.Notifier {
	return &observableNotifier{
		notifier: n,
	}
}

func (on *observableNotifier) Send(ctx context.Context, text string) error {
	ctx, span := trace.StartSpan(ctx, "chat.Send")
	defer span.End()
	span.SetAttributes(attribute.Int("message.length", len(text)))

	start := time.Now()
	if err := on.notifier.Send(ctx, text); err != nil {
		span.RecordError(err)
		logger.ErrorWithErrSkip(ctx, 1, "Chat message failed", err,
			"length", len(text),
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return err
	}

	logger.DebugSkip(ctx, 1, "Chat message sent",
		"length", len(text),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}
