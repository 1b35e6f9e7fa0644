package botobs

import (
	"context"
	"time"

	"nasdaq-earnings-bot/internal/interfaces"
	"nasdaq-earnings-bot/internal/logger"
	"nasdaq-earnings-bot/internal/trace"
	"nasdaq-earnings-bot/internal/types"
)

type observableBot struct {
	bot interfaces.Bot
}

var _ interfaces.Bot = (*observableBot)(nil)

func Wrap(b interfaces.Bot) interfaces.Bot {
	return &observableBot{
		bot: b,
	}
}

func (ob *observableBot) Overview(ctx context.Context) (string, error) {
	ctx, span := trace.StartSpan(ctx, "bot.Overview")
	defer span.End()

	start := time.Now()
	text, err := ob.bot.Overview(ctx)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Overview request failed", err,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return "", err
	}

	logger.InfoSkip(ctx, 1, "Overview rendered",
		"length", len(text),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return text, nil
}

func (ob *observableBot) PostOverview(ctx context.Context) error {
	ctx, span := trace.StartSpan(ctx, "bot.PostOverview")
	defer span.End()

	start := time.Now()
	if err := ob.bot.PostOverview(ctx); err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Daily overview failed", err,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return err
	}

	logger.Notification(ctx, "overview", 1,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

func (ob *observableBot) Poll(ctx context.Context) (*types.PollResult, error) {
	ctx, span := trace.StartSpan(ctx, "bot.Poll")
	defer span.End()

	start := time.Now()
	result, err := ob.bot.Poll(ctx)
	if err != nil {
		fields := []any{"duration_ms", time.Since(start).Milliseconds()}
		if result != nil {
			fields = append(fields, "date", result.Date, "updates", len(result.Updates))
		}
		logger.ErrorWithErrSkip(ctx, 1, "Poll cycle failed", err, fields...)
		return result, err
	}

	if result.Posted {
		logger.Notification(ctx, "updates", len(result.Updates),
			"date", result.Date,
			"fetched", result.Fetched,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	} else {
		logger.DebugSkip(ctx, 1, "Poll cycle completed",
			"date", result.Date,
			"fetched", result.Fetched,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
	return result, nil
}
