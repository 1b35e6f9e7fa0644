package interfaces

import (
	"context"

	"nasdaq-earnings-bot/internal/types"
)

// Bot runs the work behind each trigger.
type Bot interface {
	// Overview renders today's full calendar message without posting it.
	Overview(ctx context.Context) (string, error)

	// PostOverview renders today's calendar and posts it to the channel.
	PostOverview(ctx context.Context) error

	// Poll runs one change-detection cycle and posts new results, if any.
	Poll(ctx context.Context) (*types.PollResult, error)
}
