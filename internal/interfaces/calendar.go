package interfaces

import (
	"context"
	"time"

	"nasdaq-earnings-bot/internal/types"
)

// CalendarSource provides the earnings calendar for a single day.
type CalendarSource interface {
	// Fetch returns the day's records in source order. An empty slice is a
	// valid answer (weekends, holidays, unexpected payload shape).
	Fetch(ctx context.Context, date time.Time) ([]types.EarningsRecord, error)
}
