package calendarobs

import (
	"context"
	"time"

	"nasdaq-earnings-bot/internal/interfaces"
	"nasdaq-earnings-bot/internal/logger"
	"nasdaq-earnings-bot/internal/types"
)

type observableSource struct {
	source interfaces.CalendarSource
}

var _ interfaces.CalendarSource = (*observableSource)(nil)

func Wrap(s interfaces.CalendarSource) interfaces.CalendarSource {
	return &observableSource{
		source: s,
	}
}

func (obs *observableSource) Fetch(ctx context.Context, date time.Time) ([]types.EarningsRecord, error) {
	timer := logger.StartOperation(ctx, "calendar.Fetch", "date", date.Format("2006-01-02"))

	records, err := obs.source.Fetch(timer.GetContext(), date)
	if err != nil {
		timer.EndWithError(err)
		return nil, err
	}

	timer.End("records", len(records))
	return records, nil
}
