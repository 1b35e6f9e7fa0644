package bot

import (
	"context"
	"fmt"
	"sync"
	"time"

	"nasdaq-earnings-bot/internal/earnings"
	"nasdaq-earnings-bot/internal/interfaces"
	"nasdaq-earnings-bot/internal/logger"
	"nasdaq-earnings-bot/internal/types"
)

// Bot ties the calendar source, the change tracker and the chat sink
// together. Poll cycles are serialized; overview requests are not, since
// they never touch the tracker.
type Bot struct {
	source  interfaces.CalendarSource
	sink    interfaces.Notifier
	tracker *earnings.Tracker
	loc     *time.Location
	now     func() time.Time

	cycleMu sync.Mutex
}

var _ interfaces.Bot = (*Bot)(nil)

// Option configures a Bot
type Option func(*Bot)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(b *Bot) {
		b.now = now
	}
}

// New creates a bot. loc decides what "today" is and how post times are
// shown; a nil loc means UTC.
func New(source interfaces.CalendarSource, sink interfaces.Notifier, tracker *earnings.Tracker, loc *time.Location, opts ...Option) *Bot {
	if loc == nil {
		loc = time.UTC
	}
	b := &Bot{
		source:  source,
		sink:    sink,
		tracker: tracker,
		loc:     loc,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Bot) today() time.Time {
	return b.now().In(b.loc)
}

// Overview fetches today's calendar and renders the full-day message.
func (b *Bot) Overview(ctx context.Context) (string, error) {
	date := b.today()
	records, err := b.source.Fetch(ctx, date)
	if err != nil {
		return "", err
	}
	return earnings.FormatOverviewMessage(date, records), nil
}

// PostOverview posts today's full-day message to the channel.
func (b *Bot) PostOverview(ctx context.Context) error {
	text, err := b.Overview(ctx)
	if err != nil {
		return err
	}
	if err := b.sink.Send(ctx, text); err != nil {
		return fmt.Errorf("failed to post overview: %w", err)
	}
	return nil
}

// Poll runs one change-detection cycle. The tracker is updated before the
// post, so a failed post drops those updates instead of repeating them.
func (b *Bot) Poll(ctx context.Context) (*types.PollResult, error) {
	b.cycleMu.Lock()
	defer b.cycleMu.Unlock()

	date := b.today()
	result := &types.PollResult{
		Date:     date.Format("2006-01-02"),
		PolledAt: date,
	}

	records, err := b.source.Fetch(ctx, date)
	if err != nil {
		return result, err
	}
	result.Fetched = len(records)

	result.Updates = earnings.Detect(records, b.tracker)
	if len(result.Updates) == 0 {
		logger.Debug(ctx, "No new earnings results", "date", result.Date, "fetched", result.Fetched)
		return result, nil
	}

	text := earnings.FormatUpdatesMessage(b.today(), result.Updates)
	if err := b.sink.Send(ctx, text); err != nil {
		return result, fmt.Errorf("failed to post %d updates: %w", len(result.Updates), err)
	}
	result.Posted = true
	return result, nil
}
