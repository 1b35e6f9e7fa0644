package calendar

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"

	"nasdaq-earnings-bot/internal/api"
	"nasdaq-earnings-bot/internal/interfaces"
	"nasdaq-earnings-bot/internal/types"
)

var (
	// ErrFetchFailed wraps transport errors and non-2xx responses.
	ErrFetchFailed = errors.New("calendar fetch failed")
	// ErrMalformedPayload is returned when the body is not JSON at all.
	// A JSON body without a row list is not an error, it yields no records.
	ErrMalformedPayload = errors.New("calendar payload malformed")
)

const calendarPath = "/api/calendar/earnings"

// NasdaqSource reads the public Nasdaq earnings calendar.
type NasdaqSource struct {
	client  *api.Client
	baseURL string
}

var _ interfaces.CalendarSource = (*NasdaqSource)(nil)

func NewNasdaqSource(client *api.Client, baseURL string) *NasdaqSource {
	return &NasdaqSource{
		client:  client,
		baseURL: baseURL,
	}
}

// Fetch issues a single GET for date's calendar; there is no retry.
func (s *NasdaqSource) Fetch(ctx context.Context, date time.Time) ([]types.EarningsRecord, error) {
	day := date.Format("2006-01-02")
	u := s.baseURL + calendarPath + "?" + url.Values{"date": {day}}.Encode()

	resp, err := s.client.GET(ctx, u, api.NasdaqHeaders())
	if err != nil {
		return nil, fmt.Errorf("%w for %s: %w", ErrFetchFailed, day, err)
	}

	rows, err := extractRows(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w for %s: %w", ErrMalformedPayload, day, err)
	}

	return ParseRecords(rows), nil
}

// rowPaths lists the known nestings of the row list, preferred first.
var rowPaths = [][]string{
	{"data", "earningsCalendar", "rows"},
	{"data", "rows"},
}

// extractRows returns the first present row list. A present value that is
// not a list, or no present value at all, degrades to no rows.
func extractRows(body []byte) ([]any, error) {
	var root any
	if err := json.Unmarshal(body, &root); err != nil {
		return nil, err
	}

	for _, path := range rowPaths {
		v := dig(root, path...)
		if isAbsent(v) {
			continue
		}
		rows, _ := v.([]any)
		return rows, nil
	}
	return nil, nil
}

func dig(v any, keys ...string) any {
	for _, k := range keys {
		m, ok := v.(map[string]any)
		if !ok {
			return nil
		}
		v = m[k]
	}
	return v
}

// isAbsent reports values that count as missing when choosing a path:
// null, false, 0 and "".
func isAbsent(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case bool:
		return !t
	case float64:
		return t == 0
	case string:
		return t == ""
	}
	return false
}
