package calendar

import (
	"strconv"
	"strings"

	"nasdaq-earnings-bot/internal/types"
)

// Field aliases in resolution order; the first non-empty value wins.
var (
	symbolFields   = []string{"symbol", "ticker"}
	companyFields  = []string{"company", "name"}
	timeFields     = []string{"time", "session"}
	estimateFields = []string{"epsEstimate", "epsForecast"}
	actualFields   = []string{"epsActual", "eps"}
)

// sessionLabels maps Nasdaq session codes to display text.
var sessionLabels = map[string]string{
	"time-pre-market":   "before market open",
	"time-after-hours":  "after market close",
	"time-not-supplied": "time not supplied",
}

// placeholders the feed uses for "no value".
var placeholders = map[string]bool{
	"":    true,
	"N/A": true,
	"n/a": true,
	"--":  true,
	"-":   true,
}

// ParseRecord normalizes one raw calendar row. It never fails: rows that
// are not JSON objects, or lack fields, produce empty values.
func ParseRecord(raw any) types.EarningsRecord {
	row, _ := raw.(map[string]any)

	rec := types.EarningsRecord{
		Symbol:      lookup(row, symbolFields),
		Company:     lookup(row, companyFields),
		Time:        lookup(row, timeFields),
		EPSEstimate: lookup(row, estimateFields),
		EPSActual:   lookup(row, actualFields),
	}
	if label, ok := sessionLabels[rec.Time]; ok {
		rec.Time = label
	}
	return rec
}

// ParseRecords normalizes rows, keeping source order.
func ParseRecords(rows []any) []types.EarningsRecord {
	records := make([]types.EarningsRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, ParseRecord(row))
	}
	return records
}

func lookup(row map[string]any, keys []string) string {
	for _, k := range keys {
		if v := text(row[k]); v != "" {
			return v
		}
	}
	return ""
}

// text renders a JSON scalar; objects, arrays and null are "no value".
func text(v any) string {
	var s string
	switch t := v.(type) {
	case string:
		s = strings.TrimSpace(t)
	case float64:
		s = strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		s = strconv.FormatBool(t)
	default:
		return ""
	}
	if placeholders[s] {
		return ""
	}
	return s
}
