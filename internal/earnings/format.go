package earnings

import (
	"fmt"
	"strings"
	"time"

	"nasdaq-earnings-bot/internal/types"
)

const (
	NoEarningsMessage = "No earnings today."
	missingEstimate   = "-"
	paragraphSep      = "\n\n"
)

// FormatOverview renders one paragraph per record in source order.
func FormatOverview(records []types.EarningsRecord) string {
	if len(records) == 0 {
		return NoEarningsMessage
	}

	paragraphs := make([]string, 0, len(records))
	for _, r := range records {
		estimate := r.EPSEstimate
		if !r.HasEstimate() {
			estimate = missingEstimate
		}
		paragraphs = append(paragraphs, fmt.Sprintf("`%s` • **%s** (%s)\n> Estimate EPS: %s",
			r.Time, r.Symbol, r.Company, estimate))
	}
	return strings.Join(paragraphs, paragraphSep)
}

// FormatOverviewMessage frames the overview with the calendar date header.
func FormatOverviewMessage(date time.Time, records []types.EarningsRecord) string {
	return fmt.Sprintf("📈 **Nasdaq Earnings Calendar %s**%s%s",
		date.Format("2006-01-02"), paragraphSep, FormatOverview(records))
}

// FormatUpdate renders one reported result.
func FormatUpdate(u types.Update) string {
	line := fmt.Sprintf("`%s` • **%s** (%s): %s EPS",
		u.Record.Time, u.Record.Symbol, u.Record.Company, u.Record.EPSActual)
	if u.Label != types.LabelNone {
		line += " " + string(u.Label)
	}
	return line
}

// FormatUpdatesMessage renders the incremental message for one poll cycle.
// at is shown as HH:MM.
func FormatUpdatesMessage(at time.Time, updates []types.Update) string {
	lines := make([]string, 0, len(updates))
	for _, u := range updates {
		lines = append(lines, FormatUpdate(u))
	}
	return fmt.Sprintf("🕑 **New earnings reports (%s)**%s%s",
		at.Format("15:04"), paragraphSep, strings.Join(lines, paragraphSep))
}
