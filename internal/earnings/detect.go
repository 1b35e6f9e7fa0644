package earnings

import "nasdaq-earnings-bot/internal/types"

// Detect returns, in source order, the records whose actual EPS is new or
// changed relative to tracker, each with its comparison label. The tracker
// is updated as each change is found, before anything is posted.
//
// Records sharing a symbol in one call are not deduplicated. They are
// compared in order, the later one wins the tracker, and each one whose
// actual differs from the value stored just before it is returned.
func Detect(records []types.EarningsRecord, tracker *Tracker) []types.Update {
	var updates []types.Update
	for _, r := range records {
		if !r.HasActual() {
			continue
		}
		if !tracker.Observe(r.Symbol, r.EPSActual) {
			continue
		}
		updates = append(updates, types.Update{
			Record: r,
			Label:  CompareEPS(r.EPSActual, r.EPSEstimate),
		})
	}
	return updates
}
