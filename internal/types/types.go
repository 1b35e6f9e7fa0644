package types

import "time"

// EarningsRecord is one company's entry in a day's earnings calendar.
// Empty EPSEstimate / EPSActual mean "not yet estimated" / "not yet reported".
type EarningsRecord struct {
	Symbol      string `json:"symbol"`
	Company     string `json:"company"`
	Time        string `json:"time"`
	EPSEstimate string `json:"eps_estimate,omitempty"`
	EPSActual   string `json:"eps_actual,omitempty"`
}

// HasActual reports whether the company has reported its EPS.
func (r EarningsRecord) HasActual() bool { return r.EPSActual != "" }

// HasEstimate reports whether an EPS estimate is published.
func (r EarningsRecord) HasEstimate() bool { return r.EPSEstimate != "" }

// Label classifies a reported EPS against its estimate.
type Label string

const (
	LabelNone Label = ""
	LabelBeat Label = "🔺 beat expectation"
	LabelMiss Label = "🔻 missed expectation"
	LabelMet  Label = "→ met expectation"
)

// Update is a record whose actual EPS is new since the last poll cycle.
type Update struct {
	Record EarningsRecord `json:"record"`
	Label  Label          `json:"label"`
}

// PollResult summarizes one poll cycle.
type PollResult struct {
	Date     string    `json:"date"`
	Fetched  int       `json:"fetched"`
	Updates  []Update  `json:"updates"`
	Posted   bool      `json:"posted"`
	PolledAt time.Time `json:"polled_at"`
}
