package earnings

import (
	"sync"
	"testing"

	"nasdaq-earnings-bot/internal/types"
)

func TestDetectScenario(t *testing.T) {
	tracker := NewTracker()
	records := []types.EarningsRecord{{Symbol: "AAA", EPSActual: "1.20", EPSEstimate: "1.00"}}

	first := Detect(records, tracker)
	if len(first) != 1 {
		t.Fatalf("Cycle 1: expected 1 update, got %d", len(first))
	}
	if first[0].Label != types.LabelBeat {
		t.Errorf("Cycle 1: expected beat label, got %q", first[0].Label)
	}
	if v, ok := tracker.Last("AAA"); !ok || v != "1.20" {
		t.Errorf("Expected tracker to hold 1.20, got %q (%v)", v, ok)
	}

	if second := Detect(records, tracker); len(second) != 0 {
		t.Errorf("Cycle 2: expected no updates, got %+v", second)
	}
}

func TestDetectSkipsAbsentActual(t *testing.T) {
	tracker := NewTracker()
	records := []types.EarningsRecord{
		{Symbol: "AAA", EPSEstimate: "1.00"},
		{Symbol: "BBB"},
	}

	for i := 0; i < 3; i++ {
		if got := Detect(records, tracker); len(got) != 0 {
			t.Errorf("Expected no updates for unreported records, got %+v", got)
		}
	}
	if tracker.Len() != 0 {
		t.Errorf("Tracker must not store absent actuals, has %d entries", tracker.Len())
	}
}

func TestDetectStopsReportingKeepsEntry(t *testing.T) {
	tracker := NewTracker()
	Detect([]types.EarningsRecord{{Symbol: "AAA", EPSActual: "1.00"}}, tracker)

	if got := Detect([]types.EarningsRecord{{Symbol: "AAA"}}, tracker); len(got) != 0 {
		t.Errorf("Expected no updates, got %+v", got)
	}
	if v, _ := tracker.Last("AAA"); v != "1.00" {
		t.Errorf("Expected entry to survive, got %q", v)
	}
}

func TestDetectMonotonicAndChanges(t *testing.T) {
	tracker := NewTracker()
	cycles := []struct {
		actual string
		want   int
	}{
		{"1.00", 1},
		{"1.00", 0},
		{"1.00", 0},
		{"1.10", 1},
		{"1.10", 0},
		// string inequality, not numeric
		{"1.1", 1},
	}

	for i, c := range cycles {
		got := Detect([]types.EarningsRecord{{Symbol: "AAA", EPSActual: c.actual, EPSEstimate: "1.05"}}, tracker)
		if len(got) != c.want {
			t.Errorf("Cycle %d (%s): expected %d updates, got %d", i, c.actual, c.want, len(got))
		}
	}
}

func TestDetectKeepsSourceOrder(t *testing.T) {
	tracker := NewTracker()
	records := []types.EarningsRecord{
		{Symbol: "ZZZ", EPSActual: "0.10", EPSEstimate: "0.20"},
		{Symbol: "MMM"},
		{Symbol: "AAA", EPSActual: "2.00", EPSEstimate: "2.00"},
	}

	got := Detect(records, tracker)
	if len(got) != 2 {
		t.Fatalf("Expected 2 updates, got %d", len(got))
	}
	if got[0].Record.Symbol != "ZZZ" || got[0].Label != types.LabelMiss {
		t.Errorf("Unexpected first update: %+v", got[0])
	}
	if got[1].Record.Symbol != "AAA" || got[1].Label != types.LabelMet {
		t.Errorf("Unexpected second update: %+v", got[1])
	}
}

func TestDetectDuplicateKeysInOneCycle(t *testing.T) {
	tracker := NewTracker()
	records := []types.EarningsRecord{
		{Symbol: "AAA", EPSActual: "1.00"},
		{Symbol: "AAA", EPSActual: "1.05"},
	}

	if got := Detect(records, tracker); len(got) != 2 {
		t.Errorf("Expected both differing duplicates reported, got %d", len(got))
	}
	if v, _ := tracker.Last("AAA"); v != "1.05" {
		t.Errorf("Expected later record to win, got %q", v)
	}

	same := []types.EarningsRecord{
		{Symbol: "BBB", EPSActual: "0.50"},
		{Symbol: "BBB", EPSActual: "0.50"},
	}
	if got := Detect(same, tracker); len(got) != 1 {
		t.Errorf("Expected identical duplicates reported once, got %d", len(got))
	}
}

func TestDetectConcurrentCallsReportOnce(t *testing.T) {
	tracker := NewTracker()
	records := []types.EarningsRecord{
		{Symbol: "AAA", EPSActual: "1.00"},
		{Symbol: "BBB", EPSActual: "2.00"},
		{Symbol: "CCC", EPSActual: "3.00"},
	}

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		total int
	)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n := len(Detect(records, tracker))
			mu.Lock()
			total += n
			mu.Unlock()
		}()
	}
	wg.Wait()

	if total != len(records) {
		t.Errorf("Expected each change reported exactly once, got %d reports", total)
	}
}
