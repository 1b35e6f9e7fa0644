package earnings

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"nasdaq-earnings-bot/internal/types"
)

var (
	nonNumeric = regexp.MustCompile(`[^0-9.\-]`)
	// leadingNumber is the longest numeric prefix a lenient float parser
	// would accept, e.g. "1.2.3" -> "1.2", "4-5" -> "4".
	leadingNumber = regexp.MustCompile(`^-?(\d+\.?\d*|\.\d+)`)
)

// CompareEPS classifies actual against estimate. Currency signs and other
// decoration are ignored. If either side has no number the result is
// LabelNone; the function never fails.
func CompareEPS(actual, estimate string) types.Label {
	a, ok := parseEPS(actual)
	if !ok {
		return types.LabelNone
	}
	e, ok := parseEPS(estimate)
	if !ok {
		return types.LabelNone
	}

	switch a.Cmp(e) {
	case 1:
		return types.LabelBeat
	case -1:
		return types.LabelMiss
	default:
		return types.LabelMet
	}
}

func parseEPS(s string) (decimal.Decimal, bool) {
	m := leadingNumber.FindString(nonNumeric.ReplaceAllString(s, ""))
	if m == "" {
		return decimal.Decimal{}, false
	}

	// decimal wants digits on both sides of the point
	m = strings.TrimSuffix(m, ".")
	if strings.HasPrefix(m, "-.") {
		m = "-0" + m[1:]
	} else if strings.HasPrefix(m, ".") {
		m = "0" + m
	}

	d, err := decimal.NewFromString(m)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}
