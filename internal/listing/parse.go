package listing

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var quantityPattern = regexp.MustCompile(`\d{1,5}`)

const (
	minQuantityHint = 1
	maxQuantityHint = 5000
)

// ParseAmount coerces a heterogeneous price representation into a float.
// nil yields 0; numbers pass through; strings are trimmed, comma decimals
// converted, and stripped of anything that is not a digit, dot, or minus
// sign before parsing. Unparsable input yields 0, never an error.
func ParseAmount(value any) float64 {
	switch v := value.(type) {
	case nil:
		return 0
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case json.Number:
		return parseAmountString(v.String())
	case string:
		return parseAmountString(v)
	default:
		return 0
	}
}

func parseAmountString(s string) float64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	f, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0
	}
	return f
}

// QuantityFromTitle extracts a quantity hint from a listing title: the
// first run of one to five digits, accepted only within [1, 5000].
// Titles often carry non-breaking spaces and other compatibility
// characters, so the text is NFKC-normalized before matching.
// ok=false means "quantity unknown", which is distinct from zero.
func QuantityFromTitle(title string) (int, bool) {
	if title == "" {
		return 0, false
	}
	normalized := norm.NFKC.String(title)
	match := quantityPattern.FindString(normalized)
	if match == "" {
		return 0, false
	}
	n, err := strconv.Atoi(match)
	if err != nil {
		return 0, false
	}
	if n < minQuantityHint || n > maxQuantityHint {
		return 0, false
	}
	return n, true
}
