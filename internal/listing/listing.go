package listing

import "time"

// Listing is a single item returned by the catalog search endpoint. It is
// rebuilt from raw API data every scan cycle; only the ID outlives the
// cycle, inside the seen set.
type Listing struct {
	ID        string
	Title     string
	Price     float64
	URL       string
	CreatedAt *time.Time // nil when the source did not report a creation time
}

// Age reports how long ago the listing was created, relative to now.
// Listings without a creation time report ok=false and are treated as
// recent by callers.
func (l Listing) Age(now time.Time) (time.Duration, bool) {
	if l.CreatedAt == nil {
		return 0, false
	}
	return now.Sub(*l.CreatedAt), true
}
