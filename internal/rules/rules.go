// Package rules evaluates a listing against one search's numeric rules:
// minimum quantity, maximum total price, and maximum unit price. Rules are
// checked in that order and evaluation stops at the first failure.
package rules

import (
	"chine/internal/config"
	"chine/internal/listing"
)

// Result carries the evaluation outcome. Quantity is reported whenever a
// hint was extracted from the title, even on rejection, so the caller can
// log why a listing was discarded. UnitPrice is set only once it has been
// computed, which requires a positive quantity.
type Result struct {
	Matched   bool
	Quantity  int
	HasQty    bool
	UnitPrice float64
	HasUnit   bool
}

// Evaluate applies the search's configured rules to the listing.
func Evaluate(search config.Search, l listing.Listing) Result {
	qty, hasQty := listing.QuantityFromTitle(l.Title)
	res := Result{Quantity: qty, HasQty: hasQty}

	if search.MinQuantity != nil {
		if !hasQty || qty < *search.MinQuantity {
			return res
		}
	}

	if search.MaxPrice != nil && l.Price > *search.MaxPrice {
		return res
	}

	if search.MaxUnitPrice != nil {
		if !hasQty || qty <= 0 {
			return res
		}
		res.UnitPrice = l.Price / float64(qty)
		res.HasUnit = true
		if res.UnitPrice > *search.MaxUnitPrice {
			return res
		}
	}

	res.Matched = true
	return res
}
