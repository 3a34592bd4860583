package rules_test

import (
	"math"
	"testing"

	"chine/internal/config"
	"chine/internal/listing"
	"chine/internal/rules"
)

func floatPtr(v float64) *float64 { return &v }

func intPtr(v int) *int { return &v }

func TestEvaluateMinQuantity(t *testing.T) {
	search := config.Search{Name: "bulk", Query: "q", MinQuantity: intPtr(80)}

	res := rules.Evaluate(search, listing.Listing{Title: "lot 50 cartes", Price: 2})
	if res.Matched {
		t.Fatal("quantity 50 should not satisfy min_quantity 80")
	}
	if !res.HasQty || res.Quantity != 50 {
		t.Fatalf("quantity should be reported on rejection, got (%d, %v)", res.Quantity, res.HasQty)
	}

	res = rules.Evaluate(search, listing.Listing{Title: "lot 100 cartes", Price: 2})
	if !res.Matched {
		t.Fatal("quantity 100 should satisfy min_quantity 80")
	}
}

func TestEvaluateMinQuantityRejectsUnknownQuantity(t *testing.T) {
	search := config.Search{MinQuantity: intPtr(10)}
	res := rules.Evaluate(search, listing.Listing{Title: "gros lot de cartes", Price: 2})
	if res.Matched {
		t.Fatal("unknown quantity should not satisfy a min_quantity rule")
	}
	if res.HasQty {
		t.Fatal("no quantity should be reported")
	}
}

func TestEvaluateMaxPrice(t *testing.T) {
	search := config.Search{MaxPrice: floatPtr(30)}

	if res := rules.Evaluate(search, listing.Listing{Title: "lego vrac", Price: 35}); res.Matched {
		t.Fatal("price 35 should fail max_price 30")
	}
	if res := rules.Evaluate(search, listing.Listing{Title: "lego vrac 9000 pieces", Price: 35}); res.Matched {
		t.Fatal("max_price applies regardless of quantity")
	}
	if res := rules.Evaluate(search, listing.Listing{Title: "lego vrac", Price: 30}); !res.Matched {
		t.Fatal("price equal to the ceiling should pass")
	}
}

func TestEvaluateMaxUnitPrice(t *testing.T) {
	search := config.Search{MaxUnitPrice: floatPtr(0.06)}

	res := rules.Evaluate(search, listing.Listing{Title: "lot 60 cartes", Price: 3.00})
	if !res.Matched {
		t.Fatal("3.00 / 60 = 0.05 should pass max_unit_price 0.06")
	}
	if !res.HasUnit || math.Abs(res.UnitPrice-0.05) > 1e-9 {
		t.Fatalf("unexpected unit price: (%v, %v)", res.UnitPrice, res.HasUnit)
	}

	res = rules.Evaluate(search, listing.Listing{Title: "lot 10 cartes", Price: 3.00})
	if res.Matched {
		t.Fatal("0.30 unit price should fail ceiling 0.06")
	}
	if !res.HasUnit {
		t.Fatal("unit price should be reported once computed, even on rejection")
	}
}

func TestEvaluateMaxUnitPriceNeedsQuantity(t *testing.T) {
	search := config.Search{MaxUnitPrice: floatPtr(0.06)}
	res := rules.Evaluate(search, listing.Listing{Title: "lot de cartes", Price: 1})
	if res.Matched {
		t.Fatal("max_unit_price without a detectable quantity should reject")
	}
	if res.HasUnit {
		t.Fatal("no unit price should be computed without a quantity")
	}
}

func TestEvaluateNoRulesAlwaysMatches(t *testing.T) {
	res := rules.Evaluate(config.Search{}, listing.Listing{Title: "anything", Price: 9999})
	if !res.Matched {
		t.Fatal("a search without rules should match everything")
	}
}

func TestEvaluateCombinedScenario(t *testing.T) {
	search := config.Search{
		Name:         "Pokemon bulk",
		Query:        "lot cartes pokemon",
		MaxUnitPrice: floatPtr(0.06),
		MinQuantity:  intPtr(80),
	}

	res := rules.Evaluate(search, listing.Listing{Title: "lot 100 cartes pokemon", Price: 2.40})
	if !res.Matched {
		t.Fatal("expected a match")
	}
	if res.Quantity != 100 {
		t.Fatalf("unexpected quantity: %d", res.Quantity)
	}
	if math.Abs(res.UnitPrice-0.024) > 1e-9 {
		t.Fatalf("unexpected unit price: %v", res.UnitPrice)
	}
}

func TestEvaluateShortCircuitsBeforeUnitPrice(t *testing.T) {
	search := config.Search{
		MinQuantity:  intPtr(80),
		MaxUnitPrice: floatPtr(0.06),
	}
	res := rules.Evaluate(search, listing.Listing{Title: "lot 40 cartes", Price: 0.01})
	if res.Matched {
		t.Fatal("min_quantity failure should reject")
	}
	if res.HasUnit {
		t.Fatal("unit price must not be computed after a min_quantity failure")
	}
}
