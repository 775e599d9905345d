package engine_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/meridian/quote-engine/engine"
)

// Shared helpers for the engine test suite.

func mustDec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal literal %q: %v", s, err)
	}
	return d
}

func assertMoney(t *testing.T, expected string, got engine.Money) {
	t.Helper()
	if !got.Value.Equal(mustDec(t, expected)) {
		t.Errorf("expected %s, got %s", expected, got.Value)
	}
}

func wgSegment(t *testing.T, hours float64, pricing engine.WGPricing) engine.RouteSegment {
	t.Helper()
	seg := engine.NewSegment(engine.ModeWG, engine.ProviderWG, "A", "B", genTime, 0)
	seg.SetArrival(genTime.Add(hoursToDuration(hours)))
	seg.Pricing = pricing
	return seg
}

func hoursToDuration(hours float64) time.Duration {
	return time.Duration(hours * float64(time.Hour))
}
