package engine_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian/quote-engine/engine"
)

func findingMessages(items []engine.ValidationItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Message)
	}
	return out
}

func TestValidateQuote_FlagsMissingParties(t *testing.T) {
	in := tier2PlanInput()
	in.Sender.Name = ""
	in.Buyer.Name = ""
	q, err := engine.NewRouteQuote(in)
	require.NoError(t, err)

	msgs := findingMessages(engine.ValidateQuote(q))

	assert.Contains(t, msgs, "sender has no name")
	assert.Contains(t, msgs, "buyer has no name")
}

func TestValidateQuote_FlagsMissingHubs(t *testing.T) {
	in := tier2PlanInput()
	in.Hub1 = nil
	q, err := engine.NewRouteQuote(in)
	require.NoError(t, err)

	items := engine.ValidateQuote(q)

	found := false
	for _, it := range items {
		if it.Message == "tier 2 requires an authenticator hub" {
			found = true
			assert.Equal(t, engine.SeverityWarning, it.Severity)
		}
	}
	assert.True(t, found, "expected a missing-hub warning, got %v", findingMessages(items))
}

func TestValidateQuote_UnpricedSegmentsAreInfoOnly(t *testing.T) {
	q, err := engine.NewRouteQuote(tier2PlanInput())
	require.NoError(t, err)

	items := engine.ValidateQuote(q)

	infos := 0
	for _, it := range items {
		if it.Severity == engine.SeverityInfo {
			infos++
		}
	}
	// Two blank legs plus the zero declared value.
	assert.GreaterOrEqual(t, infos, 3)
}

func TestValidateQuote_NegativeMargin(t *testing.T) {
	q, err := engine.NewRouteQuote(tier2PlanInput())
	require.NoError(t, err)
	require.NoError(t, q.SetMargin(engine.MarginPolicy{
		Type:  engine.MarginPercentage,
		Value: decimal.NewFromInt(-5),
	}))

	assert.Contains(t, findingMessages(engine.ValidateQuote(q)), "margin is negative")
}

func TestValidateQuote_CleanQuoteHasNoWarnings(t *testing.T) {
	in := tier2PlanInput()
	in.DeclaredValue = engine.NewMoney(8000)
	q, err := engine.NewRouteQuote(in)
	require.NoError(t, err)
	for _, s := range q.Segments {
		require.NoError(t, q.UpdateSegment(s.ID, engine.SegmentEdit{
			Pricing: engine.DHLPricing{Quote: engine.NewMoney(75)},
		}))
	}

	for _, it := range engine.ValidateQuote(q) {
		assert.NotEqual(t, engine.SeverityWarning, it.Severity, "unexpected warning: %s", it.Message)
	}
}
