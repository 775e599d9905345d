package engine_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian/quote-engine/engine"
)

func tier2PlanInput() engine.PlanInput {
	return engine.PlanInput{
		Tier:   engine.Tier2,
		Model:  engine.ModelDHLFull,
		Sender: engine.Party{Name: "Consignor SARL", Address: engine.Address{City: "Lyon"}},
		Buyer:  engine.Party{Name: "Acquirer GmbH", Address: engine.Address{City: "Berlin"}},
		Hub1:   parisHub(),
		Defaults: engine.SessionDefaults{
			MarginPercentage: decimal.NewFromInt(20),
			Currency:         "EUR",
		},
		Labor: laborSettings(),
		Now:   genTime,
	}
}

// =============================================================================
// CONSTRUCTION
// =============================================================================

func TestNewRouteQuote_Tier2DHLEndToEnd(t *testing.T) {
	// GIVEN: a tier-2 dhl-full session through the Paris hub
	// WHEN: the two generated legs are priced at 80 and 90
	// THEN: total = 80 + 90 + 150 + 12.50 = 332.50, and the 20% margin
	//       yields a 399.00 client price

	q, err := engine.NewRouteQuote(tier2PlanInput())
	require.NoError(t, err)

	require.Len(t, q.Segments, 2)
	assert.Equal(t, engine.StatusDraft, q.Status)
	assert.Equal(t, engine.RoleSender, q.Sender.Role)
	require.NotNil(t, q.Hub1)
	assert.Equal(t, "Paris Flagship", q.Hub1.Name)
	assert.Nil(t, q.Hub2)

	for i, price := range []float64{80, 90} {
		err := q.UpdateSegment(q.Segments[i].ID, engine.SegmentEdit{
			Pricing: engine.DHLPricing{Quote: engine.NewMoney(price)},
		})
		require.NoError(t, err)
	}

	assertMoney(t, "170", q.Summary.TransportCost)
	assertMoney(t, "162.50", q.Summary.HubFees)
	assertMoney(t, "0", q.Summary.LaborCost)
	assertMoney(t, "332.50", q.Summary.TotalCost)
	assertMoney(t, "66.50", q.Summary.MarginAmount)
	assertMoney(t, "399.00", q.Summary.ClientPrice)
}

func TestNewRouteQuote_RejectsInvalidInputs(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*engine.PlanInput)
	}{
		{"tier out of range", func(in *engine.PlanInput) { in.Tier = 4 }},
		{"unknown model", func(in *engine.PlanInput) { in.Model = "carrier-pigeon" }},
		{"hybrid without variant", func(in *engine.PlanInput) { in.Model = engine.ModelHybrid; in.Variant = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := tier2PlanInput()
			tt.mutate(&in)

			_, err := engine.NewRouteQuote(in)

			assert.ErrorIs(t, err, engine.ErrInvalidPlanInput)
		})
	}
}

func TestNewRouteQuote_SeedsMarginFromDefaults(t *testing.T) {
	q, err := engine.NewRouteQuote(tier2PlanInput())
	require.NoError(t, err)

	assert.Equal(t, engine.MarginPercentage, q.Margin.Type)
	assert.True(t, q.Margin.Value.Equal(decimal.NewFromInt(20)))
	assert.Equal(t, "EUR", q.Currency)
}

func TestNewRouteQuote_Hub2OnlyOnTier3WithSecondHub(t *testing.T) {
	in := tier2PlanInput()
	in.Tier = engine.Tier3
	in.Model = engine.ModelWGFull
	in.Hub2 = londonHub()
	in.NoSecondHub = true

	q, err := engine.NewRouteQuote(in)
	require.NoError(t, err)

	// hub2 was supplied but the route bypasses it
	assert.Nil(t, q.Hub2)
	assert.Empty(t, q.Hub2ID)
	require.Len(t, q.Segments, 2)
}

// =============================================================================
// EDITS & RECOMPUTE
// =============================================================================

func TestRouteQuote_ProviderChangeReZeroesPricing(t *testing.T) {
	q, err := engine.NewRouteQuote(tier2PlanInput())
	require.NoError(t, err)

	id := q.Segments[0].ID
	require.NoError(t, q.UpdateSegment(id, engine.SegmentEdit{
		Pricing: engine.DHLPricing{Quote: engine.NewMoney(80)},
	}))

	// Switching provider without pricing discards the stale DHL quote.
	chauffeur := engine.ProviderChauffeur
	require.NoError(t, q.UpdateSegment(id, engine.SegmentEdit{Provider: &chauffeur}))

	seg := q.Segment(id)
	require.NotNil(t, seg)
	_, ok := seg.Pricing.(engine.ChauffeurPricing)
	assert.True(t, ok, "pricing should track the provider, got %T", seg.Pricing)
	assertMoney(t, "0", engine.SegmentCost(*seg))
}

func TestRouteQuote_AddAndRemoveSegment(t *testing.T) {
	q, err := engine.NewRouteQuote(tier2PlanInput())
	require.NoError(t, err)
	baseline := len(q.Segments)

	extra := engine.NewSegment(engine.ModeDHL, engine.ProviderDHL, "Berlin", "Munich", genTime, 12)
	extra.Pricing = engine.DHLPricing{Quote: engine.NewMoney(40)}
	require.NoError(t, q.AddSegment(extra))

	assert.Len(t, q.Segments, baseline+1)
	assertMoney(t, "40", q.Summary.TransportCost)

	require.NoError(t, q.RemoveSegment(extra.ID))
	assert.Len(t, q.Segments, baseline)
	assertMoney(t, "0", q.Summary.TransportCost)

	assert.ErrorIs(t, q.RemoveSegment("missing"), engine.ErrSegmentNotFound)
}

func TestRouteQuote_RegenerateDiscardsEdits(t *testing.T) {
	// GIVEN: a quote with a priced segment and an operator-added leg
	// WHEN: the operator regenerates
	// THEN: the segment list is rebuilt from planning inputs, the edits
	//       are gone, and the totals reflect the blank topology

	q, err := engine.NewRouteQuote(tier2PlanInput())
	require.NoError(t, err)

	require.NoError(t, q.UpdateSegment(q.Segments[0].ID, engine.SegmentEdit{
		Pricing: engine.DHLPricing{Quote: engine.NewMoney(500)},
	}))
	extra := engine.NewSegment(engine.ModeDHL, engine.ProviderDHL, "X", "Y", genTime, 6)
	require.NoError(t, q.AddSegment(extra))
	require.Len(t, q.Segments, 3)

	require.NoError(t, q.Regenerate(genTime))

	require.Len(t, q.Segments, 2)
	assertMoney(t, "0", q.Summary.TransportCost)
	for _, s := range q.Segments {
		assertMoney(t, "0", engine.SegmentCost(s))
	}
}

func TestRouteQuote_FeeOverrideWins(t *testing.T) {
	q, err := engine.NewRouteQuote(tier2PlanInput())
	require.NoError(t, err)

	require.NoError(t, q.OverrideFees(engine.FeeBundle{
		Authentication: engine.NewMoney(99),
	}))

	assertMoney(t, "99", q.Summary.HubFees)
}

func TestRouteQuote_MarginAndDeclaredValueEdits(t *testing.T) {
	in := tier2PlanInput()
	in.Defaults.InsuranceRate = mustDec(t, "0.01")
	in.DeclaredValue = engine.NewMoney(10000)
	q, err := engine.NewRouteQuote(in)
	require.NoError(t, err)

	assertMoney(t, "100", q.Summary.Insurance)

	require.NoError(t, q.SetDeclaredValue(engine.NewMoney(20000)))
	assertMoney(t, "200", q.Summary.Insurance)

	require.NoError(t, q.SetMargin(engine.MarginPolicy{
		Type:  engine.MarginAmount,
		Value: decimal.NewFromInt(500),
	}))
	assertMoney(t, "500", q.Summary.MarginAmount)
}

// =============================================================================
// FINALIZATION
// =============================================================================

func TestRouteQuote_FinalizeFreezesEverything(t *testing.T) {
	q, err := engine.NewRouteQuote(tier2PlanInput())
	require.NoError(t, err)
	id := q.Segments[0].ID

	require.NoError(t, q.Finalize())
	assert.Equal(t, engine.StatusFinal, q.Status)

	// Every mutator now refuses.
	assert.ErrorIs(t, q.Finalize(), engine.ErrQuoteFinalized)
	assert.ErrorIs(t, q.UpdateSegment(id, engine.SegmentEdit{}), engine.ErrQuoteFinalized)
	assert.ErrorIs(t, q.AddSegment(engine.RouteSegment{}), engine.ErrQuoteFinalized)
	assert.ErrorIs(t, q.RemoveSegment(id), engine.ErrQuoteFinalized)
	assert.ErrorIs(t, q.Regenerate(genTime), engine.ErrQuoteFinalized)
	assert.ErrorIs(t, q.OverrideFees(engine.FeeBundle{}), engine.ErrQuoteFinalized)
	assert.ErrorIs(t, q.SetMargin(engine.MarginPolicy{}), engine.ErrQuoteFinalized)
	assert.ErrorIs(t, q.SetDeclaredValue(engine.ZeroMoney()), engine.ErrQuoteFinalized)
	assert.ErrorIs(t, q.SetLaborSettings(engine.LaborSettings{}), engine.ErrQuoteFinalized)
	assert.ErrorIs(t, q.SetSLAComment("late"), engine.ErrQuoteFinalized)
}

func TestRouteQuote_RecomputeIsIdempotent(t *testing.T) {
	q, err := engine.NewRouteQuote(tier2PlanInput())
	require.NoError(t, err)
	require.NoError(t, q.UpdateSegment(q.Segments[0].ID, engine.SegmentEdit{
		Pricing: engine.DHLPricing{Quote: engine.NewMoney(80)},
	}))

	before := q.Summary
	q.Recompute()

	assert.True(t, before.TotalCost.Value.Equal(q.Summary.TotalCost.Value))
	assert.True(t, before.ClientPrice.Value.Equal(q.Summary.ClientPrice.Value))
}

// =============================================================================
// SERIALIZATION
// =============================================================================

func TestRouteQuote_LaborFlowsIntoSummary(t *testing.T) {
	// A wg-full tier-2 route with real durations picks up labor cost.
	in := tier2PlanInput()
	in.Model = engine.ModelWGFull

	q, err := engine.NewRouteQuote(in)
	require.NoError(t, err)

	// Two generated wg legs of 4h each: 8 active hours at 65/h.
	assert.True(t, q.Labor.ActiveHours.Equal(decimal.NewFromInt(8)),
		"got %s active hours", q.Labor.ActiveHours)
	assertMoney(t, "520", q.Summary.LaborCost)
}
