package engine_test

import (
	"testing"
	"time"

	"github.com/meridian/quote-engine/engine"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

var genTime = time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)

func namedParties() (sender, hub1, hub2, buyer engine.Party) {
	sender = engine.Party{Role: engine.RoleSender, Name: "Galerie Fontaine"}
	hub1 = engine.Party{Role: engine.RoleHub1, Name: "Paris Flagship Hub"}
	hub2 = engine.Party{Role: engine.RoleHub2, Name: "London Atelier"}
	buyer = engine.Party{Role: engine.RoleBuyer, Name: "A. Okafor"}
	return
}

func topoInput(tier engine.Tier, model engine.ServiceModel, variant engine.HybridVariant, noSecondHub bool) engine.TopologyInput {
	sender, hub1, hub2, buyer := namedParties()
	return engine.TopologyInput{
		Tier:        tier,
		Model:       model,
		Variant:     variant,
		NoSecondHub: noSecondHub,
		Sender:      sender,
		Hub1:        hub1,
		Hub2:        hub2,
		Buyer:       buyer,
		Now:         genTime,
	}
}

type expectedLeg struct {
	origin      string
	destination string
	mode        engine.SegmentMode
	hours       float64
}

func assertLegs(t *testing.T, segments []engine.RouteSegment, expected []expectedLeg) {
	t.Helper()
	if len(segments) != len(expected) {
		t.Fatalf("expected %d segments, got %d", len(expected), len(segments))
	}
	for i, e := range expected {
		s := segments[i]
		if s.Origin != e.origin || s.Destination != e.destination {
			t.Errorf("segment %d: expected %s -> %s, got %s -> %s", i, e.origin, e.destination, s.Origin, s.Destination)
		}
		if s.Mode != e.mode {
			t.Errorf("segment %d: expected mode %s, got %s", i, e.mode, s.Mode)
		}
		if s.DurationHours.InexactFloat64() != e.hours {
			t.Errorf("segment %d: expected %v hours, got %v", i, e.hours, s.DurationHours)
		}
	}
}

// =============================================================================
// RULE TABLE TESTS
// =============================================================================

func TestGenerateTopology_RuleTable(t *testing.T) {
	sender, hub1, hub2, buyer := namedParties()
	_ = hub2

	tests := []struct {
		name        string
		tier        engine.Tier
		model       engine.ServiceModel
		variant     engine.HybridVariant
		noSecondHub bool
		expected    []expectedLeg
	}{
		{
			name:     "tier 1 direct delivery has no segments",
			tier:     engine.Tier1,
			model:    engine.ModelWGFull,
			expected: nil,
		},
		{
			name:  "tier 2 white-glove",
			tier:  engine.Tier2,
			model: engine.ModelWGFull,
			expected: []expectedLeg{
				{sender.Name, hub1.Name, engine.ModeWG, 4},
				{hub1.Name, buyer.Name, engine.ModeWG, 4},
			},
		},
		{
			name:  "tier 2 carrier",
			tier:  engine.Tier2,
			model: engine.ModelDHLFull,
			expected: []expectedLeg{
				{sender.Name, hub1.Name, engine.ModeDHL, 24},
				{hub1.Name, buyer.Name, engine.ModeDHL, 24},
			},
		},
		{
			name:  "tier 3 white-glove with second hub",
			tier:  engine.Tier3,
			model: engine.ModelWGFull,
			expected: []expectedLeg{
				{"Galerie Fontaine", "Paris Flagship Hub", engine.ModeWG, 4},
				{"Paris Flagship Hub", "London Atelier", engine.ModeInternal, 24},
				{"London Atelier", "A. Okafor", engine.ModeWG, 4},
			},
		},
		{
			name:        "tier 3 white-glove without second hub",
			tier:        engine.Tier3,
			model:       engine.ModelWGFull,
			noSecondHub: true,
			expected: []expectedLeg{
				{sender.Name, hub1.Name, engine.ModeWG, 4},
				{hub1.Name, buyer.Name, engine.ModeWG, 4},
			},
		},
		{
			name:  "tier 3 carrier with second hub",
			tier:  engine.Tier3,
			model: engine.ModelDHLFull,
			expected: []expectedLeg{
				{"Galerie Fontaine", "Paris Flagship Hub", engine.ModeDHL, 24},
				{"Paris Flagship Hub", "London Atelier", engine.ModeInternal, 24},
				{"London Atelier", "A. Okafor", engine.ModeDHL, 24},
			},
		},
		{
			name:    "tier 3 hybrid wg inbound dhl terminal",
			tier:    engine.Tier3,
			model:   engine.ModelHybrid,
			variant: engine.HybridWGToDHL,
			expected: []expectedLeg{
				{"Galerie Fontaine", "Paris Flagship Hub", engine.ModeWG, 4},
				{"Paris Flagship Hub", "London Atelier", engine.ModeInternal, 24},
				{"London Atelier", "A. Okafor", engine.ModeDHL, 24},
			},
		},
		{
			name:        "tier 3 hybrid dhl inbound wg terminal no second hub",
			tier:        engine.Tier3,
			model:       engine.ModelHybrid,
			variant:     engine.HybridDHLToWG,
			noSecondHub: true,
			expected: []expectedLeg{
				{sender.Name, hub1.Name, engine.ModeDHL, 24},
				{hub1.Name, buyer.Name, engine.ModeWG, 4},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			segments := engine.GenerateTopology(topoInput(tt.tier, tt.model, tt.variant, tt.noSecondHub))
			assertLegs(t, segments, tt.expected)
		})
	}
}

func TestGenerateTopology_Deterministic(t *testing.T) {
	// GIVEN: tier 3, wg-full, second hub in play, named parties
	// WHEN: generating the topology twice
	// THEN: both runs produce exactly 3 segments in the same order with
	//       hours 4, 24, 4

	in := topoInput(engine.Tier3, engine.ModelWGFull, "", false)

	first := engine.GenerateTopology(in)
	second := engine.GenerateTopology(in)

	if len(first) != 3 || len(second) != 3 {
		t.Fatalf("expected 3 segments per run, got %d and %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Mode != second[i].Mode || first[i].Origin != second[i].Origin {
			t.Errorf("segment %d differs between runs", i)
		}
	}

	wantHours := []float64{4, 24, 4}
	for i, s := range first {
		if s.DurationHours.InexactFloat64() != wantHours[i] {
			t.Errorf("segment %d: expected %v hours, got %v", i, wantHours[i], s.DurationHours)
		}
	}
}

func TestGenerateTopology_DeparturesChain(t *testing.T) {
	// Departure of leg n+1 is the arrival of leg n; the first leg departs
	// at generation time.
	segments := engine.GenerateTopology(topoInput(engine.Tier3, engine.ModelWGFull, "", false))

	if !segments[0].Departure.Equal(genTime) {
		t.Errorf("first departure: expected %v, got %v", genTime, segments[0].Departure)
	}
	for i := 1; i < len(segments); i++ {
		if !segments[i].Departure.Equal(segments[i-1].Arrival) {
			t.Errorf("segment %d departure %v does not chain from previous arrival %v",
				i, segments[i].Departure, segments[i-1].Arrival)
		}
	}
}

func TestGenerateTopology_PlaceholderForUnnamedParty(t *testing.T) {
	// An unnamed hub still yields a segment; the label is a placeholder
	// for the advisory validator to flag. Generation never fails.
	in := topoInput(engine.Tier2, engine.ModelWGFull, "", false)
	in.Hub1 = engine.Party{Role: engine.RoleHub1}

	segments := engine.GenerateTopology(in)

	if len(segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(segments))
	}
	if segments[0].Destination != "TBD (hub1)" {
		t.Errorf("expected placeholder destination, got %q", segments[0].Destination)
	}
}

func TestGenerateTopology_DefaultProviders(t *testing.T) {
	// wg legs bill wg, dhl legs bill dhl, internal rollouts carry no
	// billed provider and fall through to per-item pricing.
	segments := engine.GenerateTopology(topoInput(engine.Tier3, engine.ModelWGFull, "", false))

	if segments[0].Provider != engine.ProviderWG {
		t.Errorf("expected wg provider on first leg, got %q", segments[0].Provider)
	}
	if segments[1].Provider != "" {
		t.Errorf("expected empty provider on internal leg, got %q", segments[1].Provider)
	}
	if _, ok := segments[1].Pricing.(engine.InternalPricing); !ok {
		t.Errorf("expected internal pricing on rollout leg, got %T", segments[1].Pricing)
	}
}
