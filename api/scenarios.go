/*
scenarios.go - Demo scenario loaders for testing and demonstrations

PURPOSE:

	Provides pre-built scenarios that populate the database with realistic
	data for testing and demos. Each scenario resets the database, seeds
	the European hub network and default settings, then builds a quote
	through the public engine operations.

AVAILABLE SCENARIOS:

	tier2-dhl:     Tier 2 carrier route, two DHL legs, tag + auth fees
	tier3-wg:      Tier 3 full white-glove with second hub and flights
	tier3-hybrid:  Tier 3 hybrid (white-glove inbound, carrier outbound)

HOW SCENARIOS WORK:
 1. Reset database (clear all data)
 2. Seed hubs and default settings
 3. Create a quote via the engine
 4. Apply a few operator edits (segment pricing, margins)

USAGE VIA API:

	POST /api/scenarios/load
	{"scenario_id": "tier3-wg"}

NOTE:

	Scenarios reset the database. Only use in development/demo
	environments.

SEE ALSO:
  - handlers.go: Handler context and persistence helpers
  - directory/seed.go: Hub datasets
*/
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/meridian/quote-engine/directory"
	"github.com/meridian/quote-engine/engine"
	"github.com/meridian/quote-engine/factory"
)

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

var scenarios = []ScenarioDTO{
	{
		ID:          "tier2-dhl",
		Name:        "Tier 2 Carrier",
		Description: "Single authentication hub, two DHL legs, tag + auth fees",
	},
	{
		ID:          "tier3-wg",
		Name:        "Tier 3 White-Glove",
		Description: "Two hubs, operator-escorted legs with flights, per diem in play",
	},
	{
		ID:          "tier3-hybrid",
		Name:        "Tier 3 Hybrid",
		Description: "White-glove inbound, internal rollout, carrier outbound",
	},
}

// resettable is satisfied by both store implementations.
type resettable interface {
	Reset(ctx context.Context) error
}

// =============================================================================
// SCENARIO HANDLERS
// =============================================================================

// ListScenarios returns the available demo scenarios.
// GET /api/scenarios
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scenarios)
}

// GetCurrentScenario returns the most recently loaded scenario ID.
// GET /api/scenarios/current
func (h *Handler) GetCurrentScenario(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"scenario_id": h.currentScenario})
}

// LoadScenario resets the database and loads a demo dataset.
// POST /api/scenarios/load
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req LoadScenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := h.resetStore(ctx); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset database", err)
		return
	}

	var err error
	switch req.ScenarioID {
	case "tier2-dhl":
		err = h.loadTier2DHLScenario(ctx)
	case "tier3-wg":
		err = h.loadTier3WGScenario(ctx)
	case "tier3-hybrid":
		err = h.loadTier3HybridScenario(ctx)
	default:
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Unknown scenario: %s", req.ScenarioID), nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load scenario", err)
		return
	}

	h.currentScenario = req.ScenarioID
	writeJSON(w, http.StatusOK, map[string]string{"scenario_id": req.ScenarioID, "status": "loaded"})
}

// ResetDatabase clears all data without loading a scenario.
// POST /api/scenarios/reset
func (h *Handler) ResetDatabase(w http.ResponseWriter, r *http.Request) {
	if err := h.resetStore(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset database", err)
		return
	}
	h.currentScenario = ""
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

func (h *Handler) resetStore(ctx context.Context) error {
	r, ok := h.Store.(resettable)
	if !ok {
		return fmt.Errorf("store does not support reset")
	}
	return r.Reset(ctx)
}

// =============================================================================
// SCENARIO LOADERS
// =============================================================================

// seedBase loads the hub network and default settings every scenario
// relies on.
func (h *Handler) seedBase(ctx context.Context) error {
	if err := directory.Seed(ctx, h.Store, directory.EuropeanNetwork()); err != nil {
		return fmt.Errorf("seed hubs: %w", err)
	}
	if err := h.Store.SaveSettings(ctx, factory.DefaultSettingsJSON()); err != nil {
		return fmt.Errorf("seed settings: %w", err)
	}
	return nil
}

func (h *Handler) buildQuote(ctx context.Context, in engine.PlanInput) (*engine.RouteQuote, error) {
	quote, err := engine.NewRouteQuote(in)
	if err != nil {
		return nil, err
	}
	if err := h.saveQuote(ctx, quote); err != nil {
		return nil, err
	}
	return quote, nil
}

func (h *Handler) loadTier2DHLScenario(ctx context.Context) error {
	if err := h.seedBase(ctx); err != nil {
		return err
	}

	hub1, err := h.Store.GetHub(ctx, "hub-par")
	if err != nil {
		return err
	}
	defaults, labor, err := h.sessionSettings(ctx)
	if err != nil {
		return err
	}

	quote, err := h.buildQuote(ctx, engine.PlanInput{
		Tier:   engine.Tier2,
		Model:  engine.ModelDHLFull,
		Sender: engine.Party{Name: "Galerie Fontaine", Address: engine.Address{City: "Lyon", Country: "FR"}},
		Buyer:  engine.Party{Name: "A. Okafor", Address: engine.Address{City: "Berlin", Country: "DE"}},
		Hub1:   hub1,
		// Keep insurance out of the demo numbers.
		DeclaredValue: engine.ZeroMoney(),
		Defaults:      defaults,
		Labor:         labor,
		Now:           time.Now(),
	})
	if err != nil {
		return err
	}

	// Price the two carrier legs.
	quotes := []float64{80, 90}
	for i, seg := range quote.Segments {
		if i >= len(quotes) {
			break
		}
		err := quote.UpdateSegment(seg.ID, engine.SegmentEdit{
			Pricing: engine.DHLPricing{Quote: engine.NewMoney(quotes[i]), ServiceLevel: "express"},
		})
		if err != nil {
			return err
		}
	}
	return h.saveQuote(ctx, quote)
}

func (h *Handler) loadTier3WGScenario(ctx context.Context) error {
	if err := h.seedBase(ctx); err != nil {
		return err
	}

	hub1, err := h.Store.GetHub(ctx, "hub-mil")
	if err != nil {
		return err
	}
	hub2, err := h.Store.GetHub(ctx, "hub-lon")
	if err != nil {
		return err
	}
	defaults, labor, err := h.sessionSettings(ctx)
	if err != nil {
		return err
	}

	quote, err := h.buildQuote(ctx, engine.PlanInput{
		Tier:          engine.Tier3,
		Model:         engine.ModelWGFull,
		Sender:        engine.Party{Name: "Casa Bellini", Address: engine.Address{City: "Firenze", Country: "IT"}},
		Buyer:         engine.Party{Name: "M. Ishikawa", Address: engine.Address{City: "Zurich", Country: "CH"}},
		Hub1:          hub1,
		Hub2:          hub2,
		DeclaredValue: engine.NewMoney(48000),
		Defaults:      defaults,
		Labor:         labor,
		Now:           time.Now(),
	})
	if err != nil {
		return err
	}

	// Operator prices the two white-glove legs; the first flies.
	for i, seg := range quote.Segments {
		if seg.Mode != engine.ModeWG {
			continue
		}
		pricing := engine.WGPricing{Ground: engine.NewMoney(120)}
		if i == 0 {
			pricing.Flights = engine.NewMoney(340)
		}
		if err := quote.UpdateSegment(seg.ID, engine.SegmentEdit{Pricing: pricing}); err != nil {
			return err
		}
	}
	return h.saveQuote(ctx, quote)
}

func (h *Handler) loadTier3HybridScenario(ctx context.Context) error {
	if err := h.seedBase(ctx); err != nil {
		return err
	}

	hub1, err := h.Store.GetHub(ctx, "hub-par")
	if err != nil {
		return err
	}
	defaults, labor, err := h.sessionSettings(ctx)
	if err != nil {
		return err
	}

	quote, err := h.buildQuote(ctx, engine.PlanInput{
		Tier:          engine.Tier3,
		Model:         engine.ModelHybrid,
		Variant:       engine.HybridWGToDHL,
		NoSecondHub:   true, // Paris fulfills both roles
		Sender:        engine.Party{Name: "Maison Verlaine", Address: engine.Address{City: "Paris", Country: "FR"}},
		Buyer:         engine.Party{Name: "S. Lindqvist", Address: engine.Address{City: "Stockholm", Country: "SE"}},
		Hub1:          hub1,
		DeclaredValue: engine.NewMoney(15500),
		Defaults:      defaults,
		Labor:         labor,
		Now:           time.Now(),
	})
	if err != nil {
		return err
	}

	for _, seg := range quote.Segments {
		var edit engine.SegmentEdit
		switch seg.Mode {
		case engine.ModeWG:
			edit.Pricing = engine.WGPricing{Trains: engine.NewMoney(95), Ground: engine.NewMoney(60)}
		case engine.ModeDHL:
			edit.Pricing = engine.DHLPricing{Quote: engine.NewMoney(110), ServiceLevel: "standard"}
		default:
			continue
		}
		if err := quote.UpdateSegment(seg.ID, edit); err != nil {
			return err
		}
	}
	return h.saveQuote(ctx, quote)
}
