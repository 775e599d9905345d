/*
segment.go - Route segments and provider pricing variants

PURPOSE:
  Defines RouteSegment, the core transport unit of a quote, and the
  pricing variants attached to it. A segment carries exactly ONE pricing
  variant, selected by its service provider; the sealed SegmentPricing
  interface makes "exactly one variant populated" a compile-time shape
  rather than four optional fields.

PRICING VARIANTS:
  WGPricing:        flights + trains + ground + other breakdown
  DHLPricing:       carrier quote + service level
  ChauffeurPricing: quote + service level + vehicle type
  InternalPricing:  per-item cost x item count (hub-to-hub rollout)

DURATION INVARIANT:
  duration = max(0, round((arrival - departure) hours, 1))
  Recomputed whenever either timestamp changes. Timestamps are local
  wall-clock values; no timezone conversion is performed.

SERIALIZATION:
  Segments own their wire form. The pricing union is encoded with a
  "pricing_type" discriminator so quotes survive a JSON round trip
  through the store and the API.
*/
package engine

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =============================================================================
// PRICING VARIANTS - sealed union keyed by provider
// =============================================================================

// SegmentPricing is implemented only by the four variant types below.
type SegmentPricing interface {
	pricingType() string
}

// WGPricing is the white-glove sub-mode breakdown.
type WGPricing struct {
	Flights Money `json:"flights"`
	Trains  Money `json:"trains"`
	Ground  Money `json:"ground"`
	Other   Money `json:"other"`
}

// DHLPricing is a carrier quote.
type DHLPricing struct {
	Quote        Money  `json:"quote"`
	ServiceLevel string `json:"service_level"`
}

// ChauffeurPricing is a dedicated-vehicle quote.
type ChauffeurPricing struct {
	Quote        Money  `json:"quote"`
	ServiceLevel string `json:"service_level"`
	VehicleType  string `json:"vehicle_type"`
}

// InternalPricing bills an intra-network rollout per item.
type InternalPricing struct {
	PerItemCost Money `json:"per_item_cost"`
	ItemCount   int   `json:"item_count"`
}

func (WGPricing) pricingType() string        { return "wg" }
func (DHLPricing) pricingType() string       { return "dhl" }
func (ChauffeurPricing) pricingType() string { return "chauffeur" }
func (InternalPricing) pricingType() string  { return "internal" }

// Total sums the white-glove sub-modes.
func (p WGPricing) Total() Money {
	return p.Flights.Add(p.Trains).Add(p.Ground).Add(p.Other)
}

// ZeroPricingFor returns the empty variant matching a provider, or
// internal pricing for internal legs that have no billed provider.
func ZeroPricingFor(provider ServiceProvider, mode SegmentMode) SegmentPricing {
	switch provider {
	case ProviderChauffeur:
		return ChauffeurPricing{}
	case ProviderDHL:
		return DHLPricing{}
	case ProviderWG:
		return WGPricing{}
	}
	if mode == ModeInternal {
		return InternalPricing{ItemCount: 1}
	}
	return WGPricing{}
}

// =============================================================================
// ROUTE SEGMENT
// =============================================================================

type RouteSegment struct {
	ID          SegmentID
	Mode        SegmentMode
	Provider    ServiceProvider // may diverge from Mode; empty on internal legs
	Origin      string
	Destination string
	Departure   time.Time
	Arrival     time.Time
	// DurationHours is derived from the timestamps, one decimal place,
	// never negative.
	DurationHours decimal.Decimal
	Pricing       SegmentPricing
	Notes         string
	Attachments   []string // opaque to the engine
}

// NewSegment creates a segment departing at the given time with a default
// duration; the arrival is placed duration hours later and the pricing
// variant is zeroed for the provider.
func NewSegment(mode SegmentMode, provider ServiceProvider, origin, destination string, departure time.Time, durationHours int) RouteSegment {
	s := RouteSegment{
		ID:          SegmentID(uuid.NewString()),
		Mode:        mode,
		Provider:    provider,
		Origin:      origin,
		Destination: destination,
		Departure:   departure,
		Arrival:     departure.Add(time.Duration(durationHours) * time.Hour),
		Pricing:     ZeroPricingFor(provider, mode),
	}
	s.recomputeDuration()
	return s
}

// SetDeparture updates the departure and re-derives the duration.
func (s *RouteSegment) SetDeparture(t time.Time) {
	s.Departure = t
	s.recomputeDuration()
}

// SetArrival updates the arrival and re-derives the duration.
func (s *RouteSegment) SetArrival(t time.Time) {
	s.Arrival = t
	s.recomputeDuration()
}

func (s *RouteSegment) recomputeDuration() {
	hours := s.Arrival.Sub(s.Departure).Hours()
	if hours < 0 {
		hours = 0
	}
	s.DurationHours = decimal.NewFromFloat(hours).Round(1)
}

// WG returns the white-glove breakdown when that variant is attached.
func (s RouteSegment) WG() (WGPricing, bool) {
	p, ok := s.Pricing.(WGPricing)
	return p, ok
}

// =============================================================================
// SERIALIZATION - pricing union discriminator
// =============================================================================

type segmentJSON struct {
	ID            SegmentID       `json:"id"`
	Mode          SegmentMode     `json:"mode"`
	Provider      ServiceProvider `json:"provider,omitempty"`
	Origin        string          `json:"origin"`
	Destination   string          `json:"destination"`
	Departure     time.Time       `json:"departure"`
	Arrival       time.Time       `json:"arrival"`
	DurationHours decimal.Decimal `json:"duration_hours"`
	PricingType   string          `json:"pricing_type,omitempty"`
	Pricing       json.RawMessage `json:"pricing,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	Attachments   []string        `json:"attachments,omitempty"`
}

func (s RouteSegment) MarshalJSON() ([]byte, error) {
	out := segmentJSON{
		ID:            s.ID,
		Mode:          s.Mode,
		Provider:      s.Provider,
		Origin:        s.Origin,
		Destination:   s.Destination,
		Departure:     s.Departure,
		Arrival:       s.Arrival,
		DurationHours: s.DurationHours,
		Notes:         s.Notes,
		Attachments:   s.Attachments,
	}
	if s.Pricing != nil {
		raw, err := json.Marshal(s.Pricing)
		if err != nil {
			return nil, err
		}
		out.PricingType = s.Pricing.pricingType()
		out.Pricing = raw
	}
	return json.Marshal(out)
}

func (s *RouteSegment) UnmarshalJSON(b []byte) error {
	var in segmentJSON
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}
	*s = RouteSegment{
		ID:            in.ID,
		Mode:          in.Mode,
		Provider:      in.Provider,
		Origin:        in.Origin,
		Destination:   in.Destination,
		Departure:     in.Departure,
		Arrival:       in.Arrival,
		DurationHours: in.DurationHours,
		Notes:         in.Notes,
		Attachments:   in.Attachments,
	}
	if len(in.Pricing) == 0 {
		s.Pricing = ZeroPricingFor(in.Provider, in.Mode)
		return nil
	}
	pricing, err := decodePricing(in.PricingType, in.Pricing)
	if err != nil {
		return err
	}
	s.Pricing = pricing
	return nil
}

func decodePricing(kind string, raw json.RawMessage) (SegmentPricing, error) {
	switch kind {
	case "wg":
		var p WGPricing
		err := json.Unmarshal(raw, &p)
		return p, err
	case "dhl":
		var p DHLPricing
		err := json.Unmarshal(raw, &p)
		return p, err
	case "chauffeur":
		var p ChauffeurPricing
		err := json.Unmarshal(raw, &p)
		return p, err
	case "internal":
		var p InternalPricing
		err := json.Unmarshal(raw, &p)
		return p, err
	default:
		return nil, fmt.Errorf("unknown pricing type %q", kind)
	}
}
