/*
Package engine provides the route planning and cost calculation core.

PURPOSE:
  This package contains the domain types and algorithms for quoting the
  shipment of high-value goods through a tiered hub network: route
  topology synthesis, per-segment transport pricing, white-glove labor
  derivation, hub fee resolution, and margin-based price aggregation.

KEY CONCEPTS IN THIS FILE (types.go):
  - Money: A monetary quantity backed by decimal.Decimal
  - Tier/ServiceModel/HybridVariant: Shipment handling inputs
  - SegmentMode/ServiceProvider: Dual-tagged transport leg classification
  - Address/Party: Route endpoints, copied by value into the quote

DESIGN PRINCIPLES:
  1. Determinism: Every calculation is a pure function of its inputs
  2. Precision: Uses decimal.Decimal to avoid floating-point errors
  3. Silent defaults: Missing pricing/hub data contributes zero, never fails
  4. Whole-object recomputation: No incremental state, no memoization

USAGE:
  quote := engine.NewRouteQuote(engine.PlanInput{
      Tier:  engine.Tier3,
      Model: engine.ModelWGFull,
      ...
  })
  quote.Recompute()

SEE ALSO:
  - segment.go: RouteSegment and its pricing variants
  - topology.go: Route synthesis rule table
  - labor.go: White-glove hours and labor cost
  - pricing.go: Cost aggregation and margin policy
*/
package engine

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// =============================================================================
// MONEY - Monetary quantity (single currency per quote)
// =============================================================================

type Money struct {
	Value decimal.Decimal
}

func NewMoney(value float64) Money {
	return Money{Value: decimal.NewFromFloat(value)}
}

func MoneyFromInt(value int) Money {
	return Money{Value: decimal.NewFromInt(int64(value))}
}

func ZeroMoney() Money {
	return Money{Value: decimal.Zero}
}

func MustParseMoney(s string) Money {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return ZeroMoney()
	}
	return Money{Value: d}
}

func (m Money) Add(o Money) Money              { return Money{Value: m.Value.Add(o.Value)} }
func (m Money) Sub(o Money) Money              { return Money{Value: m.Value.Sub(o.Value)} }
func (m Money) Mul(s decimal.Decimal) Money    { return Money{Value: m.Value.Mul(s)} }
func (m Money) MulInt(n int) Money             { return Money{Value: m.Value.Mul(decimal.NewFromInt(int64(n)))} }
func (m Money) Neg() Money                     { return Money{Value: m.Value.Neg()} }
func (m Money) IsZero() bool                   { return m.Value.IsZero() }
func (m Money) IsNegative() bool               { return m.Value.IsNegative() }
func (m Money) IsPositive() bool               { return m.Value.IsPositive() }
func (m Money) GreaterThan(o Money) bool       { return m.Value.GreaterThan(o.Value) }
func (m Money) LessThan(o Money) bool          { return m.Value.LessThan(o.Value) }
func (m Money) Round2() Money                  { return Money{Value: m.Value.Round(2)} }
func (m Money) String() string                 { return m.Value.StringFixed(2) }

func (m Money) MarshalJSON() ([]byte, error)  { return m.Value.MarshalJSON() }
func (m *Money) UnmarshalJSON(b []byte) error { return m.Value.UnmarshalJSON(b) }

// =============================================================================
// IDENTIFIERS
// =============================================================================

type QuoteID string
type SegmentID string
type HubID string

// =============================================================================
// SHIPMENT CLASSIFICATION
// =============================================================================

// Tier is the shipment handling level.
// 1 = direct delivery, 2 = single-hub authentication,
// 3 = two-hub authentication + tailoring.
type Tier int

const (
	Tier1 Tier = 1
	Tier2 Tier = 2
	Tier3 Tier = 3
)

func (t Tier) Valid() bool { return t >= Tier1 && t <= Tier3 }

// ServiceModel is the overall transport strategy.
type ServiceModel string

const (
	ModelWGFull  ServiceModel = "wg-full"  // white-glove on every billed leg
	ModelDHLFull ServiceModel = "dhl-full" // carrier on every billed leg
	ModelHybrid  ServiceModel = "hybrid"   // mixed, direction set by HybridVariant
)

func (m ServiceModel) Valid() bool {
	return m == ModelWGFull || m == ModelDHLFull || m == ModelHybrid
}

// HybridVariant selects the direction of a hybrid route.
// Required iff the service model is hybrid.
type HybridVariant string

const (
	HybridWGToDHL HybridVariant = "wg_to_dhl" // white-glove inbound, carrier outbound
	HybridDHLToWG HybridVariant = "dhl_to_wg" // carrier inbound, white-glove outbound
)

// =============================================================================
// SEGMENT CLASSIFICATION - dual tagging
// =============================================================================

// SegmentMode describes the topological role of a leg. It is assigned by
// the topology generator and describes what kind of leg this is.
type SegmentMode string

const (
	ModeWG       SegmentMode = "wg"
	ModeDHL      SegmentMode = "dhl"
	ModeInternal SegmentMode = "internal" // intra-network hub-to-hub rollout
)

// ServiceProvider describes who is billed for a leg. The operator may
// change it independently of the mode, so the two never collapse into one
// field. The cost calculator switches on provider, never on mode.
type ServiceProvider string

const (
	ProviderChauffeur ServiceProvider = "chauffeur"
	ProviderDHL       ServiceProvider = "dhl"
	ProviderWG        ServiceProvider = "wg"
)

// =============================================================================
// MARGIN
// =============================================================================

type MarginType string

const (
	MarginPercentage MarginType = "percentage"
	MarginAmount     MarginType = "amount"
)

// =============================================================================
// PARTIES
// =============================================================================

// PartyRole identifies a route endpoint. Hub2 exists only for tier 3
// routes with a second hub in play.
type PartyRole string

const (
	RoleSender PartyRole = "sender"
	RoleHub1   PartyRole = "hub1" // authenticator
	RoleHub2   PartyRole = "hub2" // couturier
	RoleBuyer  PartyRole = "buyer"
)

// Address has no identity beyond its content; it is copied by value into
// the quote so later directory edits never mutate issued quotes.
type Address struct {
	Name       string `json:"name"`
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

type Party struct {
	Role    PartyRole `json:"role"`
	Name    string    `json:"name"`
	Address Address   `json:"address"`
}

// Label returns the display name used on segment endpoints. A party with
// no name still produces a usable placeholder; the advisory validator
// flags it, the generator never fails on it.
func (p Party) Label() string {
	if p.Name != "" {
		return p.Name
	}
	return fmt.Sprintf("TBD (%s)", p.Role)
}
