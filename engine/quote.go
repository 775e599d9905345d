/*
quote.go - The route quote aggregate

PURPOSE:
  RouteQuote is the aggregate root of a planning session. It owns the
  parties, the ordered segment list, the labor breakdown, the fee bundle,
  the margin, and the computed totals; sub-objects never outlive it.

LIFECYCLE:
  1. Constructed fresh from shipment + tier + service-model inputs;
     topology is generated, fees resolved, totals computed.
  2. Mutated in place as the operator edits segments, fees, margin.
     Every edit triggers a whole-object Recompute - no incremental state.
  3. Finalized once handed to the export/persistence boundary. A
     finalized quote rejects every edit with ErrQuoteFinalized.

REGENERATION:
  Regenerate re-derives the segment list from scratch at the current
  planning inputs, discarding operator edits wholesale. This is an
  intentional, non-reversible reset, not a merge.

RECOMPUTE PIPELINE:
  topology (already materialized) -> transport total + fee total ->
  labor breakdown (wg legs only) -> insurance -> pricing aggregator last.
*/
package engine

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// QuoteStatus tracks the quote lifecycle.
type QuoteStatus string

const (
	StatusDraft QuoteStatus = "draft"
	StatusFinal QuoteStatus = "final"
)

// SessionDefaults are read once per session from the settings service and
// seed the margin, currency, and insurance rate of new quotes.
type SessionDefaults struct {
	MarginPercentage decimal.Decimal `json:"margin_percentage"`
	Currency         string          `json:"currency"`
	InsuranceRate    decimal.Decimal `json:"insurance_rate"`
}

// =============================================================================
// AGGREGATE ROOT
// =============================================================================

type RouteQuote struct {
	ID QuoteID `json:"id"`

	// Planning inputs
	Tier        Tier          `json:"tier"`
	Model       ServiceModel  `json:"service_model"`
	Variant     HybridVariant `json:"hybrid_variant,omitempty"`
	NoSecondHub bool          `json:"no_second_hub"`

	// Parties. Hub parties are optional: tier 1 has none, hub2 only
	// exists on tier-3 routes with a second hub in play.
	Sender Party  `json:"sender"`
	Hub1   *Party `json:"hub1,omitempty"`
	Hub2   *Party `json:"hub2,omitempty"`
	Buyer  Party  `json:"buyer"`

	// Selected hub records (directory IDs; the address/fee data is
	// copied into the quote at resolution time).
	Hub1ID HubID `json:"hub1_id,omitempty"`
	Hub2ID HubID `json:"hub2_id,omitempty"`

	Segments []RouteSegment `json:"segments"`

	Settings LaborSettings  `json:"labor_settings"`
	Labor    LaborBreakdown `json:"labor"`

	Fees FeeBundle `json:"fees"`

	DeclaredValue Money           `json:"declared_value"`
	InsuranceRate decimal.Decimal `json:"insurance_rate"`

	Margin  MarginPolicy `json:"margin"`
	Summary PriceSummary `json:"summary"`

	SLAComment string      `json:"sla_comment,omitempty"`
	Currency   string      `json:"currency"`
	Status     QuoteStatus `json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PlanInput carries everything needed to open a planning session.
type PlanInput struct {
	Tier        Tier
	Model       ServiceModel
	Variant     HybridVariant
	NoSecondHub bool

	Sender Party
	Buyer  Party

	// Selected hubs; nil when the tier does not use them. Party records
	// for hub1/hub2 are derived from the hub addresses.
	Hub1 *Hub
	Hub2 *Hub

	DeclaredValue Money
	SLAComment    string

	Defaults SessionDefaults
	Labor    LaborSettings

	Now time.Time
}

// NewRouteQuote opens a planning session: generates the topology,
// resolves hub fee defaults, and computes the initial totals.
func NewRouteQuote(in PlanInput) (*RouteQuote, error) {
	if !in.Tier.Valid() || !in.Model.Valid() {
		return nil, ErrInvalidPlanInput
	}
	if in.Model == ModelHybrid && in.Variant != HybridWGToDHL && in.Variant != HybridDHLToWG {
		return nil, ErrInvalidPlanInput
	}

	now := in.Now
	if now.IsZero() {
		now = time.Now()
	}

	q := &RouteQuote{
		ID:            QuoteID(uuid.NewString()),
		Tier:          in.Tier,
		Model:         in.Model,
		Variant:       in.Variant,
		NoSecondHub:   in.NoSecondHub,
		Sender:        withRole(in.Sender, RoleSender),
		Buyer:         withRole(in.Buyer, RoleBuyer),
		DeclaredValue: in.DeclaredValue,
		SLAComment:    in.SLAComment,
		Settings:      in.Labor,
		InsuranceRate: in.Defaults.InsuranceRate,
		Currency:      in.Defaults.Currency,
		Margin:        MarginPolicy{Type: MarginPercentage, Value: in.Defaults.MarginPercentage},
		Status:        StatusDraft,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if in.Hub1 != nil {
		q.Hub1ID = in.Hub1.ID
		p := hubParty(*in.Hub1, RoleHub1)
		q.Hub1 = &p
	}
	if in.Hub2 != nil && in.Tier == Tier3 && !in.NoSecondHub {
		q.Hub2ID = in.Hub2.ID
		p := hubParty(*in.Hub2, RoleHub2)
		q.Hub2 = &p
	}

	q.GenerateSegments(now)
	q.Fees = ResolveHubFees(in.Hub1, in.Hub2, in.Tier, in.NoSecondHub)
	q.Recompute()
	return q, nil
}

func withRole(p Party, role PartyRole) Party {
	p.Role = role
	return p
}

// hubParty copies a hub's identity into a quote party. The address is
// copied by value so later directory edits never change issued quotes.
func hubParty(h Hub, role PartyRole) Party {
	return Party{Role: role, Name: h.Name, Address: h.Address}
}

// =============================================================================
// SEGMENT OPERATIONS
// =============================================================================

// topologyInput assembles the generator input from the current quote
// state. Missing hub parties become empty parties with the right role,
// which the generator turns into placeholder labels.
func (q *RouteQuote) topologyInput(now time.Time) TopologyInput {
	in := TopologyInput{
		Tier:        q.Tier,
		Model:       q.Model,
		Variant:     q.Variant,
		NoSecondHub: q.NoSecondHub,
		Sender:      q.Sender,
		Hub1:        Party{Role: RoleHub1},
		Hub2:        Party{Role: RoleHub2},
		Buyer:       q.Buyer,
		Now:         now,
	}
	if q.Hub1 != nil {
		in.Hub1 = *q.Hub1
	}
	if q.Hub2 != nil {
		in.Hub2 = *q.Hub2
	}
	return in
}

// GenerateSegments materializes the topology once, only into an empty
// segment list. Subsequent edits are operator-driven and never
// auto-regenerated.
func (q *RouteQuote) GenerateSegments(now time.Time) {
	if len(q.Segments) > 0 {
		return
	}
	q.Segments = GenerateTopology(q.topologyInput(now))
}

// Regenerate re-derives the segment list from scratch, discarding all
// operator edits. Explicit reset, no merge.
func (q *RouteQuote) Regenerate(now time.Time) error {
	if err := q.editable(); err != nil {
		return err
	}
	q.Segments = GenerateTopology(q.topologyInput(now))
	q.Recompute()
	return nil
}

// Segment returns a pointer into the segment list, or nil.
func (q *RouteQuote) Segment(id SegmentID) *RouteSegment {
	for i := range q.Segments {
		if q.Segments[i].ID == id {
			return &q.Segments[i]
		}
	}
	return nil
}

// SegmentEdit carries the operator-editable fields of a segment. Nil
// fields are left untouched.
type SegmentEdit struct {
	Provider    *ServiceProvider
	Pricing     SegmentPricing
	Departure   *time.Time
	Arrival     *time.Time
	Origin      *string
	Destination *string
	Notes       *string
	Attachments []string
}

// UpdateSegment applies an edit and recomputes the quote. Changing the
// provider without supplying pricing re-zeroes the variant to match.
func (q *RouteQuote) UpdateSegment(id SegmentID, edit SegmentEdit) error {
	if err := q.editable(); err != nil {
		return err
	}
	s := q.Segment(id)
	if s == nil {
		return ErrSegmentNotFound
	}

	if edit.Provider != nil && *edit.Provider != s.Provider {
		s.Provider = *edit.Provider
		if edit.Pricing == nil {
			s.Pricing = ZeroPricingFor(s.Provider, s.Mode)
		}
	}
	if edit.Pricing != nil {
		s.Pricing = edit.Pricing
	}
	if edit.Departure != nil {
		s.SetDeparture(*edit.Departure)
	}
	if edit.Arrival != nil {
		s.SetArrival(*edit.Arrival)
	}
	if edit.Origin != nil {
		s.Origin = *edit.Origin
	}
	if edit.Destination != nil {
		s.Destination = *edit.Destination
	}
	if edit.Notes != nil {
		s.Notes = *edit.Notes
	}
	if edit.Attachments != nil {
		s.Attachments = edit.Attachments
	}

	q.Recompute()
	return nil
}

// AddSegment appends an operator-created leg and recomputes.
func (q *RouteQuote) AddSegment(seg RouteSegment) error {
	if err := q.editable(); err != nil {
		return err
	}
	if seg.ID == "" {
		seg.ID = SegmentID(uuid.NewString())
	}
	if seg.Pricing == nil {
		seg.Pricing = ZeroPricingFor(seg.Provider, seg.Mode)
	}
	seg.SetArrival(seg.Arrival) // re-derive duration from the timestamps
	q.Segments = append(q.Segments, seg)
	q.Recompute()
	return nil
}

// RemoveSegment deletes a leg and recomputes.
func (q *RouteQuote) RemoveSegment(id SegmentID) error {
	if err := q.editable(); err != nil {
		return err
	}
	for i := range q.Segments {
		if q.Segments[i].ID == id {
			q.Segments = append(q.Segments[:i], q.Segments[i+1:]...)
			q.Recompute()
			return nil
		}
	}
	return ErrSegmentNotFound
}

// =============================================================================
// FEE / PRICING OPERATIONS
// =============================================================================

// OverrideFees replaces the fee bundle. Manual edits always win over
// resolved defaults; defaults are one-way seeds, not constraints.
func (q *RouteQuote) OverrideFees(fees FeeBundle) error {
	if err := q.editable(); err != nil {
		return err
	}
	q.Fees = fees
	q.Recompute()
	return nil
}

func (q *RouteQuote) SetMargin(margin MarginPolicy) error {
	if err := q.editable(); err != nil {
		return err
	}
	q.Margin = margin
	q.Recompute()
	return nil
}

func (q *RouteQuote) SetDeclaredValue(v Money) error {
	if err := q.editable(); err != nil {
		return err
	}
	q.DeclaredValue = v
	q.Recompute()
	return nil
}

func (q *RouteQuote) SetLaborSettings(settings LaborSettings) error {
	if err := q.editable(); err != nil {
		return err
	}
	q.Settings = settings
	q.Recompute()
	return nil
}

func (q *RouteQuote) SetSLAComment(comment string) error {
	if err := q.editable(); err != nil {
		return err
	}
	q.SLAComment = comment
	return nil
}

// =============================================================================
// RECOMPUTATION & LIFECYCLE
// =============================================================================

// Recompute re-runs the full pipeline from current inputs. Component
// order is free except that the aggregator runs last over fully-updated
// inputs.
func (q *RouteQuote) Recompute() {
	transport := TransportTotal(q.Segments)
	q.Labor = CalculateLabor(q.Segments, q.Settings)
	insurance := InsuranceAmount(q.DeclaredValue, q.InsuranceRate)
	q.Summary = AggregatePrice(transport, q.Labor.TotalCost, q.Fees.Total(), insurance, q.Margin)
}

// Finalize freezes the quote for the export/persistence boundary. The
// totals are recomputed one last time so the handed-off object has no
// pending derived fields.
func (q *RouteQuote) Finalize() error {
	if q.Status == StatusFinal {
		return ErrQuoteFinalized
	}
	q.Recompute()
	q.Status = StatusFinal
	return nil
}

func (q *RouteQuote) editable() error {
	if q.Status == StatusFinal {
		return ErrQuoteFinalized
	}
	return nil
}
