/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract, allowing:
  - Field renaming without breaking clients
  - API-specific validation
  - Version evolution

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data
  carriers. Quote-shape problems (missing parties, zero prices) are the
  advisory validator's job and never reject a request.

SEE ALSO:
  - handlers.go: Uses these types
  - factory/settings.go: SettingsJSON document served verbatim
*/
package api

import (
	"time"

	"github.com/meridian/quote-engine/engine"
)

// =============================================================================
// HUB TYPES
// =============================================================================

// HubDTO represents a hub in API responses.
type HubDTO struct {
	ID        string              `json:"id"`
	Code      string              `json:"code"`
	Name      string              `json:"name"`
	Address   engine.Address      `json:"address"`
	Roles     []engine.HubRole    `json:"roles"`
	Pricing   engine.HubPricing   `json:"pricing"`
	PriceList []engine.PriceEntry `json:"price_list"`
}

func toHubDTO(h engine.Hub) HubDTO {
	return HubDTO{
		ID:        string(h.ID),
		Code:      h.Code,
		Name:      h.Name,
		Address:   h.Address,
		Roles:     h.Roles,
		Pricing:   h.Pricing,
		PriceList: h.PriceList(),
	}
}

// CreateHubRequest creates or replaces a hub record.
type CreateHubRequest struct {
	ID      string            `json:"id"`
	Code    string            `json:"code"`
	Name    string            `json:"name"`
	Address engine.Address    `json:"address"`
	Roles   []engine.HubRole  `json:"roles"`
	Pricing engine.HubPricing `json:"pricing"`
}

// =============================================================================
// QUOTE TYPES
// =============================================================================

// CreateQuoteRequest opens a planning session.
type CreateQuoteRequest struct {
	Tier          int     `json:"tier"`
	ServiceModel  string  `json:"service_model"`
	HybridVariant string  `json:"hybrid_variant,omitempty"`
	NoSecondHub   bool    `json:"no_second_hub"`
	Hub1ID        string  `json:"hub1_id,omitempty"`
	Hub2ID        string  `json:"hub2_id,omitempty"`
	Sender        PartyIn `json:"sender"`
	Buyer         PartyIn `json:"buyer"`
	DeclaredValue float64 `json:"declared_value"`
	SLAComment    string  `json:"sla_comment,omitempty"`
}

type PartyIn struct {
	Name    string         `json:"name"`
	Address engine.Address `json:"address"`
}

// QuoteSummaryDTO is the listing row.
type QuoteSummaryDTO struct {
	ID          string    `json:"id"`
	Status      string    `json:"status"`
	Currency    string    `json:"currency"`
	TotalCost   string    `json:"total_cost"`
	ClientPrice string    `json:"client_price"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toQuoteSummaryDTO(rec engine.QuoteRecord) QuoteSummaryDTO {
	return QuoteSummaryDTO{
		ID:          string(rec.ID),
		Status:      string(rec.Status),
		Currency:    rec.Currency,
		TotalCost:   rec.TotalCost.String(),
		ClientPrice: rec.ClientPrice.String(),
		CreatedAt:   rec.CreatedAt,
		UpdatedAt:   rec.UpdatedAt,
	}
}

// QuoteDTO wraps the full quote with its advisory findings. The quote
// itself serializes through the engine's JSON form, pricing variants
// included.
type QuoteDTO struct {
	Quote      *engine.RouteQuote      `json:"quote"`
	Validation []engine.ValidationItem `json:"validation"`
}

// =============================================================================
// SEGMENT EDITS
// =============================================================================

// PricingIn is the wire form of a pricing variant; exactly one branch
// should be set, matching the provider.
type PricingIn struct {
	WG        *engine.WGPricing        `json:"wg,omitempty"`
	DHL       *engine.DHLPricing       `json:"dhl,omitempty"`
	Chauffeur *engine.ChauffeurPricing `json:"chauffeur,omitempty"`
	Internal  *engine.InternalPricing  `json:"internal,omitempty"`
}

func (p *PricingIn) toVariant() engine.SegmentPricing {
	if p == nil {
		return nil
	}
	switch {
	case p.WG != nil:
		return *p.WG
	case p.DHL != nil:
		return *p.DHL
	case p.Chauffeur != nil:
		return *p.Chauffeur
	case p.Internal != nil:
		return *p.Internal
	}
	return nil
}

// UpdateSegmentRequest carries operator edits; omitted fields stay as-is.
type UpdateSegmentRequest struct {
	Provider    *string    `json:"provider,omitempty"`
	Pricing     *PricingIn `json:"pricing,omitempty"`
	Departure   *time.Time `json:"departure,omitempty"`
	Arrival     *time.Time `json:"arrival,omitempty"`
	Origin      *string    `json:"origin,omitempty"`
	Destination *string    `json:"destination,omitempty"`
	Notes       *string    `json:"notes,omitempty"`
	Attachments []string   `json:"attachments,omitempty"`
}

// AddSegmentRequest appends an operator-created leg.
type AddSegmentRequest struct {
	Mode        string     `json:"mode"`
	Provider    string     `json:"provider,omitempty"`
	Origin      string     `json:"origin"`
	Destination string     `json:"destination"`
	Departure   time.Time  `json:"departure"`
	Arrival     time.Time  `json:"arrival"`
	Pricing     *PricingIn `json:"pricing,omitempty"`
	Notes       string     `json:"notes,omitempty"`
}

// =============================================================================
// FEES / PRICING EDITS
// =============================================================================

// UpdateFeesRequest replaces the whole fee bundle (resolved defaults are
// one-way seeds; the operator's numbers win).
type UpdateFeesRequest struct {
	Authentication float64 `json:"authentication"`
	Sewing         float64 `json:"sewing"`
	QA             float64 `json:"qa"`
	TagUnit        float64 `json:"tag_unit"`
	NFCUnit        float64 `json:"nfc_unit"`
}

// UpdatePricingRequest edits margin, declared value, and SLA comment.
// Omitted fields stay as-is.
type UpdatePricingRequest struct {
	MarginType    *string  `json:"margin_type,omitempty"`
	MarginValue   *float64 `json:"margin_value,omitempty"`
	DeclaredValue *float64 `json:"declared_value,omitempty"`
	SLAComment    *string  `json:"sla_comment,omitempty"`
}

// UpdateLaborRequest replaces the session labor settings.
type UpdateLaborRequest struct {
	Settings engine.LaborSettings `json:"settings"`
}

// =============================================================================
// SCENARIOS & ERRORS
// =============================================================================

type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type LoadScenarioRequest struct {
	ScenarioID string `json:"scenario_id"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
