/*
hubfee.go - Hub records and tier-dependent fee resolution

PURPOSE:
  Defines the hub record the directory service returns and resolves a
  selected hub pair + tier into a fee bundle (authentication, tag/NFC
  unit, sewing, QA). Resolution is a one-way seed: every resolved value
  pre-populates the mutable bundle and stays operator-editable; manual
  edits always win, with no reconciliation back to the directory.

RESOLUTION RULES:
  - authentication: always from hub1, tier-appropriate entry
  - tier 2:  tag-unit fee from hub1
  - tier 3:  NFC-unit fee from hub1; sewing + QA from hub2 when a second
             hub is in play, otherwise from hub1 (self-fulfilling both
             roles)

Hubs are looked up, never mutated, by this engine. A nil hub contributes
zero fees.
*/
package engine

// =============================================================================
// HUB RECORD - shape of the hub directory's response
// =============================================================================

// HubRole gates hub selection: hub1 candidates need the authenticator
// role, hub2 candidates the couturier role.
type HubRole string

const (
	HubRoleAuthenticator HubRole = "authenticator"
	HubRoleCouturier     HubRole = "couturier"
)

// HubPricing is the per-service price list of a hub. Missing entries
// default to zero.
type HubPricing struct {
	Tier2AuthFee Money  `json:"tier2_auth_fee"`
	TagUnitCost  Money  `json:"tag_unit_cost"`
	Tier3AuthFee Money  `json:"tier3_auth_fee"`
	NFCUnitCost  Money  `json:"nfc_unit_cost"`
	SewFee       Money  `json:"sew_fee"`
	QAFee        Money  `json:"qa_fee"`
	Currency     string `json:"currency"`
}

type Hub struct {
	ID      HubID      `json:"id"`
	Code    string     `json:"code"`
	Name    string     `json:"name"`
	Address Address    `json:"address"`
	Roles   []HubRole  `json:"roles"`
	Pricing HubPricing `json:"pricing"`
}

func (h Hub) HasRole(role HubRole) bool {
	for _, r := range h.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// PriceEntry is one row of a hub's displayable price list.
type PriceEntry struct {
	ServiceType string `json:"service_type"`
	ServiceName string `json:"service_name"`
	UnitPrice   Money  `json:"unit_price"`
	Currency    string `json:"currency"`
	Unit        string `json:"unit"`
}

// PriceList renders the flat pricing record as the ordered list the admin
// dashboard displays.
func (h Hub) PriceList() []PriceEntry {
	c := h.Pricing.Currency
	return []PriceEntry{
		{"authentication", "Tier 2 authentication", h.Pricing.Tier2AuthFee, c, "item"},
		{"authentication", "Tier 3 authentication", h.Pricing.Tier3AuthFee, c, "item"},
		{"tag", "Security tag unit", h.Pricing.TagUnitCost, c, "unit"},
		{"nfc", "NFC chip unit", h.Pricing.NFCUnitCost, c, "unit"},
		{"sewing", "Chip sewing", h.Pricing.SewFee, c, "item"},
		{"qa", "Quality assurance", h.Pricing.QAFee, c, "item"},
	}
}

// =============================================================================
// FEE BUNDLE
// =============================================================================

// FeeBundle holds the hub processing fees of a quote. Every field is a
// resolved default the operator may override.
type FeeBundle struct {
	Authentication Money `json:"authentication"`
	Sewing         Money `json:"sewing"`
	QA             Money `json:"qa"`
	TagUnit        Money `json:"tag_unit"`
	NFCUnit        Money `json:"nfc_unit"`
}

func (b FeeBundle) Total() Money {
	return b.Authentication.Add(b.Sewing).Add(b.QA).Add(b.TagUnit).Add(b.NFCUnit)
}

// =============================================================================
// RESOLUTION
// =============================================================================

// ResolveHubFees seeds a fee bundle from the selected hubs.
func ResolveHubFees(hub1, hub2 *Hub, tier Tier, noSecondHub bool) FeeBundle {
	var b FeeBundle
	if hub1 == nil {
		return b
	}

	switch tier {
	case Tier2:
		b.Authentication = hub1.Pricing.Tier2AuthFee
		b.TagUnit = hub1.Pricing.TagUnitCost
	case Tier3:
		b.Authentication = hub1.Pricing.Tier3AuthFee
		b.NFCUnit = hub1.Pricing.NFCUnitCost

		couturier := hub1
		if hub2 != nil && !noSecondHub {
			couturier = hub2
		}
		b.Sewing = couturier.Pricing.SewFee
		b.QA = couturier.Pricing.QAFee
	}
	return b
}
