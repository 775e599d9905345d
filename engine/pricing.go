/*
pricing.go - Cost aggregation and margin policy

PURPOSE:
  The last component in the pipeline. Sums transport + labor + hub fees +
  insurance into the internal cost, applies the margin policy, and
  back-computes the effective percentage for display.

MARGIN:
  percentage: marginAmount = totalCost x value / 100
  amount:     marginAmount = value (absolute)
  clientPrice = totalCost + marginAmount

  The effective percentage is always back-computed from the amount so
  both encodings display uniformly. With a zero total cost under an
  absolute margin the percentage is undefined; it is surfaced as nil
  (JSON null), never as NaN or a division panic.

Aggregation is idempotent: re-running it on unchanged inputs yields
bit-identical results.
*/
package engine

import "github.com/shopspring/decimal"

var oneHundred = decimal.NewFromInt(100)

// MarginPolicy is the operator-chosen margin encoding.
type MarginPolicy struct {
	Type  MarginType      `json:"type"`
	Value decimal.Decimal `json:"value"`
}

// PriceSummary is the aggregated output of the whole engine.
type PriceSummary struct {
	TransportCost Money `json:"transport_cost"`
	LaborCost     Money `json:"labor_cost"`
	HubFees       Money `json:"hub_fees"`
	Insurance     Money `json:"insurance"`
	TotalCost     Money `json:"total_cost"`
	MarginAmount  Money `json:"margin_amount"`
	ClientPrice   Money `json:"client_price"`
	// EffectiveMarginPercent is nil when undefined (zero cost under an
	// absolute margin).
	EffectiveMarginPercent *decimal.Decimal `json:"effective_margin_percent"`
}

// AggregatePrice combines the component totals under the margin policy.
func AggregatePrice(transport, labor, hubFees, insurance Money, margin MarginPolicy) PriceSummary {
	totalCost := transport.Add(labor).Add(hubFees).Add(insurance)

	var marginAmount Money
	switch margin.Type {
	case MarginAmount:
		marginAmount = Money{Value: margin.Value}
	default:
		marginAmount = Money{Value: totalCost.Value.Mul(margin.Value).Div(oneHundred)}
	}

	summary := PriceSummary{
		TransportCost: transport.Round2(),
		LaborCost:     labor.Round2(),
		HubFees:       hubFees.Round2(),
		Insurance:     insurance.Round2(),
		TotalCost:     totalCost.Round2(),
		MarginAmount:  marginAmount.Round2(),
		ClientPrice:   totalCost.Add(marginAmount).Round2(),
	}

	if !totalCost.IsZero() {
		pct := marginAmount.Value.Div(totalCost.Value).Mul(oneHundred).Round(2)
		summary.EffectiveMarginPercent = &pct
	}
	return summary
}

// InsuranceAmount applies the session insurance rate to the declared
// value. Rate is a fraction (0.01 = 1%).
func InsuranceAmount(declaredValue Money, rate decimal.Decimal) Money {
	amount := declaredValue.Mul(rate)
	if amount.IsNegative() {
		return ZeroMoney()
	}
	return amount
}
