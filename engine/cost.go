/*
cost.go - Per-segment transport cost

PURPOSE:
  Prices a single route segment under its provider cost model. The switch
  is on the service PROVIDER, not the mode: the operator may re-bill a
  generated leg to a different provider, and billing follows the provider
  tag.

COST MODELS:
  chauffeur -> flat quote
  dhl       -> flat quote
  wg        -> flights + trains + ground + other
  fallback  -> internal rollout priced per item (mode == internal)

A segment whose pricing variant does not match its provider contributes
zero; missing data is a silent default here, surfaced to the operator
only through visibly low totals.
*/
package engine

// SegmentCost computes the non-negative cost of one segment. Pure and
// order-independent.
func SegmentCost(s RouteSegment) Money {
	cost := rawSegmentCost(s)
	if cost.IsNegative() {
		return ZeroMoney()
	}
	return cost
}

func rawSegmentCost(s RouteSegment) Money {
	switch s.Provider {
	case ProviderChauffeur:
		if p, ok := s.Pricing.(ChauffeurPricing); ok {
			return p.Quote
		}
	case ProviderDHL:
		if p, ok := s.Pricing.(DHLPricing); ok {
			return p.Quote
		}
	case ProviderWG:
		if p, ok := s.Pricing.(WGPricing); ok {
			return p.Total()
		}
	}
	if p, ok := s.Pricing.(InternalPricing); ok && s.Mode == ModeInternal {
		return p.PerItemCost.MulInt(p.ItemCount)
	}
	return ZeroMoney()
}

// TransportTotal sums segment costs over the whole route.
func TransportTotal(segments []RouteSegment) Money {
	total := ZeroMoney()
	for _, s := range segments {
		total = total.Add(SegmentCost(s))
	}
	return total
}
