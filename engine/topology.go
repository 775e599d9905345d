/*
topology.go - Route topology synthesis

PURPOSE:
  Expands (tier, service model, hybrid variant, second-hub flag) into the
  ordered list of transport legs between named parties. This is the rule
  table that decides which legs exist, in what order, under which mode,
  and with what default duration.

RULE TABLE (origin -> destination, mode, default hours):
  Tier 1:                 no segments (direct delivery, not leg-costed)
  Tier 2, wg-full:        sender->hub1 (wg,4), hub1->buyer (wg,4)
  Tier 2, dhl-full:       sender->hub1 (dhl,24), hub1->buyer (dhl,24)
  Tier 3, wg-full:        sender->hub1 (wg,4), [hub1->hub2 (internal,24),]
                          last-hub->buyer (wg,4)
  Tier 3, dhl-full:       same shape with dhl (24) legs
  Tier 3, wg_to_dhl:      wg inbound, [internal,] dhl terminal
  Tier 3, dhl_to_wg:      dhl inbound, [internal,] wg terminal
  The internal leg appears only when a second hub is in play
  (tier 3 and the no-second-hub flag is false).

TIMING:
  The first leg departs at generation time; each following leg departs at
  the previous leg's arrival.

DETERMINISM:
  Synthesis is a pure function of its input. It never fails: a missing
  party name becomes a placeholder label for the external validator to
  flag. Generation is one-shot - it runs into an empty segment list, and
  an explicit regenerate discards operator edits wholesale rather than
  attempting a merge.
*/
package engine

import "time"

// Default leg durations in hours.
const (
	defaultWGHours       = 4
	defaultDHLHours      = 24
	defaultInternalHours = 24
)

// TopologyInput carries everything the generator needs. Now anchors the
// first departure so synthesis stays reproducible in tests.
type TopologyInput struct {
	Tier        Tier
	Model       ServiceModel
	Variant     HybridVariant // required iff Model == ModelHybrid
	NoSecondHub bool          // tier-3 only, ignored otherwise
	Sender      Party
	Hub1        Party
	Hub2        Party
	Buyer       Party
	Now         time.Time
}

// leg is one row of the rule table before materialization.
type leg struct {
	from  Party
	to    Party
	mode  SegmentMode
	hours int
}

// GenerateTopology expands the rule table into ordered route segments
// with mode and provider pre-assigned and pricing variants zeroed.
func GenerateTopology(in TopologyInput) []RouteSegment {
	legs := planLegs(in)
	if len(legs) == 0 {
		return nil
	}

	segments := make([]RouteSegment, 0, len(legs))
	departure := in.Now
	for _, l := range legs {
		seg := NewSegment(l.mode, defaultProviderFor(l.mode), l.from.Label(), l.to.Label(), departure, l.hours)
		segments = append(segments, seg)
		departure = seg.Arrival
	}
	return segments
}

func planLegs(in TopologyInput) []leg {
	switch in.Tier {
	case Tier2:
		mode, hours := modelLeg(in.Model, in.Variant, false)
		return []leg{
			{in.Sender, in.Hub1, mode, hours},
			{in.Hub1, in.Buyer, mode, hours},
		}
	case Tier3:
		inMode, inHours := modelLeg(in.Model, in.Variant, false)
		outMode, outHours := modelLeg(in.Model, in.Variant, true)

		lastHub := in.Hub1
		var legs []leg
		legs = append(legs, leg{in.Sender, in.Hub1, inMode, inHours})
		if !in.NoSecondHub {
			legs = append(legs, leg{in.Hub1, in.Hub2, ModeInternal, defaultInternalHours})
			lastHub = in.Hub2
		}
		legs = append(legs, leg{lastHub, in.Buyer, outMode, outHours})
		return legs
	default:
		// Tier 1 delivers direct; leg costing is out of scope.
		return nil
	}
}

// modelLeg resolves the mode and default duration of a billed leg.
// terminal distinguishes the outbound leg of a hybrid route.
func modelLeg(model ServiceModel, variant HybridVariant, terminal bool) (SegmentMode, int) {
	switch model {
	case ModelDHLFull:
		return ModeDHL, defaultDHLHours
	case ModelHybrid:
		wgFirst := variant != HybridDHLToWG
		if wgFirst != terminal {
			return ModeWG, defaultWGHours
		}
		return ModeDHL, defaultDHLHours
	default:
		return ModeWG, defaultWGHours
	}
}

// defaultProviderFor maps a topological role to the provider billed by
// default. Internal rollouts carry no billed provider; their cost falls
// through to the per-item variant.
func defaultProviderFor(mode SegmentMode) ServiceProvider {
	switch mode {
	case ModeWG:
		return ProviderWG
	case ModeDHL:
		return ProviderDHL
	default:
		return ""
	}
}
