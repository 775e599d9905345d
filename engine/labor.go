/*
labor.go - White-glove labor hours and cost

PURPOSE:
  Derives the labor component of a quote from the subset of legs using
  white-glove service: active hours (transport + conditional buffers),
  the regular/overtime split, and the per-diem allowance for routes that
  imply an overnight stay.

ALGORITHM:
  1. totalWGHours  = sum of duration over wg-mode segments
  2. bufferHours   = gated buffer terms (see below)
  3. activeHours   = totalWGHours + bufferHours
  4. split         = per-operator, identical for every operator:
                     regular = min(active, threshold)
                     overtime = max(0, active - threshold)
  5. baseCost      = regular x rate x operators
     overtimeCost  = overtime x rate x multiplier x operators
  6. per diem      = only when enabled AND active > 8h (overnight implied):
                     days = ceil(active / 24), cost = days x amount x operators
  7. totalCost     = base + overtime + per diem

BUFFER GATING:
  Each buffer term needs BOTH its toggle AND a topological precondition:
    airport:  any wg segment with flights > 0; adds minutes/60 per such segment
    train:    any wg segment with trains  > 0; adds minutes/60 per such segment
    transfer: more than one wg segment; adds minutes/60 per transition

  Cost scales by operator count; the hour split does not.

The breakdown is recomputed from scratch on every relevant input change.
A route with zero white-glove segments has an all-zero breakdown.
*/
package engine

import "github.com/shopspring/decimal"

var (
	sixty       = decimal.NewFromInt(60)
	eightHours  = decimal.NewFromInt(8)
	hoursPerDay = decimal.NewFromInt(24)
)

// =============================================================================
// SETTINGS
// =============================================================================

// LaborSettings are operator-editable session settings, seeded from the
// settings service defaults.
type LaborSettings struct {
	HourlyRate             Money           `json:"hourly_rate"`
	OvertimeThresholdHours decimal.Decimal `json:"overtime_threshold_hours"`
	OvertimeMultiplier     decimal.Decimal `json:"overtime_multiplier"`
	PerDiemEnabled         bool            `json:"per_diem_enabled"`
	PerDiemAmount          Money           `json:"per_diem_amount"`
	OperatorCount          int             `json:"operator_count"`

	AirportBufferEnabled  bool `json:"airport_buffer_enabled"`
	AirportCheckInMinutes int  `json:"airport_check_in_minutes"`
	TrainBufferEnabled    bool `json:"train_buffer_enabled"`
	TrainArrivalMinutes   int  `json:"train_arrival_minutes"`
	TransferBufferEnabled bool `json:"transfer_buffer_enabled"`
	TransferMinutes       int  `json:"transfer_minutes"`
}

// =============================================================================
// BREAKDOWN
// =============================================================================

// LaborBreakdown is derived, never persisted independently of its quote.
type LaborBreakdown struct {
	WGHours       decimal.Decimal `json:"wg_hours"`
	BufferHours   decimal.Decimal `json:"buffer_hours"`
	ActiveHours   decimal.Decimal `json:"active_hours"`
	RegularHours  decimal.Decimal `json:"regular_hours"`
	OvertimeHours decimal.Decimal `json:"overtime_hours"`
	BaseCost      Money           `json:"base_cost"`
	OvertimeCost  Money           `json:"overtime_cost"`
	PerDiemCost   Money           `json:"per_diem_cost"`
	TotalCost     Money           `json:"total_cost"`
}

// =============================================================================
// CALCULATION
// =============================================================================

// CalculateLabor derives the full labor breakdown for a segment list.
func CalculateLabor(segments []RouteSegment, settings LaborSettings) LaborBreakdown {
	var b LaborBreakdown

	wgSegments := 0
	flightSegments := 0
	trainSegments := 0
	for _, s := range segments {
		if s.Mode != ModeWG {
			continue
		}
		wgSegments++
		b.WGHours = b.WGHours.Add(s.DurationHours)
		if p, ok := s.WG(); ok {
			if p.Flights.IsPositive() {
				flightSegments++
			}
			if p.Trains.IsPositive() {
				trainSegments++
			}
		}
	}

	if settings.AirportBufferEnabled && flightSegments > 0 {
		b.BufferHours = b.BufferHours.Add(bufferTerm(settings.AirportCheckInMinutes, flightSegments))
	}
	if settings.TrainBufferEnabled && trainSegments > 0 {
		b.BufferHours = b.BufferHours.Add(bufferTerm(settings.TrainArrivalMinutes, trainSegments))
	}
	if settings.TransferBufferEnabled && wgSegments > 1 {
		b.BufferHours = b.BufferHours.Add(bufferTerm(settings.TransferMinutes, wgSegments-1))
	}

	b.ActiveHours = b.WGHours.Add(b.BufferHours)

	threshold := settings.OvertimeThresholdHours
	if b.ActiveHours.LessThanOrEqual(threshold) {
		b.RegularHours = b.ActiveHours
		b.OvertimeHours = decimal.Zero
	} else {
		b.RegularHours = threshold
		b.OvertimeHours = b.ActiveHours.Sub(threshold)
	}

	rate := settings.HourlyRate
	b.BaseCost = rate.Mul(b.RegularHours).MulInt(settings.OperatorCount)
	b.OvertimeCost = rate.Mul(b.OvertimeHours).Mul(settings.OvertimeMultiplier).MulInt(settings.OperatorCount)
	b.PerDiemCost = perDiemCost(b.ActiveHours, settings)
	b.TotalCost = b.BaseCost.Add(b.OvertimeCost).Add(b.PerDiemCost)
	return b
}

func bufferTerm(minutes, occurrences int) decimal.Decimal {
	return decimal.NewFromInt(int64(minutes)).
		Div(sixty).
		Mul(decimal.NewFromInt(int64(occurrences)))
}

// perDiemCost pays a flat daily allowance per operator, but only when the
// route implies an overnight stay (strictly more than 8 active hours).
// The day count is ceil(active/24); 8.01h is one day, 25h is two.
func perDiemCost(activeHours decimal.Decimal, settings LaborSettings) Money {
	if !settings.PerDiemEnabled || activeHours.LessThanOrEqual(eightHours) {
		return ZeroMoney()
	}
	days := activeHours.Div(hoursPerDay).Ceil()
	return settings.PerDiemAmount.Mul(days).MulInt(settings.OperatorCount)
}
