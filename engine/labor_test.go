package engine_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/meridian/quote-engine/engine"
)

// =============================================================================
// TEST SETTINGS
// =============================================================================

func laborSettings() engine.LaborSettings {
	return engine.LaborSettings{
		HourlyRate:             engine.NewMoney(65),
		OvertimeThresholdHours: decimal.NewFromInt(8),
		OvertimeMultiplier:     decimal.NewFromFloat(1.5),
		PerDiemEnabled:         true,
		PerDiemAmount:          engine.NewMoney(120),
		OperatorCount:          1,
	}
}

// =============================================================================
// BUFFER GATING
// =============================================================================

func TestCalculateLabor_AirportBufferNeedsFlightsAndToggle(t *testing.T) {
	// GIVEN: one wg segment without flight spend
	// WHEN: the airport toggle is on
	// THEN: no airport buffer is added - the topological precondition
	//       (flights > 0) gates the term, not just the toggle

	settings := laborSettings()
	settings.AirportBufferEnabled = true
	settings.AirportCheckInMinutes = 90

	noFlights := []engine.RouteSegment{wgSegment(t, 4, engine.WGPricing{Ground: engine.NewMoney(120)})}
	b := engine.CalculateLabor(noFlights, settings)
	assert.True(t, b.BufferHours.IsZero(), "got %s buffer hours", b.BufferHours)

	// With flights=120 on the segment and 90-minute check-in, exactly
	// 1.5 buffer hours are added.
	withFlights := []engine.RouteSegment{wgSegment(t, 4, engine.WGPricing{Flights: engine.NewMoney(120)})}
	b = engine.CalculateLabor(withFlights, settings)
	assert.True(t, b.BufferHours.Equal(mustDec(t, "1.5")), "got %s buffer hours", b.BufferHours)
}

func TestCalculateLabor_AirportBufferNeedsToggle(t *testing.T) {
	settings := laborSettings()
	settings.AirportCheckInMinutes = 90 // toggle off

	segs := []engine.RouteSegment{wgSegment(t, 4, engine.WGPricing{Flights: engine.NewMoney(120)})}
	b := engine.CalculateLabor(segs, settings)

	assert.True(t, b.BufferHours.IsZero())
}

func TestCalculateLabor_BufferCountsPerQualifyingSegment(t *testing.T) {
	// Two flying segments, 60-minute check-in each: 2 buffer hours.
	settings := laborSettings()
	settings.AirportBufferEnabled = true
	settings.AirportCheckInMinutes = 60

	segs := []engine.RouteSegment{
		wgSegment(t, 4, engine.WGPricing{Flights: engine.NewMoney(200)}),
		wgSegment(t, 4, engine.WGPricing{Flights: engine.NewMoney(150)}),
	}
	b := engine.CalculateLabor(segs, settings)

	assert.True(t, b.BufferHours.Equal(mustDec(t, "2")), "got %s", b.BufferHours)
}

func TestCalculateLabor_TransferBufferNeedsMultipleWGSegments(t *testing.T) {
	settings := laborSettings()
	settings.TransferBufferEnabled = true
	settings.TransferMinutes = 45

	one := []engine.RouteSegment{wgSegment(t, 4, engine.WGPricing{})}
	assert.True(t, engine.CalculateLabor(one, settings).BufferHours.IsZero())

	// Three wg segments: two transitions, 1.5 hours.
	three := []engine.RouteSegment{
		wgSegment(t, 4, engine.WGPricing{}),
		wgSegment(t, 4, engine.WGPricing{}),
		wgSegment(t, 4, engine.WGPricing{}),
	}
	b := engine.CalculateLabor(three, settings)
	assert.True(t, b.BufferHours.Equal(mustDec(t, "1.5")), "got %s", b.BufferHours)
}

func TestCalculateLabor_TrainBuffer(t *testing.T) {
	settings := laborSettings()
	settings.TrainBufferEnabled = true
	settings.TrainArrivalMinutes = 30

	segs := []engine.RouteSegment{wgSegment(t, 3, engine.WGPricing{Trains: engine.NewMoney(95)})}
	b := engine.CalculateLabor(segs, settings)

	assert.True(t, b.BufferHours.Equal(mustDec(t, "0.5")), "got %s", b.BufferHours)
}

// =============================================================================
// OVERTIME SPLIT
// =============================================================================

func TestCalculateLabor_OvertimeSplit(t *testing.T) {
	tests := []struct {
		name             string
		activeHours      float64
		expectedRegular  string
		expectedOvertime string
	}{
		{"above threshold", 10, "8", "2"},
		{"below threshold", 6, "6", "0"},
		{"exactly at threshold", 8, "8", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := laborSettings()
			segs := []engine.RouteSegment{wgSegment(t, tt.activeHours, engine.WGPricing{})}

			b := engine.CalculateLabor(segs, settings)

			assert.True(t, b.RegularHours.Equal(mustDec(t, tt.expectedRegular)),
				"regular: got %s", b.RegularHours)
			assert.True(t, b.OvertimeHours.Equal(mustDec(t, tt.expectedOvertime)),
				"overtime: got %s", b.OvertimeHours)
		})
	}
}

func TestCalculateLabor_CostScalesByOperatorCountHoursDoNot(t *testing.T) {
	// 10 active hours, threshold 8, rate 65, multiplier 1.5, 2 operators:
	// base = 8 x 65 x 2 = 1040, overtime = 2 x 65 x 1.5 x 2 = 390.
	settings := laborSettings()
	settings.OperatorCount = 2

	segs := []engine.RouteSegment{wgSegment(t, 10, engine.WGPricing{})}
	b := engine.CalculateLabor(segs, settings)

	assert.True(t, b.RegularHours.Equal(mustDec(t, "8")), "hours stay per-operator")
	assertMoney(t, "1040", b.BaseCost)
	assertMoney(t, "390", b.OvertimeCost)
}

// =============================================================================
// PER DIEM
// =============================================================================

func TestCalculateLabor_PerDiemBoundary(t *testing.T) {
	tests := []struct {
		name        string
		activeHours float64
		expected    string
	}{
		{"8 hours implies no overnight", 8, "0"},
		{"just past 8 hours is one day", 8.1, "120"},
		{"25 hours is two days", 25, "240"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			segs := []engine.RouteSegment{wgSegment(t, tt.activeHours, engine.WGPricing{})}
			b := engine.CalculateLabor(segs, laborSettings())
			assertMoney(t, tt.expected, b.PerDiemCost)
		})
	}
}

func TestCalculateLabor_PerDiemDisabled(t *testing.T) {
	settings := laborSettings()
	settings.PerDiemEnabled = false

	segs := []engine.RouteSegment{wgSegment(t, 12, engine.WGPricing{})}
	b := engine.CalculateLabor(segs, settings)

	assertMoney(t, "0", b.PerDiemCost)
}

func TestCalculateLabor_PerDiemPerOperator(t *testing.T) {
	settings := laborSettings()
	settings.OperatorCount = 3

	segs := []engine.RouteSegment{wgSegment(t, 12, engine.WGPricing{})}
	b := engine.CalculateLabor(segs, settings)

	assertMoney(t, "360", b.PerDiemCost)
}

// =============================================================================
// EDGE CASES
// =============================================================================

func TestCalculateLabor_NoWGSegmentsIsAllZero(t *testing.T) {
	dhl := engine.NewSegment(engine.ModeDHL, engine.ProviderDHL, "A", "B", genTime, 24)
	dhl.Pricing = engine.DHLPricing{Quote: engine.NewMoney(80)}

	b := engine.CalculateLabor([]engine.RouteSegment{dhl}, laborSettings())

	assert.True(t, b.WGHours.IsZero())
	assert.True(t, b.ActiveHours.IsZero())
	assertMoney(t, "0", b.TotalCost)
}

func TestCalculateLabor_TotalIsBasePlusOvertimePlusPerDiem(t *testing.T) {
	// 10 hours: base 8x65=520, overtime 2x65x1.5=195, per diem 120.
	segs := []engine.RouteSegment{wgSegment(t, 10, engine.WGPricing{})}
	b := engine.CalculateLabor(segs, laborSettings())

	assertMoney(t, "520", b.BaseCost)
	assertMoney(t, "195", b.OvertimeCost)
	assertMoney(t, "120", b.PerDiemCost)
	assertMoney(t, "835", b.TotalCost)
}
