/*
Package factory provides JSON to Go settings conversion.

PURPOSE:
  Converts the JSON settings document into engine defaults and labor
  settings. This enables settings changes without code changes - admins
  edit the document via the API, and the factory produces the proper Go
  structs that seed every new planning session.

JSON SCHEMA:
  {
    "defaults": {
      "margin_percentage": 30,
      "currency": "EUR",
      "insurance_rate": 0.01
    },
    "labor": {
      "hourly_rate": 65,
      "overtime_threshold_hours": 8,
      "overtime_multiplier": 1.5,
      "per_diem_enabled": true,
      "per_diem_amount": 120,
      "operator_count": 1,
      "airport_buffer_enabled": true,
      "airport_check_in_minutes": 90,
      "train_buffer_enabled": true,
      "train_arrival_minutes": 30,
      "transfer_buffer_enabled": true,
      "transfer_minutes": 45
    }
  }

KEY FEATURES:
  - Validates JSON structure
  - Fills sensible defaults for omitted fields
  - Round-trips through the settings store unchanged

USAGE:
  f := factory.NewSettingsFactory()
  defaults, labor, err := f.Parse(jsonString)

SEE ALSO:
  - engine/quote.go: SessionDefaults consumption
  - engine/labor.go: LaborSettings consumption
  - store/sqlite/sqlite.go: Persists the raw document
*/
package factory

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/meridian/quote-engine/engine"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

type SettingsJSON struct {
	Defaults DefaultsJSON `json:"defaults"`
	Labor    LaborJSON    `json:"labor"`
}

type DefaultsJSON struct {
	MarginPercentage *float64 `json:"margin_percentage,omitempty"`
	Currency         string   `json:"currency,omitempty"`
	InsuranceRate    *float64 `json:"insurance_rate,omitempty"`
}

type LaborJSON struct {
	HourlyRate             *float64 `json:"hourly_rate,omitempty"`
	OvertimeThresholdHours *float64 `json:"overtime_threshold_hours,omitempty"`
	OvertimeMultiplier     *float64 `json:"overtime_multiplier,omitempty"`
	PerDiemEnabled         *bool    `json:"per_diem_enabled,omitempty"`
	PerDiemAmount          *float64 `json:"per_diem_amount,omitempty"`
	OperatorCount          *int     `json:"operator_count,omitempty"`
	AirportBufferEnabled   *bool    `json:"airport_buffer_enabled,omitempty"`
	AirportCheckInMinutes  *int     `json:"airport_check_in_minutes,omitempty"`
	TrainBufferEnabled     *bool    `json:"train_buffer_enabled,omitempty"`
	TrainArrivalMinutes    *int     `json:"train_arrival_minutes,omitempty"`
	TransferBufferEnabled  *bool    `json:"transfer_buffer_enabled,omitempty"`
	TransferMinutes        *int     `json:"transfer_minutes,omitempty"`
}

// =============================================================================
// FACTORY
// =============================================================================

type SettingsFactory struct{}

func NewSettingsFactory() *SettingsFactory {
	return &SettingsFactory{}
}

// Parse converts a settings document into engine types, filling defaults
// for omitted fields.
func (f *SettingsFactory) Parse(configJSON string) (engine.SessionDefaults, engine.LaborSettings, error) {
	var doc SettingsJSON
	if err := json.Unmarshal([]byte(configJSON), &doc); err != nil {
		return engine.SessionDefaults{}, engine.LaborSettings{}, fmt.Errorf("parse settings: %w", err)
	}

	defaults := engine.SessionDefaults{
		MarginPercentage: decimal.NewFromFloat(floatOr(doc.Defaults.MarginPercentage, 30)),
		Currency:         stringOr(doc.Defaults.Currency, "EUR"),
		InsuranceRate:    decimal.NewFromFloat(floatOr(doc.Defaults.InsuranceRate, 0.01)),
	}

	labor := engine.LaborSettings{
		HourlyRate:             engine.NewMoney(floatOr(doc.Labor.HourlyRate, 65)),
		OvertimeThresholdHours: decimal.NewFromFloat(floatOr(doc.Labor.OvertimeThresholdHours, 8)),
		OvertimeMultiplier:     decimal.NewFromFloat(floatOr(doc.Labor.OvertimeMultiplier, 1.5)),
		PerDiemEnabled:         boolOr(doc.Labor.PerDiemEnabled, true),
		PerDiemAmount:          engine.NewMoney(floatOr(doc.Labor.PerDiemAmount, 120)),
		OperatorCount:          intOr(doc.Labor.OperatorCount, 1),
		AirportBufferEnabled:   boolOr(doc.Labor.AirportBufferEnabled, true),
		AirportCheckInMinutes:  intOr(doc.Labor.AirportCheckInMinutes, 90),
		TrainBufferEnabled:     boolOr(doc.Labor.TrainBufferEnabled, true),
		TrainArrivalMinutes:    intOr(doc.Labor.TrainArrivalMinutes, 30),
		TransferBufferEnabled:  boolOr(doc.Labor.TransferBufferEnabled, true),
		TransferMinutes:        intOr(doc.Labor.TransferMinutes, 45),
	}

	return defaults, labor, nil
}

// Render serializes a settings document for storage.
func (f *SettingsFactory) Render(doc SettingsJSON) (string, error) {
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("render settings: %w", err)
	}
	return string(b), nil
}

// DefaultSettingsJSON is the document stored on first boot.
func DefaultSettingsJSON() string {
	return `{
  "defaults": {
    "margin_percentage": 30,
    "currency": "EUR",
    "insurance_rate": 0.01
  },
  "labor": {
    "hourly_rate": 65,
    "overtime_threshold_hours": 8,
    "overtime_multiplier": 1.5,
    "per_diem_enabled": true,
    "per_diem_amount": 120,
    "operator_count": 1,
    "airport_buffer_enabled": true,
    "airport_check_in_minutes": 90,
    "train_buffer_enabled": true,
    "train_arrival_minutes": 30,
    "transfer_buffer_enabled": true,
    "transfer_minutes": 45
  }
}`
}

// =============================================================================
// DEFAULT HELPERS
// =============================================================================

func floatOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

func intOr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

func stringOr(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
