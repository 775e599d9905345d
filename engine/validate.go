/*
validate.go - Advisory quote validation

PURPOSE:
  Flags missing or inconsistent inputs on an in-progress quote. Findings
  are purely advisory {message, severity} items for the operator UI;
  nothing here ever blocks computation or mutates the quote.
*/
package engine

import "fmt"

type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

type ValidationItem struct {
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// ValidateQuote inspects the quote shape and returns advisory findings.
func ValidateQuote(q *RouteQuote) []ValidationItem {
	var items []ValidationItem
	warn := func(format string, args ...interface{}) {
		items = append(items, ValidationItem{Message: fmt.Sprintf(format, args...), Severity: SeverityWarning})
	}
	info := func(format string, args ...interface{}) {
		items = append(items, ValidationItem{Message: fmt.Sprintf(format, args...), Severity: SeverityInfo})
	}

	if q.Sender.Name == "" {
		warn("sender has no name")
	}
	if q.Buyer.Name == "" {
		warn("buyer has no name")
	}
	if q.Tier >= Tier2 && (q.Hub1 == nil || q.Hub1.Name == "") {
		warn("tier %d requires an authenticator hub", q.Tier)
	}
	if q.Tier == Tier3 && !q.NoSecondHub && (q.Hub2 == nil || q.Hub2.Name == "") {
		warn("tier 3 with a second hub requires a couturier hub")
	}
	if q.Tier != Tier3 && q.NoSecondHub {
		info("no-second-hub flag has no effect below tier 3")
	}

	for i, s := range q.Segments {
		if s.Arrival.Before(s.Departure) {
			warn("segment %d (%s -> %s): arrival precedes departure", i+1, s.Origin, s.Destination)
		}
		if SegmentCost(s).IsZero() {
			info("segment %d (%s -> %s) has no price yet", i+1, s.Origin, s.Destination)
		}
	}

	if q.Tier >= Tier2 && q.Fees.Authentication.IsZero() {
		warn("authentication fee is zero")
	}
	if q.Margin.Value.IsNegative() {
		warn("margin is negative")
	}
	if q.DeclaredValue.IsZero() {
		info("declared value is zero; no insurance will be charged")
	}
	return items
}
