/*
store.go - Persistence interfaces for hubs, settings, and quotes

PURPOSE:
  Defines the interface between the engine and the database. Different
  implementations can use SQLite or in-memory storage; the engine itself
  never touches a driver.

KEY INTERFACES:
  HubStore:      Hub directory records
  SettingsStore: Singleton settings document (JSON, parsed by factory)
  QuoteStore:    Quote records with the serialized quote payload

FINALIZATION CONTRACT:
  A finalized quote is read-only. Stores enforce this at the write path:
  saving over a record whose persisted status is final returns
  ErrQuoteFinalized. The draft -> final transition itself is an ordinary
  save carrying the final status.

IMPLEMENTATIONS:
  - store/sqlite/sqlite.go: Production SQLite
  - engine/store/memory.go: In-memory for testing
*/
package engine

import (
	"context"
	"time"
)

// =============================================================================
// HUB DIRECTORY
// =============================================================================

type HubStore interface {
	SaveHub(ctx context.Context, hub Hub) error
	GetHub(ctx context.Context, id HubID) (*Hub, error)
	ListHubs(ctx context.Context) ([]Hub, error)
}

// =============================================================================
// SETTINGS
// =============================================================================

// SettingsStore persists the single settings document as JSON. The
// factory package owns the schema; the store treats it as opaque.
type SettingsStore interface {
	SaveSettings(ctx context.Context, configJSON string) error
	LoadSettings(ctx context.Context) (string, error)
}

// =============================================================================
// QUOTES
// =============================================================================

// QuoteRecord is the persisted form of a quote: a few indexed columns for
// listings plus the full serialized quote.
type QuoteRecord struct {
	ID          QuoteID
	Status      QuoteStatus
	Currency    string
	TotalCost   Money
	ClientPrice Money
	PayloadJSON string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type QuoteStore interface {
	// SaveQuote upserts a record. Returns ErrQuoteFinalized when the
	// persisted record is already final.
	SaveQuote(ctx context.Context, rec QuoteRecord) error

	GetQuote(ctx context.Context, id QuoteID) (*QuoteRecord, error)

	// ListQuotes returns records ordered by creation time, newest first.
	ListQuotes(ctx context.Context) ([]QuoteRecord, error)
}

// Store bundles the three persistence concerns; both the SQLite and the
// in-memory implementations satisfy it.
type Store interface {
	HubStore
	SettingsStore
	QuoteStore
}
