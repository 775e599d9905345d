/*
Package sqlite provides a SQLite-backed implementation of the storage interfaces.

PURPOSE:
  Implements engine.Store (hubs, settings, quotes) using SQLite. In
  production, the same patterns apply to PostgreSQL - only minor SQL
  dialect differences.

KEY TABLES:
  hubs:     Hub directory records; price list stored as pricing_json
  settings: Singleton settings document (JSON, schema owned by factory)
  quotes:   Quote records; a few indexed columns for listings plus the
            full serialized quote as payload_json

FINALIZATION:
  quotes rows whose status is 'final' are read-only: SaveQuote refuses
  to overwrite them with engine.ErrQuoteFinalized. The draft -> final
  transition is an ordinary save carrying the final status.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. In production with PostgreSQL,
  database-level concurrency control handles this instead.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) for better concurrency:
  - Multiple readers don't block
  - Single writer at a time
  - Better crash recovery

USAGE:
  store, err := sqlite.New("./data/quotes.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper
  migration tool (golang-migrate, goose) with versioned migrations.

SEE ALSO:
  - engine/store.go: Interface definitions
  - engine/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/meridian/quote-engine/engine"
)

// Store implements engine.Store using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Hub directory
	CREATE TABLE IF NOT EXISTS hubs (
		id TEXT PRIMARY KEY,
		code TEXT NOT NULL,
		name TEXT NOT NULL,
		address_json TEXT NOT NULL,
		roles_json TEXT NOT NULL,
		pricing_json TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE UNIQUE INDEX IF NOT EXISTS idx_hubs_code ON hubs(code);

	-- Settings (singleton document, schema owned by the factory package)
	CREATE TABLE IF NOT EXISTS settings (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		config_json TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	-- Quotes
	CREATE TABLE IF NOT EXISTS quotes (
		id TEXT PRIMARY KEY,
		status TEXT NOT NULL DEFAULT 'draft',
		currency TEXT NOT NULL,
		total_cost TEXT NOT NULL,
		client_price TEXT NOT NULL,
		payload_json TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_quotes_status ON quotes(status);
	CREATE INDEX IF NOT EXISTS idx_quotes_created_at ON quotes(created_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Reset clears all data. Used by scenario loaders (dev/demo only).
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, table := range []string{"hubs", "settings", "quotes"} {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("reset %s: %w", table, err)
		}
	}
	return nil
}

// =============================================================================
// HUB STORE (engine.HubStore interface)
// =============================================================================

// SaveHub upserts a hub record.
func (s *Store) SaveHub(ctx context.Context, hub engine.Hub) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	addressJSON, err := json.Marshal(hub.Address)
	if err != nil {
		return fmt.Errorf("marshal hub address: %w", err)
	}
	rolesJSON, err := json.Marshal(hub.Roles)
	if err != nil {
		return fmt.Errorf("marshal hub roles: %w", err)
	}
	pricingJSON, err := json.Marshal(hub.Pricing)
	if err != nil {
		return fmt.Errorf("marshal hub pricing: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	query := `
		INSERT INTO hubs (id, code, name, address_json, roles_json, pricing_json, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			code = excluded.code,
			name = excluded.name,
			address_json = excluded.address_json,
			roles_json = excluded.roles_json,
			pricing_json = excluded.pricing_json,
			updated_at = excluded.updated_at
	`
	_, err = s.db.ExecContext(ctx, query,
		hub.ID, hub.Code, hub.Name,
		string(addressJSON), string(rolesJSON), string(pricingJSON),
		now, now,
	)
	return err
}

// GetHub returns a hub by ID.
func (s *Store) GetHub(ctx context.Context, id engine.HubID) (*engine.Hub, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx,
		`SELECT id, code, name, address_json, roles_json, pricing_json FROM hubs WHERE id = ?`, id)

	hub, err := scanHub(row)
	if err == sql.ErrNoRows {
		return nil, engine.ErrHubNotFound
	}
	if err != nil {
		return nil, err
	}
	return hub, nil
}

// ListHubs returns all hubs ordered by code.
func (s *Store) ListHubs(ctx context.Context) ([]engine.Hub, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, code, name, address_json, roles_json, pricing_json FROM hubs ORDER BY code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var hubs []engine.Hub
	for rows.Next() {
		hub, err := scanHub(rows)
		if err != nil {
			return nil, err
		}
		hubs = append(hubs, *hub)
	}
	return hubs, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanHub(row rowScanner) (*engine.Hub, error) {
	var hub engine.Hub
	var addressJSON, rolesJSON, pricingJSON string
	if err := row.Scan(&hub.ID, &hub.Code, &hub.Name, &addressJSON, &rolesJSON, &pricingJSON); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(addressJSON), &hub.Address); err != nil {
		return nil, fmt.Errorf("unmarshal hub address: %w", err)
	}
	if err := json.Unmarshal([]byte(rolesJSON), &hub.Roles); err != nil {
		return nil, fmt.Errorf("unmarshal hub roles: %w", err)
	}
	if err := json.Unmarshal([]byte(pricingJSON), &hub.Pricing); err != nil {
		return nil, fmt.Errorf("unmarshal hub pricing: %w", err)
	}
	return &hub, nil
}

// =============================================================================
// SETTINGS STORE (engine.SettingsStore interface)
// =============================================================================

// SaveSettings upserts the singleton settings document.
func (s *Store) SaveSettings(ctx context.Context, configJSON string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO settings (id, config_json, updated_at) VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			config_json = excluded.config_json,
			updated_at = excluded.updated_at
	`
	_, err := s.db.ExecContext(ctx, query, configJSON, time.Now().UTC().Format(time.RFC3339))
	return err
}

// LoadSettings returns the settings document.
func (s *Store) LoadSettings(ctx context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var configJSON string
	err := s.db.QueryRowContext(ctx, `SELECT config_json FROM settings WHERE id = 1`).Scan(&configJSON)
	if err == sql.ErrNoRows {
		return "", engine.ErrSettingsNotFound
	}
	if err != nil {
		return "", err
	}
	return configJSON, nil
}

// =============================================================================
// QUOTE STORE (engine.QuoteStore interface)
// =============================================================================

// SaveQuote upserts a quote record. Finalized rows are read-only.
func (s *Store) SaveQuote(ctx context.Context, rec engine.QuoteRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var status string
	err := s.db.QueryRowContext(ctx, `SELECT status FROM quotes WHERE id = ?`, rec.ID).Scan(&status)
	if err != nil && err != sql.ErrNoRows {
		return err
	}
	if err == nil && engine.QuoteStatus(status) == engine.StatusFinal {
		return engine.ErrQuoteFinalized
	}

	query := `
		INSERT INTO quotes (id, status, currency, total_cost, client_price, payload_json, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			status = excluded.status,
			currency = excluded.currency,
			total_cost = excluded.total_cost,
			client_price = excluded.client_price,
			payload_json = excluded.payload_json,
			updated_at = excluded.updated_at
	`
	_, err = s.db.ExecContext(ctx, query,
		rec.ID, rec.Status, rec.Currency,
		rec.TotalCost.Value.String(), rec.ClientPrice.Value.String(),
		rec.PayloadJSON,
		rec.CreatedAt.UTC().Format(time.RFC3339),
		rec.UpdatedAt.UTC().Format(time.RFC3339),
	)
	return err
}

// GetQuote returns a quote record by ID.
func (s *Store) GetQuote(ctx context.Context, id engine.QuoteID) (*engine.QuoteRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx,
		`SELECT id, status, currency, total_cost, client_price, payload_json, created_at, updated_at
		 FROM quotes WHERE id = ?`, id)

	rec, err := scanQuote(row)
	if err == sql.ErrNoRows {
		return nil, engine.ErrQuoteNotFound
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// ListQuotes returns all quote records, newest first.
func (s *Store) ListQuotes(ctx context.Context) ([]engine.QuoteRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, status, currency, total_cost, client_price, payload_json, created_at, updated_at
		 FROM quotes ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []engine.QuoteRecord
	for rows.Next() {
		rec, err := scanQuote(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, *rec)
	}
	return recs, rows.Err()
}

func scanQuote(row rowScanner) (*engine.QuoteRecord, error) {
	var rec engine.QuoteRecord
	var totalCost, clientPrice, createdAt, updatedAt string
	if err := row.Scan(&rec.ID, &rec.Status, &rec.Currency, &totalCost, &clientPrice,
		&rec.PayloadJSON, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	rec.TotalCost = engine.MustParseMoney(totalCost)
	rec.ClientPrice = engine.MustParseMoney(clientPrice)
	rec.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	rec.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &rec, nil
}
