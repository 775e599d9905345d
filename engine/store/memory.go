// Package store provides in-memory Store implementations (for testing/dev).
package store

import (
	"context"
	"sort"
	"sync"

	"github.com/meridian/quote-engine/engine"
)

// =============================================================================
// MEMORY STORE - In-memory implementation of engine.Store
// =============================================================================

type Memory struct {
	mu       sync.RWMutex
	hubs     map[engine.HubID]engine.Hub
	quotes   map[engine.QuoteID]engine.QuoteRecord
	settings string
	hasSet   bool
}

func NewMemory() *Memory {
	return &Memory{
		hubs:   make(map[engine.HubID]engine.Hub),
		quotes: make(map[engine.QuoteID]engine.QuoteRecord),
	}
}

// Reset clears all data. Used by scenario loaders.
func (m *Memory) Reset(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hubs = make(map[engine.HubID]engine.Hub)
	m.quotes = make(map[engine.QuoteID]engine.QuoteRecord)
	m.settings = ""
	m.hasSet = false
	return nil
}

// -----------------------------------------------------------------------------
// HubStore
// -----------------------------------------------------------------------------

func (m *Memory) SaveHub(_ context.Context, hub engine.Hub) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hubs[hub.ID] = hub
	return nil
}

func (m *Memory) GetHub(_ context.Context, id engine.HubID) (*engine.Hub, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	hub, ok := m.hubs[id]
	if !ok {
		return nil, engine.ErrHubNotFound
	}
	return &hub, nil
}

func (m *Memory) ListHubs(_ context.Context) ([]engine.Hub, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	hubs := make([]engine.Hub, 0, len(m.hubs))
	for _, h := range m.hubs {
		hubs = append(hubs, h)
	}
	sort.Slice(hubs, func(i, j int) bool { return hubs[i].Code < hubs[j].Code })
	return hubs, nil
}

// -----------------------------------------------------------------------------
// SettingsStore
// -----------------------------------------------------------------------------

func (m *Memory) SaveSettings(_ context.Context, configJSON string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings = configJSON
	m.hasSet = true
	return nil
}

func (m *Memory) LoadSettings(_ context.Context) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.hasSet {
		return "", engine.ErrSettingsNotFound
	}
	return m.settings, nil
}

// -----------------------------------------------------------------------------
// QuoteStore
// -----------------------------------------------------------------------------

func (m *Memory) SaveQuote(_ context.Context, rec engine.QuoteRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.quotes[rec.ID]; ok && existing.Status == engine.StatusFinal {
		return engine.ErrQuoteFinalized
	}
	m.quotes[rec.ID] = rec
	return nil
}

func (m *Memory) GetQuote(_ context.Context, id engine.QuoteID) (*engine.QuoteRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.quotes[id]
	if !ok {
		return nil, engine.ErrQuoteNotFound
	}
	return &rec, nil
}

func (m *Memory) ListQuotes(_ context.Context) ([]engine.QuoteRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	recs := make([]engine.QuoteRecord, 0, len(m.quotes))
	for _, r := range m.quotes {
		recs = append(recs, r)
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].CreatedAt.After(recs[j].CreatedAt) })
	return recs, nil
}
