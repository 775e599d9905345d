// Package directory implements the hub directory service.
// It wraps a HubStore with the capability gating the planner relies on:
// hub1 slots require the authenticator role, hub2 slots the couturier
// role. Hubs are reference data - looked up, never mutated, by the
// quoting engine.
package directory

import (
	"context"
	"fmt"

	"github.com/meridian/quote-engine/engine"
)

// Directory provides role-gated hub lookups over a HubStore.
type Directory struct {
	store engine.HubStore
}

func New(store engine.HubStore) *Directory {
	return &Directory{store: store}
}

// Lookup returns a hub by ID.
func (d *Directory) Lookup(ctx context.Context, id engine.HubID) (*engine.Hub, error) {
	return d.store.GetHub(ctx, id)
}

// Authenticators returns the hubs eligible for the hub1 slot.
func (d *Directory) Authenticators(ctx context.Context) ([]engine.Hub, error) {
	return d.withRole(ctx, engine.HubRoleAuthenticator)
}

// Couturiers returns the hubs eligible for the hub2 slot.
func (d *Directory) Couturiers(ctx context.Context) ([]engine.Hub, error) {
	return d.withRole(ctx, engine.HubRoleCouturier)
}

func (d *Directory) withRole(ctx context.Context, role engine.HubRole) ([]engine.Hub, error) {
	hubs, err := d.store.ListHubs(ctx)
	if err != nil {
		return nil, err
	}
	var out []engine.Hub
	for _, h := range hubs {
		if h.HasRole(role) {
			out = append(out, h)
		}
	}
	return out, nil
}

// SelectPair resolves and role-checks the hub selection for a planning
// session. hub2ID may be empty; a missing second hub is a validation
// concern, not a lookup failure.
func (d *Directory) SelectPair(ctx context.Context, hub1ID, hub2ID engine.HubID) (*engine.Hub, *engine.Hub, error) {
	var hub1, hub2 *engine.Hub

	if hub1ID != "" {
		h, err := d.store.GetHub(ctx, hub1ID)
		if err != nil {
			return nil, nil, fmt.Errorf("hub1 %s: %w", hub1ID, err)
		}
		if !h.HasRole(engine.HubRoleAuthenticator) {
			return nil, nil, fmt.Errorf("hub1 %s: %w", hub1ID, engine.ErrMissingHubRole)
		}
		hub1 = h
	}

	if hub2ID != "" {
		h, err := d.store.GetHub(ctx, hub2ID)
		if err != nil {
			return nil, nil, fmt.Errorf("hub2 %s: %w", hub2ID, err)
		}
		if !h.HasRole(engine.HubRoleCouturier) {
			return nil, nil, fmt.Errorf("hub2 %s: %w", hub2ID, engine.ErrMissingHubRole)
		}
		hub2 = h
	}

	return hub1, hub2, nil
}
