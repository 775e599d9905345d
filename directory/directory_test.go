package directory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian/quote-engine/directory"
	"github.com/meridian/quote-engine/engine"
	"github.com/meridian/quote-engine/engine/store"
)

func seededDirectory(t *testing.T) *directory.Directory {
	t.Helper()
	mem := store.NewMemory()
	require.NoError(t, directory.Seed(context.Background(), mem, directory.EuropeanNetwork()))
	return directory.New(mem)
}

func TestDirectory_RoleGating(t *testing.T) {
	// The seed network: Paris holds both roles, Milan authenticates
	// only, London sews only.
	d := seededDirectory(t)
	ctx := context.Background()

	auths, err := d.Authenticators(ctx)
	require.NoError(t, err)
	couts, err := d.Couturiers(ctx)
	require.NoError(t, err)

	authCodes := hubCodes(auths)
	coutCodes := hubCodes(couts)

	assert.ElementsMatch(t, []string{"MIL", "PAR"}, authCodes)
	assert.ElementsMatch(t, []string{"LON", "PAR"}, coutCodes)
}

func hubCodes(hubs []engine.Hub) []string {
	out := make([]string, 0, len(hubs))
	for _, h := range hubs {
		out = append(out, h.Code)
	}
	return out
}

func TestDirectory_SelectPair(t *testing.T) {
	d := seededDirectory(t)
	ctx := context.Background()

	hub1, hub2, err := d.SelectPair(ctx, "hub-mil", "hub-lon")
	require.NoError(t, err)
	assert.Equal(t, "MIL", hub1.Code)
	assert.Equal(t, "LON", hub2.Code)
}

func TestDirectory_SelectPairRejectsWrongRoles(t *testing.T) {
	d := seededDirectory(t)
	ctx := context.Background()

	// London cannot authenticate.
	_, _, err := d.SelectPair(ctx, "hub-lon", "")
	assert.ErrorIs(t, err, engine.ErrMissingHubRole)

	// Milan cannot sew.
	_, _, err = d.SelectPair(ctx, "hub-par", "hub-mil")
	assert.ErrorIs(t, err, engine.ErrMissingHubRole)
}

func TestDirectory_SelectPairEmptyIDs(t *testing.T) {
	// Empty slots are legitimate: tier 1 uses no hubs at all, and a
	// missing hub2 is a validation finding, not a lookup failure.
	d := seededDirectory(t)

	hub1, hub2, err := d.SelectPair(context.Background(), "", "")
	require.NoError(t, err)
	assert.Nil(t, hub1)
	assert.Nil(t, hub2)
}

func TestDirectory_SelectPairUnknownHub(t *testing.T) {
	d := seededDirectory(t)

	_, _, err := d.SelectPair(context.Background(), "hub-nyc", "")
	assert.ErrorIs(t, err, engine.ErrHubNotFound)
}

func TestDirectory_LookupReturnsPricing(t *testing.T) {
	d := seededDirectory(t)

	h, err := d.Lookup(context.Background(), "hub-par")
	require.NoError(t, err)

	assert.Equal(t, "Paris Flagship Hub", h.Name)
	assert.False(t, h.Pricing.Tier2AuthFee.IsZero())
	assert.Len(t, h.PriceList(), 6)
}
