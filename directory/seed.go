/*
seed.go - Seed hub networks for demos and tests

PURPOSE:
  Ready-to-load hub datasets. The European network mirrors the typical
  production setup: one flagship hub carrying both roles, one
  authentication-only satellite, one couturier atelier.

Prices are informational list prices in EUR; scenario loaders and tests
rely on these exact figures.
*/
package directory

import (
	"context"

	"github.com/meridian/quote-engine/engine"
)

// EuropeanNetwork returns the standard demo hub set.
func EuropeanNetwork() []engine.Hub {
	return []engine.Hub{
		{
			ID:   "hub-par",
			Code: "PAR",
			Name: "Paris Flagship Hub",
			Address: engine.Address{
				Name:       "Paris Flagship Hub",
				Street:     "12 Rue de la Paix",
				City:       "Paris",
				PostalCode: "75002",
				Country:    "FR",
			},
			Roles: []engine.HubRole{engine.HubRoleAuthenticator, engine.HubRoleCouturier},
			Pricing: engine.HubPricing{
				Tier2AuthFee: engine.NewMoney(150),
				TagUnitCost:  engine.NewMoney(12.50),
				Tier3AuthFee: engine.NewMoney(250),
				NFCUnitCost:  engine.NewMoney(18),
				SewFee:       engine.NewMoney(45),
				QAFee:        engine.NewMoney(30),
				Currency:     "EUR",
			},
		},
		{
			ID:   "hub-mil",
			Code: "MIL",
			Name: "Milan Authentication Hub",
			Address: engine.Address{
				Name:       "Milan Authentication Hub",
				Street:     "Via Montenapoleone 8",
				City:       "Milano",
				PostalCode: "20121",
				Country:    "IT",
			},
			Roles: []engine.HubRole{engine.HubRoleAuthenticator},
			Pricing: engine.HubPricing{
				Tier2AuthFee: engine.NewMoney(140),
				TagUnitCost:  engine.NewMoney(11),
				Tier3AuthFee: engine.NewMoney(230),
				NFCUnitCost:  engine.NewMoney(16.50),
				Currency:     "EUR",
			},
		},
		{
			ID:   "hub-lon",
			Code: "LON",
			Name: "London Atelier",
			Address: engine.Address{
				Name:       "London Atelier",
				Street:     "24 Savile Row",
				City:       "London",
				PostalCode: "W1S 3PR",
				Country:    "GB",
			},
			Roles: []engine.HubRole{engine.HubRoleCouturier},
			Pricing: engine.HubPricing{
				SewFee:   engine.NewMoney(55),
				QAFee:    engine.NewMoney(35),
				Currency: "EUR",
			},
		},
	}
}

// Seed saves a hub set into a store.
func Seed(ctx context.Context, store engine.HubStore, hubs []engine.Hub) error {
	for _, h := range hubs {
		if err := store.SaveHub(ctx, h); err != nil {
			return err
		}
	}
	return nil
}
