package render

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/csemotors/dealership/internal/core/ports"
)

// NavProvider builds the navigation model from the current classification
// list. A store failure degrades to a Home-only nav rather than failing the
// page.
type NavProvider struct {
	inventory ports.InventoryService
	log       zerolog.Logger
}

func NewNavProvider(inventory ports.InventoryService, log zerolog.Logger) *NavProvider {
	return &NavProvider{inventory: inventory, log: log}
}

func (p *NavProvider) Nav(ctx context.Context) []NavItem {
	nav := []NavItem{{Label: "Home", URL: "/"}}

	classifications, err := p.inventory.Classifications(ctx)
	if err != nil {
		p.log.Error().Err(err).Msg("building navigation failed")
		return nav
	}

	for _, c := range classifications {
		nav = append(nav, NavItem{Label: c.Name, URL: "/inv/type/" + c.ID})
	}
	return nav
}
