package catalog

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/HasSanK911/AssuredID-Scanner/pkg/types"
)

// StaticProvider serves the fixed drug catalog. Entries are pre-validated;
// callers receive copies and cannot mutate the catalog.
type StaticProvider struct {
	items []types.LineItem
	byID  map[string]types.LineItem
}

// NewStaticProvider creates a provider with the built-in catalog
func NewStaticProvider() *StaticProvider {
	items := []types.LineItem{
		{ID: "1", Name: "Aspirin", Size: "100mg", Price: decimal.RequireFromString("5.99"), CurrencyCode: "USD"},
		{ID: "2", Name: "Ibuprofen", Size: "200mg", Price: decimal.RequireFromString("8.50"), CurrencyCode: "USD"},
		{ID: "3", Name: "Paracetamol", Size: "500mg", Price: decimal.RequireFromString("4.25"), CurrencyCode: "USD"},
		{ID: "4", Name: "Omeprazole", Size: "20mg", Price: decimal.RequireFromString("12.75"), CurrencyCode: "USD"},
		{ID: "5", Name: "Metformin", Size: "500mg", Price: decimal.RequireFromString("15.30"), CurrencyCode: "USD"},
		{ID: "6", Name: "Lisinopril", Size: "10mg", Price: decimal.RequireFromString("9.99"), CurrencyCode: "USD"},
	}

	byID := make(map[string]types.LineItem, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}

	return &StaticProvider{items: items, byID: byID}
}

// List returns all selectable drugs in catalog order
func (p *StaticProvider) List() []types.LineItem {
	out := make([]types.LineItem, len(p.items))
	copy(out, p.items)
	return out
}

// Get returns the catalog entry for the given ID
func (p *StaticProvider) Get(id string) (types.LineItem, error) {
	item, ok := p.byID[id]
	if !ok {
		return types.LineItem{}, fmt.Errorf("unknown drug ID: %s", id)
	}
	return item, nil
}
