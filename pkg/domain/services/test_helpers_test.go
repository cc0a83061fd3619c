package services

import (
	"testing"

	"github.com/vsinha/polebom/pkg/domain/catalog"
	"github.com/vsinha/polebom/pkg/domain/entities"
)

func crossarmSelection(pairs map[entities.Attribute]string) entities.AttributeSelection {
	return entities.NewAttributeSelection(pairs)
}

func findItem(items []entities.LineItem, id string) (entities.LineItem, bool) {
	for _, it := range items {
		if it.ID == entities.PartNumber(id) {
			return it, true
		}
	}
	return entities.LineItem{}, false
}

func requireItem(t *testing.T, items []entities.LineItem, id string, qty int) entities.LineItem {
	t.Helper()
	it, ok := findItem(items, id)
	if !ok {
		t.Fatalf("Expected item %s in parts list, got %v", id, ids(items))
	}
	if it.Qty != entities.Quantity(qty) {
		t.Errorf("Expected %s qty %d, got %d", id, qty, it.Qty)
	}
	return it
}

func requireNoItem(t *testing.T, items []entities.LineItem, id string) {
	t.Helper()
	if _, ok := findItem(items, id); ok {
		t.Errorf("Expected no %s in parts list, got %v", id, ids(items))
	}
}

func ids(items []entities.LineItem) []entities.PartNumber {
	out := make([]entities.PartNumber, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func generateCrossarm(t *testing.T, selections entities.AttributeSelection, poleWidthMm int) []entities.LineItem {
	t.Helper()
	cat := catalog.Default()
	sizing, ok := NewBoltSizingResolver(cat).Resolve(selections, poleWidthMm)
	if !ok {
		t.Fatalf("Expected sizing to resolve for %v", selections)
	}
	return NewCrossarmGenerator(cat).Generate(selections, poleWidthMm, &sizing)
}
