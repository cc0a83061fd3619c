package services

import (
	"sort"

	"github.com/vsinha/polebom/pkg/domain/entities"
)

// AggregationEngine merges the parts lists of every component in a session
type AggregationEngine struct{}

// NewAggregationEngine creates an aggregation engine
func NewAggregationEngine() *AggregationEngine {
	return &AggregationEngine{}
}

// Aggregate sums quantities per identifier across components, then groups by
// category in canonical order. Bolt categories are sorted by embedded size,
// longest first; every other category keeps first-seen order.
//
// The first occurrence of an identifier fixes its name and category. A later
// occurrence that disagrees is a producer defect and is reported as an
// *entities.AggregationConflictError; nothing is merged in that case.
func (e *AggregationEngine) Aggregate(components []entities.ConfiguredComponent) (*entities.PickList, error) {
	merged := make(map[entities.PartNumber]*entities.LineItem)
	var order []entities.PartNumber
	var conflicts []entities.Conflict

	for _, component := range components {
		for _, it := range component.LineItems {
			existing, ok := merged[it.ID]
			if !ok {
				copied := it
				merged[it.ID] = &copied
				order = append(order, it.ID)
				continue
			}
			if existing.Name != it.Name || existing.Category != it.Category {
				conflicts = append(conflicts, entities.Conflict{
					ID:               it.ID,
					FirstName:        existing.Name,
					FirstCategory:    existing.Category,
					ConflictName:     it.Name,
					ConflictCategory: it.Category,
					ComponentSeq:     component.Sequence,
				})
				continue
			}
			existing.Qty += it.Qty
		}
	}

	if len(conflicts) > 0 {
		return nil, &entities.AggregationConflictError{Conflicts: conflicts}
	}

	byCategory := make(map[entities.Category][]entities.LineItem)
	var unknown []entities.Category
	for _, id := range order {
		it := *merged[id]
		if _, seen := byCategory[it.Category]; !seen && it.Category.Rank() == len(entities.CategoryOrder) {
			unknown = append(unknown, it.Category)
		}
		byCategory[it.Category] = append(byCategory[it.Category], it)
	}

	list := &entities.PickList{ComponentCount: len(components)}
	for _, category := range append(append([]entities.Category(nil), entities.CategoryOrder...), unknown...) {
		items, ok := byCategory[category]
		if !ok {
			continue
		}
		if category.IsBoltCategory() {
			sortBoltsDescending(items)
		}
		list.Groups = append(list.Groups, entities.CategoryGroup{Category: category, Items: items})
	}

	return list, nil
}

func sortBoltsDescending(items []entities.LineItem) {
	sort.SliceStable(items, func(i, j int) bool {
		si, _ := items[i].ID.BoltSize()
		sj, _ := items[j].ID.BoltSize()
		return si > sj
	})
}
