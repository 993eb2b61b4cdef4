// internal/aggregate/aggregate.go

// Package aggregate rolls per-location report items up into cross-location
// totals per SKU. Output is a derived, disposable view recomputed from scratch
// on every call.
package aggregate

import (
	"sort"

	"fillrate/internal/classify"
	"fillrate/internal/domain"
)

// Rollup groups the windowed items of every location by SKU and accumulates
// totals. Descriptive fields come from the first item seen for a SKU; the
// contributing store list keeps insertion order. The rollup fill rate is
// recomputed from the summed quantities, never averaged from the per-location
// rates.
func Rollup(storeOrder []string, windowed map[string][]domain.ReportItem, window domain.WeekWindow) []domain.AggregatedItem {
	bySKU := make(map[string]*domain.AggregatedItem)

	for _, store := range storeOrder {
		for _, item := range windowed[store] {
			agg, ok := bySKU[item.SKU]
			if !ok {
				agg = &domain.AggregatedItem{
					SKU:         item.SKU,
					Description: item.Description,
					Type:        item.Type,
					UM:          item.UM,
					Price:       item.Price,
					Window:      window,
				}
				bySKU[item.SKU] = agg
			}

			agg.TotalStoreOrder += item.StoreOrder
			agg.TotalDelivered += item.Delivered
			agg.TotalUndelivered += item.Undelivered
			if !contains(agg.Stores, item.Store) {
				agg.Stores = append(agg.Stores, item.Store)
				agg.StoreCount++
			}
		}
	}

	rollups := make([]domain.AggregatedItem, 0, len(bySKU))
	for _, agg := range bySKU {
		agg.FillRate = domain.FillRate(agg.TotalStoreOrder, agg.TotalDelivered)
		agg.Remarks = classify.Remarks(agg.FillRate)
		rollups = append(rollups, *agg)
	}

	sort.Slice(rollups, func(i, j int) bool { return rollups[i].SKU < rollups[j].SKU })
	return rollups
}

func contains(stores []string, store string) bool {
	for _, s := range stores {
		if s == store {
			return true
		}
	}
	return false
}
