// internal/domain/recompute.go
package domain

import (
	"math"
	"regexp"
	"strings"

	"fillrate/internal/classify"
)

var skuPattern = regexp.MustCompile(`^[A-Za-z0-9-]+$`)

// Recompute derives every dependent field of a report item from its
// store_order and delivered quantities. All mutation paths go through here so
// the derived state can never diverge:
//
//	delivered   <= storeOrder (clamped)
//	undelivered  = max(0, storeOrder - delivered)
//	fillRate     = round(100 * delivered / storeOrder), 0 when storeOrder is 0
//	remarks      = label derived from fillRate
func Recompute(item ReportItem) ReportItem {
	if item.StoreOrder < 0 {
		item.StoreOrder = 0
	}
	if item.Delivered < 0 {
		item.Delivered = 0
	}
	if item.Delivered > item.StoreOrder {
		item.Delivered = item.StoreOrder
	}

	item.Undelivered = item.StoreOrder - item.Delivered
	if item.Undelivered < 0 {
		item.Undelivered = 0
	}

	item.FillRate = FillRate(item.StoreOrder, item.Delivered)
	item.Remarks = classify.Remarks(item.FillRate)

	return item
}

// FillRate computes the rounded delivery percentage for a single quantity
// pair. Full delivery always reads 100 regardless of rounding.
func FillRate(storeOrder, delivered float64) int {
	if storeOrder <= 0 {
		return 0
	}
	if delivered >= storeOrder {
		return 100
	}
	return int(math.Round(100 * delivered / storeOrder))
}

// Validate rejects an item before it reaches the persistence gateway.
func Validate(item ReportItem) error {
	if strings.TrimSpace(item.Store) == "" {
		return &ValidationError{Field: "store", Reason: "required"}
	}
	sku := strings.TrimSpace(item.SKU)
	if sku == "" {
		return &ValidationError{Field: "sku", Reason: "required"}
	}
	if !skuPattern.MatchString(sku) {
		return &ValidationError{Field: "sku", Reason: "may only contain letters, digits and hyphens"}
	}
	if item.WeekStartDate.IsZero() || item.WeekEndDate.IsZero() {
		return &ValidationError{Field: "week", Reason: "week window required"}
	}
	if item.StoreOrder < 0 {
		return &ValidationError{Field: "store_order", Reason: "must not be negative"}
	}
	if item.Delivered < 0 {
		return &ValidationError{Field: "delivered", Reason: "must not be negative"}
	}
	return nil
}
