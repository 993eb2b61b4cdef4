package domain

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testItem(storeOrder, delivered float64) ReportItem {
	return ReportItem{
		Store:         "Main Street",
		SKU:           "BRD-001",
		StoreOrder:    storeOrder,
		Delivered:     delivered,
		WeekStartDate: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		WeekEndDate:   time.Date(2025, 3, 16, 0, 0, 0, 0, time.UTC),
	}
}

func TestRecomputePartialDelivery(t *testing.T) {
	got := Recompute(testItem(12, 9))

	assert.Equal(t, 3.0, got.Undelivered)
	assert.Equal(t, 75, got.FillRate)
	assert.Equal(t, "Fair", got.Remarks)
}

func TestRecomputeZeroOrder(t *testing.T) {
	got := Recompute(testItem(0, 0))

	assert.Equal(t, 0.0, got.Undelivered)
	assert.Equal(t, 0, got.FillRate)
	assert.Equal(t, "", got.Remarks)
}

func TestRecomputeClampsOverDelivery(t *testing.T) {
	got := Recompute(testItem(10, 14))

	assert.Equal(t, 10.0, got.Delivered)
	assert.Equal(t, 0.0, got.Undelivered)
	assert.Equal(t, 100, got.FillRate)
	assert.Equal(t, "Excellent", got.Remarks)
}

func TestRecomputeFullDeliveryAlways100(t *testing.T) {
	// Quantities that would round below 100 must still read as full.
	got := Recompute(testItem(3, 3))
	assert.Equal(t, 100, got.FillRate)
}

func TestRecomputeProperties(t *testing.T) {
	for storeOrder := 0.0; storeOrder <= 50; storeOrder++ {
		for delivered := 0.0; delivered <= storeOrder; delivered++ {
			got := Recompute(testItem(storeOrder, delivered))

			assert.Equal(t, storeOrder-delivered, got.Undelivered)
			if storeOrder == 0 {
				assert.Equal(t, 0, got.FillRate)
			} else {
				want := int(math.Round(100 * delivered / storeOrder))
				if delivered == storeOrder {
					want = 100
				}
				assert.Equal(t, want, got.FillRate,
					"storeOrder=%v delivered=%v", storeOrder, delivered)
			}
		}
	}
}

func TestValidateAcceptsWellFormedItem(t *testing.T) {
	require.NoError(t, Validate(testItem(10, 5)))
}

func TestValidateRejectsMissingFields(t *testing.T) {
	missingStore := testItem(10, 5)
	missingStore.Store = ""
	err := Validate(missingStore)
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "store", validationErr.Field)

	missingSKU := testItem(10, 5)
	missingSKU.SKU = "  "
	err = Validate(missingSKU)
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "sku", validationErr.Field)

	missingWeek := testItem(10, 5)
	missingWeek.WeekStartDate = time.Time{}
	err = Validate(missingWeek)
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "week", validationErr.Field)
}

func TestValidateSKUPattern(t *testing.T) {
	for _, sku := range []string{"BRD-001", "abc123", "A-B-C-9"} {
		item := testItem(10, 5)
		item.SKU = sku
		assert.NoError(t, Validate(item), "sku %q", sku)
	}

	for _, sku := range []string{"BRD 001", "brd_01", "sku!", "Ø-1"} {
		item := testItem(10, 5)
		item.SKU = sku
		var validationErr *ValidationError
		require.ErrorAs(t, Validate(item), &validationErr, "sku %q", sku)
		assert.Equal(t, "sku", validationErr.Field)
	}
}

func TestValidateRejectsNegativeQuantities(t *testing.T) {
	item := testItem(10, 5)
	item.StoreOrder = -1
	assert.Error(t, Validate(item))

	item = testItem(10, 5)
	item.Delivered = -1
	assert.Error(t, Validate(item))
}

func TestInWindow(t *testing.T) {
	item := testItem(10, 5)
	window := WeekWindow{
		WeekStartDate: item.WeekStartDate,
		WeekEndDate:   item.WeekEndDate,
	}
	assert.True(t, item.InWindow(window))

	shifted := window
	shifted.WeekStartDate = window.WeekStartDate.AddDate(0, 0, 7)
	shifted.WeekEndDate = window.WeekEndDate.AddDate(0, 0, 7)
	assert.False(t, item.InWindow(shifted))
}
