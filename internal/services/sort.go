package services

import (
	"slices"
	"time"

	"smartbiz-backend/internal/models"
	"smartbiz-backend/internal/timeutil"
)

// sortByShortfall orders items by how far they are below their reorder level.
func sortByShortfall(items []*models.InventoryItem) {
	slices.SortStableFunc(items, func(a, b *models.InventoryItem) int {
		return (b.ReorderLevel - b.CurrentStock) - (a.ReorderLevel - a.CurrentStock)
	})
}

// parseSaleDate accepts RFC 3339 timestamps and plain dates. Plain dates are
// taken in business time.
func parseSaleDate(s string) (time.Time, bool) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	if t, err := time.ParseInLocation(timeutil.DateLayout, s, timeutil.BDT); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// sortSalesNewestFirst orders sales by date, newest first. Sales whose date
// cannot be parsed go last in their original order.
func sortSalesNewestFirst(sales []*models.SalesRecord) {
	slices.SortStableFunc(sales, func(a, b *models.SalesRecord) int {
		ta, okA := parseSaleDate(a.Date)
		tb, okB := parseSaleDate(b.Date)
		switch {
		case okA && !okB:
			return -1
		case !okA && okB:
			return 1
		case !okA && !okB:
			return 0
		}
		return tb.Compare(ta)
	})
}
