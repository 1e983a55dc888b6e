package repositories

import (
	"context"

	"smartbiz-backend/internal/models"
	"smartbiz-backend/internal/sheets"
)

var inventoryColumns = []string{
	"id", "productName", "currentStock", "unit", "reorderLevel",
	"costPrice", "sellingPrice", "status", "category", "lastRestocked",
}

type InventoryRepository struct {
	table *Table[*models.InventoryItem]
}

func NewInventoryRepository(api sheets.ValuesAPI, layout Layout, onCoerce CoerceFunc) *InventoryRepository {
	layout = layout.withDefaults()
	schema := Schema[*models.InventoryItem]{
		Sheet:    layout.InventorySheet,
		IDPrefix: "p-",
		Columns:  inventoryColumns,
		New:      func() *models.InventoryItem { return &models.InventoryItem{} },
		Decode:   decodeInventoryItem,
		Encode:   encodeInventoryItem,
		Derive:   (*models.InventoryItem).DeriveStatus,
	}
	return &InventoryRepository{table: NewTable(api, schema, layout.HeaderRows, onCoerce)}
}

func decodeInventoryItem(r *rowReader, item *models.InventoryItem) {
	item.ProductName = r.String(1)
	item.CurrentStock = r.Int(2)
	item.Unit = r.String(3)
	item.ReorderLevel = r.Int(4)
	item.CostPrice = r.Float(5)
	item.SellingPrice = r.Float(6)
	item.Status = models.StockStatus(r.Enum(7, func(s string) bool { return models.StockStatus(s).Valid() }))
	item.Category = r.String(8)
	item.LastRestocked = r.Date(9)

	// Rows typed in by hand often have no status yet.
	if item.Status == "" {
		item.DeriveStatus()
		r.coerced(7)
	}
}

func encodeInventoryItem(item *models.InventoryItem) []interface{} {
	return []interface{}{
		item.ID,
		item.ProductName,
		item.CurrentStock,
		item.Unit,
		item.ReorderLevel,
		item.CostPrice,
		item.SellingPrice,
		string(item.Status),
		item.Category,
		dateCell(item.LastRestocked),
	}
}

func (r *InventoryRepository) List(ctx context.Context) ([]*models.InventoryItem, error) {
	return r.table.List(ctx)
}

func (r *InventoryRepository) Add(ctx context.Context, item *models.InventoryItem) (*models.InventoryItem, error) {
	return r.table.Add(ctx, item)
}

func (r *InventoryRepository) Update(ctx context.Context, item *models.InventoryItem) (*models.InventoryItem, error) {
	return r.table.Update(ctx, item)
}

func (r *InventoryRepository) Remove(ctx context.Context, id string) error {
	return r.table.Remove(ctx, id)
}
