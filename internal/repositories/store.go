package repositories

import (
	"context"
	"log"

	"smartbiz-backend/internal/metrics"
	"smartbiz-backend/internal/sheets"
)

// SpreadsheetStore groups the typed repositories that share one spreadsheet.
// It holds no cached rows; every call goes to the remote store.
type SpreadsheetStore struct {
	api    sheets.ValuesAPI
	layout Layout

	Inventory       *InventoryRepository
	Customers       *CustomerRepository
	Sales           *SalesRepository
	Credentials     *CredentialRepository
	PendingPayments *PendingPaymentRepository
}

// NewSpreadsheetStore wires every repository to api. A nil onCoerce logs
// coercions and counts them in metrics.
func NewSpreadsheetStore(api sheets.ValuesAPI, layout Layout, onCoerce CoerceFunc) *SpreadsheetStore {
	layout = layout.withDefaults()
	if onCoerce == nil {
		onCoerce = LogCoercion
	}
	return &SpreadsheetStore{
		api:             api,
		layout:          layout,
		Inventory:       NewInventoryRepository(api, layout, onCoerce),
		Customers:       NewCustomerRepository(api, layout, onCoerce),
		Sales:           NewSalesRepository(api, layout, onCoerce),
		Credentials:     NewCredentialRepository(api, layout),
		PendingPayments: NewPendingPaymentRepository(api, layout, onCoerce),
	}
}

// LogCoercion is the default diagnostics sink for malformed cells.
func LogCoercion(c Coercion) {
	metrics.CoercedCellsTotal.WithLabelValues(c.Sheet, c.Field).Inc()
	log.Printf("[Sheets] Coerced %s.%s on row %q: unparsable value %v", c.Sheet, c.Field, c.ID, c.Raw)
}

func (s *SpreadsheetStore) Layout() Layout { return s.layout }

// Ping reads the inventory header row to check the spreadsheet is reachable.
func (s *SpreadsheetStore) Ping(ctx context.Context) error {
	_, err := s.api.Get(ctx, sheets.RowRange(s.layout.InventorySheet, 1, len(inventoryColumns)))
	if err != nil {
		return &FetchError{Sheet: s.layout.InventorySheet, Err: err}
	}
	return nil
}
