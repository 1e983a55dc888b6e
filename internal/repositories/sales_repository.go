package repositories

import (
	"context"

	"smartbiz-backend/internal/models"
	"smartbiz-backend/internal/sheets"
)

var salesColumns = []string{
	"id", "date", "productName", "productId", "quantity", "unitPrice",
	"totalAmount", "customerName", "customerId", "paymentStatus", "category",
}

type SalesRepository struct {
	table *Table[*models.SalesRecord]
}

func NewSalesRepository(api sheets.ValuesAPI, layout Layout, onCoerce CoerceFunc) *SalesRepository {
	layout = layout.withDefaults()
	schema := Schema[*models.SalesRecord]{
		Sheet:    layout.SalesSheet,
		IDPrefix: "s-",
		Columns:  salesColumns,
		New:      func() *models.SalesRecord { return &models.SalesRecord{} },
		Decode:   decodeSale,
		Encode:   encodeSale,
	}
	return &SalesRepository{table: NewTable(api, schema, layout.HeaderRows, onCoerce)}
}

func decodeSale(r *rowReader, s *models.SalesRecord) {
	if d := r.Date(1); d != nil {
		s.Date = *d
	}
	s.ProductName = r.String(2)
	s.ProductID = r.String(3)
	s.Quantity = r.Int(4)
	s.UnitPrice = r.Float(5)
	s.TotalAmount = r.Float(6)
	s.CustomerName = r.String(7)
	s.CustomerID = r.String(8)
	s.PaymentStatus = models.PaymentStatus(r.Enum(9, func(v string) bool { return models.PaymentStatus(v).Valid() }))
	s.Category = r.String(10)
}

func encodeSale(s *models.SalesRecord) []interface{} {
	return []interface{}{
		s.ID,
		s.Date,
		s.ProductName,
		s.ProductID,
		s.Quantity,
		s.UnitPrice,
		s.TotalAmount,
		s.CustomerName,
		s.CustomerID,
		string(s.PaymentStatus),
		s.Category,
	}
}

func (r *SalesRepository) List(ctx context.Context) ([]*models.SalesRecord, error) {
	return r.table.List(ctx)
}

func (r *SalesRepository) Add(ctx context.Context, s *models.SalesRecord) (*models.SalesRecord, error) {
	return r.table.Add(ctx, s)
}
