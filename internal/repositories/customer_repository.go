package repositories

import (
	"context"

	"smartbiz-backend/internal/models"
	"smartbiz-backend/internal/sheets"
)

var customerColumns = []string{
	"id", "name", "email", "firstPurchase", "lastPurchase",
	"totalPurchases", "totalSpent", "averageOrderValue", "phone", "segment",
}

type CustomerRepository struct {
	table *Table[*models.Customer]
}

func NewCustomerRepository(api sheets.ValuesAPI, layout Layout, onCoerce CoerceFunc) *CustomerRepository {
	layout = layout.withDefaults()
	schema := Schema[*models.Customer]{
		Sheet:    layout.CustomersSheet,
		IDPrefix: "c-",
		Columns:  customerColumns,
		New:      func() *models.Customer { return &models.Customer{} },
		Decode:   decodeCustomer,
		Encode:   encodeCustomer,
	}
	return &CustomerRepository{table: NewTable(api, schema, layout.HeaderRows, onCoerce)}
}

func decodeCustomer(r *rowReader, c *models.Customer) {
	c.Name = r.String(1)
	c.Email = r.String(2)
	c.FirstPurchase = r.Date(3)
	c.LastPurchase = r.Date(4)
	c.TotalPurchases = r.Int(5)
	c.TotalSpent = r.Float(6)
	c.AverageOrderValue = r.Float(7)
	c.Phone = r.String(8)
	c.Segment = models.Segment(r.Enum(9, func(s string) bool { return models.Segment(s).Valid() }))
}

func encodeCustomer(c *models.Customer) []interface{} {
	return []interface{}{
		c.ID,
		c.Name,
		c.Email,
		dateCell(c.FirstPurchase),
		dateCell(c.LastPurchase),
		c.TotalPurchases,
		c.TotalSpent,
		c.AverageOrderValue,
		c.Phone,
		string(c.Segment),
	}
}

func (r *CustomerRepository) List(ctx context.Context) ([]*models.Customer, error) {
	return r.table.List(ctx)
}

func (r *CustomerRepository) Add(ctx context.Context, c *models.Customer) (*models.Customer, error) {
	return r.table.Add(ctx, c)
}

// Update overwrites the whole customer row, segment included.
func (r *CustomerRepository) Update(ctx context.Context, c *models.Customer) (*models.Customer, error) {
	return r.table.Update(ctx, c)
}
