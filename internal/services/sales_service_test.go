package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartbiz-backend/internal/events"
	"smartbiz-backend/internal/models"
)

func TestCreateSale(t *testing.T) {
	store, mem := newTestStore(t)
	pub := &recordedEvents{}
	svc := NewSalesService(store.Sales, pub)
	ctx := context.Background()

	sale, err := svc.CreateSale(ctx, &models.CreateSaleRequest{
		ProductName:   "Rice",
		Quantity:      3,
		UnitPrice:     0.1,
		PaymentStatus: models.PaymentPending,
	})
	require.NoError(t, err)
	assert.Regexp(t, `^s-`, sale.ID)
	assert.Equal(t, 0.3, sale.TotalAmount)
	_, err = time.Parse(time.RFC3339, sale.Date)
	assert.NoError(t, err)

	// A given total is stored as is, even when it disagrees.
	sale, err = svc.CreateSale(ctx, &models.CreateSaleRequest{
		Date:          "2024-03-01",
		ProductName:   "Oil",
		Quantity:      2,
		UnitPrice:     100,
		TotalAmount:   amount(150),
		PaymentStatus: models.PaymentPartial,
	})
	require.NoError(t, err)
	assert.Equal(t, 150.0, sale.TotalAmount)

	assert.Equal(t, 2, mem.Calls("append"))
	assert.Equal(t, []string{events.TypeSaleCreated, events.TypeSaleCreated}, pub.types())
}

func TestCreateSaleKeepsExplicitZeroTotal(t *testing.T) {
	store, _ := newTestStore(t)
	svc := NewSalesService(store.Sales, nil)
	ctx := context.Background()

	sale, err := svc.CreateSale(ctx, &models.CreateSaleRequest{
		ProductName:   "Sample pack",
		Quantity:      2,
		UnitPrice:     40,
		TotalAmount:   amount(0),
		PaymentStatus: models.PaymentPaid,
	})
	require.NoError(t, err)
	assert.Equal(t, 0.0, sale.TotalAmount)

	sales, err := svc.ListSales(ctx, 0)
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.Equal(t, 0.0, sales[0].TotalAmount)

	_, err = svc.CreateSale(ctx, &models.CreateSaleRequest{
		ProductName:   "Rice",
		Quantity:      1,
		TotalAmount:   amount(-1),
		PaymentStatus: models.PaymentPaid,
	})
	assert.Error(t, err)
}

func amount(v float64) *float64 { return &v }

func TestCreateSaleValidation(t *testing.T) {
	store, mem := newTestStore(t)
	svc := NewSalesService(store.Sales, nil)

	for _, req := range []models.CreateSaleRequest{
		{ProductName: "", Quantity: 1, PaymentStatus: models.PaymentPaid},
		{ProductName: "Rice", Quantity: 0, PaymentStatus: models.PaymentPaid},
		{ProductName: "Rice", Quantity: 1, PaymentStatus: "refunded"},
		{ProductName: "Rice", Quantity: 1, PaymentStatus: models.PaymentPaid, Date: "yesterday"},
	} {
		req := req
		_, err := svc.CreateSale(context.Background(), &req)
		var verr *ValidationError
		assert.ErrorAs(t, err, &verr)
	}
	assert.Equal(t, 0, mem.Writes())
}

func TestListSalesNewestFirstWithLimit(t *testing.T) {
	store, mem := newTestStore(t)
	svc := NewSalesService(store.Sales, nil)
	mem.Seed("Sales",
		row("id"),
		row("s-1", "2024-01-05T10:00:00Z", "Rice", "", 1.0, 10.0, 10.0, "", "", "paid"),
		row("s-2", 45000.0, "Oil", "", 1.0, 10.0, 10.0, "", "", "paid"),
		row("s-3", "2024-02-01", "Salt", "", 1.0, 10.0, 10.0, "", "", "pending"),
		row("s-4", "not a date", "Tea", "", 1.0, 10.0, 10.0, "", "", "paid"),
	)

	sales, err := svc.ListSales(context.Background(), 0)
	require.NoError(t, err)
	ids := make([]string, 0, len(sales))
	for _, s := range sales {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []string{"s-3", "s-1", "s-2", "s-4"}, ids)

	sales, err = svc.ListSales(context.Background(), 2)
	require.NoError(t, err)
	assert.Len(t, sales, 2)
}
