package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartbiz-backend/internal/models"
	"smartbiz-backend/internal/repositories"
)

func TestCustomerCreateAndSegmentUpdate(t *testing.T) {
	store, mem := newTestStore(t)
	svc := NewCustomerService(store.Customers, &recordedEvents{})
	ctx := context.Background()

	c, err := svc.CreateCustomer(ctx, &models.CustomerRequest{Name: "Nusrat", Email: "nusrat@example.com", TotalPurchases: 4, TotalSpent: 2000, AverageOrderValue: 500})
	require.NoError(t, err)
	assert.Regexp(t, `^c-`, c.ID)

	list, err := svc.ListCustomers(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Nil(t, list[0].FirstPurchase)

	_, err = svc.UpdateCustomer(ctx, c.ID, &models.CustomerRequest{
		Name:              "Nusrat",
		Email:             "nusrat@example.com",
		TotalPurchases:    4,
		TotalSpent:        2000,
		AverageOrderValue: 500,
		Segment:           models.SegmentHighValue,
		Version:           list[0].Version,
	})
	require.NoError(t, err)
	assert.Equal(t, "high-value", mem.Rows("Customers")[1][9])
}

func TestCustomerValidation(t *testing.T) {
	store, mem := newTestStore(t)
	svc := NewCustomerService(store.Customers, nil)

	_, err := svc.CreateCustomer(context.Background(), &models.CustomerRequest{Name: "  "})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "name", verr.Field)

	_, err = svc.CreateCustomer(context.Background(), &models.CustomerRequest{Name: "Rafi", Segment: "vip"})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "segment", verr.Field)

	_, err = svc.UpdateCustomer(context.Background(), "c-missing", &models.CustomerRequest{Name: "Rafi"})
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	assert.Equal(t, 0, mem.Writes())
}
