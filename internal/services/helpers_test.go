package services

import (
	"context"
	"sync"
	"testing"

	"smartbiz-backend/internal/events"
	"smartbiz-backend/internal/repositories"
	"smartbiz-backend/internal/sheets/memsheet"
)

type recordedEvents struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *recordedEvents) Publish(e events.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recordedEvents) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

func row(cells ...interface{}) []interface{} { return cells }

func newTestStore(t *testing.T) (*repositories.SpreadsheetStore, *memsheet.Sheet) {
	t.Helper()
	mem := memsheet.New()
	mem.Seed("Inventory", row("id", "productName", "currentStock", "unit", "reorderLevel", "costPrice", "sellingPrice", "status", "category", "lastRestocked"))
	mem.Seed("Customers", row("id", "name", "email", "firstPurchase", "lastPurchase", "totalPurchases", "totalSpent", "averageOrderValue", "phone", "segment"))
	mem.Seed("Sales", row("id", "date", "productName", "productId", "quantity", "unitPrice", "totalAmount", "customerName", "customerId", "paymentStatus", "category"))
	mem.Seed("credentials", row("email", "password"))
	mem.Seed("pendingPayments", row("amount"))
	store := repositories.NewSpreadsheetStore(mem, repositories.DefaultLayout(), func(repositories.Coercion) {})
	return store, mem
}

type fakeAuthCache struct {
	entries     map[string]bool
	invalidated []string
}

func newFakeAuthCache() *fakeAuthCache {
	return &fakeAuthCache{entries: make(map[string]bool)}
}

func (c *fakeAuthCache) GetCachedAuth(_ context.Context, email, password string) bool {
	return c.entries[email+"\x00"+password]
}

func (c *fakeAuthCache) CacheAuth(_ context.Context, email, password string) {
	c.entries[email+"\x00"+password] = true
}

func (c *fakeAuthCache) InvalidateAuth(_ context.Context, email string) {
	c.invalidated = append(c.invalidated, email)
	for k := range c.entries {
		if len(k) > len(email) && k[:len(email)+1] == email+"\x00" {
			delete(c.entries, k)
		}
	}
}
