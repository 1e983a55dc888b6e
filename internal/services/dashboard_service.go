package services

import (
	"context"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"smartbiz-backend/internal/models"
	"smartbiz-backend/internal/repositories"
	"smartbiz-backend/internal/timeutil"
)

const recentSalesCount = 5

type DashboardService struct {
	Store *repositories.SpreadsheetStore
}

func NewDashboardService(store *repositories.SpreadsheetStore) *DashboardService {
	return &DashboardService{Store: store}
}

// Snapshot is one consistent-enough read of every table.
type Snapshot struct {
	Inventory       []*models.InventoryItem
	Customers       []*models.Customer
	Sales           []*models.SalesRecord
	PendingPayments float64
}

// Load reads every table concurrently. The first failure cancels the rest.
func (s *DashboardService) Load(ctx context.Context) (*Snapshot, error) {
	var snap Snapshot
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		items, err := s.Store.Inventory.List(ctx)
		snap.Inventory = items
		return err
	})
	g.Go(func() error {
		customers, err := s.Store.Customers.List(ctx)
		snap.Customers = customers
		return err
	})
	g.Go(func() error {
		sales, err := s.Store.Sales.List(ctx)
		snap.Sales = sales
		return err
	})
	g.Go(func() error {
		total, err := s.Store.PendingPayments.Total(ctx)
		snap.PendingPayments = total
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (s *DashboardService) Summary(ctx context.Context) (*models.DashboardSummary, error) {
	snap, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	return Summarize(snap), nil
}

// Summarize computes the dashboard figures. Money is summed in decimal so
// totals match what a spreadsheet SUM would show.
func Summarize(snap *Snapshot) *models.DashboardSummary {
	revenue := decimal.Zero
	pending := decimal.Zero
	for _, sale := range snap.Sales {
		amount := decimal.NewFromFloat(sale.TotalAmount)
		revenue = revenue.Add(amount)
		if sale.PaymentStatus == models.PaymentPending {
			pending = pending.Add(amount)
		}
	}

	stock := decimal.Zero
	for _, item := range snap.Inventory {
		stock = stock.Add(decimal.NewFromInt(int64(item.CurrentStock)).Mul(decimal.NewFromFloat(item.CostPrice)))
	}

	active := lo.CountBy(snap.Customers, func(c *models.Customer) bool {
		return c.Segment != models.SegmentLost
	})

	recent := append(make([]*models.SalesRecord, 0, len(snap.Sales)), snap.Sales...)
	sortSalesNewestFirst(recent)
	if len(recent) > recentSalesCount {
		recent = recent[:recentSalesCount]
	}

	return &models.DashboardSummary{
		TotalRevenue:         revenue.InexactFloat64(),
		PendingSalesAmount:   pending.InexactFloat64(),
		PendingPaymentsTotal: snap.PendingPayments,
		StockValue:           stock.InexactFloat64(),
		ProductCount:         len(snap.Inventory),
		CustomerCount:        len(snap.Customers),
		ActiveCustomers:      active,
		SalesCount:           len(snap.Sales),
		RecentSales:          recent,
		LowStock:             lowStock(snap.Inventory),
		GeneratedAt:          timeutil.Now().Format(time.RFC3339),
	}
}
