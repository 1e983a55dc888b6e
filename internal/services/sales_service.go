package services

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"smartbiz-backend/internal/events"
	"smartbiz-backend/internal/models"
	"smartbiz-backend/internal/repositories"
	"smartbiz-backend/internal/timeutil"
)

type SalesService struct {
	Repo   *repositories.SalesRepository
	Events events.Publisher
}

func NewSalesService(repo *repositories.SalesRepository, pub events.Publisher) *SalesService {
	return &SalesService{Repo: repo, Events: pub}
}

// ListSales returns sales newest first. A positive limit keeps only that many.
func (s *SalesService) ListSales(ctx context.Context, limit int) ([]*models.SalesRecord, error) {
	sales, err := s.Repo.List(ctx)
	if err != nil {
		return nil, err
	}
	sortSalesNewestFirst(sales)
	if limit > 0 && len(sales) > limit {
		sales = sales[:limit]
	}
	return sales, nil
}

// CreateSale records a sale. A given total is stored as is, zero included; it
// is only computed from quantity and unit price when the caller omits it.
func (s *SalesService) CreateSale(ctx context.Context, req *models.CreateSaleRequest) (*models.SalesRecord, error) {
	req.ProductName = strings.TrimSpace(req.ProductName)
	if req.ProductName == "" {
		return nil, invalid("productName", "is required")
	}
	if req.Quantity <= 0 {
		return nil, invalid("quantity", "must be positive")
	}
	if req.UnitPrice < 0 || (req.TotalAmount != nil && *req.TotalAmount < 0) {
		return nil, invalid("unitPrice", "must not be negative")
	}
	if !req.PaymentStatus.Valid() {
		return nil, invalid("paymentStatus", "must be one of paid, pending, partial")
	}

	date := strings.TrimSpace(req.Date)
	if date == "" {
		date = timeutil.Now().Format(time.RFC3339)
	} else if _, ok := parseSaleDate(date); !ok {
		return nil, invalid("date", "must be an ISO-8601 date")
	}

	var total float64
	if req.TotalAmount != nil {
		total = *req.TotalAmount
	} else {
		total = decimal.NewFromInt(int64(req.Quantity)).Mul(decimal.NewFromFloat(req.UnitPrice)).InexactFloat64()
	}

	sale, err := s.Repo.Add(ctx, &models.SalesRecord{
		Date:          date,
		ProductName:   req.ProductName,
		ProductID:     strings.TrimSpace(req.ProductID),
		Quantity:      req.Quantity,
		UnitPrice:     req.UnitPrice,
		TotalAmount:   total,
		CustomerName:  strings.TrimSpace(req.CustomerName),
		CustomerID:    strings.TrimSpace(req.CustomerID),
		PaymentStatus: req.PaymentStatus,
		Category:      strings.TrimSpace(req.Category),
	})
	if err != nil {
		return nil, err
	}
	if s.Events != nil {
		s.Events.Publish(events.Event{Type: events.TypeSaleCreated, ID: sale.ID, Data: sale})
	}
	return sale, nil
}
