package services

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/samber/lo"

	"smartbiz-backend/internal/events"
	"smartbiz-backend/internal/models"
	"smartbiz-backend/internal/repositories"
)

type InventoryService struct {
	Repo   *repositories.InventoryRepository
	Events events.Publisher
}

func NewInventoryService(repo *repositories.InventoryRepository, pub events.Publisher) *InventoryService {
	return &InventoryService{Repo: repo, Events: pub}
}

func validateInventoryItem(req *models.InventoryItemRequest) error {
	req.ProductName = strings.TrimSpace(req.ProductName)
	req.Unit = strings.TrimSpace(req.Unit)
	req.Category = strings.TrimSpace(req.Category)

	if utf8.RuneCountInString(req.ProductName) < 2 {
		return invalid("productName", "must be at least 2 characters")
	}
	if req.Unit == "" {
		return invalid("unit", "is required")
	}
	if req.CurrentStock < 0 {
		return invalid("currentStock", "must not be negative")
	}
	if req.ReorderLevel < 0 {
		return invalid("reorderLevel", "must not be negative")
	}
	if req.CostPrice < 0 {
		return invalid("costPrice", "must not be negative")
	}
	if req.SellingPrice < 0 {
		return invalid("sellingPrice", "must not be negative")
	}
	return nil
}

func itemFromRequest(req *models.InventoryItemRequest) *models.InventoryItem {
	return &models.InventoryItem{
		ProductName:   req.ProductName,
		CurrentStock:  req.CurrentStock,
		Unit:          req.Unit,
		ReorderLevel:  req.ReorderLevel,
		CostPrice:     req.CostPrice,
		SellingPrice:  req.SellingPrice,
		Category:      req.Category,
		LastRestocked: req.LastRestocked,
	}
}

func (s *InventoryService) ListItems(ctx context.Context) ([]*models.InventoryItem, error) {
	return s.Repo.List(ctx)
}

func (s *InventoryService) CreateItem(ctx context.Context, req *models.InventoryItemRequest) (*models.InventoryItem, error) {
	if err := validateInventoryItem(req); err != nil {
		return nil, err
	}

	item, err := s.Repo.Add(ctx, itemFromRequest(req))
	if err != nil {
		return nil, err
	}
	s.publish(events.TypeInventoryCreated, item)
	return item, nil
}

// UpdateItem overwrites the whole row. A version from a previous list makes
// the update fail with a conflict if the row changed since.
func (s *InventoryService) UpdateItem(ctx context.Context, id string, req *models.InventoryItemRequest) (*models.InventoryItem, error) {
	if err := validateInventoryItem(req); err != nil {
		return nil, err
	}

	item := itemFromRequest(req)
	item.ID = id
	item.Version = req.Version

	updated, err := s.Repo.Update(ctx, item)
	if err != nil {
		return nil, err
	}
	s.publish(events.TypeInventoryUpdated, updated)
	return updated, nil
}

func (s *InventoryService) DeleteItem(ctx context.Context, id string) error {
	if err := s.Repo.Remove(ctx, id); err != nil {
		return err
	}
	if s.Events != nil {
		s.Events.Publish(events.Event{Type: events.TypeInventoryDeleted, ID: id})
	}
	return nil
}

// LowStock returns items marked low or holding less than their reorder level,
// most urgent first. Stock exactly at the reorder level is not low.
func (s *InventoryService) LowStock(ctx context.Context) ([]*models.InventoryItem, error) {
	items, err := s.Repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return lowStock(items), nil
}

func lowStock(items []*models.InventoryItem) []*models.InventoryItem {
	low := lo.Filter(items, func(item *models.InventoryItem, _ int) bool {
		return item.Status == models.StockLow || item.CurrentStock < item.ReorderLevel
	})
	sortByShortfall(low)
	return low
}

func (s *InventoryService) publish(eventType string, item *models.InventoryItem) {
	if s.Events == nil {
		return
	}
	s.Events.Publish(events.Event{Type: eventType, ID: item.ID, Data: item})
	if item.Status == models.StockLow {
		s.Events.Publish(events.Event{Type: events.TypeLowStock, ID: item.ID, Data: item})
	}
}
