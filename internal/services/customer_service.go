package services

import (
	"context"
	"strings"

	"smartbiz-backend/internal/events"
	"smartbiz-backend/internal/models"
	"smartbiz-backend/internal/repositories"
)

type CustomerService struct {
	Repo   *repositories.CustomerRepository
	Events events.Publisher
}

func NewCustomerService(repo *repositories.CustomerRepository, pub events.Publisher) *CustomerService {
	return &CustomerService{Repo: repo, Events: pub}
}

func validateCustomer(req *models.CustomerRequest) error {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Phone = strings.TrimSpace(req.Phone)

	if req.Name == "" {
		return invalid("name", "is required")
	}
	if req.Email != "" && !strings.Contains(req.Email, "@") {
		return invalid("email", "is not a valid address")
	}
	if req.TotalPurchases < 0 || req.TotalSpent < 0 || req.AverageOrderValue < 0 {
		return invalid("totals", "must not be negative")
	}
	if !req.Segment.Valid() {
		return invalid("segment", "must be one of high-value, regular, at-risk, lost")
	}
	return nil
}

func customerFromRequest(req *models.CustomerRequest) *models.Customer {
	return &models.Customer{
		Name:              req.Name,
		Email:             req.Email,
		Phone:             req.Phone,
		FirstPurchase:     req.FirstPurchase,
		LastPurchase:      req.LastPurchase,
		TotalPurchases:    req.TotalPurchases,
		TotalSpent:        req.TotalSpent,
		AverageOrderValue: req.AverageOrderValue,
		Segment:           req.Segment,
	}
}

func (s *CustomerService) ListCustomers(ctx context.Context) ([]*models.Customer, error) {
	return s.Repo.List(ctx)
}

func (s *CustomerService) CreateCustomer(ctx context.Context, req *models.CustomerRequest) (*models.Customer, error) {
	if err := validateCustomer(req); err != nil {
		return nil, err
	}

	customer, err := s.Repo.Add(ctx, customerFromRequest(req))
	if err != nil {
		return nil, err
	}
	s.publish(events.TypeCustomerCreated, customer)
	return customer, nil
}

// UpdateCustomer overwrites the row. The classification job uses this to
// write segments back.
func (s *CustomerService) UpdateCustomer(ctx context.Context, id string, req *models.CustomerRequest) (*models.Customer, error) {
	if err := validateCustomer(req); err != nil {
		return nil, err
	}

	customer := customerFromRequest(req)
	customer.ID = id
	customer.Version = req.Version

	updated, err := s.Repo.Update(ctx, customer)
	if err != nil {
		return nil, err
	}
	s.publish(events.TypeCustomerUpdated, updated)
	return updated, nil
}

func (s *CustomerService) publish(eventType string, c *models.Customer) {
	if s.Events != nil {
		s.Events.Publish(events.Event{Type: eventType, ID: c.ID, Data: c})
	}
}
