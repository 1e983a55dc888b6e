package models

type PaymentStatus string

const (
	PaymentPaid    PaymentStatus = "paid"
	PaymentPending PaymentStatus = "pending"
	PaymentPartial PaymentStatus = "partial"
)

func (p PaymentStatus) Valid() bool {
	switch p {
	case PaymentPaid, PaymentPending, PaymentPartial:
		return true
	}
	return false
}

// SalesRecord is one row of the Sales sheet. TotalAmount is stored as given.
type SalesRecord struct {
	Row
	Date          string        `json:"date"`
	ProductName   string        `json:"productName"`
	ProductID     string        `json:"productId,omitempty"`
	Quantity      int           `json:"quantity"`
	UnitPrice     float64       `json:"unitPrice"`
	TotalAmount   float64       `json:"totalAmount"`
	CustomerName  string        `json:"customerName,omitempty"`
	CustomerID    string        `json:"customerId,omitempty"`
	PaymentStatus PaymentStatus `json:"paymentStatus"`
	Category      string        `json:"category,omitempty"`
}

// CreateSaleRequest represents the request body for recording a sale
type CreateSaleRequest struct {
	Date          string        `json:"date"`
	ProductName   string        `json:"productName"`
	ProductID     string        `json:"productId"`
	Quantity      int           `json:"quantity"`
	UnitPrice     float64       `json:"unitPrice"`
	TotalAmount   *float64      `json:"totalAmount"`
	CustomerName  string        `json:"customerName"`
	CustomerID    string        `json:"customerId"`
	PaymentStatus PaymentStatus `json:"paymentStatus"`
	Category      string        `json:"category"`
}
