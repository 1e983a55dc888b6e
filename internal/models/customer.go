package models

type Segment string

const (
	SegmentHighValue Segment = "high-value"
	SegmentRegular   Segment = "regular"
	SegmentAtRisk    Segment = "at-risk"
	SegmentLost      Segment = "lost"
)

func (s Segment) Valid() bool {
	switch s {
	case "", SegmentHighValue, SegmentRegular, SegmentAtRisk, SegmentLost:
		return true
	}
	return false
}

// Customer is one row of the Customers sheet. Segment is written by the
// external classification job and is never computed here.
type Customer struct {
	Row
	Name              string  `json:"name"`
	Email             string  `json:"email,omitempty"`
	FirstPurchase     *string `json:"firstPurchase"`
	LastPurchase      *string `json:"lastPurchase"`
	TotalPurchases    int     `json:"totalPurchases"`
	TotalSpent        float64 `json:"totalSpent"`
	AverageOrderValue float64 `json:"averageOrderValue"`
	Phone             string  `json:"phone,omitempty"`
	Segment           Segment `json:"segment,omitempty"`
}

// CustomerRequest represents the request body for creating or updating a customer
type CustomerRequest struct {
	Name              string  `json:"name"`
	Email             string  `json:"email"`
	Phone             string  `json:"phone"`
	FirstPurchase     *string `json:"firstPurchase"`
	LastPurchase      *string `json:"lastPurchase"`
	TotalPurchases    int     `json:"totalPurchases"`
	TotalSpent        float64 `json:"totalSpent"`
	AverageOrderValue float64 `json:"averageOrderValue"`
	Segment           Segment `json:"segment"`
	Version           string  `json:"version,omitempty"`
}
