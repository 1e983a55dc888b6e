package models

type StockStatus string

const (
	StockOK        StockStatus = "ok"
	StockLow       StockStatus = "low"
	StockOverstock StockStatus = "overstock"
)

// InventoryItem is one row of the Inventory sheet. Status is recomputed from
// CurrentStock and ReorderLevel on every write.
type InventoryItem struct {
	Row
	ProductName   string      `json:"productName"`
	CurrentStock  int         `json:"currentStock"`
	Unit          string      `json:"unit"`
	ReorderLevel  int         `json:"reorderLevel"`
	CostPrice     float64     `json:"costPrice"`
	SellingPrice  float64     `json:"sellingPrice"`
	Status        StockStatus `json:"status"`
	Category      string      `json:"category,omitempty"`
	LastRestocked *string     `json:"lastRestocked"`
}

// DeriveStatus sets Status from the stock level. Overstock is only ever set
// by external imports, so it is never produced here.
func (i *InventoryItem) DeriveStatus() {
	if i.CurrentStock < i.ReorderLevel {
		i.Status = StockLow
	} else {
		i.Status = StockOK
	}
}

func (s StockStatus) Valid() bool {
	return s == StockOK || s == StockLow || s == StockOverstock
}

// StockValue is the stock on hand valued at cost.
func (i *InventoryItem) StockValue() float64 {
	return float64(i.CurrentStock) * i.CostPrice
}

// InventoryItemRequest represents the request body for creating or updating an item
type InventoryItemRequest struct {
	ProductName   string  `json:"productName"`
	CurrentStock  int     `json:"currentStock"`
	Unit          string  `json:"unit"`
	ReorderLevel  int     `json:"reorderLevel"`
	CostPrice     float64 `json:"costPrice"`
	SellingPrice  float64 `json:"sellingPrice"`
	Category      string  `json:"category"`
	LastRestocked *string `json:"lastRestocked"`
	Version       string  `json:"version,omitempty"`
}
