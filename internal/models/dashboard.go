package models

// DashboardSummary is the overview computed from one read of each table.
type DashboardSummary struct {
	TotalRevenue         float64          `json:"totalRevenue"`
	PendingSalesAmount   float64          `json:"pendingSalesAmount"`
	PendingPaymentsTotal float64          `json:"pendingPaymentsTotal"`
	StockValue           float64          `json:"stockValue"`
	ProductCount         int              `json:"productCount"`
	CustomerCount        int              `json:"customerCount"`
	ActiveCustomers      int              `json:"activeCustomers"`
	SalesCount           int              `json:"salesCount"`
	RecentSales          []*SalesRecord   `json:"recentSales"`
	LowStock             []*InventoryItem `json:"lowStock"`
	GeneratedAt          string           `json:"generatedAt"`
}

// BackupObject describes one stored snapshot.
type BackupObject struct {
	Key          string `json:"key"`
	Size         int64  `json:"size"`
	LastModified string `json:"lastModified"`
}
