package repositories

import "smartbiz-backend/internal/config"

// Layout names the sheets the store reads and writes.
type Layout struct {
	HeaderRows            int
	InventorySheet        string
	CustomersSheet        string
	SalesSheet            string
	CredentialsSheet      string
	PendingPaymentsSheet  string
	PendingPaymentsColumn int // 1-based
}

func DefaultLayout() Layout {
	return Layout{
		HeaderRows:            1,
		InventorySheet:        "Inventory",
		CustomersSheet:        "Customers",
		SalesSheet:            "Sales",
		CredentialsSheet:      "credentials",
		PendingPaymentsSheet:  "pendingPayments",
		PendingPaymentsColumn: 1,
	}
}

// LayoutFromConfig reads sheet names from the tables section. Blank fields
// keep their defaults.
func LayoutFromConfig(cfg *config.Config) Layout {
	return Layout{
		HeaderRows:            cfg.Tables.HeaderRows,
		InventorySheet:        cfg.Tables.Inventory,
		CustomersSheet:        cfg.Tables.Customers,
		SalesSheet:            cfg.Tables.Sales,
		CredentialsSheet:      cfg.Tables.Credentials,
		PendingPaymentsSheet:  cfg.Tables.PendingPayments,
		PendingPaymentsColumn: cfg.Tables.PendingPaymentsColumn,
	}.withDefaults()
}

// withDefaults fills zero fields from DefaultLayout.
func (l Layout) withDefaults() Layout {
	d := DefaultLayout()
	if l.HeaderRows <= 0 {
		l.HeaderRows = d.HeaderRows
	}
	if l.InventorySheet == "" {
		l.InventorySheet = d.InventorySheet
	}
	if l.CustomersSheet == "" {
		l.CustomersSheet = d.CustomersSheet
	}
	if l.SalesSheet == "" {
		l.SalesSheet = d.SalesSheet
	}
	if l.CredentialsSheet == "" {
		l.CredentialsSheet = d.CredentialsSheet
	}
	if l.PendingPaymentsSheet == "" {
		l.PendingPaymentsSheet = d.PendingPaymentsSheet
	}
	if l.PendingPaymentsColumn <= 0 {
		l.PendingPaymentsColumn = d.PendingPaymentsColumn
	}
	return l
}

// dateCell writes an optional date back as text; empty clears the cell.
func dateCell(d *string) interface{} {
	if d == nil {
		return ""
	}
	return *d
}

// Headers returns the header block of every sheet in the layout, keyed by
// sheet name. Column names sit on the last header row. Used to initialise an
// empty spreadsheet.
func (l Layout) Headers() map[string][][]interface{} {
	l = l.withDefaults()
	block := func(names ...string) [][]interface{} {
		rows := make([][]interface{}, l.HeaderRows)
		last := make([]interface{}, 0, len(names))
		for _, n := range names {
			last = append(last, n)
		}
		rows[l.HeaderRows-1] = last
		return rows
	}

	pending := make([]string, l.PendingPaymentsColumn)
	pending[l.PendingPaymentsColumn-1] = "amount"

	return map[string][][]interface{}{
		l.InventorySheet:       block(inventoryColumns...),
		l.CustomersSheet:       block(customerColumns...),
		l.SalesSheet:           block(salesColumns...),
		l.CredentialsSheet:     block("email", "password"),
		l.PendingPaymentsSheet: block(pending...),
	}
}
