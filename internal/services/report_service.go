package services

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/jung-kurt/gofpdf/v2"
	"github.com/shopspring/decimal"

	"smartbiz-backend/internal/models"
	"smartbiz-backend/internal/timeutil"
)

type ReportService struct {
	Dashboard    *DashboardService
	BusinessName string
}

func NewReportService(dashboard *DashboardService, businessName string) *ReportService {
	return &ReportService{Dashboard: dashboard, BusinessName: businessName}
}

// money formats amounts for the PDF core fonts, which have no taka sign.
func money(v float64) string {
	return "Tk " + decimal.NewFromFloat(v).StringFixed(2)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func (s *ReportService) newPDF(title string) *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 10, fmt.Sprintf("%s - %s", s.BusinessName, title), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(190, 6, fmt.Sprintf("Generated: %s", timeutil.Now().Format(timeutil.DisplayLayout)), "", 1, "C", false, 0, "")
	pdf.Ln(5)
	return pdf
}

func output(pdf *gofpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *ReportService) InventoryPDF(ctx context.Context) ([]byte, error) {
	items, err := s.Dashboard.Store.Inventory.List(ctx)
	if err != nil {
		return nil, err
	}
	return s.renderInventoryPDF(items)
}

func (s *ReportService) renderInventoryPDF(items []*models.InventoryItem) ([]byte, error) {
	pdf := s.newPDF("Inventory Report")

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(200, 200, 200)
	pdf.CellFormat(60, 7, "Product", "1", 0, "C", true, 0, "")
	pdf.CellFormat(25, 7, "Stock", "1", 0, "C", true, 0, "")
	pdf.CellFormat(20, 7, "Reorder", "1", 0, "C", true, 0, "")
	pdf.CellFormat(25, 7, "Cost", "1", 0, "C", true, 0, "")
	pdf.CellFormat(35, 7, "Value", "1", 0, "C", true, 0, "")
	pdf.CellFormat(25, 7, "Status", "1", 1, "C", true, 0, "")

	total := decimal.Zero
	pdf.SetFont("Arial", "", 10)
	for _, item := range items {
		fill := false
		if item.Status == models.StockLow {
			pdf.SetFillColor(255, 200, 200) // Light red for low stock
			fill = true
		}
		value := item.StockValue()
		total = total.Add(decimal.NewFromFloat(value))

		pdf.CellFormat(60, 6, truncate(item.ProductName, 30), "1", 0, "L", fill, 0, "")
		pdf.CellFormat(25, 6, fmt.Sprintf("%d %s", item.CurrentStock, truncate(item.Unit, 6)), "1", 0, "R", fill, 0, "")
		pdf.CellFormat(20, 6, strconv.Itoa(item.ReorderLevel), "1", 0, "R", fill, 0, "")
		pdf.CellFormat(25, 6, money(item.CostPrice), "1", 0, "R", fill, 0, "")
		pdf.CellFormat(35, 6, money(value), "1", 0, "R", fill, 0, "")
		pdf.CellFormat(25, 6, string(item.Status), "1", 1, "C", fill, 0, "")
	}

	pdf.Ln(3)
	pdf.SetFont("Arial", "B", 11)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(190, 8, fmt.Sprintf("%d products, stock value %s", len(items), money(total.InexactFloat64())), "1", 1, "C", true, 0, "")

	return output(pdf)
}

func (s *ReportService) SalesPDF(ctx context.Context) ([]byte, error) {
	snap, err := s.Dashboard.Load(ctx)
	if err != nil {
		return nil, err
	}
	return s.renderSalesPDF(snap)
}

func (s *ReportService) renderSalesPDF(snap *Snapshot) ([]byte, error) {
	summary := Summarize(snap)
	pdf := s.newPDF("Sales Report")

	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Summary", "1", 1, "L", true, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(63, 8, fmt.Sprintf("Revenue: %s", money(summary.TotalRevenue)), "1", 0, "C", false, 0, "")
	pdf.CellFormat(63, 8, fmt.Sprintf("Pending sales: %s", money(summary.PendingSalesAmount)), "1", 0, "C", false, 0, "")
	pdf.CellFormat(64, 8, fmt.Sprintf("Pending payments: %s", money(summary.PendingPaymentsTotal)), "1", 1, "C", false, 0, "")
	pdf.Ln(5)

	sales := append(make([]*models.SalesRecord, 0, len(snap.Sales)), snap.Sales...)
	sortSalesNewestFirst(sales)

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(200, 200, 200)
	pdf.CellFormat(25, 7, "Date", "1", 0, "C", true, 0, "")
	pdf.CellFormat(50, 7, "Product", "1", 0, "C", true, 0, "")
	pdf.CellFormat(15, 7, "Qty", "1", 0, "C", true, 0, "")
	pdf.CellFormat(40, 7, "Customer", "1", 0, "C", true, 0, "")
	pdf.CellFormat(35, 7, "Amount", "1", 0, "C", true, 0, "")
	pdf.CellFormat(25, 7, "Payment", "1", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, sale := range sales {
		date := sale.Date
		if t, ok := parseSaleDate(sale.Date); ok {
			date = timeutil.ToBDT(t).Format(timeutil.DateLayout)
		}
		pdf.CellFormat(25, 6, date, "1", 0, "C", false, 0, "")
		pdf.CellFormat(50, 6, truncate(sale.ProductName, 25), "1", 0, "L", false, 0, "")
		pdf.CellFormat(15, 6, strconv.Itoa(sale.Quantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 6, truncate(sale.CustomerName, 20), "1", 0, "L", false, 0, "")
		pdf.CellFormat(35, 6, money(sale.TotalAmount), "1", 0, "R", false, 0, "")
		pdf.CellFormat(25, 6, string(sale.PaymentStatus), "1", 1, "C", false, 0, "")
	}

	return output(pdf)
}

func (s *ReportService) InventoryCSV(ctx context.Context) ([]byte, error) {
	items, err := s.Dashboard.Store.Inventory.List(ctx)
	if err != nil {
		return nil, err
	}
	return inventoryCSV(items)
}

func inventoryCSV(items []*models.InventoryItem) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	w.Write([]string{"ID", "Product", "Current Stock", "Unit", "Reorder Level", "Cost Price", "Selling Price", "Status", "Category", "Last Restocked"})
	for _, item := range items {
		restocked := ""
		if item.LastRestocked != nil {
			restocked = *item.LastRestocked
		}
		w.Write([]string{
			item.ID,
			item.ProductName,
			strconv.Itoa(item.CurrentStock),
			item.Unit,
			strconv.Itoa(item.ReorderLevel),
			strconv.FormatFloat(item.CostPrice, 'f', 2, 64),
			strconv.FormatFloat(item.SellingPrice, 'f', 2, 64),
			string(item.Status),
			item.Category,
			restocked,
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *ReportService) SalesCSV(ctx context.Context) ([]byte, error) {
	sales, err := s.Dashboard.Store.Sales.List(ctx)
	if err != nil {
		return nil, err
	}
	return salesCSV(sales)
}

func salesCSV(sales []*models.SalesRecord) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	w.Write([]string{"ID", "Date", "Product", "Product ID", "Quantity", "Unit Price", "Total", "Customer", "Customer ID", "Payment Status", "Category"})
	for _, sale := range sales {
		w.Write([]string{
			sale.ID,
			sale.Date,
			sale.ProductName,
			sale.ProductID,
			strconv.Itoa(sale.Quantity),
			strconv.FormatFloat(sale.UnitPrice, 'f', 2, 64),
			strconv.FormatFloat(sale.TotalAmount, 'f', 2, 64),
			sale.CustomerName,
			sale.CustomerID,
			string(sale.PaymentStatus),
			sale.Category,
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Bundle zips every report built from a single read of the spreadsheet.
func (s *ReportService) Bundle(ctx context.Context) ([]byte, error) {
	snap, err := s.Dashboard.Load(ctx)
	if err != nil {
		return nil, err
	}

	files := make(map[string][]byte, 4)
	if files["inventory.pdf"], err = s.renderInventoryPDF(snap.Inventory); err != nil {
		return nil, err
	}
	if files["sales.pdf"], err = s.renderSalesPDF(snap); err != nil {
		return nil, err
	}
	if files["inventory.csv"], err = inventoryCSV(snap.Inventory); err != nil {
		return nil, err
	}
	if files["sales.csv"], err = salesCSV(snap.Sales); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range []string{"inventory.pdf", "sales.pdf", "inventory.csv", "sales.csv"} {
		fw, err := zw.Create(name)
		if err != nil {
			return nil, err
		}
		if _, err := fw.Write(files[name]); err != nil {
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
