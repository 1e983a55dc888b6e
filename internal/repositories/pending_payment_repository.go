package repositories

import (
	"context"

	"github.com/shopspring/decimal"

	"smartbiz-backend/internal/cellparse"
	"smartbiz-backend/internal/sheets"
)

// PendingPaymentRepository sums the amounts held in one column of the
// pending payments sheet.
type PendingPaymentRepository struct {
	api        sheets.ValuesAPI
	sheet      string
	column     int
	headerRows int
	onCoerce   CoerceFunc
}

func NewPendingPaymentRepository(api sheets.ValuesAPI, layout Layout, onCoerce CoerceFunc) *PendingPaymentRepository {
	layout = layout.withDefaults()
	return &PendingPaymentRepository{
		api:        api,
		sheet:      layout.PendingPaymentsSheet,
		column:     layout.PendingPaymentsColumn,
		headerRows: layout.HeaderRows,
		onCoerce:   onCoerce,
	}
}

// Total sums the column below the header. Currency symbols and thousands
// separators are ignored; cells that still do not parse count as zero.
func (r *PendingPaymentRepository) Total(ctx context.Context) (float64, error) {
	rows, err := r.api.Get(ctx, sheets.ColumnRange(r.sheet, r.column, r.headerRows+1))
	if err != nil {
		return 0, &FetchError{Sheet: r.sheet, Err: err}
	}

	total := decimal.Zero
	for _, cells := range rows {
		if len(cells) == 0 {
			continue
		}
		amount, defaulted := cellparse.Amount(cells[0])
		if defaulted {
			if r.onCoerce != nil && !cellparse.IsBlank(cells[0]) {
				r.onCoerce(Coercion{Sheet: r.sheet, Field: "amount", Raw: cells[0]})
			}
			continue
		}
		total = total.Add(amount)
	}
	return total.InexactFloat64(), nil
}
