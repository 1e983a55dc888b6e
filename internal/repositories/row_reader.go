package repositories

import (
	"strings"

	"smartbiz-backend/internal/cellparse"
)

// Coercion describes a cell that could not be parsed and was replaced by a
// default while reading a table.
type Coercion struct {
	Sheet string
	Field string
	ID    string
	Raw   interface{}
}

// CoerceFunc receives every coercion. It must not block.
type CoerceFunc func(Coercion)

type rowReader struct {
	sheet    string
	columns  []string
	cells    []interface{}
	id       string
	onCoerce CoerceFunc
}

func (r *rowReader) cell(col int) interface{} {
	if col < len(r.cells) {
		return r.cells[col]
	}
	return nil
}

func (r *rowReader) coerced(col int) {
	if r.onCoerce == nil {
		return
	}
	r.onCoerce(Coercion{Sheet: r.sheet, Field: r.columns[col], ID: r.id, Raw: r.cell(col)})
}

func (r *rowReader) String(col int) string {
	return cellString(r.cell(col))
}

func (r *rowReader) Int(col int) int {
	v, defaulted := cellparse.Int(r.cell(col))
	if defaulted && !cellparse.IsBlank(r.cell(col)) {
		r.coerced(col)
	}
	return v
}

func (r *rowReader) Float(col int) float64 {
	v, defaulted := cellparse.Float(r.cell(col))
	if defaulted && !cellparse.IsBlank(r.cell(col)) {
		r.coerced(col)
	}
	return v
}

func (r *rowReader) Date(col int) *string {
	v, defaulted := cellparse.Date(r.cell(col))
	if defaulted {
		r.coerced(col)
	}
	return v
}

// Enum returns the raw cell text and reports it when it is not one of valid.
func (r *rowReader) Enum(col int, valid func(string) bool) string {
	v := r.String(col)
	if v != "" && !valid(v) {
		r.coerced(col)
	}
	return v
}

func cellString(v interface{}) string {
	return strings.TrimSpace(cellparse.String(v))
}
