package repositories

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/google/uuid"

	"smartbiz-backend/internal/cellparse"
	"smartbiz-backend/internal/models"
	"smartbiz-backend/internal/sheets"
)

type rowRecord interface {
	RowRef() *models.Row
}

// Schema maps one record type onto the columns of a sheet. Column 0 is
// always the id.
type Schema[T rowRecord] struct {
	Sheet    string
	IDPrefix string
	Columns  []string
	New      func() T
	Decode   func(r *rowReader, rec T)
	Encode   func(rec T) []interface{}
	// Derive recomputes derived fields before every write. Optional.
	Derive func(rec T)
}

// Table implements list/add/update/remove over one sheet. Row positions are
// resolved from a fresh read immediately before every write and never cached.
type Table[T rowRecord] struct {
	api        sheets.ValuesAPI
	schema     Schema[T]
	headerRows int
	onCoerce   CoerceFunc
	newID      func() string
}

func NewTable[T rowRecord](api sheets.ValuesAPI, schema Schema[T], headerRows int, onCoerce CoerceFunc) *Table[T] {
	return &Table[T]{
		api:        api,
		schema:     schema,
		headerRows: headerRows,
		onCoerce:   onCoerce,
		newID:      func() string { return schema.IDPrefix + newUUID() },
	}
}

func newUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

func (t *Table[T]) firstDataRow() int { return t.headerRows + 1 }

func (t *Table[T]) width() int { return len(t.schema.Columns) }

// List reads every data row. Rows with an empty id are skipped.
func (t *Table[T]) List(ctx context.Context) ([]T, error) {
	rows, err := t.api.Get(ctx, sheets.TableRange(t.schema.Sheet, t.width(), t.firstDataRow()))
	if err != nil {
		return nil, &FetchError{Sheet: t.schema.Sheet, Err: err}
	}

	records := make([]T, 0, len(rows))
	for _, cells := range rows {
		id := rowID(cells)
		if id == "" {
			continue
		}
		rec := t.schema.New()
		t.schema.Decode(&rowReader{
			sheet:    t.schema.Sheet,
			columns:  t.schema.Columns,
			cells:    cells,
			id:       id,
			onCoerce: t.onCoerce,
		}, rec)
		ref := rec.RowRef()
		ref.ID = id
		ref.Version = rowVersion(cells, t.width())
		records = append(records, rec)
	}
	return records, nil
}

// Add assigns a new id, applies derived fields and appends one row.
func (t *Table[T]) Add(ctx context.Context, rec T) (T, error) {
	ref := rec.RowRef()
	ref.ID = t.newID()
	ref.Version = ""
	if t.schema.Derive != nil {
		t.schema.Derive(rec)
	}

	values := [][]interface{}{t.schema.Encode(rec)}
	if err := t.api.Append(ctx, sheets.AppendRange(t.schema.Sheet, t.width()), values); err != nil {
		var zero T
		return zero, &WriteError{Sheet: t.schema.Sheet, Op: "append", Err: err}
	}
	return rec, nil
}

// Update overwrites the full row whose id matches rec. When rec carries a
// version the stored row must still hash to it, otherwise ConflictError is
// returned and nothing is written.
func (t *Table[T]) Update(ctx context.Context, rec T) (T, error) {
	var zero T
	ref := rec.RowRef()
	version := ref.Version

	row, cells, err := t.locate(ctx, ref.ID, version != "")
	if err != nil {
		return zero, t.locateError("update", err)
	}
	if version != "" && rowVersion(cells, t.width()) != version {
		return zero, &ConflictError{Sheet: t.schema.Sheet, ID: ref.ID}
	}

	ref.Version = ""
	if t.schema.Derive != nil {
		t.schema.Derive(rec)
	}
	values := [][]interface{}{t.schema.Encode(rec)}
	if err := t.api.Update(ctx, sheets.RowRange(t.schema.Sheet, row, t.width()), values); err != nil {
		return zero, &WriteError{Sheet: t.schema.Sheet, Op: "update", Err: err}
	}
	return rec, nil
}

// Remove clears the row in place. Rows below it keep their positions.
func (t *Table[T]) Remove(ctx context.Context, id string) error {
	row, _, err := t.locate(ctx, id, false)
	if err != nil {
		return t.locateError("clear", err)
	}
	if err := t.api.Clear(ctx, sheets.RowRange(t.schema.Sheet, row, t.width())); err != nil {
		return &WriteError{Sheet: t.schema.Sheet, Op: "clear", Err: err}
	}
	return nil
}

// locate finds the 1-based sheet row holding id. With fullRow it reads every
// column so the caller can compare versions; otherwise only the id column.
func (t *Table[T]) locate(ctx context.Context, id string, fullRow bool) (int, []interface{}, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return 0, nil, &NotFoundError{Sheet: t.schema.Sheet, Key: id}
	}

	rng := sheets.ColumnRange(t.schema.Sheet, 1, t.firstDataRow())
	if fullRow {
		rng = sheets.TableRange(t.schema.Sheet, t.width(), t.firstDataRow())
	}
	rows, err := t.api.Get(ctx, rng)
	if err != nil {
		return 0, nil, &FetchError{Sheet: t.schema.Sheet, Err: err}
	}
	for i, cells := range rows {
		if rowID(cells) == id {
			return t.firstDataRow() + i, cells, nil
		}
	}
	return 0, nil, &NotFoundError{Sheet: t.schema.Sheet, Key: id}
}

// locateError keeps NotFoundError as is and wraps read failures in the
// WriteError of the operation that needed them.
func (t *Table[T]) locateError(op string, err error) error {
	if _, ok := err.(*FetchError); ok {
		return &WriteError{Sheet: t.schema.Sheet, Op: op, Err: err}
	}
	return err
}

func rowID(cells []interface{}) string {
	if len(cells) == 0 {
		return ""
	}
	return cellString(cells[0])
}

// rowVersion hashes the first width cells of a row as text.
func rowVersion(cells []interface{}, width int) string {
	h := sha256.New()
	for i := 0; i < width; i++ {
		var v interface{}
		if i < len(cells) {
			v = cells[i]
		}
		h.Write([]byte(cellparse.String(v)))
		h.Write([]byte{0x1f})
	}
	return hex.EncodeToString(h.Sum(nil))[:16]
}
