package models

// Row carries the identity every spreadsheet record shares. Version is the
// hash of the row as it was read; sending it back on update makes the write
// fail if the row changed in the meantime.
type Row struct {
	ID      string `json:"id"`
	Version string `json:"version,omitempty"`
}

func (r *Row) RowRef() *Row { return r }
