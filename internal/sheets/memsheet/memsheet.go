// Package memsheet is an in-memory spreadsheet implementing sheets.ValuesAPI.
// It backs the "memory" sheets backend for local development and is the fake
// used by store and service tests.
package memsheet

import (
	"context"
	"fmt"
	"sync"

	"smartbiz-backend/internal/sheets"
)

type Sheet struct {
	mu     sync.Mutex
	tabs   map[string][][]interface{}
	calls  map[string]int
	failOn map[string]error
}

func New() *Sheet {
	return &Sheet{
		tabs:   make(map[string][][]interface{}),
		calls:  make(map[string]int),
		failOn: make(map[string]error),
	}
}

// Seed replaces the contents of a tab. Row 0 of rows is spreadsheet row 1.
func (s *Sheet) Seed(tab string, rows ...[]interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tabs[tab] = copyRows(rows)
}

// Rows returns a copy of every stored row of a tab, blank rows included.
func (s *Sheet) Rows(tab string) [][]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyRows(s.tabs[tab])
}

// Calls reports how many times op ("get", "append", "update", "clear") ran.
func (s *Sheet) Calls(op string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[op]
}

// Writes is the number of append, update and clear calls.
func (s *Sheet) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls["append"] + s.calls["update"] + s.calls["clear"]
}

// FailOn makes every later call of op return err. A nil err removes the failure.
func (s *Sheet) FailOn(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.failOn, op)
		return
	}
	s.failOn[op] = err
}

func (s *Sheet) begin(op, rng string) (sheets.Range, error) {
	s.calls[op]++
	if err := s.failOn[op]; err != nil {
		return sheets.Range{}, err
	}
	r, err := sheets.ParseRange(rng)
	if err != nil {
		return sheets.Range{}, err
	}
	if _, ok := s.tabs[r.Sheet]; !ok {
		return sheets.Range{}, fmt.Errorf("unable to parse range: %s", rng)
	}
	return r, nil
}

// Get returns the values inside rng the way the Sheets API does: trailing
// empty cells and trailing empty rows are dropped, and an empty range is nil.
func (s *Sheet) Get(_ context.Context, rng string) ([][]interface{}, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, err := s.begin("get", rng)
	if err != nil {
		return nil, err
	}
	tab := s.tabs[r.Sheet]
	last := len(tab)
	if r.EndRow > 0 && r.EndRow < last {
		last = r.EndRow
	}

	var out [][]interface{}
	for i := r.StartRow - 1; i < last; i++ {
		var row []interface{}
		for c := r.StartCol - 1; c < r.EndCol && c < len(tab[i]); c++ {
			v := tab[i][c]
			if v == nil {
				v = ""
			}
			row = append(row, v)
		}
		out = append(out, trimRow(row))
	}
	for len(out) > 0 && len(out[len(out)-1]) == 0 {
		out = out[:len(out)-1]
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out, nil
}

// Append writes rows below the last non-empty row of the tab.
func (s *Sheet) Append(_ context.Context, rng string, rows [][]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, err := s.begin("append", rng)
	if err != nil {
		return err
	}
	tab := s.tabs[r.Sheet]
	next := len(tab)
	for next > 0 && len(trimRow(tab[next-1])) == 0 {
		next--
	}
	tab = tab[:next]
	for _, row := range rows {
		line := make([]interface{}, r.StartCol-1, r.StartCol-1+len(row))
		tab = append(tab, append(line, row...))
	}
	s.tabs[r.Sheet] = tab
	return nil
}

// Update writes rows starting at the top-left cell of rng. Nil values leave
// the existing cell untouched, as the Sheets API does.
func (s *Sheet) Update(_ context.Context, rng string, rows [][]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, err := s.begin("update", rng)
	if err != nil {
		return err
	}
	tab := s.tabs[r.Sheet]
	for i, row := range rows {
		ri := r.StartRow - 1 + i
		for len(tab) <= ri {
			tab = append(tab, nil)
		}
		for j, v := range row {
			if v == nil {
				continue
			}
			ci := r.StartCol - 1 + j
			for len(tab[ri]) <= ci {
				tab[ri] = append(tab[ri], nil)
			}
			tab[ri][ci] = v
		}
	}
	s.tabs[r.Sheet] = tab
	return nil
}

// Clear blanks every cell inside rng without removing rows.
func (s *Sheet) Clear(_ context.Context, rng string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, err := s.begin("clear", rng)
	if err != nil {
		return err
	}
	tab := s.tabs[r.Sheet]
	last := len(tab)
	if r.EndRow > 0 && r.EndRow < last {
		last = r.EndRow
	}
	for i := r.StartRow - 1; i < last; i++ {
		for c := r.StartCol - 1; c < r.EndCol && c < len(tab[i]); c++ {
			tab[i][c] = nil
		}
	}
	return nil
}

func trimRow(row []interface{}) []interface{} {
	n := len(row)
	for n > 0 && isEmpty(row[n-1]) {
		n--
	}
	if n == 0 {
		return []interface{}{}
	}
	return row[:n]
}

func isEmpty(v interface{}) bool {
	if v == nil {
		return true
	}
	str, ok := v.(string)
	return ok && str == ""
}

func copyRows(rows [][]interface{}) [][]interface{} {
	out := make([][]interface{}, len(rows))
	for i, row := range rows {
		out[i] = append([]interface{}(nil), row...)
	}
	return out
}
