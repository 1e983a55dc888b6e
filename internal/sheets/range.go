package sheets

import (
	"fmt"
	"strconv"
	"strings"
)

// ColumnLetter converts a 1-based column index to its A1 letters (1 -> A, 27 -> AA).
func ColumnLetter(col int) string {
	if col < 1 {
		return ""
	}
	var b []byte
	for col > 0 {
		col--
		b = append([]byte{byte('A' + col%26)}, b...)
		col /= 26
	}
	return string(b)
}

// ColumnIndex converts A1 letters back to a 1-based column index. It returns 0
// for anything that is not made of letters.
func ColumnIndex(letters string) int {
	n := 0
	for _, r := range strings.ToUpper(letters) {
		if r < 'A' || r > 'Z' {
			return 0
		}
		n = n*26 + int(r-'A'+1)
	}
	return n
}

// quoteSheet wraps sheet names that are not plain identifiers in single quotes.
func quoteSheet(name string) string {
	plain := name != ""
	for _, r := range name {
		if !(r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')) {
			plain = false
			break
		}
	}
	if plain {
		return name
	}
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}

// TableRange addresses every row from fromRow downwards across width columns,
// e.g. Inventory!A2:J.
func TableRange(sheet string, width, fromRow int) string {
	return fmt.Sprintf("%s!A%d:%s", quoteSheet(sheet), fromRow, ColumnLetter(width))
}

// ColumnRange addresses a single column from fromRow downwards, e.g. Inventory!A2:A.
func ColumnRange(sheet string, col, fromRow int) string {
	c := ColumnLetter(col)
	return fmt.Sprintf("%s!%s%d:%s", quoteSheet(sheet), c, fromRow, c)
}

// RowRange addresses one full row, e.g. Inventory!A5:J5.
func RowRange(sheet string, row, width int) string {
	return fmt.Sprintf("%s!A%d:%s%d", quoteSheet(sheet), row, ColumnLetter(width), row)
}

// CellRange addresses one cell, e.g. credentials!B4.
func CellRange(sheet string, col, row int) string {
	return fmt.Sprintf("%s!%s%d", quoteSheet(sheet), ColumnLetter(col), row)
}

// AppendRange addresses whole columns for appends, e.g. Inventory!A:J.
func AppendRange(sheet string, width int) string {
	return fmt.Sprintf("%s!A:%s", quoteSheet(sheet), ColumnLetter(width))
}

// Range is a parsed A1 range. Rows and columns are 1-based; an EndRow of 0
// means the range is open downwards.
type Range struct {
	Sheet    string
	StartCol int
	StartRow int
	EndCol   int
	EndRow   int
}

// ParseRange parses the subset of A1 notation produced by this package:
// Sheet!A2:J, Sheet!A:J, Sheet!A5:J5, Sheet!B4 and quoted sheet names.
func ParseRange(s string) (Range, error) {
	bang := strings.LastIndex(s, "!")
	if bang <= 0 {
		return Range{}, fmt.Errorf("range %q has no sheet name", s)
	}
	sheet := s[:bang]
	if strings.HasPrefix(sheet, "'") && strings.HasSuffix(sheet, "'") && len(sheet) >= 2 {
		sheet = strings.ReplaceAll(sheet[1:len(sheet)-1], "''", "'")
	}

	cells := strings.Split(s[bang+1:], ":")
	if len(cells) > 2 {
		return Range{}, fmt.Errorf("range %q is malformed", s)
	}
	startCol, startRow, err := parseCell(cells[0])
	if err != nil {
		return Range{}, fmt.Errorf("range %q: %w", s, err)
	}
	r := Range{Sheet: sheet, StartCol: startCol, StartRow: startRow, EndCol: startCol, EndRow: startRow}
	if startRow == 0 {
		r.StartRow = 1
	}
	if len(cells) == 2 {
		endCol, endRow, err := parseCell(cells[1])
		if err != nil {
			return Range{}, fmt.Errorf("range %q: %w", s, err)
		}
		r.EndCol = endCol
		r.EndRow = endRow
	}
	if r.EndCol < r.StartCol {
		return Range{}, fmt.Errorf("range %q ends before it starts", s)
	}
	return r, nil
}

func parseCell(cell string) (col, row int, err error) {
	i := 0
	for i < len(cell) && ((cell[i] >= 'A' && cell[i] <= 'Z') || (cell[i] >= 'a' && cell[i] <= 'z')) {
		i++
	}
	col = ColumnIndex(cell[:i])
	if col == 0 {
		return 0, 0, fmt.Errorf("cell %q has no column", cell)
	}
	if i == len(cell) {
		return col, 0, nil
	}
	row, err = strconv.Atoi(cell[i:])
	if err != nil || row < 1 {
		return 0, 0, fmt.Errorf("cell %q has an invalid row", cell)
	}
	return col, row, nil
}
