// Package results assembles computed metric records into tabular output
// with a fixed, documented column schema. Tables are plain rows-by-columns
// structures; exporting them to CSV or GIS attribute tables is the caller's
// concern.
package results

import (
	"fmt"
	"strconv"

	"github.com/dkelsey/fracmosaic/pkg/analysis"
)

// DatumKind discriminates table cell contents.
type DatumKind int

const (
	// KindNotComputed is the explicit marker for values that could not be
	// derived (for example spacing without a transect). Never zero-filled.
	KindNotComputed DatumKind = iota
	// KindText is a string cell.
	KindText
	// KindNumber is a numeric cell.
	KindNumber
)

// Datum is one table cell.
type Datum struct {
	Kind   DatumKind
	Text   string
	Number float64
}

// Text returns a string cell.
func Text(s string) Datum {
	return Datum{Kind: KindText, Text: s}
}

// Number returns a numeric cell.
func Number(v float64) Datum {
	return Datum{Kind: KindNumber, Number: v}
}

// Int returns a numeric cell from an integer.
func Int(v int) Datum {
	return Number(float64(v))
}

// Bool returns a text cell holding "true" or "false".
func Bool(v bool) Datum {
	return Text(strconv.FormatBool(v))
}

// FromStat converts an aggregate stat, preserving the not-computed marker.
func FromStat(s analysis.Stat) Datum {
	if !s.Computed {
		return Datum{Kind: KindNotComputed}
	}
	return Number(s.Value)
}

// String renders the cell for export. Not-computed cells render as "NA".
func (d Datum) String() string {
	switch d.Kind {
	case KindText:
		return d.Text
	case KindNumber:
		return strconv.FormatFloat(d.Number, 'g', -1, 64)
	default:
		return "NA"
	}
}

// Table is an ordered grid of rows under a fixed column header. Column
// order and naming never depend on the data.
type Table struct {
	Columns []string
	Rows    [][]Datum
}

// NewTable returns an empty table over the given columns.
func NewTable(columns []string) *Table {
	return &Table{Columns: columns}
}

// AppendRow adds a row, rejecting arity mismatches.
func (t *Table) AppendRow(row []Datum) error {
	if len(row) != len(t.Columns) {
		return fmt.Errorf("row has %d cells, table has %d columns", len(row), len(t.Columns))
	}
	t.Rows = append(t.Rows, row)
	return nil
}

// mustAppend adds a row built against the package's own schemas; an arity
// mismatch here is a programming error.
func (t *Table) mustAppend(row []Datum) {
	if err := t.AppendRow(row); err != nil {
		panic(err)
	}
}

// RowCount returns the number of rows.
func (t *Table) RowCount() int { return len(t.Rows) }
