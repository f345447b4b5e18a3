// Package table provides the long-format output table every generator
// scenario emits: one row per unit-timepoint, numeric and categorical
// columns addressed by name.
package table

import (
	"fmt"

	"gamsim/domain/core"
)

// ColumnKind distinguishes numeric from categorical columns.
type ColumnKind string

const (
	KindNumeric     ColumnKind = "numeric"
	KindCategorical ColumnKind = "categorical"
)

// Column is one named column of a Table. Exactly one of Numeric or Labels is
// populated, according to Kind.
type Column struct {
	Name    string
	Kind    ColumnKind
	Numeric []float64
	Labels  []string
}

// Table is the row-oriented output of one generation call. Column order is
// the order columns were added in; row order within a unit is chronological,
// across units insertion order by unit id.
type Table struct {
	RunID   core.RunID
	columns []Column
	rows    int
}

// New returns an empty table stamped with a fresh run id.
func New() *Table {
	return &Table{RunID: core.NewRunID()}
}

// AddNumeric appends a numeric column. The first column added fixes the row
// count; later columns must match it.
func (t *Table) AddNumeric(name string, values []float64) error {
	if err := t.checkLen(name, len(values)); err != nil {
		return err
	}
	t.columns = append(t.columns, Column{Name: name, Kind: KindNumeric, Numeric: values})
	return nil
}

// AddCategorical appends a categorical column of string labels.
func (t *Table) AddCategorical(name string, labels []string) error {
	if err := t.checkLen(name, len(labels)); err != nil {
		return err
	}
	t.columns = append(t.columns, Column{Name: name, Kind: KindCategorical, Labels: labels})
	return nil
}

func (t *Table) checkLen(name string, n int) error {
	if len(t.columns) == 0 {
		t.rows = n
		return nil
	}
	if n != t.rows {
		return core.NewConfigurationError("table",
			fmt.Sprintf("column %s has %d rows, expected %d", name, n, t.rows))
	}
	return nil
}

// Rows returns the number of rows.
func (t *Table) Rows() int { return t.rows }

// Cols returns the number of columns.
func (t *Table) Cols() int { return len(t.columns) }

// Columns returns the columns in insertion order.
func (t *Table) Columns() []Column { return t.columns }

// Numeric returns the numeric column with the given name.
func (t *Table) Numeric(name string) ([]float64, bool) {
	for _, c := range t.columns {
		if c.Name == name && c.Kind == KindNumeric {
			return c.Numeric, true
		}
	}
	return nil, false
}

// Categorical returns the categorical column with the given name.
func (t *Table) Categorical(name string) ([]string, bool) {
	for _, c := range t.columns {
		if c.Name == name && c.Kind == KindCategorical {
			return c.Labels, true
		}
	}
	return nil, false
}

// Validate ensures every column has the same length.
func (t *Table) Validate() error {
	for _, c := range t.columns {
		n := len(c.Numeric)
		if c.Kind == KindCategorical {
			n = len(c.Labels)
		}
		if n != t.rows {
			return core.NewConfigurationError("table",
				fmt.Sprintf("column %s has %d rows, expected %d", c.Name, n, t.rows))
		}
	}
	return nil
}

// Equal reports whether two tables hold identical data, ignoring run ids.
// Numeric values are compared exactly; determinism tests depend on that.
func (t *Table) Equal(o *Table) bool {
	if t.rows != o.rows || len(t.columns) != len(o.columns) {
		return false
	}
	for i, c := range t.columns {
		oc := o.columns[i]
		if c.Name != oc.Name || c.Kind != oc.Kind {
			return false
		}
		for j, v := range c.Numeric {
			if v != oc.Numeric[j] {
				return false
			}
		}
		for j, v := range c.Labels {
			if v != oc.Labels[j] {
				return false
			}
		}
	}
	return true
}
