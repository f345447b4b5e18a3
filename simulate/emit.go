package simulate

import (
	"gamsim/domain/table"
)

// col is a pending output column; buildTable assembles columns in order so
// every scenario emits the same shape for the same config.
type col struct {
	name    string
	numeric []float64
	labels  []string
}

func numeric(name string, v []float64) col    { return col{name: name, numeric: v} }
func categorical(name string, l []string) col { return col{name: name, labels: l} }

func buildTable(cols []col) (*table.Table, error) {
	tbl := table.New()
	for _, c := range cols {
		var err error
		if c.labels != nil {
			err = tbl.AddCategorical(c.name, c.labels)
		} else {
			err = tbl.AddNumeric(c.name, c.numeric)
		}
		if err != nil {
			return nil, err
		}
	}
	if err := tbl.Validate(); err != nil {
		return nil, err
	}
	return tbl, nil
}
