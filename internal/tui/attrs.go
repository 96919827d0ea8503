package tui

import (
	"encoding/json"
	"fmt"
	"sort"

	table "github.com/charmbracelet/bubbles/table"

	"polymap/internal/geom"
)

// refreshAttrsFromCurrent rebuilds the table columns/rows from the loaded dataset
func (m *Model) refreshAttrsFromCurrent() {
	cols, rows := buildAttributes(m.mv.dataset)
	// If there are no columns or rows, disable attributes view to avoid rendering panics
	if len(cols) == 0 || len(rows) == 0 {
		m.showAttrs = false
		m.status = "no attributes for current dataset"
		return
	}
	tcols := make([]table.Column, 0, len(cols)+1)
	tcols = append(tcols, table.Column{Title: "#", Width: 4})
	maxColW := 24
	for _, c := range cols {
		w := min(len(c)+2, maxColW)
		tcols = append(tcols, table.Column{Title: c, Width: w})
	}
	trows := make([]table.Row, 0, len(rows))
	for i, r := range rows {
		row := make([]string, 0, len(r)+1)
		row = append(row, fmt.Sprintf("%d", i+1))
		row = append(row, r...)
		trows = append(trows, table.Row(row))
	}
	// Avoid transient mismatch: clear rows, set columns, then set rows
	m.tbl.SetRows(nil)
	m.tbl.SetColumns(tcols)
	m.tbl.SetRows(trows)
}

// buildAttributes unions property keys across features. The name column comes
// first, the rest are sorted.
func buildAttributes(d geom.Dataset) ([]string, [][]string) {
	if d.Len() == 0 {
		return nil, nil
	}
	seen := map[string]bool{}
	var keys []string
	for _, f := range d.Features {
		for k := range f.Properties {
			if k != "name" && !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}
	}
	sort.Strings(keys)
	order := append([]string{"name", "kind"}, keys...)

	rows := make([][]string, 0, d.Len())
	for _, f := range d.Features {
		vals := make([]string, 0, len(order))
		vals = append(vals, f.Name, f.Kind.String())
		for _, k := range keys {
			vals = append(vals, formatValue(f.Properties[k]))
		}
		rows = append(rows, vals)
	}
	return order, rows
}

func formatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return fmt.Sprintf("%g", t)
	case bool:
		if t {
			return "true"
		}
		return "false"
	default:
		bs, _ := json.Marshal(t)
		return string(bs)
	}
}
