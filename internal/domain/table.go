package domain

// Row is one record flattened into ordered, rendered columns.
type Row struct {
	Columns []string
	Values  []string
}

func (r *Row) Add(column, value string) {
	r.Columns = append(r.Columns, column)
	r.Values = append(r.Values, value)
}

func (r Row) Get(column string) (string, bool) {
	for i, c := range r.Columns {
		if c == column {
			return r.Values[i], true
		}
	}
	return "", false
}

type Table struct {
	Columns []string
	Rows    [][]string
}

// TableOf stacks rows under the columns of the first one.
func TableOf(rows ...Row) Table {
	if len(rows) == 0 {
		return Table{}
	}
	table := Table{Columns: append([]string(nil), rows[0].Columns...)}
	for _, row := range rows {
		values := make([]string, len(table.Columns))
		for i, column := range table.Columns {
			values[i], _ = row.Get(column)
		}
		table.Rows = append(table.Rows, values)
	}
	return table
}

func (t Table) Len() int {
	return len(t.Rows)
}

func (t Table) Column(name string) ([]string, bool) {
	idx := -1
	for i, c := range t.Columns {
		if c == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, false
	}
	values := make([]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		if idx < len(row) {
			values = append(values, row[idx])
		} else {
			values = append(values, "")
		}
	}
	return values, true
}

// Rename returns a copy with columns renamed; unknown names are left alone.
func (t Table) Rename(renames map[string]string) Table {
	out := Table{Columns: make([]string, len(t.Columns)), Rows: t.Rows}
	for i, c := range t.Columns {
		if renamed, ok := renames[c]; ok {
			out.Columns[i] = renamed
			continue
		}
		out.Columns[i] = c
	}
	return out
}
