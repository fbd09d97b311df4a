package ingest

import "strings"

type row struct {
	cols   map[string]int
	record []string
}

// get returns the trimmed value of a column, or "" when the column is
// missing from the header or the row is short.
func (r row) get(col string) string {
	i, ok := r.cols[col]
	if !ok || i >= len(r.record) {
		return ""
	}
	return strings.TrimSpace(r.record[i])
}

func isBlank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
