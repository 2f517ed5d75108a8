package entities

import "time"

// Table is the normalized catalog, in source row order.
// It is never mutated once built and may be shared between readers.
type Table struct {
	Source   string       `json:"source"`
	LoadedAt time.Time    `json:"loadedAt"`
	Records  []DrugRecord `json:"records"`
}

// Len returns the number of records in the table
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Records)
}
