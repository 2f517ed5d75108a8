package entities

// IngestStats summarizes what happened to the raw rows of one load
type IngestStats struct {
	TotalRows       int `json:"total_rows"`
	KeptRows        int `json:"kept_rows"`
	MissingEfficacy int `json:"missing_efficacy"`
	MissingUsage    int `json:"missing_usage"`
	EmptiedEfficacy int `json:"emptied_efficacy"`
	ShortRows       int `json:"short_rows"`
}

// Dropped returns the number of rows removed by the completeness filter
func (s IngestStats) Dropped() int {
	return s.TotalRows - s.KeptRows
}
