package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/giygas/chobisangyak/catalog/entities"
	"github.com/giygas/chobisangyak/logging"
)

// Columns maps the logical record fields to the header names of the export
type Columns struct {
	Name            string `yaml:"name"`
	Manufacturer    string `yaml:"manufacturer"`
	Efficacy        string `yaml:"efficacy"`
	Usage           string `yaml:"usage"`
	Precautions     string `yaml:"precautions"`
	PurchaseChannel string `yaml:"purchase_channel"`
	ImageURL        string `yaml:"image_url"`
}

// DefaultColumns returns the header names used by the regulator export
func DefaultColumns() Columns {
	return Columns{
		Name:            "이름",
		Manufacturer:    "제조사",
		Efficacy:        "효능효과",
		Usage:           "사용법",
		Precautions:     "주의사항",
		PurchaseChannel: "구매처",
		ImageURL:        "이미지URL",
	}
}

// Raw cell values read as missing, matching the NA markers of the tools
// the export is usually produced with
var missingMarkers = map[string]struct{}{
	"": {}, "#N/A": {}, "#N/A N/A": {}, "#NA": {}, "-1.#IND": {}, "-1.#QNAN": {},
	"-NaN": {}, "-nan": {}, "1.#IND": {}, "1.#QNAN": {}, "<NA>": {}, "N/A": {},
	"NA": {}, "NULL": {}, "NaN": {}, "None": {}, "n/a": {}, "nan": {}, "null": {},
}

// row gives access to one CSV record by header position
type row struct {
	fields []string
}

// value returns the raw cell and whether it is present
func (r row) value(idx int) (string, bool) {
	if idx < 0 || idx >= len(r.fields) {
		return "", false
	}
	v := r.fields[idx]
	if _, missing := missingMarkers[v]; missing {
		return "", false
	}
	return v, true
}

func (r row) text(idx int) string {
	v, _ := r.value(idx)
	return strings.TrimSpace(v)
}

func (r row) cleaned(idx int) string {
	v, _ := r.value(idx)
	return Clean(v)
}

type columnIndex struct {
	name, manufacturer, efficacy, usage, precautions, channel, image int
}

func indexColumns(header []string, cols Columns) (columnIndex, error) {
	positions := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, seen := positions[h]; !seen {
			positions[h] = i
		}
	}

	lookup := func(name string) int {
		if i, ok := positions[name]; ok {
			return i
		}
		return -1
	}

	idx := columnIndex{
		name:         lookup(cols.Name),
		manufacturer: lookup(cols.Manufacturer),
		efficacy:     lookup(cols.Efficacy),
		usage:        lookup(cols.Usage),
		precautions:  lookup(cols.Precautions),
		channel:      lookup(cols.PurchaseChannel),
		image:        lookup(cols.ImageURL),
	}

	var missing []string
	if idx.efficacy < 0 {
		missing = append(missing, cols.Efficacy)
	}
	if idx.usage < 0 {
		missing = append(missing, cols.Usage)
	}
	if len(missing) > 0 {
		return idx, fmt.Errorf("missing required columns: %v", missing)
	}

	return idx, nil
}

// Ingest parses a CSV export with a header row into a normalized table.
// Rows whose raw efficacy or usage is missing are dropped before cleaning;
// every other row yields exactly one record, in source order.
func Ingest(r io.Reader, cols Columns) (*entities.Table, entities.IngestStats, error) {
	var stats entities.IngestStats

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, stats, fmt.Errorf("empty source: no header row")
		}
		return nil, stats, fmt.Errorf("failed to read header: %w", err)
	}

	idx, err := indexColumns(header, cols)
	if err != nil {
		return nil, stats, err
	}

	records := make([]entities.DrugRecord, 0, 256)

	for {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, stats, fmt.Errorf("failed to parse row %d: %w", stats.TotalRows+1, err)
		}

		stats.TotalRows++
		if len(fields) < len(header) {
			stats.ShortRows++
		}
		current := row{fields: fields}

		// Completeness is checked on the raw values, before cleaning
		_, hasEfficacy := current.value(idx.efficacy)
		_, hasUsage := current.value(idx.usage)
		if !hasEfficacy {
			stats.MissingEfficacy++
		}
		if !hasUsage {
			stats.MissingUsage++
		}
		if !hasEfficacy || !hasUsage {
			continue
		}

		record := entities.DrugRecord{
			Name:            current.text(idx.name),
			Manufacturer:    current.text(idx.manufacturer),
			Efficacy:        current.cleaned(idx.efficacy),
			Usage:           current.cleaned(idx.usage),
			Precautions:     current.cleaned(idx.precautions),
			PurchaseChannel: current.text(idx.channel),
			ImageURL:        current.text(idx.image),
		}
		if record.Efficacy == "" {
			stats.EmptiedEfficacy++
		}

		records = append(records, record)
	}

	stats.KeptRows = len(records)

	if stats.Dropped() > 0 || stats.ShortRows > 0 {
		logging.Info("Catalog skip statistics",
			"missing_efficacy", stats.MissingEfficacy,
			"missing_usage", stats.MissingUsage,
			"short_rows", stats.ShortRows,
			"total_rows", stats.TotalRows,
			"records_kept", stats.KeptRows)
	}

	return &entities.Table{Records: records}, stats, nil
}
