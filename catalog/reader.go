package catalog

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
	"unicode/utf8"

	"github.com/giygas/chobisangyak/catalog/entities"
	"github.com/giygas/chobisangyak/logging"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// LoadFile reads and ingests the catalog export at path.
// Every failure is reported as a *DataUnavailableError; the cause is only
// logged here.
func LoadFile(path string, cols Columns) (*entities.Table, entities.IngestStats, error) {
	start := time.Now()

	table, stats, err := loadFile(path, cols)
	if err != nil {
		logging.Error("Failed to load catalog", "source", path, "error", err)
		return nil, stats, &DataUnavailableError{Source: path}
	}

	table.Source = path
	table.LoadedAt = time.Now()

	logging.Info("Catalog loaded",
		"source", path,
		"records", table.Len(),
		"dropped", stats.Dropped(),
		"duration", time.Since(start).String())

	return table, stats, nil
}

func loadFile(path string, cols Columns) (*entities.Table, entities.IngestStats, error) {
	if path == "" {
		return nil, entities.IngestStats{}, fmt.Errorf("no catalog path configured")
	}

	raw, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, entities.IngestStats{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return Ingest(decodeSource(raw), cols)
}

// decodeSource returns a UTF-8 reader over the export bytes.
// Exports are either UTF-8 (optionally with a BOM) or CP949.
func decodeSource(raw []byte) io.Reader {
	if utf8.Valid(raw) {
		// Strips a leading BOM if there is one
		return transform.NewReader(bytes.NewReader(raw), unicode.UTF8BOM.NewDecoder())
	}

	logging.Debug("Catalog source is not UTF-8, decoding as CP949")
	return korean.EUCKR.NewDecoder().Reader(bytes.NewReader(raw))
}
