package catalog

import (
	"github.com/giygas/chobisangyak/catalog/entities"
	"github.com/giygas/chobisangyak/interfaces"
)

// Compile-time check to ensure CatalogParser implements Loader interface
var _ interfaces.Loader = (*CatalogParser)(nil)

// CatalogParser loads catalog exports from the filesystem
type CatalogParser struct {
	columns Columns
}

// NewCatalogParser creates a parser for exports using the given headers
func NewCatalogParser(columns Columns) *CatalogParser {
	return &CatalogParser{columns: columns}
}

// Load implements the Loader interface
func (p *CatalogParser) Load(source string) (*entities.Table, entities.IngestStats, error) {
	return LoadFile(source, p.columns)
}
