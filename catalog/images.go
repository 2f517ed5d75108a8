package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ImageOverride maps a product name substring to a curated image
type ImageOverride struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

// ImageOverrides is checked in order; the first key contained in a product
// name wins, even when a later key would be a longer match.
type ImageOverrides []ImageOverride

// DefaultImageOverrides returns the curated images for the products most
// often sold in convenience stores
func DefaultImageOverrides() ImageOverrides {
	return ImageOverrides{
		{Key: "판콜에이내복액", URL: "https://www.dong-wha.co.kr/product/images/product/pancol_a.png"},
		{Key: "판피린티정", URL: "https://www.donga-st.com/upload/product/20210216_105244_414.jpg"},
		{Key: "타이레놀정500밀리그람(아세트아미노펜)", URL: "https://www.tylenol.co.kr/sites/tylenol_kr/files/styles/product_image/public/product-images/tylenol_500mg_prod_0.png"},
		{Key: "어린이부루펜시럽", URL: "https://samil-pharm.com/img/product/brufen_syrup.jpg"},
		{Key: "베아제정", URL: "https://www.daewoong.co.kr/images/product/otc/bease_img01.jpg"},
		{Key: "닥터베아제정", URL: "https://www.daewoong.co.kr/images/product/otc/dr_bease_img01.jpg"},
		{Key: "훼스탈플러스정", URL: "https://handok.co.kr/wp-content/uploads/2020/07/festal_plus.jpg"},
		{Key: "신신파스아렉스", URL: "https://sinsin.com/img/product/arex_img.jpg"},
	}
}

// Resolve returns the image to show for a product: the first matching
// override, otherwise the record's own image. It reports false when there
// is neither and the caller should render a placeholder.
func (o ImageOverrides) Resolve(productName, recordImage string) (string, bool) {
	for _, override := range o {
		if strings.Contains(productName, override.Key) {
			return override.URL, true
		}
	}

	if recordImage != "" {
		return recordImage, true
	}

	return "", false
}

// LoadImageOverrides reads an ordered YAML mapping of name substring to image
// URL. Document order is kept so that it decides ties. An empty path returns
// the built-in table.
func LoadImageOverrides(path string) (ImageOverrides, error) {
	if path == "" {
		return DefaultImageOverrides(), nil
	}

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read image overrides: %w", err)
	}

	return ParseImageOverrides(data)
}

// ParseImageOverrides decodes the YAML form of the override table
func ParseImageOverrides(data []byte) (ImageOverrides, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse image overrides: %w", err)
	}

	// An empty document is an empty table
	if len(doc.Content) == 0 {
		return ImageOverrides{}, nil
	}

	mapping := doc.Content[0]
	if mapping.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("image overrides must be a mapping, got line %d", mapping.Line)
	}

	overrides := make(ImageOverrides, 0, len(mapping.Content)/2)
	seen := make(map[string]struct{}, len(mapping.Content)/2)

	for i := 0; i+1 < len(mapping.Content); i += 2 {
		keyNode, valueNode := mapping.Content[i], mapping.Content[i+1]
		if keyNode.Kind != yaml.ScalarNode || valueNode.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("image override at line %d must map a name to a URL", keyNode.Line)
		}

		key := strings.TrimSpace(keyNode.Value)
		url := strings.TrimSpace(valueNode.Value)
		if key == "" || url == "" {
			return nil, fmt.Errorf("image override at line %d has an empty name or URL", keyNode.Line)
		}

		// First occurrence wins, as it would during lookup
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		overrides = append(overrides, ImageOverride{Key: key, URL: url})
	}

	return overrides, nil
}
