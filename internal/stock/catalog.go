package stock

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/yungbote/petshop-storefront/internal/types"
)

type catalogFile struct {
	Products []types.Product `yaml:"products"`
}

// LoadCatalog reads the product catalog that seeds the ledger. Entries
// without an id are skipped.
func LoadCatalog(path string) ([]types.Product, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	var file catalogFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	products := make([]types.Product, 0, len(file.Products))
	for _, p := range file.Products {
		if p.ID == "" {
			continue
		}
		products = append(products, p)
	}
	return products, nil
}
