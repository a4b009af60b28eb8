package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/forno-rosati/bakery-orders-service/internal/models"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Variant is a named variation of a product (filling, topping).
type Variant struct {
	Name string `yaml:"name" json:"name"`
}

// Product is a catalog entry. A product can be priced per piece, per
// kilogram, or both; the order form offers whichever modes carry a price.
type Product struct {
	ID           string    `yaml:"id" json:"id"`
	Name         string    `yaml:"name" json:"name"`
	Variants     []Variant `yaml:"variants" json:"variants"`
	PricePerUnit float64   `yaml:"pricePerUnit,omitempty" json:"pricePerUnit,omitempty"`
	PricePerKg   float64   `yaml:"pricePerKg,omitempty" json:"pricePerKg,omitempty"`
}

// Catalog is the static product list. It is read-only configuration: orders
// reference products by name with no referential integrity back to it.
type Catalog struct {
	Products []Product `yaml:"products" json:"products"`
}

// Default returns the built-in catalog.
func Default() (*Catalog, error) {
	return parse(defaultCatalog)
}

// LoadFile reads a catalog from a YAML file, falling back to the built-in
// catalog when path is empty.
func LoadFile(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return parse(data)
}

func parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if len(c.Products) == 0 {
		return nil, fmt.Errorf("catalog has no products")
	}
	for _, p := range c.Products {
		if p.ID == "" || p.Name == "" {
			return nil, fmt.Errorf("catalog product missing id or name")
		}
		if p.PricePerUnit == 0 && p.PricePerKg == 0 {
			return nil, fmt.Errorf("product %s has no price", p.ID)
		}
	}
	return &c, nil
}

// Find returns the product with the given ID.
func (c *Catalog) Find(id string) (*Product, bool) {
	for i := range c.Products {
		if c.Products[i].ID == id {
			return &c.Products[i], true
		}
	}
	return nil, false
}

// PriceFor returns the price of one quantity step of a product in the given
// unit, or false when the product is not sold that way.
func (c *Catalog) PriceFor(id string, unit models.Unit) (float64, bool) {
	p, ok := c.Find(id)
	if !ok {
		return 0, false
	}
	switch unit {
	case models.UnitPieces:
		if p.PricePerUnit > 0 {
			return p.PricePerUnit, true
		}
	case models.UnitKilograms:
		if p.PricePerKg > 0 {
			return p.PricePerKg, true
		}
	}
	return 0, false
}
