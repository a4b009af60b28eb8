package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forno-rosati/bakery-orders-service/internal/models"
)

func TestDefaultCatalog(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)
	require.Len(t, c.Products, 3)

	p, ok := c.Find("panzerotto")
	require.True(t, ok)
	assert.Equal(t, "Panzerotto", p.Name)
	assert.Equal(t, 2.50, p.PricePerUnit)
	assert.Zero(t, p.PricePerKg)
	assert.Len(t, p.Variants, 3)
}

func TestPriceFor(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	tests := []struct {
		id    string
		unit  models.Unit
		price float64
		ok    bool
	}{
		{"panzerotto", models.UnitPieces, 2.50, true},
		{"panzerotto", models.UnitKilograms, 0, false},
		{"focaccia", models.UnitPieces, 2.00, true},
		{"focaccia", models.UnitKilograms, 12.00, true},
		{"calzone", models.UnitPieces, 3.50, true},
		{"calzone", models.UnitKilograms, 15.00, true},
		{"missing", models.UnitPieces, 0, false},
	}

	for _, tt := range tests {
		price, ok := c.PriceFor(tt.id, tt.unit)
		assert.Equal(t, tt.ok, ok, "%s/%s", tt.id, tt.unit)
		assert.Equal(t, tt.price, price, "%s/%s", tt.id, tt.unit)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	data := `products:
  - id: pane
    name: Pane
    pricePerKg: 4.00
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	c, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, c.Products, 1)

	price, ok := c.PriceFor("pane", models.UnitKilograms)
	require.True(t, ok)
	assert.Equal(t, 4.00, price)
}

func TestLoadFile_EmptyPathFallsBack(t *testing.T) {
	c, err := LoadFile("")
	require.NoError(t, err)
	assert.NotEmpty(t, c.Products)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"no products", "products: []"},
		{"missing name", "products:\n  - id: x\n    pricePerUnit: 1"},
		{"no price", "products:\n  - id: x\n    name: X"},
		{"bad yaml", "products: ["},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parse([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}
