package catalog

import (
	"fmt"

	"github.com/trueshade/api/models"
)

// Source supplies catalog rows. Both reads must be free of side effects.
type Source interface {
	Name() string
	ListShades() ([]models.Product, error)
	ListShadesByBrand(brand string) ([]models.Product, error)
}

// BuiltinSource serves the static shade table
type BuiltinSource struct{}

func (BuiltinSource) Name() string { return "builtin" }

func (BuiltinSource) ListShades() ([]models.Product, error) {
	return BuiltinProducts(), nil
}

func (BuiltinSource) ListShadesByBrand(brand string) ([]models.Product, error) {
	want := foldBrand(BrandKey(brand))
	var products []models.Product
	for _, p := range BuiltinProducts() {
		if foldBrand(BrandKey(p.Brand)) == want {
			products = append(products, p)
		}
	}
	return products, nil
}

// ProductLister is the slice of the product repository a StoreSource needs
type ProductLister interface {
	GetAll() ([]models.Product, error)
	GetByBrand(brand string) ([]models.Product, error)
}

// StoreSource reads shades from the product store
type StoreSource struct {
	Products ProductLister
}

func (StoreSource) Name() string { return "store" }

func (s StoreSource) ListShades() ([]models.Product, error) {
	products, err := s.Products.GetAll()
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	return products, nil
}

func (s StoreSource) ListShadesByBrand(brand string) ([]models.Product, error) {
	products, err := s.Products.GetByBrand(brand)
	if err != nil {
		return nil, fmt.Errorf("listing products for %s: %w", brand, err)
	}
	return products, nil
}
