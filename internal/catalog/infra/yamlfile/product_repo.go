package yamlfile

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dwikikusuma/storefront/internal/catalog/app"
	"github.com/dwikikusuma/storefront/internal/catalog/domain"
	"gopkg.in/yaml.v3"
)

// Defaults is the product grid used when no catalog file is configured.
var Defaults = []domain.Product{
	{ID: "guantes", Name: "Guantes de Boxeo", Price: "$ 12.000", Image: "img/guantes.png"},
	{ID: "vendas", Name: "Vendas", Price: "$ 500", Image: "img/vendas.png"},
	{ID: "casco", Name: "Casco", Price: "$ 45.500", Image: "img/casco.png"},
	{ID: "bolsa", Name: "Bolsa de Arena", Price: "$ 80.000", Image: "img/bolsa.png"},
	{ID: "soga", Name: "Soga de Saltar", Price: "$ 3.200", Image: "img/soga.png"},
	{ID: "protector", Name: "Protector Bucal", Price: "$ 2.750", Image: "img/protector.png"},
}

type file struct {
	Products []domain.Product `yaml:"products"`
}

// ProductRepo serves a fixed product list read once at startup.
type ProductRepo struct {
	products []domain.Product
	byID     map[string]int
}

func NewProductRepo(products []domain.Product) (*ProductRepo, error) {
	r := &ProductRepo{byID: make(map[string]int, len(products))}
	for _, p := range products {
		p.ID = strings.TrimSpace(p.ID)
		p.Name = strings.TrimSpace(p.Name)
		if p.ID == "" {
			return nil, fmt.Errorf("product %q: missing id", p.Name)
		}
		if _, dup := r.byID[p.ID]; dup {
			return nil, fmt.Errorf("product %q: duplicate id", p.ID)
		}
		r.byID[p.ID] = len(r.products)
		r.products = append(r.products, p)
	}
	return r, nil
}

// Load reads the catalog at path. An empty path yields Defaults.
func Load(path string) (*ProductRepo, error) {
	if path == "" {
		return NewProductRepo(Defaults)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(raw)
}

func Parse(raw []byte) (*ProductRepo, error) {
	var f file
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return NewProductRepo(f.Products)
}

func (r *ProductRepo) Get(ctx context.Context, id string) (domain.Product, error) {
	i, ok := r.byID[id]
	if !ok {
		return domain.Product{}, app.ErrNotFound
	}
	return r.products[i], nil
}

func (r *ProductRepo) List(ctx context.Context) ([]domain.Product, error) {
	out := make([]domain.Product, len(r.products))
	copy(out, r.products)
	return out, nil
}
