package yamlfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/dwikikusuma/storefront/internal/catalog/app"
	"github.com/dwikikusuma/storefront/internal/catalog/domain"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	r, err := Load("")
	require.NoError(t, err)
	got, err := r.List(context.Background())
	require.NoError(t, err)
	if diff := cmp.Diff(Defaults, got); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
products:
  - id: " casco "
    name: Casco
    price: "$ 45.500"
    image: img/casco.png
  - id: soga
    name: Soga
    price: "3200"
`), 0o644))

	r, err := Load(path)
	require.NoError(t, err)

	p, err := r.Get(context.Background(), "casco")
	require.NoError(t, err)
	assert.Equal(t, domain.Product{ID: "casco", Name: "Casco", Price: "$ 45.500", Image: "img/casco.png"}, p)
	assert.Equal(t, int64(45500), p.Amount())

	_, err = r.Get(context.Background(), "guantes")
	assert.ErrorIs(t, err, app.ErrNotFound)

	list, err := r.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "soga", list[1].ID)
}

func TestParseErrors(t *testing.T) {
	for name, raw := range map[string]string{
		"duplicate id":  "products:\n  - {id: a, name: A}\n  - {id: a, name: B}\n",
		"missing id":    "products:\n  - {name: A}\n",
		"unknown field": "products:\n  - {id: a, colour: red}\n",
		"not yaml":      "products: [",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(raw))
			assert.Error(t, err)
		})
	}

	t.Run("empty file", func(t *testing.T) {
		r, err := Parse(nil)
		require.NoError(t, err)
		list, _ := r.List(context.Background())
		assert.Empty(t, list)
	})
}
