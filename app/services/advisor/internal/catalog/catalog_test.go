package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeCatalog(t, `Brand,Model Name,Price,laptop_feature
HP,Pavilion 15,"62,990","Medium GPU, SSD storage"
Dell,Inspiron 14,48490,"Low GPU, SSD storage"
`)

	cat, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 2, cat.Len())

	entries := cat.Entries()
	assert.Equal(t, "HP", entries[0].Brand)
	assert.Equal(t, "Pavilion 15", entries[0].Model)
	assert.Equal(t, int64(62990), entries[0].Price)
	assert.Equal(t, "Medium GPU, SSD storage", entries[0].Features)
	assert.Equal(t, int64(48490), entries[1].Price)
}

func TestLoadHeaderCaseInsensitive(t *testing.T) {
	path := writeCatalog(t, `brand,model name,PRICE,Laptop_Feature
Acer,Aspire 3,32999,"Low everything"
`)

	cat, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 1, cat.Len())
	assert.Equal(t, int64(32999), cat.Entries()[0].Price)
}

func TestLoadMissingColumns(t *testing.T) {
	path := writeCatalog(t, "Brand,Cost\nHP,100\n")

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadUnreadablePriceDefaultsToZero(t *testing.T) {
	path := writeCatalog(t, `Price,laptop_feature
not-a-price,"Some features"
`)

	cat, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 1, cat.Len())
	assert.Equal(t, int64(0), cat.Entries()[0].Price)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.csv"))
	assert.Error(t, err)
}
