package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Tiliavir/timelog-editor/internal/model"
)

func catalogPath(base string) string {
	return filepath.Join(base, "catalog.json")
}

// LoadCatalog reads the reference tables. A missing file yields an empty catalog.
func LoadCatalog(base string) (model.Catalog, error) {
	path := catalogPath(base)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return model.Catalog{}, nil
	}
	if err != nil {
		return model.Catalog{}, fmt.Errorf("storage error reading %s: %w", path, err)
	}
	var c model.Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return model.Catalog{}, fmt.Errorf("parsing catalog %s: %w", path, err)
	}
	return c, nil
}

// SaveCatalog atomically writes the reference tables.
func SaveCatalog(base string, c model.Catalog) error {
	return writeJSON(catalogPath(base), c)
}
