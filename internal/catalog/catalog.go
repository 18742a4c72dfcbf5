package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dlemos/grocer-mcp/internal/models"
)

// ErrMissing is returned when the catalog document does not exist. It is
// fatal at startup: the server cannot run without a catalog.
var ErrMissing = errors.New("catalog document missing")

// Catalog is the fixed product list, loaded once at process start and
// passed by reference everywhere it is needed. Read-only after Load.
type Catalog struct {
	items  []models.CatalogItem
	byID   map[string]models.CatalogItem
	byName map[string]models.CatalogItem
}

// Load reads the catalog document at path and builds the id and
// lowercase-name lookup indexes.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w at %s", ErrMissing, path)
	}
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var items []models.CatalogItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	c := &Catalog{
		items:  items,
		byID:   make(map[string]models.CatalogItem, len(items)),
		byName: make(map[string]models.CatalogItem, len(items)),
	}
	for _, item := range items {
		c.byID[item.ID] = item
		c.byName[strings.ToLower(item.Name)] = item
	}
	return c, nil
}

// ByID looks up an item by its catalog id.
func (c *Catalog) ByID(id string) (models.CatalogItem, bool) {
	item, ok := c.byID[id]
	return item, ok
}

// ByName looks up an item by name, case-insensitively.
func (c *Catalog) ByName(name string) (models.CatalogItem, bool) {
	item, ok := c.byName[strings.ToLower(strings.TrimSpace(name))]
	return item, ok
}

// Summary returns the full item list in catalog order, for presentation
// to the decision-making caller.
func (c *Catalog) Summary() []models.CatalogItem {
	out := make([]models.CatalogItem, len(c.items))
	copy(out, c.items)
	return out
}

// Len reports the number of catalog items.
func (c *Catalog) Len() int {
	return len(c.items)
}
