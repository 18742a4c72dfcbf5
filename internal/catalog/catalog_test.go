package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const sampleCatalog = `[
  {"id": "bread_whole", "name": "Whole Wheat Bread", "price": 3.0, "units": "loaf"},
  {"id": "peanut_butter", "name": "Peanut Butter", "price": 5.0, "units": "jar"},
  {"id": "milk_1l", "name": "Milk 1L", "price": 1.8}
]`

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	cat, err := Load(writeCatalog(t, sampleCatalog))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cat.Len() != 3 {
		t.Errorf("Len = %d, want 3", cat.Len())
	}

	item, ok := cat.ByID("bread_whole")
	if !ok {
		t.Fatal("ByID(bread_whole) not found")
	}
	if item.Name != "Whole Wheat Bread" {
		t.Errorf("Name = %q, want %q", item.Name, "Whole Wheat Bread")
	}
	if item.Price != 3.0 {
		t.Errorf("Price = %v, want 3.0", item.Price)
	}
	if item.Units != "loaf" {
		t.Errorf("Units = %q, want %q", item.Units, "loaf")
	}

	if _, ok := cat.ByID("nope"); ok {
		t.Error("ByID(nope) should not resolve")
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "catalog.json"))
	if !errors.Is(err, ErrMissing) {
		t.Errorf("err = %v, want ErrMissing", err)
	}
}

func TestLoadInvalid(t *testing.T) {
	_, err := Load(writeCatalog(t, "{not json"))
	if err == nil {
		t.Error("Expected error for invalid catalog document")
	}
}

func TestByNameCaseInsensitive(t *testing.T) {
	cat, err := Load(writeCatalog(t, sampleCatalog))
	if err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{"peanut butter", "Peanut Butter", "  PEANUT BUTTER  "} {
		item, ok := cat.ByName(name)
		if !ok {
			t.Errorf("ByName(%q) not found", name)
			continue
		}
		if item.ID != "peanut_butter" {
			t.Errorf("ByName(%q).ID = %q, want %q", name, item.ID, "peanut_butter")
		}
	}
}

func TestSummary(t *testing.T) {
	cat, err := Load(writeCatalog(t, sampleCatalog))
	if err != nil {
		t.Fatal(err)
	}

	sum := cat.Summary()
	if len(sum) != 3 {
		t.Fatalf("Summary len = %d, want 3", len(sum))
	}
	// Catalog order is preserved
	if sum[0].ID != "bread_whole" || sum[2].ID != "milk_1l" {
		t.Errorf("Summary order = [%s ... %s], want [bread_whole ... milk_1l]", sum[0].ID, sum[2].ID)
	}
	// Optional units may be absent
	if sum[2].Units != "" {
		t.Errorf("milk_1l Units = %q, want empty", sum[2].Units)
	}

	// Mutating the returned slice must not affect the catalog
	sum[0].Name = "mutated"
	item, _ := cat.ByID("bread_whole")
	if item.Name == "mutated" {
		t.Error("Summary should return a copy")
	}
}
