package cart

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dlemos/grocer-mcp/internal/catalog"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.json")
	content := `[
	  {"id": "bread_whole", "name": "Whole Wheat Bread", "price": 3.0, "units": "loaf"},
	  {"id": "peanut_butter", "name": "Peanut Butter", "price": 5.0, "units": "jar"},
	  {"id": "butter", "name": "Butter", "price": 2.75, "units": "pack"}
	]`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	cat, err := catalog.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	return cat
}

func TestAddAccumulates(t *testing.T) {
	c := New()
	c.Add("bread_whole", 2)
	got := c.Add("bread_whole", 3)
	if got != 5 {
		t.Errorf("Add returned %d, want 5", got)
	}
	if c.Qty("bread_whole") != 5 {
		t.Errorf("Qty = %d, want 5", c.Qty("bread_whole"))
	}
}

func TestAddClampsToOne(t *testing.T) {
	c := New()
	if got := c.Add("bread_whole", 0); got != 1 {
		t.Errorf("Add(0) = %d, want 1", got)
	}
	if got := c.Add("butter", -4); got != 1 {
		t.Errorf("Add(-4) = %d, want 1", got)
	}
}

func TestRemove(t *testing.T) {
	c := New()
	c.Add("bread_whole", 1)
	if !c.Remove("bread_whole") {
		t.Error("Remove should report true for a present item")
	}
	if c.Remove("bread_whole") {
		t.Error("Remove should report false for an absent item")
	}
	if !c.Empty() {
		t.Error("cart should be empty")
	}
}

func TestSetQty(t *testing.T) {
	c := New()
	c.Add("bread_whole", 4)

	c.SetQty("bread_whole", 2)
	if c.Qty("bread_whole") != 2 {
		t.Errorf("Qty = %d, want 2", c.Qty("bread_whole"))
	}

	// Non-positive means remove, never a negative quantity
	c.SetQty("bread_whole", 0)
	if c.Qty("bread_whole") != 0 || c.Len() != 0 {
		t.Error("SetQty(0) should remove the entry")
	}

	c.Add("butter", 1)
	c.SetQty("butter", -1)
	if c.Qty("butter") != 0 || !c.Empty() {
		t.Error("SetQty(-1) should remove the entry")
	}
}

func TestSnapshot(t *testing.T) {
	cat := testCatalog(t)
	c := New()
	c.Add("bread_whole", 2)
	c.Add("peanut_butter", 1)

	view := c.Snapshot(cat)
	if len(view.Items) != 2 {
		t.Fatalf("len(Items) = %d, want 2", len(view.Items))
	}
	if view.Items[0].ID != "bread_whole" {
		t.Errorf("Items[0].ID = %q, want bread_whole (insertion order)", view.Items[0].ID)
	}
	if view.Items[0].Subtotal != 6.0 {
		t.Errorf("bread subtotal = %v, want 6.0", view.Items[0].Subtotal)
	}
	if view.Total != 11.0 {
		t.Errorf("Total = %v, want 11.0", view.Total)
	}
}

func TestSnapshotSkipsUnresolvedIDs(t *testing.T) {
	cat := testCatalog(t)
	c := New()
	c.Add("bread_whole", 1)
	c.Add("ghost_item", 3)

	view := c.Snapshot(cat)
	if len(view.Items) != 1 {
		t.Fatalf("len(Items) = %d, want 1", len(view.Items))
	}
	if view.Items[0].ID != "bread_whole" {
		t.Errorf("Items[0].ID = %q, want bread_whole", view.Items[0].ID)
	}
	if view.Total != 3.0 {
		t.Errorf("Total = %v, want 3.0 (ghost contributes nothing)", view.Total)
	}
}

func TestSnapshotEmptyCart(t *testing.T) {
	cat := testCatalog(t)
	view := New().Snapshot(cat)
	if view.Items == nil {
		t.Error("Items should be an empty slice, not nil, so it encodes as []")
	}
	if len(view.Items) != 0 || view.Total != 0 {
		t.Errorf("empty snapshot = %+v", view)
	}
}

func TestSnapshotRoundsTotal(t *testing.T) {
	cat := testCatalog(t)
	c := New()
	c.Add("butter", 3) // 3 × 2.75 = 8.25, exercises the rounding path
	view := c.Snapshot(cat)
	if view.Total != 8.25 {
		t.Errorf("Total = %v, want 8.25", view.Total)
	}
}

func TestClear(t *testing.T) {
	c := New()
	c.Add("bread_whole", 2)
	c.Add("butter", 1)
	c.Clear()
	if !c.Empty() || c.Len() != 0 {
		t.Error("Clear should empty the cart")
	}
	// Cart remains usable after Clear
	if got := c.Add("butter", 2); got != 2 {
		t.Errorf("Add after Clear = %d, want 2", got)
	}
}
