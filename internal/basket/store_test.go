package basket

import (
	"testing"

	"github.com/shopverse-dev/shopverse/internal/testutil"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(testutil.TempStateDB(t))
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

var widget = Product{ID: "p1", Name: "Widget", UnitPriceCents: 250, Stock: 5}

func TestAddMergesByProductID(t *testing.T) {
	store := newTestStore(t)

	if err := store.Add(widget, 2); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := store.Add(widget, 2); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	lines, err := store.Lines()
	if err != nil {
		t.Fatalf("Lines failed: %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	if lines[0].Quantity != 4 {
		t.Errorf("Quantity = %d, want 4", lines[0].Quantity)
	}
}

func TestAddClampsToStock(t *testing.T) {
	store := newTestStore(t)

	if err := store.Add(widget, 3); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := store.Add(widget, 10); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	lines, _ := store.Lines()
	if len(lines) != 1 || lines[0].Quantity != widget.Stock {
		t.Errorf("lines = %+v, want single line clamped to stock %d", lines, widget.Stock)
	}
}

func TestAddBelowOneIsNoop(t *testing.T) {
	store := newTestStore(t)

	if err := store.Add(widget, 0); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := store.Add(widget, -3); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	count, err := store.Count()
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 0 {
		t.Errorf("Count = %d, want 0", count)
	}
}

func TestSetQuantityClampsAndIgnoresUnknown(t *testing.T) {
	store := newTestStore(t)
	if err := store.Add(widget, 1); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if err := store.SetQuantity("p1", 99); err != nil {
		t.Fatalf("SetQuantity failed: %v", err)
	}
	lines, _ := store.Lines()
	if lines[0].Quantity != widget.Stock {
		t.Errorf("Quantity = %d, want clamped to %d", lines[0].Quantity, widget.Stock)
	}

	if err := store.SetQuantity("nope", 2); err != nil {
		t.Fatalf("SetQuantity unknown failed: %v", err)
	}
	count, _ := store.Count()
	if count != widget.Stock {
		t.Errorf("Count = %d, want %d (unknown product must not create a line)", count, widget.Stock)
	}
}

func TestSetQuantityZeroRemovesLine(t *testing.T) {
	store := newTestStore(t)
	if err := store.Add(widget, 3); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	total, _ := store.Total()
	if total != 750 {
		t.Errorf("Total = %d, want 750", total)
	}

	if err := store.SetQuantity("p1", 0); err != nil {
		t.Fatalf("SetQuantity failed: %v", err)
	}
	count, _ := store.Count()
	if count != 0 {
		t.Errorf("Count = %d, want 0 after removing last unit", count)
	}
}

func TestRemoveIsIdempotent(t *testing.T) {
	store := newTestStore(t)
	if err := store.Add(widget, 1); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	for i := 0; i < 2; i++ {
		if err := store.Remove("p1"); err != nil {
			t.Fatalf("Remove #%d failed: %v", i+1, err)
		}
	}

	lines, _ := store.Lines()
	if len(lines) != 0 {
		t.Errorf("got %d lines, want 0", len(lines))
	}
}

func TestClearThenTotals(t *testing.T) {
	store := newTestStore(t)
	if err := store.Add(widget, 2); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := store.Add(Product{ID: "p2", Name: "Gadget", UnitPriceCents: 5000, Stock: 3}, 1); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}

	count, _ := store.Count()
	total, _ := store.Total()
	if count != 0 || total != 0 {
		t.Errorf("after Clear: Count = %d, Total = %d, want 0 and 0", count, total)
	}
}

func TestTotalAndCountAcrossLines(t *testing.T) {
	store := newTestStore(t)
	if err := store.Add(Product{ID: "a", Name: "A", UnitPriceCents: 10000, Stock: 10}, 2); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := store.Add(Product{ID: "b", Name: "B", UnitPriceCents: 5000, Stock: 10}, 1); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	total, err := store.Total()
	if err != nil {
		t.Fatalf("Total failed: %v", err)
	}
	if total != 25000 {
		t.Errorf("Total = %d, want 25000", total)
	}

	// Idempotent under re-computation with no mutation in between.
	again, _ := store.Total()
	if again != total {
		t.Errorf("Total recompute = %d, want %d", again, total)
	}

	count, _ := store.Count()
	if count != 3 {
		t.Errorf("Count = %d, want sum of quantities 3", count)
	}
}

func TestLinesSurviveReload(t *testing.T) {
	dbPath := testutil.TempStateDB(t)

	store, err := NewStore(dbPath)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	if err := store.Add(widget, 2); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	_ = store.Close()

	reopened, err := NewStore(dbPath)
	if err != nil {
		t.Fatalf("NewStore reopen failed: %v", err)
	}
	defer reopened.Close()

	lines, err := reopened.Lines()
	if err != nil {
		t.Fatalf("Lines failed: %v", err)
	}
	if len(lines) != 1 || lines[0].ProductID != "p1" || lines[0].Quantity != 2 {
		t.Errorf("lines after reload = %+v, want the persisted widget line", lines)
	}
}

func TestLinesKeepInsertionOrder(t *testing.T) {
	store := newTestStore(t)
	ids := []string{"z", "a", "m"}
	for _, id := range ids {
		if err := store.Add(Product{ID: id, Name: id, UnitPriceCents: 100, Stock: 5}, 1); err != nil {
			t.Fatalf("Add(%s) failed: %v", id, err)
		}
	}

	lines, _ := store.Lines()
	for i, id := range ids {
		if lines[i].ProductID != id {
			t.Errorf("line %d = %s, want %s (basket order must match add order)", i, lines[i].ProductID, id)
		}
	}
}
