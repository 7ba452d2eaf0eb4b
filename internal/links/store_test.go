package links

import (
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// linkRow mirrors the shape of the five association tables.
type linkRow struct {
	ID         uint   `gorm:"primaryKey"`
	ParentID   string `gorm:"size:50;not null;index:idx_link_pair,unique,priority:1"`
	ChildID    string `gorm:"size:50;not null;index:idx_link_pair,unique,priority:2"`
	OrderIndex int    `gorm:"not null"`
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&linkRow{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func newTestStore() *Store[linkRow] {
	return NewStore[linkRow]("parent_id", "child_id")
}

func buildRow(parentID string) func(string, int) linkRow {
	return func(childID string, orderIndex int) linkRow {
		return linkRow{ParentID: parentID, ChildID: childID, OrderIndex: orderIndex}
	}
}

func TestAppendAssignsSequentialIndices(t *testing.T) {
	db := newTestDB(t)
	store := newTestStore()

	if err := store.Append(db, "p1", []string{"a", "b", "c"}, buildRow("p1")); err != nil {
		t.Fatalf("append: %v", err)
	}
	rows, err := store.ListOrdered(db, "p1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	for i, row := range rows {
		if row.OrderIndex != i {
			t.Errorf("row %d: expected index %d, got %d", i, i, row.OrderIndex)
		}
	}
}

func TestAppendSkipsExistingPairs(t *testing.T) {
	db := newTestDB(t)
	store := newTestStore()

	if err := store.Append(db, "p1", []string{"a", "b"}, buildRow("p1")); err != nil {
		t.Fatalf("first append: %v", err)
	}
	// "a" is already linked and must keep index 0; "c" continues from max.
	if err := store.Append(db, "p1", []string{"a", "c"}, buildRow("p1")); err != nil {
		t.Fatalf("second append: %v", err)
	}
	rows, err := store.ListOrdered(db, "p1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	want := map[string]int{"a": 0, "b": 1, "c": 2}
	for _, row := range rows {
		if want[row.ChildID] != row.OrderIndex {
			t.Errorf("child %s: expected index %d, got %d", row.ChildID, want[row.ChildID], row.OrderIndex)
		}
	}
}

func TestAppendBatchSharesRunningMax(t *testing.T) {
	db := newTestDB(t)
	store := newTestStore()

	if err := store.Append(db, "p1", []string{"a"}, buildRow("p1")); err != nil {
		t.Fatalf("append: %v", err)
	}
	// One batch with a duplicate in the middle: the running max still moves
	// per created row, not per input item.
	if err := store.Append(db, "p1", []string{"b", "a", "c"}, buildRow("p1")); err != nil {
		t.Fatalf("append: %v", err)
	}
	rows, _ := store.ListOrdered(db, "p1")
	want := map[string]int{"a": 0, "b": 1, "c": 2}
	for _, row := range rows {
		if want[row.ChildID] != row.OrderIndex {
			t.Errorf("child %s: expected index %d, got %d", row.ChildID, want[row.ChildID], row.OrderIndex)
		}
	}
}

func TestAppendScopesIndicesPerParent(t *testing.T) {
	db := newTestDB(t)
	store := newTestStore()

	if err := store.Append(db, "p1", []string{"a", "b"}, buildRow("p1")); err != nil {
		t.Fatalf("append p1: %v", err)
	}
	if err := store.Append(db, "p2", []string{"a"}, buildRow("p2")); err != nil {
		t.Fatalf("append p2: %v", err)
	}
	rows, _ := store.ListOrdered(db, "p2")
	if len(rows) != 1 || rows[0].OrderIndex != 0 {
		t.Fatalf("expected p2 to start at index 0, got %+v", rows)
	}
}

func TestRemoveKeepsSiblingIndices(t *testing.T) {
	db := newTestDB(t)
	store := newTestStore()

	if err := store.Append(db, "p1", []string{"a", "b", "c"}, buildRow("p1")); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := store.Remove(db, "p1", "b"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	rows, _ := store.ListOrdered(db, "p1")
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	// No renumbering: "c" keeps its original index 2.
	if rows[0].ChildID != "a" || rows[0].OrderIndex != 0 {
		t.Errorf("unexpected first row: %+v", rows[0])
	}
	if rows[1].ChildID != "c" || rows[1].OrderIndex != 2 {
		t.Errorf("unexpected second row: %+v", rows[1])
	}

	// Appending after the gap continues from the surviving max.
	if err := store.Append(db, "p1", []string{"d"}, buildRow("p1")); err != nil {
		t.Fatalf("append: %v", err)
	}
	rows, _ = store.ListOrdered(db, "p1")
	if rows[len(rows)-1].OrderIndex != 3 {
		t.Errorf("expected new row at index 3, got %d", rows[len(rows)-1].OrderIndex)
	}
}

func TestRemoveMissingLinkReturnsNotFound(t *testing.T) {
	db := newTestDB(t)
	store := newTestStore()

	if err := store.Remove(db, "p1", "ghost"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestReorderIgnoresUnknownChildren(t *testing.T) {
	db := newTestDB(t)
	store := newTestStore()

	if err := store.Append(db, "p1", []string{"a", "b"}, buildRow("p1")); err != nil {
		t.Fatalf("append: %v", err)
	}
	items := []ReorderItem{
		{ID: "b", OrderIndex: 0},
		{ID: "a", OrderIndex: 1},
		{ID: "ghost", OrderIndex: 99},
	}
	if err := store.Reorder(db, "p1", items); err != nil {
		t.Fatalf("reorder: %v", err)
	}
	rows, _ := store.ListOrdered(db, "p1")
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].ChildID != "b" || rows[1].ChildID != "a" {
		t.Errorf("unexpected order after reorder: %+v", rows)
	}
}

func TestReorderScopedToParent(t *testing.T) {
	db := newTestDB(t)
	store := newTestStore()

	if err := store.Append(db, "p1", []string{"a"}, buildRow("p1")); err != nil {
		t.Fatalf("append p1: %v", err)
	}
	if err := store.Append(db, "p2", []string{"a"}, buildRow("p2")); err != nil {
		t.Fatalf("append p2: %v", err)
	}
	if err := store.Reorder(db, "p1", []ReorderItem{{ID: "a", OrderIndex: 7}}); err != nil {
		t.Fatalf("reorder: %v", err)
	}
	rows, _ := store.ListOrdered(db, "p2")
	if rows[0].OrderIndex != 0 {
		t.Errorf("p2 link touched by p1 reorder: %+v", rows[0])
	}
}

func TestListOrderedBreaksTiesByID(t *testing.T) {
	db := newTestDB(t)
	store := newTestStore()

	// Two rows with the same index; insertion order decides via the row id.
	first := linkRow{ParentID: "p1", ChildID: "a", OrderIndex: 5}
	second := linkRow{ParentID: "p1", ChildID: "b", OrderIndex: 5}
	if err := db.Create(&first).Error; err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := db.Create(&second).Error; err != nil {
		t.Fatalf("create: %v", err)
	}
	rows, _ := store.ListOrdered(db, "p1")
	if rows[0].ChildID != "a" || rows[1].ChildID != "b" {
		t.Errorf("expected id tiebreak, got %+v", rows)
	}
}

func TestNextOrderEmptyScopeIsZero(t *testing.T) {
	db := newTestDB(t)
	store := newTestStore()

	next, err := store.NextOrder(db, "empty")
	if err != nil {
		t.Fatalf("next order: %v", err)
	}
	if next != 0 {
		t.Errorf("expected 0 for empty scope, got %d", next)
	}
}
