// Package links implements the ordered many-to-many association primitive
// shared by the five link tables (group→view, view→report, view→widget,
// role→report, role→widget). A link row is (parent id, child id, order index,
// created at) with a uniqueness constraint on the pair; the order index is a
// sort key scoped to the parent, assigned as max-in-scope+1 on append and
// never renumbered on removal.
package links

import (
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a link row (or its parent scope) is absent.
// Callers map it to a 404; ownership failures deliberately look the same.
var ErrNotFound = errors.New("not found")

// ReorderItem is one entry of a client-supplied reorder batch.
type ReorderItem struct {
	ID         string `json:"id"`
	OrderIndex int    `json:"orderIndex"`
}

// Store binds the generic link operations to one association table. The row
// type T carries the table via gorm conventions; parentCol/childCol name its
// two id columns.
type Store[T any] struct {
	parentCol string
	childCol  string
}

func NewStore[T any](parentCol, childCol string) *Store[T] {
	return &Store[T]{parentCol: parentCol, childCol: childCol}
}

// NextOrder returns max(order index) within the parent scope plus one, or 0
// for an empty scope. Read-then-write: two concurrent appends may tie, which
// only blurs display order, never set membership.
func (s *Store[T]) NextOrder(tx *gorm.DB, parentID string) (int, error) {
	var next int
	err := tx.Model(new(T)).
		Where(s.parentCol+" = ?", parentID).
		Select("COALESCE(MAX(order_index), -1) + 1").
		Scan(&next).Error
	if err != nil {
		return 0, err
	}
	return next, nil
}

// Exists reports whether the (parent, child) pair is already linked.
func (s *Store[T]) Exists(tx *gorm.DB, parentID, childID string) (bool, error) {
	var count int64
	err := tx.Model(new(T)).
		Where(s.parentCol+" = ? AND "+s.childCol+" = ?", parentID, childID).
		Count(&count).Error
	return count > 0, err
}

// Append links each child to the parent in input order. The running order
// index is computed once for the whole batch so members receive strictly
// increasing indices. A pair that already exists is skipped without error and
// keeps its original index. build constructs the concrete row; existence and
// ownership of parent and children are checked by the caller before Append.
func (s *Store[T]) Append(tx *gorm.DB, parentID string, childIDs []string, build func(childID string, orderIndex int) T) error {
	next, err := s.NextOrder(tx, parentID)
	if err != nil {
		return err
	}
	for _, childID := range childIDs {
		exists, err := s.Exists(tx, parentID, childID)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		row := build(childID, next)
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		next++
	}
	return nil
}

// Remove deletes the (parent, child) link. Remaining siblings keep their
// order indices; consumers treat the index as a sort key, not a position.
func (s *Store[T]) Remove(tx *gorm.DB, parentID, childID string) error {
	res := tx.Where(s.parentCol+" = ? AND "+s.childCol+" = ?", parentID, childID).Delete(new(T))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Reorder overwrites the order index of every item whose child id is linked
// to the parent. Items referencing unlinked children are ignored: reorder is
// best-effort against stale client state, unlike the strict attach path.
func (s *Store[T]) Reorder(tx *gorm.DB, parentID string, items []ReorderItem) error {
	for _, item := range items {
		err := tx.Model(new(T)).
			Where(s.parentCol+" = ? AND "+s.childCol+" = ?", parentID, item.ID).
			Update("order_index", item.OrderIndex).Error
		if err != nil {
			return err
		}
	}
	return nil
}

// ListOrdered returns the parent's link rows sorted by order index, with row
// id as a deterministic tiebreak between equal indices.
func (s *Store[T]) ListOrdered(tx *gorm.DB, parentID string) ([]T, error) {
	var rows []T
	err := tx.Where(s.parentCol+" = ?", parentID).
		Order("order_index asc, id asc").
		Find(&rows).Error
	return rows, err
}
