package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/insightdesk/portal-api/internal/links"
	"github.com/insightdesk/portal-api/internal/models"
)

type ViewGroupInput struct {
	Name       string `json:"name"`
	IsVisible  bool   `json:"isVisible"`
	IsDefault  bool   `json:"isDefault"`
	OrderIndex int    `json:"orderIndex"`
}

type ViewGroupService struct{ DB *gorm.DB }

func NewViewGroupService(db *gorm.DB) *ViewGroupService { return &ViewGroupService{DB: db} }

// hydrateGroup expands the full three-level tree: group links in order, each
// view with its own ordered report and widget links. Assembled from the flat
// association tables in a single query chain.
func hydrateGroup(db *gorm.DB) *gorm.DB {
	return db.
		Preload("GroupViews", orderedLinks).
		Preload("GroupViews.View").
		Preload("GroupViews.View.Reports", orderedLinks).
		Preload("GroupViews.View.Reports.Report").
		Preload("GroupViews.View.Widgets", orderedLinks).
		Preload("GroupViews.View.Widgets.Widget")
}

func (s *ViewGroupService) ListForUser(userID string) ([]ViewGroupDTO, error) {
	var groups []models.ViewGroup
	err := hydrateGroup(s.DB).
		Where("user_id = ?", userID).
		Order("order_index asc, view_group_id asc").
		Find(&groups).Error
	if err != nil {
		return nil, err
	}
	dtos := make([]ViewGroupDTO, 0, len(groups))
	for _, vg := range groups {
		dtos = append(dtos, viewGroupToDTO(vg))
	}
	return dtos, nil
}

func (s *ViewGroupService) Get(viewGroupID, userID string) (*ViewGroupDTO, error) {
	var group models.ViewGroup
	err := hydrateGroup(s.DB).
		Where("view_group_id = ? AND user_id = ?", viewGroupID, userID).
		First(&group).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	dto := viewGroupToDTO(group)
	return &dto, nil
}

func (s *ViewGroupService) Create(userID string, in ViewGroupInput) (*ViewGroupDTO, error) {
	group := models.ViewGroup{
		ViewGroupID: newScopedID("vg", userID),
		UserID:      userID,
		Name:        in.Name,
		IsVisible:   in.IsVisible,
		IsDefault:   in.IsDefault,
		OrderIndex:  in.OrderIndex,
		CreatedBy:   userID,
	}
	if err := s.DB.Create(&group).Error; err != nil {
		return nil, err
	}
	return s.Get(group.ViewGroupID, userID)
}

func (s *ViewGroupService) Update(viewGroupID, userID string, in ViewGroupInput) (*ViewGroupDTO, error) {
	var group models.ViewGroup
	err := s.DB.Where("view_group_id = ? AND user_id = ?", viewGroupID, userID).First(&group).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	group.Name = in.Name
	group.IsVisible = in.IsVisible
	group.IsDefault = in.IsDefault
	group.OrderIndex = in.OrderIndex
	group.UpdatedAt = time.Now().UTC()
	if err := s.DB.Save(&group).Error; err != nil {
		return nil, err
	}
	return s.Get(viewGroupID, userID)
}

// Delete removes the group and its view links. The views themselves belong to
// the user, not the group, and stay.
func (s *ViewGroupService) Delete(viewGroupID, userID string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var group models.ViewGroup
		err := tx.Where("view_group_id = ? AND user_id = ?", viewGroupID, userID).First(&group).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		if err := tx.Where("view_group_id = ?", viewGroupID).Delete(&models.ViewGroupView{}).Error; err != nil {
			return err
		}
		return tx.Delete(&group).Error
	})
}

// ReorderGroups overwrites the order index of each of the user's groups named
// in the batch; ids not owned by the user are ignored.
func (s *ViewGroupService) ReorderGroups(userID string, items []links.ReorderItem) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		now := time.Now().UTC()
		for _, item := range items {
			err := tx.Model(&models.ViewGroup{}).
				Where("view_group_id = ? AND user_id = ?", item.ID, userID).
				Updates(map[string]any{"order_index": item.OrderIndex, "updated_at": now}).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// AddViews links views to the group in input order. Unlike the tolerant
// reorder path, every candidate must exist and belong to the group's owner;
// a cross-owner or unknown view id fails the whole batch as not-found.
func (s *ViewGroupService) AddViews(viewGroupID, userID string, viewIDs []string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.requireGroup(tx, viewGroupID, userID); err != nil {
			return err
		}
		for _, viewID := range viewIDs {
			var count int64
			err := tx.Model(&models.View{}).
				Where("view_id = ? AND user_id = ?", viewID, userID).
				Count(&count).Error
			if err != nil {
				return err
			}
			if count == 0 {
				return ErrNotFound
			}
		}
		return groupViewLinks.Append(tx, viewGroupID, viewIDs, func(childID string, orderIndex int) models.ViewGroupView {
			return models.ViewGroupView{ViewGroupID: viewGroupID, ViewID: childID, OrderIndex: orderIndex, CreatedBy: userID}
		})
	})
}

func (s *ViewGroupService) RemoveView(viewGroupID, viewID, userID string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.requireGroup(tx, viewGroupID, userID); err != nil {
			return err
		}
		return groupViewLinks.Remove(tx, viewGroupID, viewID)
	})
}

func (s *ViewGroupService) ReorderViews(viewGroupID, userID string, items []links.ReorderItem) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.requireGroup(tx, viewGroupID, userID); err != nil {
			return err
		}
		return groupViewLinks.Reorder(tx, viewGroupID, items)
	})
}

func (s *ViewGroupService) requireGroup(tx *gorm.DB, viewGroupID, userID string) error {
	var count int64
	err := tx.Model(&models.ViewGroup{}).
		Where("view_group_id = ? AND user_id = ?", viewGroupID, userID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrNotFound
	}
	return nil
}
