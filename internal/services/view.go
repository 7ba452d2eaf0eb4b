package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/insightdesk/portal-api/internal/links"
	"github.com/insightdesk/portal-api/internal/models"
)

// ViewInput carries the caller-editable fields of a view. ReportIDs/WidgetIDs
// are only honored on create; attached lists are mutated through the
// dedicated link operations afterwards.
type ViewInput struct {
	Name       string   `json:"name"`
	IsVisible  bool     `json:"isVisible"`
	OrderIndex int      `json:"orderIndex"`
	ReportIDs  []string `json:"reportIds"`
	WidgetIDs  []string `json:"widgetIds"`
}

type ViewService struct{ DB *gorm.DB }

func NewViewService(db *gorm.DB) *ViewService { return &ViewService{DB: db} }

func orderedLinks(db *gorm.DB) *gorm.DB { return db.Order("order_index asc, id asc") }

func hydrateView(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Reports", orderedLinks).
		Preload("Reports.Report").
		Preload("Widgets", orderedLinks).
		Preload("Widgets.Widget")
}

// ListForUser returns the user's views ordered by their own order index, each
// hydrated with its ordered reports and widgets.
func (s *ViewService) ListForUser(userID string) ([]ViewDTO, error) {
	var views []models.View
	err := hydrateView(s.DB).
		Where("user_id = ?", userID).
		Order("order_index asc, view_id asc").
		Find(&views).Error
	if err != nil {
		return nil, err
	}
	dtos := make([]ViewDTO, 0, len(views))
	for _, v := range views {
		dtos = append(dtos, viewToDTO(v))
	}
	return dtos, nil
}

func (s *ViewService) Get(viewID, userID string) (*ViewDTO, error) {
	var view models.View
	err := hydrateView(s.DB).
		Where("view_id = ? AND user_id = ?", viewID, userID).
		First(&view).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	dto := viewToDTO(view)
	return &dto, nil
}

// Create persists the view and attaches the given reports and widgets with
// order indices equal to their positions in the input, skipping duplicate ids
// silently. The whole operation commits as one transaction.
func (s *ViewService) Create(userID string, in ViewInput) (*ViewDTO, error) {
	view := models.View{
		ViewID:     newScopedID("view", userID),
		UserID:     userID,
		Name:       in.Name,
		IsVisible:  in.IsVisible,
		OrderIndex: in.OrderIndex,
		CreatedBy:  userID,
	}
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := requireReports(tx, in.ReportIDs); err != nil {
			return err
		}
		if err := requireWidgets(tx, in.WidgetIDs); err != nil {
			return err
		}
		if err := tx.Create(&view).Error; err != nil {
			return err
		}
		seen := map[string]bool{}
		for i, reportID := range in.ReportIDs {
			if seen[reportID] {
				continue
			}
			seen[reportID] = true
			link := models.ViewReport{ViewID: view.ViewID, ReportID: reportID, OrderIndex: i}
			if err := tx.Create(&link).Error; err != nil {
				return err
			}
		}
		seen = map[string]bool{}
		for i, widgetID := range in.WidgetIDs {
			if seen[widgetID] {
				continue
			}
			seen[widgetID] = true
			link := models.ViewWidget{ViewID: view.ViewID, WidgetID: widgetID, OrderIndex: i}
			if err := tx.Create(&link).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(view.ViewID, userID)
}

// Update overwrites the three mutable fields. Attached lists are untouched.
func (s *ViewService) Update(viewID, userID string, in ViewInput) (*ViewDTO, error) {
	var view models.View
	err := s.DB.Where("view_id = ? AND user_id = ?", viewID, userID).First(&view).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	view.Name = in.Name
	view.IsVisible = in.IsVisible
	view.OrderIndex = in.OrderIndex
	view.UpdatedAt = time.Now().UTC()
	if err := s.DB.Save(&view).Error; err != nil {
		return nil, err
	}
	return s.Get(viewID, userID)
}

// Delete removes the view and every association row it participates in:
// its report/widget links and any group links pointing at it. The reports
// and widgets themselves stay.
func (s *ViewService) Delete(viewID, userID string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var view models.View
		err := tx.Where("view_id = ? AND user_id = ?", viewID, userID).First(&view).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		if err := tx.Where("view_id = ?", viewID).Delete(&models.ViewReport{}).Error; err != nil {
			return err
		}
		if err := tx.Where("view_id = ?", viewID).Delete(&models.ViewWidget{}).Error; err != nil {
			return err
		}
		if err := tx.Where("view_id = ?", viewID).Delete(&models.ViewGroupView{}).Error; err != nil {
			return err
		}
		return tx.Delete(&view).Error
	})
}

// AddReports appends reports to the view's ordered list. Every report must
// exist in the catalog; already-attached reports are skipped and keep their
// original index.
func (s *ViewService) AddReports(viewID, userID string, reportIDs []string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.requireView(tx, viewID, userID); err != nil {
			return err
		}
		if err := requireReports(tx, reportIDs); err != nil {
			return err
		}
		return viewReportLinks.Append(tx, viewID, reportIDs, func(childID string, orderIndex int) models.ViewReport {
			return models.ViewReport{ViewID: viewID, ReportID: childID, OrderIndex: orderIndex}
		})
	})
}

func (s *ViewService) RemoveReport(viewID, userID, reportID string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.requireView(tx, viewID, userID); err != nil {
			return err
		}
		return viewReportLinks.Remove(tx, viewID, reportID)
	})
}

// ReorderReports applies a client batch to the view's report links. Items
// referencing reports no longer attached are ignored.
func (s *ViewService) ReorderReports(viewID, userID string, items []links.ReorderItem) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.requireView(tx, viewID, userID); err != nil {
			return err
		}
		return viewReportLinks.Reorder(tx, viewID, items)
	})
}

func (s *ViewService) AddWidgets(viewID, userID string, widgetIDs []string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.requireView(tx, viewID, userID); err != nil {
			return err
		}
		if err := requireWidgets(tx, widgetIDs); err != nil {
			return err
		}
		return viewWidgetLinks.Append(tx, viewID, widgetIDs, func(childID string, orderIndex int) models.ViewWidget {
			return models.ViewWidget{ViewID: viewID, WidgetID: childID, OrderIndex: orderIndex}
		})
	})
}

func (s *ViewService) RemoveWidget(viewID, userID, widgetID string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.requireView(tx, viewID, userID); err != nil {
			return err
		}
		return viewWidgetLinks.Remove(tx, viewID, widgetID)
	})
}

func (s *ViewService) ReorderWidgets(viewID, userID string, items []links.ReorderItem) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.requireView(tx, viewID, userID); err != nil {
			return err
		}
		return viewWidgetLinks.Reorder(tx, viewID, items)
	})
}

// requireView is the single up-front ownership check for link mutations.
func (s *ViewService) requireView(tx *gorm.DB, viewID, userID string) error {
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
	return nil
}
