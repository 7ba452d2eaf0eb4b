package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/insightdesk/portal-api/internal/models"
)

// NavigationInput is a full replacement of a user's navigation preferences.
// Every field arrives as an opaque JSON text blob; the handler substitutes
// empty defaults for absent fields before calling, so a partial payload
// clears what it omits rather than leaving it unchanged.
type NavigationInput struct {
	ViewGroupOrder        string
	ViewOrders            string
	HiddenViewGroups      string
	HiddenViews           string
	ExpandedViewGroups    string
	IsNavigationCollapsed bool
}

type PreferenceService struct{ DB *gorm.DB }

func NewPreferenceService(db *gorm.DB) *PreferenceService { return &PreferenceService{DB: db} }

// SaveLayout upserts the layout blob keyed by (user, signature). Timestamp is
// the client's save stamp and is stored verbatim.
func (s *PreferenceService) SaveLayout(userID, signature, data string, timestamp *int64) (*LayoutDTO, error) {
	var layout models.LayoutCustomization
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("user_id = ? AND layout_signature = ?", userID, signature).First(&layout).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			layout = models.LayoutCustomization{
				UserID:          userID,
				LayoutSignature: signature,
				LayoutData:      data,
				Timestamp:       timestamp,
			}
			cerr := tx.Create(&layout).Error
			if cerr == nil {
				return nil
			}
			if !isDuplicate(cerr) {
				return cerr
			}
			// Lost a first-save race on the pair; overwrite the winner's
			// row instead of surfacing the conflict.
			if rerr := tx.Where("user_id = ? AND layout_signature = ?", userID, signature).First(&layout).Error; rerr != nil {
				return rerr
			}
		} else if err != nil {
			return err
		}
		layout.LayoutData = data
		layout.Timestamp = timestamp
		layout.UpdatedAt = time.Now().UTC()
		return tx.Save(&layout).Error
	})
	if err != nil {
		return nil, err
	}
	dto := layoutToDTO(layout)
	return &dto, nil
}

func (s *PreferenceService) GetLayout(userID, signature string) (*LayoutDTO, error) {
	var layout models.LayoutCustomization
	err := s.DB.Where("user_id = ? AND layout_signature = ?", userID, signature).First(&layout).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	dto := layoutToDTO(layout)
	return &dto, nil
}

// ListLayouts returns the user's layouts, most recently updated first.
func (s *PreferenceService) ListLayouts(userID string) ([]LayoutDTO, error) {
	var layouts []models.LayoutCustomization
	err := s.DB.Where("user_id = ?", userID).
		Order("updated_at desc").
		Find(&layouts).Error
	if err != nil {
		return nil, err
	}
	dtos := make([]LayoutDTO, 0, len(layouts))
	for _, l := range layouts {
		dtos = append(dtos, layoutToDTO(l))
	}
	return dtos, nil
}

func (s *PreferenceService) DeleteLayout(userID, signature string) error {
	res := s.DB.Where("user_id = ? AND layout_signature = ?", userID, signature).
		Delete(&models.LayoutCustomization{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PreferenceService) DeleteAllLayouts(userID string) error {
	return s.DB.Where("user_id = ?", userID).
		Delete(&models.LayoutCustomization{}).Error
}

// GetOrCreateNavigation returns the user's navigation settings, materializing
// a row with empty defaults on first read. Two concurrent first reads race on
// the insert; the unique index on user_id makes one lose, and the loser
// re-reads the winner's row instead of surfacing the conflict.
func (s *PreferenceService) GetOrCreateNavigation(userID string) (*NavigationDTO, error) {
	var setting models.NavigationSetting
	err := s.DB.Where("user_id = ?", userID).First(&setting).Error
	if err == nil {
		dto := navigationToDTO(setting)
		return &dto, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	setting = models.NavigationSetting{
		UserID:             userID,
		ViewGroupOrder:     "[]",
		ViewOrders:         "{}",
		HiddenViewGroups:   "[]",
		HiddenViews:        "[]",
		ExpandedViewGroups: "[]",
	}
	if err := s.DB.Create(&setting).Error; err != nil {
		if !isDuplicate(err) {
			return nil, err
		}
		if err := s.DB.Where("user_id = ?", userID).First(&setting).Error; err != nil {
			return nil, err
		}
	}
	dto := navigationToDTO(setting)
	return &dto, nil
}

// UpdateNavigation replaces every tracked field, creating the row when the
// user has never saved navigation state before.
func (s *PreferenceService) UpdateNavigation(userID string, in NavigationInput) (*NavigationDTO, error) {
	var setting models.NavigationSetting
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("user_id = ?", userID).First(&setting).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		setting.UserID = userID
		setting.ViewGroupOrder = in.ViewGroupOrder
		setting.ViewOrders = in.ViewOrders
		setting.HiddenViewGroups = in.HiddenViewGroups
		setting.HiddenViews = in.HiddenViews
		setting.ExpandedViewGroups = in.ExpandedViewGroups
		setting.IsNavigationCollapsed = in.IsNavigationCollapsed
		setting.UpdatedAt = time.Now().UTC()
		return tx.Save(&setting).Error
	})
	if err != nil {
		return nil, err
	}
	dto := navigationToDTO(setting)
	return &dto, nil
}

// ResetNavigation drops the row; the next read materializes defaults again.
// Deleting absent settings is not an error.
func (s *PreferenceService) ResetNavigation(userID string) error {
	return s.DB.Where("user_id = ?", userID).
		Delete(&models.NavigationSetting{}).Error
}
