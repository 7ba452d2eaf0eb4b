package services

import (
	"encoding/json"
	"time"

	"github.com/insightdesk/portal-api/internal/models"
)

// Response shapes returned by the aggregates. Leaf entries carry the order
// index of the association row, not of the underlying catalog entity.

type ReportDTO struct {
	ReportID   string `json:"reportId"`
	ReportName string `json:"reportName"`
	ReportURL  string `json:"reportUrl"`
	IsActive   bool   `json:"isActive"`
	OrderIndex int    `json:"orderIndex"`
}

type WidgetDTO struct {
	WidgetID   string `json:"widgetId"`
	WidgetName string `json:"widgetName"`
	WidgetURL  string `json:"widgetUrl"`
	IsActive   bool   `json:"isActive"`
	OrderIndex int    `json:"orderIndex"`
}

type ViewDTO struct {
	ViewID     string      `json:"viewId"`
	UserID     string      `json:"userId"`
	Name       string      `json:"name"`
	IsVisible  bool        `json:"isVisible"`
	OrderIndex int         `json:"orderIndex"`
	CreatedBy  string      `json:"createdBy"`
	CreatedAt  time.Time   `json:"createdAt"`
	UpdatedAt  time.Time   `json:"updatedAt"`
	Reports    []ReportDTO `json:"reports"`
	Widgets    []WidgetDTO `json:"widgets"`
}

type ViewGroupDTO struct {
	ViewGroupID string    `json:"viewGroupId"`
	UserID      string    `json:"userId"`
	Name        string    `json:"name"`
	IsVisible   bool      `json:"isVisible"`
	IsDefault   bool      `json:"isDefault"`
	OrderIndex  int       `json:"orderIndex"`
	CreatedBy   string    `json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	Views       []ViewDTO `json:"views"`
}

type LayoutDTO struct {
	ID              uint   `json:"id"`
	UserID          string `json:"userId"`
	LayoutSignature string `json:"layoutSignature"`
	LayoutData      string `json:"layoutData"`
	Timestamp       *int64 `json:"timestamp"`
}

// NavigationDTO round-trips the stored preference blobs without interpreting
// them; RawMessage keeps the core free of their schema.
type NavigationDTO struct {
	ID                    uint            `json:"id"`
	UserID                string          `json:"userId"`
	ViewGroupOrder        json.RawMessage `json:"viewGroupOrder"`
	ViewOrders            json.RawMessage `json:"viewOrders"`
	HiddenViewGroups      json.RawMessage `json:"hiddenViewGroups"`
	HiddenViews           json.RawMessage `json:"hiddenViews"`
	ExpandedViewGroups    json.RawMessage `json:"expandedViewGroups"`
	IsNavigationCollapsed bool            `json:"isNavigationCollapsed"`
}

func reportToDTO(link models.ViewReport) ReportDTO {
	return ReportDTO{
		ReportID:   link.Report.ReportID,
		ReportName: link.Report.ReportName,
		ReportURL:  link.Report.ReportURL,
		IsActive:   link.Report.IsActive,
		OrderIndex: link.OrderIndex,
	}
}

func widgetToDTO(link models.ViewWidget) WidgetDTO {
	return WidgetDTO{
		WidgetID:   link.Widget.WidgetID,
		WidgetName: link.Widget.WidgetName,
		WidgetURL:  link.Widget.WidgetURL,
		IsActive:   link.Widget.IsActive,
		OrderIndex: link.OrderIndex,
	}
}

func viewToDTO(v models.View) ViewDTO {
	dto := ViewDTO{
		ViewID:     v.ViewID,
		UserID:     v.UserID,
		Name:       v.Name,
		IsVisible:  v.IsVisible,
		OrderIndex: v.OrderIndex,
		CreatedBy:  v.CreatedBy,
		CreatedAt:  v.CreatedAt,
		UpdatedAt:  v.UpdatedAt,
		Reports:    []ReportDTO{},
		Widgets:    []WidgetDTO{},
	}
	for _, link := range v.Reports {
		dto.Reports = append(dto.Reports, reportToDTO(link))
	}
	for _, link := range v.Widgets {
		dto.Widgets = append(dto.Widgets, widgetToDTO(link))
	}
	return dto
}

func viewGroupToDTO(vg models.ViewGroup) ViewGroupDTO {
	dto := ViewGroupDTO{
		ViewGroupID: vg.ViewGroupID,
		UserID:      vg.UserID,
		Name:        vg.Name,
		IsVisible:   vg.IsVisible,
		IsDefault:   vg.IsDefault,
		OrderIndex:  vg.OrderIndex,
		CreatedBy:   vg.CreatedBy,
		CreatedAt:   vg.CreatedAt,
		UpdatedAt:   vg.UpdatedAt,
		Views:       []ViewDTO{},
	}
	for _, link := range vg.GroupViews {
		dto.Views = append(dto.Views, viewToDTO(link.View))
	}
	return dto
}

func layoutToDTO(l models.LayoutCustomization) LayoutDTO {
	return LayoutDTO{
		ID:              l.ID,
		UserID:          l.UserID,
		LayoutSignature: l.LayoutSignature,
		LayoutData:      l.LayoutData,
		Timestamp:       l.Timestamp,
	}
}

func navigationToDTO(ns models.NavigationSetting) NavigationDTO {
	return NavigationDTO{
		ID:                    ns.ID,
		UserID:                ns.UserID,
		ViewGroupOrder:        rawOrDefault(ns.ViewGroupOrder, "[]"),
		ViewOrders:            rawOrDefault(ns.ViewOrders, "{}"),
		HiddenViewGroups:      rawOrDefault(ns.HiddenViewGroups, "[]"),
		HiddenViews:           rawOrDefault(ns.HiddenViews, "[]"),
		ExpandedViewGroups:    rawOrDefault(ns.ExpandedViewGroups, "[]"),
		IsNavigationCollapsed: ns.IsNavigationCollapsed,
	}
}

func rawOrDefault(blob, def string) json.RawMessage {
	if blob == "" {
		return json.RawMessage(def)
	}
	return json.RawMessage(blob)
}
