package services

import (
	"strings"
	"testing"

	"github.com/insightdesk/portal-api/internal/links"
	"github.com/insightdesk/portal-api/internal/models"
)

func TestCreateViewAttachesInInputOrder(t *testing.T) {
	conn := newTestDB(t)
	svc := NewViewService(conn)
	seedReport(t, conn, "r1", "Sales", true)
	seedReport(t, conn, "r2", "Ops", true)
	seedWidget(t, conn, "w1", "KPI", true)

	view, err := svc.Create("u1", ViewInput{
		Name:      "Overview",
		IsVisible: true,
		ReportIDs: []string{"r1", "r2", "r1"},
		WidgetIDs: []string{"w1"},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !strings.HasPrefix(view.ViewID, "view-u1-") {
		t.Errorf("unexpected view id %q", view.ViewID)
	}
	if len(view.Reports) != 2 {
		t.Fatalf("expected 2 reports (duplicate dropped), got %d", len(view.Reports))
	}
	if view.Reports[0].ReportID != "r1" || view.Reports[0].OrderIndex != 0 {
		t.Errorf("unexpected first report: %+v", view.Reports[0])
	}
	if view.Reports[1].ReportID != "r2" || view.Reports[1].OrderIndex != 1 {
		t.Errorf("unexpected second report: %+v", view.Reports[1])
	}
	if len(view.Widgets) != 1 || view.Widgets[0].OrderIndex != 0 {
		t.Errorf("unexpected widgets: %+v", view.Widgets)
	}
}

func TestGetViewScopedToOwner(t *testing.T) {
	conn := newTestDB(t)
	svc := NewViewService(conn)

	view, err := svc.Create("u1", ViewInput{Name: "Mine", IsVisible: true})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Get(view.ViewID, "u2"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound for foreign owner, got %v", err)
	}
	if _, err := svc.Get("view-u1-missing", "u1"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound for missing view, got %v", err)
	}
}

func TestUpdateViewLeavesAttachmentsAlone(t *testing.T) {
	conn := newTestDB(t)
	svc := NewViewService(conn)
	seedReport(t, conn, "r1", "Sales", true)

	view, err := svc.Create("u1", ViewInput{Name: "Before", IsVisible: true, ReportIDs: []string{"r1"}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	updated, err := svc.Update(view.ViewID, "u1", ViewInput{Name: "After", IsVisible: false, OrderIndex: 4})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "After" || updated.IsVisible || updated.OrderIndex != 4 {
		t.Errorf("unexpected updated view: %+v", updated)
	}
	if len(updated.Reports) != 1 {
		t.Errorf("update must not touch report links, got %+v", updated.Reports)
	}
}

func TestRemoveReportKeepsRemainingIndices(t *testing.T) {
	conn := newTestDB(t)
	svc := NewViewService(conn)
	seedReport(t, conn, "r1", "Sales", true)
	seedReport(t, conn, "r2", "Ops", true)

	view, err := svc.Create("u1", ViewInput{Name: "V", IsVisible: true, ReportIDs: []string{"r1", "r2"}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.RemoveReport(view.ViewID, "u1", "r1"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	got, err := svc.Get(view.ViewID, "u1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.Reports) != 1 {
		t.Fatalf("expected 1 report, got %d", len(got.Reports))
	}
	// r2 keeps the index it was assigned at attach time.
	if got.Reports[0].ReportID != "r2" || got.Reports[0].OrderIndex != 1 {
		t.Errorf("unexpected surviving report: %+v", got.Reports[0])
	}
}

func TestRemoveReportNotAttached(t *testing.T) {
	conn := newTestDB(t)
	svc := NewViewService(conn)

	view, err := svc.Create("u1", ViewInput{Name: "V", IsVisible: true})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.RemoveReport(view.ViewID, "u1", "r-none"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAddReportsIdempotent(t *testing.T) {
	conn := newTestDB(t)
	svc := NewViewService(conn)
	seedReport(t, conn, "r1", "Sales", true)
	seedReport(t, conn, "r2", "Ops", true)

	view, err := svc.Create("u1", ViewInput{Name: "V", IsVisible: true, ReportIDs: []string{"r1"}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.AddReports(view.ViewID, "u1", []string{"r1", "r2"}); err != nil {
		t.Fatalf("add: %v", err)
	}
	got, _ := svc.Get(view.ViewID, "u1")
	if len(got.Reports) != 2 {
		t.Fatalf("expected 2 reports, got %d", len(got.Reports))
	}
	if got.Reports[0].ReportID != "r1" || got.Reports[0].OrderIndex != 0 {
		t.Errorf("existing link must keep its index: %+v", got.Reports[0])
	}
	if got.Reports[1].ReportID != "r2" || got.Reports[1].OrderIndex != 1 {
		t.Errorf("unexpected appended report: %+v", got.Reports[1])
	}
}

func TestAddReportsUnknownReportNotFound(t *testing.T) {
	conn := newTestDB(t)
	svc := NewViewService(conn)
	seedReport(t, conn, "r1", "Sales", true)
	seedReport(t, conn, "r2", "Ops", true)

	view, err := svc.Create("u1", ViewInput{Name: "V", IsVisible: true, ReportIDs: []string{"r1"}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	// A stale id fails the whole batch; the valid r2 is not attached either.
	if err := svc.AddReports(view.ViewID, "u1", []string{"r2", "ghost"}); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	var n int64
	conn.Model(&models.ViewReport{}).Where("view_id = ?", view.ViewID).Count(&n)
	if n != 1 {
		t.Fatalf("expected 1 link after failed batch, got %d", n)
	}
	got, _ := svc.Get(view.ViewID, "u1")
	if len(got.Reports) != 1 || got.Reports[0].ReportID != "r1" {
		t.Errorf("unexpected reports after failed append: %+v", got.Reports)
	}
}

func TestAddWidgetsUnknownWidgetNotFound(t *testing.T) {
	conn := newTestDB(t)
	svc := NewViewService(conn)

	view, err := svc.Create("u1", ViewInput{Name: "V", IsVisible: true})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.AddWidgets(view.ViewID, "u1", []string{"ghost"}); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	var n int64
	conn.Model(&models.ViewWidget{}).Where("view_id = ?", view.ViewID).Count(&n)
	if n != 0 {
		t.Errorf("ghost append persisted %d links", n)
	}
}

func TestCreateViewUnknownReportRollsBack(t *testing.T) {
	conn := newTestDB(t)
	svc := NewViewService(conn)
	seedReport(t, conn, "r1", "Sales", true)

	if _, err := svc.Create("u1", ViewInput{Name: "V", IsVisible: true, ReportIDs: []string{"r1", "ghost"}}); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	var n int64
	conn.Model(&models.View{}).Count(&n)
	if n != 0 {
		t.Errorf("view persisted despite failed create: %d", n)
	}
	conn.Model(&models.ViewReport{}).Count(&n)
	if n != 0 {
		t.Errorf("links persisted despite failed create: %d", n)
	}
}

func TestAddReportsForeignViewNotFound(t *testing.T) {
	conn := newTestDB(t)
	svc := NewViewService(conn)
	seedReport(t, conn, "r1", "Sales", true)

	view, err := svc.Create("u1", ViewInput{Name: "V", IsVisible: true})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.AddReports(view.ViewID, "u2", []string{"r1"}); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestReorderReportsTolerant(t *testing.T) {
	conn := newTestDB(t)
	svc := NewViewService(conn)
	seedReport(t, conn, "r1", "Sales", true)
	seedReport(t, conn, "r2", "Ops", true)

	view, err := svc.Create("u1", ViewInput{Name: "V", IsVisible: true, ReportIDs: []string{"r1", "r2"}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	items := []links.ReorderItem{
		{ID: "r2", OrderIndex: 0},
		{ID: "r1", OrderIndex: 1},
		{ID: "r-stale", OrderIndex: 5},
	}
	if err := svc.ReorderReports(view.ViewID, "u1", items); err != nil {
		t.Fatalf("reorder: %v", err)
	}
	got, _ := svc.Get(view.ViewID, "u1")
	if got.Reports[0].ReportID != "r2" || got.Reports[1].ReportID != "r1" {
		t.Errorf("unexpected order: %+v", got.Reports)
	}
}

func TestDeleteViewCascadesAllLinks(t *testing.T) {
	conn := newTestDB(t)
	viewSvc := NewViewService(conn)
	groupSvc := NewViewGroupService(conn)
	seedReport(t, conn, "r1", "Sales", true)
	seedReport(t, conn, "r2", "Ops", true)
	seedReport(t, conn, "r3", "Finance", true)
	seedWidget(t, conn, "w1", "KPI", true)
	seedWidget(t, conn, "w2", "Alerts", true)

	view, err := viewSvc.Create("u1", ViewInput{
		Name:      "V",
		IsVisible: true,
		ReportIDs: []string{"r1", "r2", "r3"},
		WidgetIDs: []string{"w1", "w2"},
	})
	if err != nil {
		t.Fatalf("create view: %v", err)
	}
	group, err := groupSvc.Create("u1", ViewGroupInput{Name: "G", IsVisible: true})
	if err != nil {
		t.Fatalf("create group: %v", err)
	}
	if err := groupSvc.AddViews(group.ViewGroupID, "u1", []string{view.ViewID}); err != nil {
		t.Fatalf("add view to group: %v", err)
	}

	if err := viewSvc.Delete(view.ViewID, "u1"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	var n int64
	conn.Model(&models.ViewReport{}).Where("view_id = ?", view.ViewID).Count(&n)
	if n != 0 {
		t.Errorf("report links survived delete: %d", n)
	}
	conn.Model(&models.ViewWidget{}).Where("view_id = ?", view.ViewID).Count(&n)
	if n != 0 {
		t.Errorf("widget links survived delete: %d", n)
	}
	conn.Model(&models.ViewGroupView{}).Where("view_id = ?", view.ViewID).Count(&n)
	if n != 0 {
		t.Errorf("group links survived delete: %d", n)
	}
	// The catalog entries themselves stay.
	conn.Model(&models.Report{}).Count(&n)
	if n != 3 {
		t.Errorf("report catalog entries deleted, %d left", n)
	}
	conn.Model(&models.Widget{}).Count(&n)
	if n != 2 {
		t.Errorf("widget catalog entries deleted, %d left", n)
	}
}

func TestListForUserOrderedByViewIndex(t *testing.T) {
	conn := newTestDB(t)
	svc := NewViewService(conn)

	if _, err := svc.Create("u1", ViewInput{Name: "Second", IsVisible: true, OrderIndex: 2}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create("u1", ViewInput{Name: "First", IsVisible: true, OrderIndex: 1}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create("u2", ViewInput{Name: "Other", IsVisible: true}); err != nil {
		t.Fatalf("create: %v", err)
	}

	views, err := svc.ListForUser("u1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("expected 2 views, got %d", len(views))
	}
	if views[0].Name != "First" || views[1].Name != "Second" {
		t.Errorf("unexpected order: %s, %s", views[0].Name, views[1].Name)
	}
}
