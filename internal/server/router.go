package server

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/insightdesk/portal-api/internal/handlers"
	"github.com/insightdesk/portal-api/internal/httpx"
	"github.com/insightdesk/portal-api/internal/logger"
	"github.com/insightdesk/portal-api/internal/services"
)

// New constructs the root http.Handler with all routes and middlewares applied.
func New(db *gorm.DB, log *logger.Logger) http.Handler {
	r := mux.NewRouter()

	// --- Health endpoints ---
	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		// Lightweight DB check (SELECT 1) – no detail in the body
		if err := db.Exec("SELECT 1").Error; err != nil {
			httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	viewSvc := services.NewViewService(db)
	groupSvc := services.NewViewGroupService(db)
	roleSvc := services.NewRoleDefaultsService(db)
	prefSvc := services.NewPreferenceService(db)

	uh := handlers.NewUserHandler(db)
	rh := handlers.NewReportHandler(db, roleSvc)
	wh := handlers.NewWidgetHandler(db, roleSvc)
	vh := handlers.NewViewHandler(viewSvc)
	gh := handlers.NewViewGroupHandler(groupSvc)
	nh := handlers.NewNavigationHandler(prefSvc)
	lh := handlers.NewLayoutHandler(prefSvc)

	api := r.PathPrefix("/api").Subrouter()

	// Users
	api.HandleFunc("/users/login", uh.Login).Methods(http.MethodPost)
	api.HandleFunc("/users", uh.List).Methods(http.MethodGet)
	api.HandleFunc("/users/{userId}", uh.Get).Methods(http.MethodGet)

	// Report catalog + role defaults. Role routes come first so "role" is
	// never swallowed by the {id} pattern.
	api.HandleFunc("/reports/role/{roleId}/assign", rh.Assign).Methods(http.MethodPost)
	api.HandleFunc("/reports/role/{roleId}/unassign/{reportId}", rh.Unassign).Methods(http.MethodDelete)
	api.HandleFunc("/reports/role/{roleId}", rh.ByRole).Methods(http.MethodGet)
	api.HandleFunc("/reports", rh.List).Methods(http.MethodGet)
	api.HandleFunc("/reports", rh.Create).Methods(http.MethodPost)
	api.HandleFunc("/reports/{id}", rh.Get).Methods(http.MethodGet)
	api.HandleFunc("/reports/{id}", rh.Update).Methods(http.MethodPut)
	api.HandleFunc("/reports/{id}", rh.Delete).Methods(http.MethodDelete)

	// Widget catalog + role defaults
	api.HandleFunc("/widgets/role/{roleId}/assign", wh.Assign).Methods(http.MethodPost)
	api.HandleFunc("/widgets/role/{roleId}/unassign/{widgetId}", wh.Unassign).Methods(http.MethodDelete)
	api.HandleFunc("/widgets/role/{roleId}", wh.ByRole).Methods(http.MethodGet)
	api.HandleFunc("/widgets", wh.List).Methods(http.MethodGet)
	api.HandleFunc("/widgets", wh.Create).Methods(http.MethodPost)
	api.HandleFunc("/widgets/{id}", wh.Get).Methods(http.MethodGet)
	api.HandleFunc("/widgets/{id}", wh.Update).Methods(http.MethodPut)
	api.HandleFunc("/widgets/{id}", wh.Delete).Methods(http.MethodDelete)

	// Views
	api.HandleFunc("/views/user/{userId}", vh.ListForUser).Methods(http.MethodGet)
	api.HandleFunc("/views", vh.Create).Methods(http.MethodPost)
	api.HandleFunc("/views/{id}/reports/reorder", vh.ReorderReports).Methods(http.MethodPost)
	api.HandleFunc("/views/{id}/reports", vh.AddReports).Methods(http.MethodPost)
	api.HandleFunc("/views/{viewId}/reports/{reportId}", vh.RemoveReport).Methods(http.MethodDelete)
	api.HandleFunc("/views/{id}/widgets/reorder", vh.ReorderWidgets).Methods(http.MethodPost)
	api.HandleFunc("/views/{id}/widgets", vh.AddWidgets).Methods(http.MethodPost)
	api.HandleFunc("/views/{viewId}/widgets/{widgetId}", vh.RemoveWidget).Methods(http.MethodDelete)
	api.HandleFunc("/views/{id}", vh.Get).Methods(http.MethodGet)
	api.HandleFunc("/views/{id}", vh.Update).Methods(http.MethodPut)
	api.HandleFunc("/views/{id}", vh.Delete).Methods(http.MethodDelete)

	// View groups
	api.HandleFunc("/viewgroups/user/{userId}", gh.ListForUser).Methods(http.MethodGet)
	api.HandleFunc("/viewgroups/reorder", gh.Reorder).Methods(http.MethodPost)
	api.HandleFunc("/viewgroups", gh.Create).Methods(http.MethodPost)
	api.HandleFunc("/viewgroups/{id}/views/reorder", gh.ReorderViews).Methods(http.MethodPost)
	api.HandleFunc("/viewgroups/{id}/views", gh.AddViews).Methods(http.MethodPost)
	api.HandleFunc("/viewgroups/{viewGroupId}/views/{viewId}", gh.RemoveView).Methods(http.MethodDelete)
	api.HandleFunc("/viewgroups/{id}", gh.Get).Methods(http.MethodGet)
	api.HandleFunc("/viewgroups/{id}", gh.Update).Methods(http.MethodPut)
	api.HandleFunc("/viewgroups/{id}", gh.Delete).Methods(http.MethodDelete)

	// Navigation preferences
	api.HandleFunc("/navigation/{userId}", nh.Get).Methods(http.MethodGet)
	api.HandleFunc("/navigation/{userId}", nh.Update).Methods(http.MethodPut)
	api.HandleFunc("/navigation/{userId}", nh.Reset).Methods(http.MethodDelete)

	// Layout customizations
	api.HandleFunc("/layout/{userId}/{signature}", lh.Get).Methods(http.MethodGet)
	api.HandleFunc("/layout/{userId}/{signature}", lh.Delete).Methods(http.MethodDelete)
	api.HandleFunc("/layout/{userId}", lh.List).Methods(http.MethodGet)
	api.HandleFunc("/layout/{userId}", lh.Save).Methods(http.MethodPost)
	api.HandleFunc("/layout/{userId}", lh.DeleteAll).Methods(http.MethodDelete)

	return withRecover(log, withLogging(log, r))
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

func withLogging(log *logger.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start).String(),
		)
	})
}

func withRecover(log *logger.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Error("panic recovered", "path", r.URL.Path, "panic", rec)
				httpx.Error(w, http.StatusInternalServerError, "internal error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
