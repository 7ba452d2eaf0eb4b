// Package handlers adapts the aggregate services to the HTTP surface. The
// caller-supplied userId is trusted as-is; authentication happens upstream.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/insightdesk/portal-api/internal/httpx"
	"github.com/insightdesk/portal-api/internal/links"
	"github.com/insightdesk/portal-api/internal/services"
	"github.com/insightdesk/portal-api/internal/validation"
)

func decodeJSON(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

// respondError maps service failures to the wire: not-found (including
// other-owner) becomes a 404 with the given message, anything else a 500.
func respondError(w http.ResponseWriter, err error, notFoundMsg string) {
	if errors.Is(err, services.ErrNotFound) {
		httpx.Error(w, http.StatusNotFound, notFoundMsg)
		return
	}
	if errors.Is(err, services.ErrInvalidArgument) {
		httpx.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	httpx.Error(w, http.StatusInternalServerError, "internal error")
}

// checkReorderItems rejects structurally broken batches up front; items with
// valid shape but stale ids are the services' tolerant-skip concern, not ours.
func checkReorderItems(items []links.ReorderItem, v validation.Violations) {
	if items == nil {
		v["items"] = "required"
		return
	}
	for _, item := range items {
		if item.ID == "" {
			v["items"] = "contains_blank_id"
			return
		}
		if item.OrderIndex < 0 {
			v["items"] = "negative_order_index"
			return
		}
	}
}
