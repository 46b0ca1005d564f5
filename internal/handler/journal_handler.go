package handler

import (
	"net/http"

	"local-file-manager/internal/model"
	"local-file-manager/internal/service"
)

type JournalHandler struct {
	service *service.OperationsService
}

func NewJournalHandler(service *service.OperationsService) *JournalHandler {
	return &JournalHandler{service: service}
}

// List returns the newest journal records first.
func (h *JournalHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := parseIntOrDefault(r.URL.Query().Get("limit"), 50)

	items, err := h.service.RecentLogs(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"items": items}, &model.Meta{Total: len(items), Limit: limit})
}
