package handler

import (
	"net/http"

	"local-file-manager/internal/model"
	"local-file-manager/internal/service"
)

type RootsHandler struct {
	service *service.OperationsService
}

func NewRootsHandler(service *service.OperationsService) *RootsHandler {
	return &RootsHandler{service: service}
}

func (h *RootsHandler) Get(w http.ResponseWriter, _ *http.Request) {
	writeSuccess(w, http.StatusOK, map[string]any{"roots": h.service.AllowedRoots()}, nil)
}

func (h *RootsHandler) Put(w http.ResponseWriter, r *http.Request) {
	var payload model.AllowedRootsRequest
	if !decodeJSON(w, r, &payload) {
		return
	}

	roots, err := h.service.SetAllowedRoots(r.Context(), payload.Roots)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"roots": roots}, nil)
}
