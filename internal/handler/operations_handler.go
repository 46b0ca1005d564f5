package handler

import (
	"net/http"
	"strings"

	"local-file-manager/internal/model"
	"local-file-manager/internal/service"
	"local-file-manager/pkg/apierror"
)

type OperationsHandler struct {
	service *service.OperationsService
}

func NewOperationsHandler(service *service.OperationsService) *OperationsHandler {
	return &OperationsHandler{service: service}
}

func (h *OperationsHandler) Rename(w http.ResponseWriter, r *http.Request) {
	var payload model.RenameRequest
	if !decodeJSON(w, r, &payload) {
		return
	}

	if strings.TrimSpace(payload.Path) == "" {
		writeError(w, apierror.New("BAD_REQUEST", "path is required", "path", http.StatusBadRequest))
		return
	}

	result, err := h.service.Rename(r.Context(), payload.Path, payload.NewName)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, result, nil)
}

func (h *OperationsHandler) Move(w http.ResponseWriter, r *http.Request) {
	var payload model.MoveRequest
	if !decodeJSON(w, r, &payload) {
		return
	}

	if strings.TrimSpace(payload.Destination) == "" {
		writeError(w, apierror.New("BAD_REQUEST", "destination is required", "destination", http.StatusBadRequest))
		return
	}

	result, err := h.service.Move(r.Context(), payload.Sources, payload.Destination)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, result, nil)
}

func (h *OperationsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var payload model.DeleteRequest
	if !decodeJSON(w, r, &payload) {
		return
	}

	result, err := h.service.SoftDelete(r.Context(), payload.Paths)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, result, nil)
}

func (h *OperationsHandler) Undo(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Undo(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, result, nil)
}

func (h *OperationsHandler) ListTrash(w http.ResponseWriter, r *http.Request) {
	slots, err := h.service.TrashSlots(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"items": slots}, &model.Meta{Total: len(slots)})
}
