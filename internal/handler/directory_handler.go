package handler

import (
	"net/http"
	"strings"

	"local-file-manager/internal/model"
	"local-file-manager/internal/service"
	"local-file-manager/pkg/apierror"
)

type DirectoryHandler struct {
	service *service.OperationsService
}

func NewDirectoryHandler(service *service.OperationsService) *DirectoryHandler {
	return &DirectoryHandler{service: service}
}

func (h *DirectoryHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	data, err := h.service.ListDir(r.Context(), query.Get("path"), service.ListOptions{
		Sort:  strings.TrimSpace(query.Get("sort")),
		Order: strings.TrimSpace(query.Get("order")),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, data, &model.Meta{Total: len(data.Items)})
}

func (h *DirectoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload model.CreateDirectoryRequest
	if !decodeJSON(w, r, &payload) {
		return
	}

	if strings.TrimSpace(payload.Path) == "" {
		writeError(w, apierror.New("BAD_REQUEST", "parent path is required", "path", http.StatusBadRequest))
		return
	}

	data, err := h.service.MakeDir(r.Context(), payload.Path, payload.Name)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, data, nil)
}

func (h *DirectoryHandler) Stat(w http.ResponseWriter, r *http.Request) {
	data, err := h.service.Stat(r.Context(), r.URL.Query().Get("path"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, data, nil)
}

func (h *DirectoryHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	items, err := h.service.Search(r.Context(), query.Get("path"), query.Get("q"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"items": items}, &model.Meta{Total: len(items)})
}

func (h *DirectoryHandler) Favorites(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.Favorites(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"items": items}, nil)
}
