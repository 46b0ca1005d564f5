package apierror

import (
	"errors"
	"fmt"
	"net/http"

	"local-file-manager/internal/model"
)

type APIError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Details    string `json:"details,omitempty"`
	HTTPStatus int    `json:"-"`
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}

	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}

	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func New(code string, message string, details string, status int) *APIError {
	return &APIError{Code: code, Message: message, Details: details, HTTPStatus: status}
}

type kindMapping struct {
	code    string
	message string
	status  int
}

var kindMappings = map[model.ErrorKind]kindMapping{
	model.KindNotFound:         {"FILE_NOT_FOUND", "File or directory not found", http.StatusNotFound},
	model.KindPermissionDenied: {"PERMISSION_DENIED", "Permission denied", http.StatusForbidden},
	model.KindInvalidPath:      {"INVALID_PATH", "Invalid path", http.StatusBadRequest},
	model.KindAlreadyExists:    {"FILE_EXISTS", "File or directory already exists", http.StatusConflict},
	model.KindInvalidName:      {"INVALID_FILE_NAME", "Invalid file name", http.StatusBadRequest},
	model.KindIoFailure:        {"IO_ERROR", "Filesystem operation failed", http.StatusInternalServerError},
	model.KindJournalFailure:   {"DATABASE_ERROR", "Journal operation failed", http.StatusInternalServerError},
	model.KindNotAllowed:       {"NOT_ALLOWED", "Path is outside the allowed roots", http.StatusForbidden},
	model.KindUndoFailed:       {"UNDO_FAILED", "Undo failed", http.StatusConflict},
}

// FromError converts an engine error into its presentation form. It returns
// nil when err carries no recognized kind.
func FromError(err error) *APIError {
	if err == nil {
		return nil
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	var typed *model.Error
	if !errors.As(err, &typed) {
		return nil
	}

	mapping, ok := kindMappings[typed.Kind]
	if !ok {
		return nil
	}

	return New(mapping.code, mapping.message, typed.Error(), mapping.status)
}
