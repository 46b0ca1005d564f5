package model

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
)

type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindNotFound
	KindPermissionDenied
	KindInvalidPath
	KindAlreadyExists
	KindInvalidName
	KindIoFailure
	KindJournalFailure
	KindNotAllowed
	KindUndoFailed
)

var kindNames = map[ErrorKind]string{
	KindUnknown:          "unknown",
	KindNotFound:         "not found",
	KindPermissionDenied: "permission denied",
	KindInvalidPath:      "invalid path",
	KindAlreadyExists:    "already exists",
	KindInvalidName:      "invalid name",
	KindIoFailure:        "io failure",
	KindJournalFailure:   "journal failure",
	KindNotAllowed:       "not allowed",
	KindUndoFailed:       "undo failed",
}

func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return kindNames[KindUnknown]
}

// Error is the single failure type returned by the engine. Kind selects the
// variant; Path and Reason carry the payload the variant needs.
type Error struct {
	Kind   ErrorKind
	Op     string
	Path   string
	Reason string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}

	var b strings.Builder
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	b.WriteString(e.Kind.String())
	if e.Path != "" {
		fmt.Fprintf(&b, " %q", e.Path)
	}
	if e.Reason != "" {
		b.WriteString(": ")
		b.WriteString(e.Reason)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}

	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error by kind so callers can write
// errors.Is(err, model.ErrNotFound).
func (e *Error) Is(target error) bool {
	var other *Error
	if !errors.As(target, &other) {
		return false
	}
	return other.Kind == e.Kind && other.Op == "" && other.Path == "" && other.Reason == ""
}

// Sentinels for errors.Is comparisons.
var (
	ErrNotFound         = &Error{Kind: KindNotFound}
	ErrPermissionDenied = &Error{Kind: KindPermissionDenied}
	ErrInvalidPath      = &Error{Kind: KindInvalidPath}
	ErrAlreadyExists    = &Error{Kind: KindAlreadyExists}
	ErrInvalidName      = &Error{Kind: KindInvalidName}
	ErrIoFailure        = &Error{Kind: KindIoFailure}
	ErrJournalFailure   = &Error{Kind: KindJournalFailure}
	ErrNotAllowed       = &Error{Kind: KindNotAllowed}
	ErrUndoFailed       = &Error{Kind: KindUndoFailed}
)

func NotFound(op string, path string) error {
	return &Error{Kind: KindNotFound, Op: op, Path: path}
}

func AlreadyExists(op string, path string) error {
	return &Error{Kind: KindAlreadyExists, Op: op, Path: path}
}

func InvalidPath(op string, path string, reason string) error {
	return &Error{Kind: KindInvalidPath, Op: op, Path: path, Reason: reason}
}

func InvalidName(name string, reason string) error {
	return &Error{Kind: KindInvalidName, Op: "validate name", Path: name, Reason: reason}
}

func NotAllowed(op string, path string) error {
	return &Error{Kind: KindNotAllowed, Op: op, Path: path, Reason: "path is outside the allowed roots"}
}

func UndoFailed(reason string) error {
	return &Error{Kind: KindUndoFailed, Op: "undo", Reason: reason}
}

func JournalFailure(op string, err error) error {
	return &Error{Kind: KindJournalFailure, Op: op, Err: err}
}

func IoFailure(op string, path string, err error) error {
	return &Error{Kind: KindIoFailure, Op: op, Path: path, Err: err}
}

// FromOS classifies an error coming back from the filesystem.
// Errors that are already *Error pass through unchanged.
func FromOS(op string, path string, err error) error {
	if err == nil {
		return nil
	}

	var typed *Error
	if errors.As(err, &typed) {
		return err
	}

	switch {
	case errors.Is(err, fs.ErrNotExist):
		return &Error{Kind: KindNotFound, Op: op, Path: path, Err: err}
	case errors.Is(err, fs.ErrExist):
		return &Error{Kind: KindAlreadyExists, Op: op, Path: path, Err: err}
	case errors.Is(err, fs.ErrPermission):
		return &Error{Kind: KindPermissionDenied, Op: op, Path: path, Err: err}
	default:
		return &Error{Kind: KindIoFailure, Op: op, Path: path, Err: err}
	}
}

// KindOf reports the kind of err, or KindUnknown for foreign errors.
func KindOf(err error) ErrorKind {
	var typed *Error
	if errors.As(err, &typed) {
		return typed.Kind
	}
	return KindUnknown
}

// ItemMessage renders a per-item failure for a BatchOutcome.
func ItemMessage(err error) string {
	var typed *Error
	if !errors.As(err, &typed) {
		return err.Error()
	}

	switch typed.Kind {
	case KindAlreadyExists:
		return "destination already exists"
	case KindNotFound:
		return "source not found"
	}

	if typed.Reason != "" {
		return typed.Reason
	}
	if typed.Err != nil {
		return typed.Err.Error()
	}
	return typed.Kind.String()
}
