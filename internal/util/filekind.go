package util

import (
	"mime"
	"path/filepath"
	"strings"
)

const (
	KindDirectory = "directory"
	KindImage     = "image"
	KindVideo     = "video"
	KindAudio     = "audio"
	KindArchive   = "archive"
	KindDocument  = "document"
	KindFile      = "file"
)

// ClassifyName buckets a file by its extension for display.
func ClassifyName(name string, isDir bool) string {
	if isDir {
		return KindDirectory
	}

	ext := filepath.Ext(name)
	switch {
	case IsImageExtension(ext):
		return KindImage
	case IsVideoExtension(ext):
		return KindVideo
	case isAudioExtension(ext):
		return KindAudio
	case isArchiveExtension(ext):
		return KindArchive
	case isDocumentExtension(ext):
		return KindDocument
	default:
		return KindFile
	}
}

// MIMETypeForName guesses a content type from the extension alone; files are
// never opened.
func MIMETypeForName(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return ""
	}

	if detected := mime.TypeByExtension(ext); detected != "" {
		return detected
	}

	return "application/octet-stream"
}

func IsImageExtension(extension string) bool {
	switch strings.ToLower(strings.TrimSpace(extension)) {
	case ".png", ".apng", ".jpg", ".jpeg", ".jpe", ".jfif", ".gif", ".webp", ".bmp", ".tiff", ".tif", ".svg", ".ico", ".avif", ".heic", ".heif", ".jxl":
		return true
	default:
		return false
	}
}

func IsVideoExtension(extension string) bool {
	switch strings.ToLower(strings.TrimSpace(extension)) {
	case ".mp4", ".m4v", ".mov", ".webm", ".mkv", ".avi", ".wmv", ".flv", ".mpeg", ".mpg", ".3gp", ".ogv":
		return true
	default:
		return false
	}
}

func isAudioExtension(extension string) bool {
	switch strings.ToLower(strings.TrimSpace(extension)) {
	case ".mp3", ".wav", ".flac", ".ogg", ".m4a", ".aac", ".opus", ".wma":
		return true
	default:
		return false
	}
}

func isArchiveExtension(extension string) bool {
	switch strings.ToLower(strings.TrimSpace(extension)) {
	case ".zip", ".tar", ".gz", ".tgz", ".bz2", ".xz", ".7z", ".rar", ".zst":
		return true
	default:
		return false
	}
}

func isDocumentExtension(extension string) bool {
	switch strings.ToLower(strings.TrimSpace(extension)) {
	case ".pdf", ".doc", ".docx", ".odt", ".rtf", ".txt", ".md", ".xls", ".xlsx", ".ods", ".csv", ".ppt", ".pptx", ".odp":
		return true
	default:
		return false
	}
}
