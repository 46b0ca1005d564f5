//go:build windows

package storage

import (
	"io/fs"
	"syscall"
	"time"
)

func CreatedAt(info fs.FileInfo) time.Time {
	if attrs, ok := info.Sys().(*syscall.Win32FileAttributeData); ok {
		return time.Unix(0, attrs.CreationTime.Nanoseconds()).UTC()
	}
	return info.ModTime().UTC()
}
