//go:build !linux && !darwin && !windows

package storage

import (
	"io/fs"
	"time"
)

func CreatedAt(info fs.FileInfo) time.Time {
	return info.ModTime().UTC()
}
