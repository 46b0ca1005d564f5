//go:build darwin

package storage

import (
	"io/fs"
	"syscall"
	"time"
)

func CreatedAt(info fs.FileInfo) time.Time {
	if st, ok := info.Sys().(*syscall.Stat_t); ok {
		return time.Unix(st.Birthtimespec.Sec, st.Birthtimespec.Nsec).UTC()
	}
	return info.ModTime().UTC()
}
