//go:build linux

package storage

import (
	"io/fs"
	"syscall"
	"time"
)

// CreatedAt returns the inode change time; Linux does not expose birth time
// through stat(2).
func CreatedAt(info fs.FileInfo) time.Time {
	if st, ok := info.Sys().(*syscall.Stat_t); ok {
		return time.Unix(int64(st.Ctim.Sec), int64(st.Ctim.Nsec)).UTC()
	}
	return info.ModTime().UTC()
}
