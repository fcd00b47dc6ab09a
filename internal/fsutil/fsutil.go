// Package fsutil contains small filesystem helpers shared by the
// strategies and the CLI.
package fsutil

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
)

// EnsureDir creates path and any missing parents.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0o755)
}

// DirSize returns the total size in bytes of all regular files under
// path. Unreadable entries are skipped.
func DirSize(path string) int64 {
	var total int64
	_ = filepath.WalkDir(path, func(_ string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if info, err := d.Info(); err == nil {
			total += info.Size()
		}
		return nil
	})
	return total
}

// HumanSize formats a byte count for log output, e.g. "1.2 MB".
func HumanSize(n int64) string {
	if n < 0 {
		n = 0
	}
	return humanize.Bytes(uint64(n))
}
