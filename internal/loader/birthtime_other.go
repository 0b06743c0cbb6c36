//go:build !linux

package loader

import (
	"os"
	"time"
)

// birthTime falls back to the modification time on platforms without statx.
func birthTime(_ string, info os.FileInfo) time.Time {
	return info.ModTime()
}
