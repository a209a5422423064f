package models

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// NodeID derives a stable file-node id from a path. The hash keeps ids
// short and renderer-safe regardless of path separators or unicode.
func NodeID(path string) string {
	return fmt.Sprintf("file_%016x", xxhash.Sum64String(path))
}

// ModuleID derives a stable module-node id from a path.
func ModuleID(path string) string {
	if path == "" {
		return "module_root"
	}
	return fmt.Sprintf("module_%016x", xxhash.Sum64String(path))
}
