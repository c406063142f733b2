package filex

import (
	"fmt"
	"os"
)

// EnsureDir creates dir and any missing parents with owner-only
// permissions. An empty dir or "." is a no-op.
func EnsureDir(dir string) error {
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return nil
}
