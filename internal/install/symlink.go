// Package install places the running binary on PATH.
package install

import (
	"fmt"
	"os"
)

// DefaultLink is where Symlink is pointed by the --symlink flag.
const DefaultLink = "/usr/local/bin/nubble"

// Symlink creates link pointing at target. An existing file at link is an
// error.
func Symlink(target, link string) error {
	if target == "" {
		return fmt.Errorf("symlink target is empty")
	}
	if err := os.Symlink(target, link); err != nil {
		return fmt.Errorf("failed to create symlink: %w", err)
	}
	return nil
}
