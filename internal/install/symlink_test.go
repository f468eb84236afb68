package install

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSymlink(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "nubble-bin")
	require.NoError(t, os.WriteFile(target, []byte("#!/bin/sh\n"), 0o755))
	link := filepath.Join(dir, "nubble")

	require.NoError(t, Symlink(target, link))

	got, err := os.Readlink(link)
	require.NoError(t, err)
	assert.Equal(t, target, got)
}

func TestSymlinkExisting(t *testing.T) {
	dir := t.TempDir()
	link := filepath.Join(dir, "nubble")
	require.NoError(t, os.WriteFile(link, nil, 0o644))

	err := Symlink("/bin/true", link)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrExist)
}

func TestSymlinkEmptyTarget(t *testing.T) {
	assert.Error(t, Symlink("", filepath.Join(t.TempDir(), "nubble")))
}
