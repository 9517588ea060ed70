package render

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteCreatesArtifact(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "out", "mount-rootfs.sh")

	err := Write(&Artifact{Text: "#!/bin/sh\n", Path: path, Mode: 0755})
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "#!/bin/sh\n", string(content))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.EqualValues(t, 0755, info.Mode().Perm())
}

func TestWriteReplacesExistingArtifact(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "toolchain.cmake")
	require.NoError(t, os.WriteFile(path, []byte("old content\n"), 0644))

	err := Write(&Artifact{Text: "new content\n", Path: path, Mode: 0644})
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new content\n", string(content))
}

func TestWriteLeavesNoTemporaryFiles(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "toolchain.cmake")

	require.NoError(t, Write(&Artifact{Text: "content\n", Path: path, Mode: 0644}))

	entries, err := os.ReadDir(tmpDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "toolchain.cmake", entries[0].Name())
}

func TestWriteFailureKeepsPreviousArtifact(t *testing.T) {
	tmpDir := t.TempDir()

	// The destination path is occupied by a non-empty directory, so the
	// final rename must fail after the temporary file has been written.
	dstPath := filepath.Join(tmpDir, "toolchain.cmake")
	require.NoError(t, os.MkdirAll(filepath.Join(dstPath, "occupied"), 0755))

	err := Write(&Artifact{Text: "content\n", Path: dstPath, Mode: 0644})
	require.Error(t, err)

	var writeErr *WriteError
	require.ErrorAs(t, err, &writeErr)
	assert.Equal(t, dstPath, writeErr.Path)

	// The occupant is untouched and the temporary file is cleaned up.
	assert.DirExists(t, filepath.Join(dstPath, "occupied"))
	entries, err := os.ReadDir(tmpDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestWriteFailsWhenDirCannotBeCreated(t *testing.T) {
	tmpDir := t.TempDir()

	// A regular file occupies the place of the artifact directory.
	occupant := filepath.Join(tmpDir, "out")
	require.NoError(t, os.WriteFile(occupant, []byte("file"), 0644))

	err := Write(&Artifact{
		Text: "content\n",
		Path: filepath.Join(occupant, "toolchain.cmake"),
		Mode: 0644,
	})
	require.Error(t, err)

	var writeErr *WriteError
	require.ErrorAs(t, err, &writeErr)

	content, err := os.ReadFile(occupant)
	require.NoError(t, err)
	assert.Equal(t, "file", string(content))
}
