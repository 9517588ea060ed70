package render

import (
	"fmt"
	"os"
	"path/filepath"
)

const artifactDirPermissions = os.FileMode(0755)

// WriteError is reported when storing an artifact fails. The previous
// artifact, if any, is left in place.
type WriteError struct {
	// Path is the artifact destination path.
	Path string
	// Err is the underlying I/O error.
	Err error
}

// Error returns the error message.
func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write artifact %s: %s", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *WriteError) Unwrap() error {
	return e.Err
}

// Write stores artifact.Text at artifact.Path. The content goes to a
// temporary file in the destination directory first and is moved into place
// with a rename, so a failed write never leaves a partial artifact and never
// touches the previous one.
func Write(artifact *Artifact) error {
	dir := filepath.Dir(artifact.Path)
	if err := os.MkdirAll(dir, artifactDirPermissions); err != nil {
		return &WriteError{Path: artifact.Path, Err: err}
	}

	tmpFile, err := os.CreateTemp(dir, filepath.Base(artifact.Path)+"-*")
	if err != nil {
		return &WriteError{Path: artifact.Path, Err: err}
	}
	tmpPath := tmpFile.Name()
	// No-op once the rename has succeeded.
	defer os.Remove(tmpPath)

	_, err = tmpFile.WriteString(artifact.Text)
	if closeErr := tmpFile.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return &WriteError{Path: artifact.Path, Err: err}
	}

	if err := os.Chmod(tmpPath, artifact.Mode); err != nil {
		return &WriteError{Path: artifact.Path, Err: err}
	}
	if err := os.Rename(tmpPath, artifact.Path); err != nil {
		return &WriteError{Path: artifact.Path, Err: err}
	}
	return nil
}
