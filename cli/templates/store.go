// Package templates holds the process-wide set of named artifact templates.
// Templates are read and parsed once at load time and are immutable for the
// process lifetime.
package templates

import (
	"fmt"
	"io/fs"
	"sort"
)

// NotFoundError is reported when a template key is unknown.
type NotFoundError struct {
	// Key is the requested template key.
	Key string
}

// Error returns the error message.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("template %q is not found", e.Key)
}

// Spec describes one template to load: where its source lives and how the
// rendered artifact is named and written.
type Spec struct {
	// Key is the logical template key, e.g. "cmake-toolchain".
	Key string
	// Path is the template source path inside the source filesystem.
	Path string
	// Format selects the placeholder syntax and value coercion rules.
	Format Format
	// FileName is the artifact file name rendered from this template.
	FileName string
	// Mode is the file mode of the rendered artifact.
	Mode fs.FileMode
}

// Store resolves logical template keys to parsed templates.
type Store struct {
	templates map[string]*Template
}

// Load reads and parses all templates described by specs from fsys.
func Load(fsys fs.FS, specs []Spec) (*Store, error) {
	store := &Store{templates: make(map[string]*Template, len(specs))}
	for _, spec := range specs {
		content, err := fs.ReadFile(fsys, spec.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to read template %q: %s", spec.Key, err)
		}
		tmpl, err := Parse(spec.Key, spec.Format, string(content))
		if err != nil {
			return nil, err
		}
		tmpl.fileName = spec.FileName
		tmpl.mode = spec.Mode
		store.templates[spec.Key] = tmpl
	}
	return store, nil
}

// Get returns the template registered under key.
func (s *Store) Get(key string) (*Template, error) {
	tmpl, ok := s.templates[key]
	if !ok {
		return nil, &NotFoundError{Key: key}
	}
	return tmpl, nil
}

// Keys returns the registered template keys, sorted.
func (s *Store) Keys() []string {
	keys := make([]string, 0, len(s.templates))
	for key := range s.templates {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
