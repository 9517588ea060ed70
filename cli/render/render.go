// Package render substitutes resolved parameter values into parsed templates
// and writes the resulting artifacts to disk.
package render

import (
	"fmt"
	"io/fs"
	"strings"

	"github.com/cheritools/cherigen/cli/templates"
)

// Values maps placeholder and switch names to their values. Supported value
// types are string, bool and []string.
type Values map[string]any

// MissingParameterError is reported when a template references a name that
// has no value. The first missing name in template order is reported.
type MissingParameterError struct {
	// Name is the missing parameter name.
	Name string
}

// Error returns the error message.
func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("missing value for template parameter %q", e.Name)
}

// Artifact is a fully substituted template together with its destination.
// It is constructed fresh on every render and never mutated afterwards.
type Artifact struct {
	// Text is the rendered content.
	Text string
	// Path is the destination file path.
	Path string
	// Mode is the file mode of the destination file.
	Mode fs.FileMode
}

// Render substitutes values into tmpl and returns the artifact destined for
// dstPath. Rendering is a pure function of the template and the values:
// equal inputs produce byte-identical text. Nothing is written to disk.
func Render(tmpl *templates.Template, values Values, dstPath string) (*Artifact, error) {
	var builder strings.Builder
	if err := renderParts(&builder, tmpl.Parts(), tmpl.Format(), values); err != nil {
		return nil, err
	}
	return &Artifact{Text: builder.String(), Path: dstPath, Mode: tmpl.Mode()}, nil
}

// renderParts walks parts in template order. Switch bodies are only
// evaluated when the switch is enabled, so parameters referenced solely
// inside a disabled block are not required.
func renderParts(builder *strings.Builder, parts []templates.Part,
	format templates.Format, values Values,
) error {
	for _, part := range parts {
		switch {
		case part.Switch != "":
			value, ok := values[part.Switch]
			if !ok {
				return &MissingParameterError{Name: part.Switch}
			}
			enabled, ok := value.(bool)
			if !ok {
				return fmt.Errorf("switch %q requires a boolean value, got %T",
					part.Switch, value)
			}
			if enabled {
				if err := renderParts(builder, part.Body, format, values); err != nil {
					return err
				}
			}
		case part.Placeholder != "":
			value, ok := values[part.Placeholder]
			if !ok {
				return &MissingParameterError{Name: part.Placeholder}
			}
			text, err := coerce(value, format)
			if err != nil {
				return fmt.Errorf("parameter %q: %s", part.Placeholder, err)
			}
			builder.WriteString(text)
		default:
			builder.WriteString(part.Literal)
		}
	}
	return nil
}

// coerce returns the textual representation of value for the output format.
// The mapping is part of the descriptor-to-text contract: booleans become
// TRUE/FALSE in CMake output and 1/0 in shell output, lists join with the
// format's search path separator.
func coerce(value any, format templates.Format) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case bool:
		if format == templates.FormatCMake {
			if v {
				return "TRUE", nil
			}
			return "FALSE", nil
		}
		if v {
			return "1", nil
		}
		return "0", nil
	case []string:
		if format == templates.FormatCMake {
			return strings.Join(v, ";"), nil
		}
		return strings.Join(v, ":"), nil
	}
	return "", fmt.Errorf("unsupported value type %T", value)
}
