package templates

import (
	"fmt"
	"io/fs"
	"regexp"
	"strings"
)

// Format identifies the syntax of a rendered artifact. It selects the
// placeholder marker style and the textual representation of non-string
// parameter values.
type Format int

const (
	// FormatCMake uses @NAME@ placeholder markers. Booleans render as
	// TRUE/FALSE, lists join with a semicolon.
	FormatCMake Format = iota
	// FormatShell uses {NAME} placeholder markers. Booleans render as
	// 1/0, lists join with a colon.
	FormatShell
)

const (
	switchStartMarker = "#@if"
	switchEndMarker   = "#@endif"
)

// Placeholder and switch names are upper-case identifiers.
var nameRe = regexp.MustCompile(`^[A-Z][A-Z0-9_]*$`)

// Part is a single element of a parsed template: a run of literal text, a
// placeholder reference, or a boolean switch block with its body.
// Exactly one of Literal, Placeholder or Switch is set.
type Part struct {
	// Literal is a run of template text emitted as-is.
	Literal string
	// Placeholder is the name of a parameter substituted at render time.
	Placeholder string
	// Switch is the name of a boolean parameter controlling whether
	// Body is emitted.
	Switch string
	// Body contains the parts guarded by Switch.
	Body []Part
}

// Template is an immutable sequence of literal segments, placeholder
// references and switch blocks, parsed once from the template source.
type Template struct {
	key      string
	format   Format
	fileName string
	mode     fs.FileMode
	parts    []Part
}

// ParseError is reported for a malformed template source.
type ParseError struct {
	// Key is the logical template key.
	Key string
	// Line is the 1-based source line of the problem.
	Line int
	// Msg describes the problem.
	Msg string
}

// Error returns the error message.
func (e *ParseError) Error() string {
	return fmt.Sprintf("template %q: line %d: %s", e.Key, e.Line, e.Msg)
}

// Parse parses template source text into a Template. Switch blocks are
// delimited by whole lines reading "#@if NAME" and "#@endif" and may not
// nest. Placeholder markers are format specific.
func Parse(key string, format Format, text string) (*Template, error) {
	tmpl := &Template{key: key, format: format}

	var switchName string
	var switchBody []Part
	inSwitch := false

	for i, line := range strings.SplitAfter(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, switchStartMarker) &&
			!strings.HasPrefix(trimmed, switchEndMarker) {
			if inSwitch {
				return nil, &ParseError{key, i + 1, "nested switch blocks are not supported"}
			}
			name := strings.TrimSpace(strings.TrimPrefix(trimmed, switchStartMarker))
			if !nameRe.MatchString(name) {
				return nil, &ParseError{key, i + 1,
					fmt.Sprintf("invalid switch name %q", name)}
			}
			inSwitch = true
			switchName = name
			switchBody = nil
			continue
		}
		if trimmed == switchEndMarker {
			if !inSwitch {
				return nil, &ParseError{key, i + 1, "#@endif without matching #@if"}
			}
			tmpl.parts = append(tmpl.parts, Part{Switch: switchName, Body: switchBody})
			inSwitch = false
			continue
		}

		lineParts, err := scanLine(line, format)
		if err != nil {
			return nil, &ParseError{key, i + 1, err.Error()}
		}
		if inSwitch {
			switchBody = append(switchBody, lineParts...)
		} else {
			tmpl.parts = append(tmpl.parts, lineParts...)
		}
	}
	if inSwitch {
		return nil, &ParseError{key, strings.Count(text, "\n") + 1,
			fmt.Sprintf("switch block %q is not terminated", switchName)}
	}

	return tmpl, nil
}

// scanLine splits one source line into literal and placeholder parts.
func scanLine(line string, format Format) ([]Part, error) {
	if format == FormatShell {
		return scanShellLine(line), nil
	}
	return scanCMakeLine(line)
}

// scanCMakeLine extracts @NAME@ markers. A lone or mismatched @ is an
// error: toolchain templates are fully under our control, so strictness
// catches marker typos at load time instead of leaking them into artifacts.
func scanCMakeLine(line string) ([]Part, error) {
	var parts []Part
	rest := line
	for {
		start := strings.IndexByte(rest, '@')
		if start < 0 {
			break
		}
		end := strings.IndexByte(rest[start+1:], '@')
		if end < 0 {
			return nil, fmt.Errorf("unterminated placeholder marker in %q", strings.TrimSpace(line))
		}
		name := rest[start+1 : start+1+end]
		if !nameRe.MatchString(name) {
			return nil, fmt.Errorf("invalid placeholder name %q", name)
		}
		if start > 0 {
			parts = append(parts, Part{Literal: rest[:start]})
		}
		parts = append(parts, Part{Placeholder: name})
		rest = rest[start+end+2:]
	}
	if rest != "" {
		parts = append(parts, Part{Literal: rest})
	}
	return parts, nil
}

// scanShellLine extracts {NAME} markers. Braces are ordinary shell syntax,
// so anything that is not a well-formed upper-case name, or that belongs to
// a ${...} expansion, stays literal.
func scanShellLine(line string) []Part {
	var parts []Part
	literal := strings.Builder{}
	rest := line
	for {
		start := strings.IndexByte(rest, '{')
		if start < 0 {
			literal.WriteString(rest)
			break
		}
		end := strings.IndexByte(rest[start:], '}')
		if end < 0 {
			literal.WriteString(rest)
			break
		}
		name := rest[start+1 : start+end]
		if !nameRe.MatchString(name) || (start > 0 && rest[start-1] == '$') {
			literal.WriteString(rest[:start+1])
			rest = rest[start+1:]
			continue
		}
		literal.WriteString(rest[:start])
		if literal.Len() > 0 {
			parts = append(parts, Part{Literal: literal.String()})
			literal.Reset()
		}
		parts = append(parts, Part{Placeholder: name})
		rest = rest[start+end+1:]
	}
	if literal.Len() > 0 {
		parts = append(parts, Part{Literal: literal.String()})
	}
	return parts
}

// Key returns the logical template key.
func (t *Template) Key() string {
	return t.key
}

// Format returns the output format of the template.
func (t *Template) Format() Format {
	return t.format
}

// FileName returns the artifact file name rendered from this template.
func (t *Template) FileName() string {
	return t.fileName
}

// Mode returns the file mode of the rendered artifact.
func (t *Template) Mode() fs.FileMode {
	return t.mode
}

// Parts returns the parsed template parts in source order.
func (t *Template) Parts() []Part {
	return t.parts
}

// Placeholders returns the names referenced by the template in source
// order, without duplicates. Switch names are included, as are placeholders
// inside switch bodies.
func (t *Template) Placeholders() []string {
	var names []string
	seen := map[string]bool{}
	var collect func(parts []Part)
	collect = func(parts []Part) {
		for _, part := range parts {
			name := part.Placeholder
			if part.Switch != "" {
				name = part.Switch
			}
			if name != "" && !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
			if part.Switch != "" {
				collect(part.Body)
			}
		}
	}
	collect(t.parts)
	return names
}
