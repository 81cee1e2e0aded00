// Package fileio reads Markdown and YAML files with a small typed error
// taxonomy so callers can distinguish "missing" from "broken".
package fileio

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// NotFoundError reports a path that does not exist.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("file not found: %s", e.Path)
}

// ParseError reports a structured file with unparsable syntax.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ReadMarkdown returns the file's text content.
func ReadMarkdown(path string) (string, error) {
	b, err := readAll(path)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ReadYAML returns the file's content as a mapping. A syntactically empty
// file (or one holding only comments) yields an empty mapping, not an
// error: optional config files may be absent-by-being-empty. Malformed
// YAML is a ParseError.
func ReadYAML(path string) (map[string]any, error) {
	b, err := readAll(path)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := yaml.Unmarshal(b, &m); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	if m == nil {
		m = map[string]any{}
	}
	return m, nil
}

// DecodeYAML unmarshals the file into out with the same error taxonomy as
// ReadYAML. An empty file leaves out untouched.
func DecodeYAML(path string, out any) error {
	b, err := readAll(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(b, out); err != nil {
		return &ParseError{Path: path, Err: err}
	}
	return nil
}

func readAll(path string) ([]byte, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &NotFoundError{Path: path}
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return b, nil
}
