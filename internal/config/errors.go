package config

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedFormat = errors.New("config: file must be .toml, .yaml or .yml")
	ErrFieldNotFound     = errors.New("config: field not found")
	ErrUnsupportedKind   = errors.New("config: unsupported field kind")
)

// ParseError locates a syntax or schema error in a config file. Line and
// Column are 1-based and zero when unknown.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	where := e.Path
	switch {
	case e.Line > 0 && e.Column > 0:
		where = fmt.Sprintf("%s:%d:%d", e.Path, e.Line, e.Column)
	case e.Line > 0:
		where = fmt.Sprintf("%s:%d", e.Path, e.Line)
	}
	return where + ": " + e.Message
}

func (e *ParseError) Unwrap() error { return e.Err }

// ValidationError reports one problem with a loaded form, such as a
// duplicate field name or a mask the engines reject. Path names the
// offending setting, e.g. "fields[2].mask".
type ValidationError struct {
	Path    string
	Message string
	Value   any
	Code    ValidationErrorCode
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Value == nil || e.Value == "" {
		return e.Path + ": " + e.Message
	}
	return fmt.Sprintf("%s: %s (got %v)", e.Path, e.Message, e.Value)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// ValidationErrorCode classifies a ValidationError for callers that react
// to the kind of problem rather than its text.
type ValidationErrorCode uint8

const (
	ErrCodeRequiredMissing ValidationErrorCode = iota
	ErrCodeInvalidEnum
	ErrCodeOutOfRange
	ErrCodeDuplicate
	// ErrCodeInvalidValue marks a mask or initial value an engine rejects.
	ErrCodeInvalidValue
)

var codeNames = [...]string{
	ErrCodeRequiredMissing: "required_missing",
	ErrCodeInvalidEnum:     "invalid_enum",
	ErrCodeOutOfRange:      "out_of_range",
	ErrCodeDuplicate:       "duplicate",
	ErrCodeInvalidValue:    "invalid_value",
}

func (c ValidationErrorCode) String() string {
	if int(c) < len(codeNames) {
		return codeNames[c]
	}
	return "unknown"
}
