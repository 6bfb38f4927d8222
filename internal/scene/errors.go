package scene

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the expected failure modes. Commands match on these
// with errors.Is and translate them into structured responses instead of
// letting them escape as process crashes.
var (
	// ErrNotFound covers a missing file, block, field, or override entry.
	ErrNotFound = errors.New("not found")

	// ErrNotRecognized is returned when a file lacks the %YAML signature
	// or contains no block anchors at all.
	ErrNotRecognized = errors.New("not a recognized scene document")

	// ErrMalformed is returned when a referenced list section is missing
	// or a path segment cannot be located in the block body.
	ErrMalformed = errors.New("malformed block body")

	// ErrTemplateUnresolved is returned when a prefab instance's source
	// cannot be located through the GUID resolver.
	ErrTemplateUnresolved = errors.New("template source unresolved")

	// ErrHasChildren is returned by a non-cascade delete on an object
	// that still has children in the hierarchy.
	ErrHasChildren = errors.New("object has children (use cascade)")

	// ErrValidation is returned when a caller-supplied name or value
	// violates the format's embedding rules.
	ErrValidation = errors.New("validation failed")
)

// AmbiguousMatchError reports a display name that resolved to more than one
// block. Candidates lets the caller retry with a literal file ID.
type AmbiguousMatchError struct {
	Name       string
	Candidates []int64
}

func (e *AmbiguousMatchError) Error() string {
	ids := make([]string, len(e.Candidates))
	for i, id := range e.Candidates {
		ids[i] = fmt.Sprintf("%d", id)
	}
	return fmt.Sprintf("name %q matches multiple objects (candidates: %s); use a file ID instead",
		e.Name, strings.Join(ids, ", "))
}

// validateName rejects names that cannot be embedded as raw text in the
// document format. The offending constraint is named in the message so the
// caller knows what to fix.
func validateName(field, name string) error {
	return ValidateEmbeddedName(field, name)
}

// ValidateEmbeddedName checks that name is safe to splice into a document
// as raw text. Exposed for callers that write settings files with the same
// embedding rules.
func ValidateEmbeddedName(field, name string) error {
	switch {
	case strings.ContainsRune(name, '/'):
		return fmt.Errorf("%w: %s must not contain forward slashes", ErrValidation, field)
	case strings.ContainsRune(name, '\\'):
		return fmt.Errorf("%w: %s must not contain backslashes", ErrValidation, field)
	case strings.ContainsRune(name, '\n') || strings.ContainsRune(name, '\r'):
		return fmt.Errorf("%w: %s must not contain newlines", ErrValidation, field)
	case strings.ContainsRune(name, '\x00'):
		return fmt.Errorf("%w: %s must not contain null bytes", ErrValidation, field)
	}
	return nil
}
