package parser

import (
	"errors"
	"fmt"

	"github.com/mantidproject/mantid-sub001/pkg/mantidproj/format"
)

// ErrMalformedHeader indicates the header does not match an accepted product.
// Callers may retry with the "~" backup copy.
var ErrMalformedHeader = format.ErrMalformedHeader

// ErrUnresolvedReference indicates a curve, spectrogram or surface names a
// table, matrix or column that does not exist. It drops the enclosing window
// only.
var ErrUnresolvedReference = errors.New("unresolved reference")

// ErrTruncatedBlock indicates an open tag reached end of stream before its
// matching close tag.
var ErrTruncatedBlock = errors.New("truncated block")

// ErrUnbalancedFolders indicates a </folder> without a matching <folder>.
var ErrUnbalancedFolders = errors.New("unbalanced folder tags")

// ErrCancelled indicates the load was cancelled between entities.
var ErrCancelled = errors.New("load cancelled")

// ErrBusy indicates another load or save is running on the same project.
var ErrBusy = errors.New("project busy")

// EntityError represents a failure confined to one window.
type EntityError struct {
	Window string
	Kind   string // tag of the window block, e.g. "multiLayer"
	Line   int
	Err    error
}

func (e *EntityError) Error() string {
	return fmt.Sprintf("%s %q (line %d): %v", e.Kind, e.Window, e.Line, e.Err)
}

func (e *EntityError) Unwrap() error {
	return e.Err
}

// NewEntityError creates a new EntityError.
func NewEntityError(window, kind string, line int, err error) *EntityError {
	return &EntityError{
		Window: window,
		Kind:   kind,
		Line:   line,
		Err:    err,
	}
}

func unresolved(what, name string) error {
	return fmt.Errorf("%w: %s %q", ErrUnresolvedReference, what, name)
}

func truncated(tag string, line int) error {
	return fmt.Errorf("%w: <%s> opened at line %d", ErrTruncatedBlock, tag, line)
}
