package mantidproj

import (
	"errors"
	"fmt"

	"github.com/mantidproject/mantid-sub001/pkg/mantidproj/parser"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrUnsupportedExtension indicates the file name has no project extension.
var ErrUnsupportedExtension = errors.New("unsupported project file extension")

// ErrWriteDenied indicates the save destination is not writable. The
// in-memory project is unchanged.
var ErrWriteDenied = errors.New("write denied")

// ErrBackupFailed indicates the "~" backup could not be made and the save
// was aborted.
var ErrBackupFailed = errors.New("backup failed")

// ErrNoBackup indicates OpenBackup found no "~" copy next to the file.
var ErrNoBackup = errors.New("no backup file")

// Load errors, re-exported from package parser.
var (
	ErrMalformedHeader     = parser.ErrMalformedHeader
	ErrUnresolvedReference = parser.ErrUnresolvedReference
	ErrTruncatedBlock      = parser.ErrTruncatedBlock
	ErrUnbalancedFolders   = parser.ErrUnbalancedFolders
	ErrCancelled           = parser.ErrCancelled
	ErrBusy                = parser.ErrBusy
)

// FileError represents a failure on one project file.
type FileError struct {
	Path string
	Op   string // "open", "save", "backup", "compress"
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// NewFileError creates a new FileError.
func NewFileError(path, op string, err error) *FileError {
	return &FileError{
		Path: path,
		Op:   op,
		Err:  err,
	}
}
