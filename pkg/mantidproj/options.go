// Package mantidproj reads and writes MantidPlot/QtiPlot project files.
package mantidproj

import (
	"strings"

	"github.com/mantidproject/mantid-sub001/pkg/mantidproj/format"
	"github.com/mantidproject/mantid-sub001/pkg/mantidproj/parser"
	"github.com/sirupsen/logrus"
)

// Project file extensions.
const (
	ExtMantid = ".mantid"
	ExtQti    = ".qti"
	ExtGzip   = ".gz"
)

// BackupDecision is the answer to a failed "~" backup.
type BackupDecision int

const (
	// BackupRetry tries to make the backup again.
	BackupRetry BackupDecision = iota
	// BackupIgnore saves without a backup.
	BackupIgnore
	// BackupAbort abandons the save with ErrBackupFailed.
	BackupAbort
)

// Options configures loading and saving.
type Options struct {
	// Product is the header product written on save.
	Product string
	// AcceptedProducts lists the header products accepted on load.
	// If nil, both MantidPlot and QtiPlot are accepted.
	AcceptedProducts []string
	// Log is the session log. If nil, logrus.StandardLogger() is used.
	Log logrus.FieldLogger
	// Host constructs windows during load.
	Host parser.Host
	// Compress gzips the saved file into "<path>.gz".
	// If nil, defaults to true when the path ends in ".gz".
	Compress *bool
	// Backup copies an existing destination to "<path>~" before saving.
	// If nil, defaults to true.
	Backup *bool
	// OnBackupFailure decides what to do when the backup cannot be made.
	// If nil, the save is aborted.
	OnBackupFailure func(err error) BackupDecision
	// MaxBackupRetries bounds BackupRetry answers.
	MaxBackupRetries int
}

// DefaultOptions returns default options.
func DefaultOptions() Options {
	return Options{
		Product:          format.ProductMantidPlot,
		MaxBackupRetries: 3,
	}
}

// ShouldCompress returns whether a save to path is gzipped.
func (o Options) ShouldCompress(path string) bool {
	if o.Compress != nil {
		return *o.Compress
	}
	return strings.HasSuffix(path, ExtGzip)
}

// ShouldBackup returns whether an existing destination is backed up.
func (o Options) ShouldBackup() bool {
	if o.Backup != nil {
		return *o.Backup
	}
	return true
}

func (o Options) logger() logrus.FieldLogger {
	if o.Log != nil {
		return o.Log
	}
	return logrus.StandardLogger()
}

func (o Options) backupDecision(err error) BackupDecision {
	if o.OnBackupFailure == nil {
		return BackupAbort
	}
	return o.OnBackupFailure(err)
}

func (o Options) parserOptions() parser.Options {
	return parser.Options{
		AcceptedProducts: o.AcceptedProducts,
		Log:              o.Log,
		Host:             o.Host,
	}
}
