package mantidproj

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mantidproject/mantid-sub001/pkg/mantidproj/models"
	"github.com/mantidproject/mantid-sub001/pkg/mantidproj/output"
	"github.com/mantidproject/mantid-sub001/pkg/mantidproj/parser"
	"github.com/sirupsen/logrus"
)

// BackupSuffix is appended to a project path to name its backup copy.
const BackupSuffix = "~"

// TimestampLayout is the layout of folder birth and modification stamps.
const TimestampLayout = "02.01.2006 15:04"

// Open loads the project file at path into a new project.
func Open(ctx context.Context, path string, opts Options) (*models.Project, *parser.Result, error) {
	if err := checkPath(path); err != nil {
		return nil, nil, err
	}
	p := models.NewProject(ProjectName(path))
	res, err := load(ctx, path, p, opts.parserOptions())
	if err != nil {
		return nil, nil, err
	}
	p.Modified = false
	return p, res, nil
}

// OpenBackup loads the "~" backup of path. It is the recovery path after
// Open fails with ErrMalformedHeader.
func OpenBackup(ctx context.Context, path string, opts Options) (*models.Project, *parser.Result, error) {
	backup := path + BackupSuffix
	if _, err := os.Stat(backup); err != nil {
		return nil, nil, NewFileError(backup, "open", ErrNoBackup)
	}
	opts.logger().WithField("path", backup).Info("opening backup copy")
	p := models.NewProject(ProjectName(path))
	res, err := load(ctx, backup, p, opts.parserOptions())
	if err != nil {
		return nil, nil, err
	}
	return p, res, nil
}

// Append loads the project file at path into p, under a new folder of the
// root named after the file. Names colliding with existing windows are
// renamed. On failure p is unchanged.
func Append(ctx context.Context, p *models.Project, path string, opts Options) (*parser.Result, error) {
	if err := checkPath(path); err != nil {
		return nil, err
	}
	now := time.Now().Format(TimestampLayout)
	po := opts.parserOptions()
	po.NewFolder = &parser.FolderSpec{Name: ProjectName(path), Birth: now, Modified: now}
	res, err := load(ctx, path, p, po)
	if err != nil {
		return nil, err
	}
	p.Modified = true
	return res, nil
}

func load(ctx context.Context, path string, p *models.Project, po parser.Options) (*parser.Result, error) {
	r, err := openText(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, NewFileError(path, "open", ErrFileNotFound)
		}
		return nil, NewFileError(path, "open", err)
	}
	defer r.Close()

	res, err := parser.Load(ctx, r, p, po)
	if err != nil {
		return nil, NewFileError(path, "open", err)
	}
	return res, nil
}

// Save writes p to path in the current format version. An existing file is
// first copied to "<path>~". With compression the text is written to a
// temporary file next to the destination, flushed and then gzipped into
// "<path>.gz"; no other file is touched. The project is left unchanged on
// failure; on success its Modified flag is cleared.
func Save(p *models.Project, path string, opts Options) error {
	if !p.TryBegin() {
		return ErrBusy
	}
	defer p.End()

	log := opts.logger()
	compress := opts.ShouldCompress(path)
	dest := path
	if compress {
		dest = strings.TrimSuffix(path, ExtGzip) + ExtGzip
	}

	var buf bytes.Buffer
	if err := output.Write(&buf, p.Tree, output.WriteOptions{Product: opts.Product}); err != nil {
		return NewFileError(dest, "save", err)
	}

	if opts.ShouldBackup() {
		if err := backup(dest, opts, log); err != nil {
			return err
		}
	}

	if compress {
		if err := saveCompressed(dest, buf.Bytes(), log); err != nil {
			return err
		}
	} else if err := os.WriteFile(dest, buf.Bytes(), 0o644); err != nil {
		return NewFileError(dest, "save", fmt.Errorf("%w: %v", ErrWriteDenied, err))
	}

	log.WithFields(logrus.Fields{
		"path":    dest,
		"windows": p.Tree.WindowCount(),
	}).Info("project saved")
	p.Modified = false
	return nil
}

// saveCompressed writes text to a temporary file in the directory of dest,
// then gzips it into dest and removes the temporary file.
func saveCompressed(dest string, text []byte, log logrus.FieldLogger) error {
	tmp, err := os.CreateTemp(filepath.Dir(dest), "."+filepath.Base(dest)+".*")
	if err != nil {
		return NewFileError(dest, "save", fmt.Errorf("%w: %v", ErrWriteDenied, err))
	}
	plain := tmp.Name()
	defer func() {
		if err := os.Remove(plain); err != nil && !errors.Is(err, os.ErrNotExist) {
			log.WithError(err).WithField("path", plain).Warn("could not remove uncompressed copy")
		}
	}()

	_, err = tmp.Write(text)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return NewFileError(plain, "save", fmt.Errorf("%w: %v", ErrWriteDenied, err))
	}
	if err := compressFile(plain, dest); err != nil {
		return NewFileError(dest, "compress", err)
	}
	return nil
}

// backup copies an existing dest to dest+"~", consulting the backup policy
// when the copy fails.
func backup(dest string, opts Options, log logrus.FieldLogger) error {
	if _, err := os.Stat(dest); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	for attempt := 0; ; attempt++ {
		err := copyFile(dest, dest+BackupSuffix)
		if err == nil {
			return nil
		}
		log.WithError(err).WithField("path", dest).Warn("cannot make backup copy")
		switch opts.backupDecision(err) {
		case BackupIgnore:
			return nil
		case BackupRetry:
			if attempt < opts.MaxBackupRetries {
				continue
			}
		}
		return NewFileError(dest, "backup", fmt.Errorf("%w: %v", ErrBackupFailed, err))
	}
}

// checkPath validates the extension of a project path.
func checkPath(path string) error {
	name := strings.TrimSuffix(strings.TrimSuffix(path, BackupSuffix), ExtGzip)
	switch filepath.Ext(name) {
	case ExtMantid, ExtQti:
		return nil
	}
	return NewFileError(path, "open", ErrUnsupportedExtension)
}

// ProjectName returns the project name for path: the file name without
// its project and compression extensions.
func ProjectName(path string) string {
	name := strings.TrimSuffix(filepath.Base(path), ExtGzip)
	return strings.TrimSuffix(name, filepath.Ext(name))
}
