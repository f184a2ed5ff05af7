package mantidproj

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/klauspost/compress/gzip"
	"github.com/mantidproject/mantid-sub001/pkg/mantidproj/models"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleText = `MantidPlot 0.9.5 project file
<scripting-lang>	Python
<windows>	2
<table>
Table1	2	2	01.01.2020 10:00
geometry	0	0	300	200	active
header	x[X]	y[Y]
<data>
0	1	10
1	2	20
</data>
</table>
<folder>	fits	01.01.2020 10:00	01.01.2020 10:00
<open>1</open>
<multiLayer>
Graph1	1	1	1	01.01.2020 10:00
geometry	0	0	400	300
<graph>
curve	Table1_y	0	Table1_x	1	3	0	1	0	0	3	3	0	0	0	0	-1	2	0	1
</graph>
</multiLayer>
</folder>
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func testOptions(t *testing.T) (Options, *test.Hook) {
	t.Helper()
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	opts := DefaultOptions()
	opts.Log = log
	return opts, hook
}

func TestOpen(t *testing.T) {
	opts, _ := testOptions(t)
	path := writeFile(t, "run42.mantid", sampleText)

	p, res, err := Open(context.Background(), path, opts)
	require.NoError(t, err)

	assert.Equal(t, "run42", p.Name)
	assert.Equal(t, "run42", p.Tree.Root().Name)
	assert.False(t, p.Modified)
	assert.Equal(t, 2, res.Loaded)
	assert.Equal(t, "Table1", p.Tree.Root().ActiveWindow)

	w, folder, ok := p.Tree.FindWindow("Graph1")
	require.True(t, ok)
	assert.Equal(t, "/fits", p.Tree.Path(folder))
	assert.Equal(t, models.KindMultiLayer, w.Kind())
}

func TestOpenErrors(t *testing.T) {
	opts, _ := testOptions(t)
	dir := t.TempDir()

	tests := []struct {
		name     string
		path     string
		expected error
	}{
		{"missing file", filepath.Join(dir, "missing.mantid"), ErrFileNotFound},
		{"unsupported extension", writeFile(t, "notes.txt", sampleText), ErrUnsupportedExtension},
		{"malformed header", writeFile(t, "bad.mantid", "not a project\n"), ErrMalformedHeader},
		{"truncated block", writeFile(t, "cut.qti", strings.SplitAfter(sampleText, "</data>\n")[0]), ErrTruncatedBlock},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Open(context.Background(), tt.path, opts)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.expected), "Open(%q) = %v, expected %v", tt.path, err, tt.expected)

			var fe *FileError
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, tt.path, fe.Path)
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	opts, hook := testOptions(t)
	p, _, err := Open(context.Background(), writeFile(t, "in.mantid", sampleText), opts)
	require.NoError(t, err)

	out := filepath.Join(t.TempDir(), "out.mantid")
	p.Modified = true
	require.NoError(t, Save(p, out, opts))
	assert.False(t, p.Modified)
	assert.Equal(t, "project saved", hook.LastEntry().Message)

	reloaded, _, err := Open(context.Background(), out, opts)
	require.NoError(t, err)
	assert.Equal(t, p.Tree.WindowCount(), reloaded.Tree.WindowCount())

	first, err := os.ReadFile(out)
	require.NoError(t, err)
	require.NoError(t, Save(reloaded, out, opts))
	second, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}

func TestSaveMakesBackup(t *testing.T) {
	opts, _ := testOptions(t)
	path := writeFile(t, "project.mantid", sampleText)

	p := models.NewProject("project")
	p.Tree.AddWindow(models.RootFolder, models.NewTable("Other", 1, 1))
	require.NoError(t, Save(p, path, opts))

	backup, err := os.ReadFile(path + BackupSuffix)
	require.NoError(t, err)
	assert.Equal(t, sampleText, string(backup))

	saved, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(saved), "Other")
}

func TestSaveWithoutBackup(t *testing.T) {
	opts, _ := testOptions(t)
	path := writeFile(t, "project.mantid", sampleText)
	opts.Backup = new(bool)

	require.NoError(t, Save(models.NewProject("project"), path, opts))
	_, err := os.Stat(path + BackupSuffix)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestSaveWriteDenied(t *testing.T) {
	opts, _ := testOptions(t)
	p := models.NewProject("denied")
	p.Modified = true

	err := Save(p, filepath.Join(t.TempDir(), "missing", "denied.mantid"), opts)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrWriteDenied), "Save() = %v", err)
	assert.True(t, p.Modified)
}

func TestSaveBusy(t *testing.T) {
	opts, _ := testOptions(t)
	p := models.NewProject("busy")
	require.True(t, p.TryBegin())
	defer p.End()

	err := Save(p, filepath.Join(t.TempDir(), "busy.mantid"), opts)
	assert.True(t, errors.Is(err, ErrBusy), "Save() = %v", err)
}

func TestSaveCompressed(t *testing.T) {
	opts, _ := testOptions(t)
	dir := t.TempDir()
	p, _, err := Open(context.Background(), writeFile(t, "in.mantid", sampleText), opts)
	require.NoError(t, err)

	path := filepath.Join(dir, "packed.mantid.gz")
	require.NoError(t, Save(p, path, opts))

	_, err = os.Stat(filepath.Join(dir, "packed.mantid"))
	assert.True(t, errors.Is(err, os.ErrNotExist), "uncompressed copy left behind")

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	zr, err := gzip.NewReader(bytes.NewReader(raw))
	require.NoError(t, err)
	var text bytes.Buffer
	_, err = text.ReadFrom(zr)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(text.String(), "MantidPlot 0.9.5 project file\n"))

	reloaded, res, err := Open(context.Background(), path, opts)
	require.NoError(t, err)
	assert.Equal(t, "packed", reloaded.Name)
	assert.Equal(t, 2, res.Loaded)
}

func TestSaveCompressFlag(t *testing.T) {
	opts, _ := testOptions(t)
	dir := t.TempDir()
	compress := true
	opts.Compress = &compress

	require.NoError(t, Save(models.NewProject("flag"), filepath.Join(dir, "flag.mantid"), opts))
	_, err := os.Stat(filepath.Join(dir, "flag.mantid.gz"))
	assert.NoError(t, err)
}

func TestSaveBackupFailurePolicy(t *testing.T) {
	tests := []struct {
		name     string
		decision BackupDecision
		fails    bool
		calls    int
	}{
		{"abort", BackupAbort, true, 1},
		{"ignore", BackupIgnore, false, 1},
		{"retry until exhausted", BackupRetry, true, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, _ := testOptions(t)
			opts.MaxBackupRetries = 2
			path := writeFile(t, "project.mantid", sampleText)
			// A directory in the way of the backup copy makes it fail.
			require.NoError(t, os.Mkdir(path+BackupSuffix, 0o755))

			calls := 0
			opts.OnBackupFailure = func(error) BackupDecision {
				calls++
				return tt.decision
			}
			p := models.NewProject("project")
			p.Modified = true
			err := Save(p, path, opts)

			assert.Equal(t, tt.calls, calls)
			saved, readErr := os.ReadFile(path)
			require.NoError(t, readErr)
			if tt.fails {
				assert.True(t, errors.Is(err, ErrBackupFailed), "Save() = %v", err)
				assert.True(t, p.Modified)
				assert.Equal(t, sampleText, string(saved))
			} else {
				assert.NoError(t, err)
				assert.NotEqual(t, sampleText, string(saved))
			}
		})
	}
}

func TestAppend(t *testing.T) {
	opts, hook := testOptions(t)
	p, _, err := Open(context.Background(), writeFile(t, "base.mantid", sampleText), opts)
	require.NoError(t, err)
	hook.Reset()

	res, err := Append(context.Background(), p, writeFile(t, "extra.mantid", sampleText), opts)
	require.NoError(t, err)
	assert.True(t, p.Modified)
	assert.Len(t, res.Renamed, 2)

	root := p.Tree.Root()
	require.Len(t, root.Children, 2)
	appended := root.Children[1]
	assert.Equal(t, "extra", p.Tree.Folder(appended).Name)

	w, folder, ok := p.Tree.FindWindow("Table11")
	require.True(t, ok)
	assert.Equal(t, appended, folder)
	assert.Equal(t, models.KindTable, w.Kind())

	g, folder, ok := p.Tree.FindWindow("Graph11")
	require.True(t, ok)
	assert.Equal(t, "/extra/fits", p.Tree.Path(folder))
	curve := g.(*models.MultiLayer).Layers[0].Curves[0].(*models.DataCurve)
	assert.Equal(t, "Table11_y", curve.YColumn)

	var renames int
	for _, e := range hook.AllEntries() {
		if e.Message == "renamed window on load" {
			renames++
		}
	}
	assert.Equal(t, 2, renames)
}

func TestAppendFailureLeavesProjectUnchanged(t *testing.T) {
	opts, _ := testOptions(t)
	p, _, err := Open(context.Background(), writeFile(t, "base.mantid", sampleText), opts)
	require.NoError(t, err)
	before, err := p.Tree.Clone()
	require.NoError(t, err)

	_, err = Append(context.Background(), p, writeFile(t, "bad.mantid", "garbage\n"), opts)
	assert.True(t, errors.Is(err, ErrMalformedHeader), "Append() = %v", err)
	if diff := cmp.Diff(before, p.Tree, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("failed append changed the tree (-before +after):\n%s", diff)
	}
	assert.False(t, p.Modified)
}

func TestOpenBackup(t *testing.T) {
	opts, _ := testOptions(t)
	path := writeFile(t, "broken.mantid", "\x00\x00garbage\n")

	_, _, err := Open(context.Background(), path, opts)
	require.True(t, errors.Is(err, ErrMalformedHeader), "Open() = %v", err)

	_, _, err = OpenBackup(context.Background(), path, opts)
	assert.True(t, errors.Is(err, ErrNoBackup), "OpenBackup() = %v", err)

	require.NoError(t, os.WriteFile(path+BackupSuffix, []byte(sampleText), 0o644))
	p, res, err := OpenBackup(context.Background(), path, opts)
	require.NoError(t, err)
	assert.Equal(t, "broken", p.Name)
	assert.Equal(t, 2, res.Loaded)
}

func TestProjectName(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"/data/run42.mantid", "run42"},
		{"/data/run42.mantid.gz", "run42"},
		{"old.qti", "old"},
		{"dir/with.dots.mantid", "with.dots"},
	}

	for _, tt := range tests {
		if result := ProjectName(tt.path); result != tt.expected {
			t.Errorf("ProjectName(%q) = %q, expected %q", tt.path, result, tt.expected)
		}
	}
}

func TestSaveCompressedKeepsPlainSibling(t *testing.T) {
	opts, _ := testOptions(t)
	dir := t.TempDir()
	plain := filepath.Join(dir, "x.mantid")
	require.NoError(t, os.WriteFile(plain, []byte("precious user data\n"), 0o644))

	p, _, err := Open(context.Background(), writeFile(t, "in.mantid", sampleText), opts)
	require.NoError(t, err)
	require.NoError(t, Save(p, plain+ExtGzip, opts))

	kept, err := os.ReadFile(plain)
	require.NoError(t, err)
	assert.Equal(t, "precious user data\n", string(kept))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{"x.mantid", "x.mantid.gz"}, names)

	_, res, err := Open(context.Background(), plain+ExtGzip, opts)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Loaded)
}

func TestAppendBusy(t *testing.T) {
	opts, _ := testOptions(t)
	p, _, err := Open(context.Background(), writeFile(t, "base.mantid", sampleText), opts)
	require.NoError(t, err)
	before, err := p.Tree.Clone()
	require.NoError(t, err)
	calls := 0
	p.OnTreeChange(func() { calls++ })

	require.True(t, p.TryBegin())
	_, err = Append(context.Background(), p, writeFile(t, "extra.mantid", sampleText), opts)
	p.End()

	assert.True(t, errors.Is(err, ErrBusy), "Append() = %v", err)
	if diff := cmp.Diff(before, p.Tree, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("busy append changed the tree (-before +after):\n%s", diff)
	}
	assert.Equal(t, 0, calls)
	assert.False(t, p.Modified)
}

func TestAppendTruncatedRemovesFolder(t *testing.T) {
	opts, _ := testOptions(t)
	p, _, err := Open(context.Background(), writeFile(t, "base.mantid", sampleText), opts)
	require.NoError(t, err)
	folders := len(p.Tree.Folders)

	cut := sampleText[:strings.Index(sampleText, "</data>")]
	_, err = Append(context.Background(), p, writeFile(t, "cut.mantid", cut), opts)
	assert.True(t, errors.Is(err, ErrTruncatedBlock), "Append() = %v", err)
	assert.Len(t, p.Tree.Folders, folders)
	assert.Len(t, p.Tree.Root().Children, 1)
	assert.False(t, p.Modified)
}
