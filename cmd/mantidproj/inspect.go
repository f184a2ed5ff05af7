package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
	"github.com/mantidproject/mantid-sub001/pkg/mantidproj"
	"github.com/mantidproject/mantid-sub001/pkg/mantidproj/models"
	"github.com/mantidproject/mantid-sub001/pkg/mantidproj/output"
	"github.com/mantidproject/mantid-sub001/pkg/mantidproj/parser"
	"github.com/spf13/cobra"
)

var (
	asJSON    bool
	pretty    bool
	useBackup bool
)

func newInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <project>",
		Short: "Print the folder tree of a project",
		Args:  cobra.ExactArgs(1),
		RunE:  runInspect,
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Dump the project model as JSON")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	cmd.Flags().BoolVar(&useBackup, "use-backup", false, "Fall back to the \"~\" backup when the header is malformed")
	return cmd
}

func runInspect(cmd *cobra.Command, args []string) error {
	path := args[0]
	opts := projectOptions(cmd)

	source := path
	p, res, err := mantidproj.Open(cmd.Context(), path, opts)
	if err != nil && useBackup && errors.Is(err, mantidproj.ErrMalformedHeader) {
		logger.WithError(err).Warn("header is malformed, trying backup copy")
		source = path + mantidproj.BackupSuffix
		p, res, err = mantidproj.OpenBackup(cmd.Context(), path, opts)
	}
	if err != nil {
		return fmt.Errorf("load failed: %w", err)
	}

	out := cmd.OutOrStdout()
	if asJSON {
		data, err := output.ToJSON(p.Tree, pretty)
		if err != nil {
			return fmt.Errorf("serialization failed: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}
	return printSummary(out, source, p, res)
}

func printSummary(w io.Writer, path string, p *models.Project, res *parser.Result) error {
	fi, err := os.Stat(path)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%s\n", res.Header)
	fmt.Fprintf(w, "file:      %s (%s, modified %s)\n", path, humanize.Bytes(uint64(fi.Size())), humanize.Time(fi.ModTime()))
	fmt.Fprintf(w, "scripting: %s\n", p.Tree.ScriptingLanguage)
	fmt.Fprintf(w, "windows:   %s of %s loaded\n", humanize.Comma(int64(res.Loaded)), humanize.Comma(int64(res.DeclaredWindows)))
	for _, name := range res.Dropped {
		fmt.Fprintf(w, "dropped:   %s\n", name)
	}
	for _, r := range res.Renamed {
		fmt.Fprintf(w, "renamed:   %s -> %s\n", r.Requested, r.Assigned)
	}
	fmt.Fprintln(w)

	tree := p.Tree
	for _, id := range tree.Walk(models.RootFolder) {
		f := tree.Folder(id)
		indent := strings.Repeat("  ", tree.Depth(id))
		marker := ""
		if id == tree.Current {
			marker = " *"
		}
		fmt.Fprintf(w, "%s%s/%s", indent, f.Name, marker)
		if f.Birth != "" {
			fmt.Fprintf(w, "  (created %s)", f.Birth)
		}
		fmt.Fprintln(w)
		for _, win := range f.Windows {
			fmt.Fprintf(w, "%s  %-24s %-15s %s\n", indent, win.Base().Name, win.Kind(), describe(win))
		}
	}
	return nil
}

// describe summarizes the content of a window on one line.
func describe(w models.Window) string {
	switch v := w.(type) {
	case *models.Table:
		return fmt.Sprintf("%d rows x %d columns", v.Rows(), len(v.Columns))
	case *models.Matrix:
		return fmt.Sprintf("%d rows x %d columns", v.Rows(), v.Cols())
	case *models.Note:
		return humanize.Bytes(uint64(len(v.Text)))
	case *models.MultiLayer:
		curves := 0
		for _, l := range v.Layers {
			curves += len(l.Curves)
		}
		return fmt.Sprintf("%s, %s",
			english.Plural(len(v.Layers), "layer", ""),
			english.Plural(curves, "curve", ""))
	case *models.SurfacePlot:
		return fmt.Sprintf("%s %s", v.Source, v.Data)
	case *models.ExternalMatrix:
		return "workspace " + v.Workspace
	case *models.InstrumentView:
		return "workspace " + v.Workspace
	}
	return ""
}
