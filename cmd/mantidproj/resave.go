package main

import (
	"fmt"
	"strings"

	"github.com/mantidproject/mantid-sub001/pkg/mantidproj"
	"github.com/mantidproject/mantid-sub001/pkg/mantidproj/models"
	"github.com/spf13/cobra"
)

var (
	outputPath string
	compress   bool
	noBackup   bool
)

func newResaveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resave <project>",
		Short: "Rewrite a project in the current format version",
		Args:  cobra.ExactArgs(1),
		RunE:  runResave,
	}
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: overwrite the input)")
	cmd.Flags().BoolVar(&compress, "compress", false, "Gzip the saved project")
	cmd.Flags().BoolVar(&noBackup, "no-backup", false, "Do not copy an existing output file to \"<output>~\"")
	return cmd
}

func runResave(cmd *cobra.Command, args []string) error {
	path := args[0]
	opts := projectOptions(cmd)

	p, res, err := mantidproj.Open(cmd.Context(), path, opts)
	if err != nil {
		return fmt.Errorf("load failed: %w", err)
	}
	if len(res.Dropped) > 0 {
		logger.WithField("windows", res.Dropped).Warn("windows that failed to load are not saved")
	}

	dest := path
	if outputPath != "" {
		dest = outputPath
	}
	return save(cmd, p, dest, opts)
}

// save applies the save flags and config to opts and writes p to dest.
func save(cmd *cobra.Command, p *models.Project, dest string, opts mantidproj.Options) error {
	if cfg.ScriptingLanguage != "" {
		p.Tree.ScriptingLanguage = cfg.ScriptingLanguage
	}
	if cmd.Flags().Changed("compress") {
		opts.Compress = &compress
	}
	if noBackup {
		off := false
		opts.Backup = &off
	}
	if err := mantidproj.Save(p, dest, opts); err != nil {
		return fmt.Errorf("save failed: %w", err)
	}
	if opts.ShouldCompress(dest) && !strings.HasSuffix(dest, mantidproj.ExtGzip) {
		dest += mantidproj.ExtGzip
	}
	fmt.Fprintf(cmd.OutOrStdout(), "saved %s (%d windows)\n", dest, p.Tree.WindowCount())
	return nil
}
