package main

import (
	"fmt"

	"github.com/mantidproject/mantid-sub001/pkg/mantidproj"
	"github.com/mantidproject/mantid-sub001/pkg/mantidproj/xlsx"
	"github.com/spf13/cobra"
)

var noCharts bool

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <project> -o <book.xlsx>",
		Short: "Write the tables and matrices of a project to an Excel workbook",
		Args:  cobra.ExactArgs(1),
		RunE:  runExport,
	}
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output workbook path")
	cmd.MarkFlagRequired("output")
	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	p, _, err := mantidproj.Open(cmd.Context(), args[0], projectOptions(cmd))
	if err != nil {
		return fmt.Errorf("load failed: %w", err)
	}
	n, err := xlsx.Export(p.Tree, outputPath)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "exported %d sheets to %s\n", n, outputPath)
	return nil
}

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <book.xlsx> -o <project>",
		Short: "Build a project from the sheets and charts of an Excel workbook",
		Args:  cobra.ExactArgs(1),
		RunE:  runImport,
	}
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output project path")
	cmd.Flags().BoolVar(&noCharts, "no-charts", false, "Import sheet data only")
	cmd.Flags().BoolVar(&compress, "compress", false, "Gzip the saved project")
	cmd.Flags().BoolVar(&noBackup, "no-backup", false, "Do not copy an existing output file to \"<output>~\"")
	cmd.MarkFlagRequired("output")
	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	opts := xlsx.DefaultImportOptions()
	opts.Charts = !noCharts
	opts.Log = logger
	p, err := xlsx.Import(args[0], opts)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}
	return save(cmd, p, outputPath, projectOptions(cmd))
}
