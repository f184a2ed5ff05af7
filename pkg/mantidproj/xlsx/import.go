package xlsx

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mantidproject/mantid-sub001/pkg/mantidproj/models"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

// ImportOptions configures Import.
type ImportOptions struct {
	// Params controls data-region detection on sheets without a print area.
	Params TableDetectionParams
	// Charts also imports embedded charts as plot windows.
	Charts bool
	// Log receives per-sheet warnings. If nil, logrus.StandardLogger() is used.
	Log logrus.FieldLogger
}

// DefaultImportOptions returns default import options.
func DefaultImportOptions() ImportOptions {
	return ImportOptions{Params: DefaultTableParams(), Charts: true}
}

// Import builds a project from an Excel workbook: one table per sheet with
// data and, optionally, one plot per embedded chart whose series refer to
// imported cells. All windows are placed in the root folder.
func Import(path string, opts ImportOptions) (*models.Project, error) {
	log := opts.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	p := models.NewProject(name)
	taken := func(s string) bool { return p.Tree.HasWindow(s) }

	areas := printAreas(f)
	tables := make(map[string]*sheetTable)
	for _, sheetName := range f.GetSheetList() {
		var area *cellRange
		if a, ok := areas[sheetName]; ok {
			area = &a
		}
		st, err := readSheet(f, sheetName, area, opts.Params)
		if err != nil {
			log.WithError(err).WithField("sheet", sheetName).Warn("skipping sheet")
			continue
		}
		if st == nil {
			continue
		}
		st.table.Name = models.UniqueName(st.table.Name, taken)
		p.AddWindow(models.RootFolder, st.table)
		tables[sheetName] = st
	}

	if opts.Charts {
		charts, err := readCharts(path)
		if err != nil {
			return nil, fmt.Errorf("read charts: %w", err)
		}
		for _, sheetName := range f.GetSheetList() {
			for _, c := range charts[sheetName] {
				ml := c.toMultiLayer(tables)
				if ml == nil {
					log.WithField("chart", c.name).Debug("chart has no series bound to imported cells")
					continue
				}
				ml.Name = models.UniqueName(ml.Name, taken)
				p.AddWindow(models.RootFolder, ml)
			}
		}
	}
	return p, nil
}
