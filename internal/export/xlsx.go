// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"context"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/pdiddy/scholar-digest/pkg/types"
)

const (
	xlsxSuffix = "_papers.xlsx"
	xlsxSheet  = "Publications"
)

// XLSX writes one row per publication to <name>_papers.xlsx.
type XLSX struct {
	Dir string

	// IncludeAbstract adds the full abstract as a last column.
	IncludeAbstract bool
}

// Name implements Exporter.
func (x *XLSX) Name() string { return "xlsx" }

func (x *XLSX) header() []any {
	h := []any{"Scientist Name", "Title", "Publication Date", "Abstract Summary"}
	if x.IncludeAbstract {
		h = append(h, "Abstract")
	}
	return h
}

// Export implements Exporter. The header row is written even when pubs is
// empty.
func (x *XLSX) Export(_ context.Context, scientist string, pubs []types.Publication) (string, error) {
	path, err := outputPath(x.Dir, FileStem(scientist)+xlsxSuffix)
	if err != nil {
		return "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", xlsxSheet); err != nil {
		return "", fmt.Errorf("naming sheet: %w", err)
	}
	header := x.header()
	if err := f.SetSheetRow(xlsxSheet, "A1", &header); err != nil {
		return "", fmt.Errorf("writing header: %w", err)
	}
	if style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		_ = f.SetRowStyle(xlsxSheet, 1, 1, style)
	}

	for i, p := range pubs {
		row := []any{p.Scientist, p.Title, p.Year, p.Summary}
		if x.IncludeAbstract {
			row = append(row, p.Abstract)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return "", fmt.Errorf("row %d: %w", i+2, err)
		}
		if err := f.SetSheetRow(xlsxSheet, cell, &row); err != nil {
			return "", fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	_ = f.SetColWidth(xlsxSheet, "B", "B", 60)
	_ = f.SetColWidth(xlsxSheet, "D", "D", 80)

	err = writeFileAtomic(path, func(w io.Writer) error {
		if err := f.Write(w); err != nil {
			return fmt.Errorf("writing workbook: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return path, nil
}
