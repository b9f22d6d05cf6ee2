package export

import (
	"fmt"
	"io"
	"strings"

	"energy-insights/internal/model"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// DefaultSheet is the sheet name used when none is given.
const DefaultSheet = "Report"

// WriteXLSX writes the same table as WriteCSV into a single-sheet workbook.
// Numeric cells hold rounded numbers with a matching display format; absent
// values are left blank.
func WriteXLSX(w io.Writer, sheet string, rows []model.Record, columns []Column) error {
	if err := DefaultOptions().validate(columns); err != nil {
		return err
	}
	if sheet == "" {
		sheet = DefaultSheet
	}

	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	numStyles := map[int]int{}
	for _, c := range columns {
		if c.Kind != Number {
			continue
		}
		if _, ok := numStyles[c.Decimals]; ok {
			continue
		}
		format := numberFormat(c.Decimals)
		id, err := f.NewStyle(&excelize.Style{CustomNumFmt: &format})
		if err != nil {
			return fmt.Errorf("failed to create number style: %w", err)
		}
		numStyles[c.Decimals] = id
	}

	for i, c := range columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, c.Header); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, cell, cell, headerStyle); err != nil {
			return err
		}
	}

	for r, row := range rows {
		for i, c := range columns {
			cell, err := excelize.CoordinatesToCellName(i+1, r+2)
			if err != nil {
				return err
			}
			if c.Kind == Number {
				v, ok := numeric(row[c.Key])
				if !ok {
					continue
				}
				rounded, _ := decimal.NewFromFloat(v).Round(int32(max(c.Decimals, 0))).Float64()
				if err := f.SetCellFloat(sheet, cell, rounded, max(c.Decimals, 0), 64); err != nil {
					return err
				}
				if err := f.SetCellStyle(sheet, cell, cell, numStyles[c.Decimals]); err != nil {
					return err
				}
				continue
			}
			if s, ok := textual(row[c.Key]); ok {
				if err := f.SetCellStr(sheet, cell, s); err != nil {
					return err
				}
			}
		}
	}

	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("failed to freeze header: %w", err)
	}

	return f.Write(w)
}

func numberFormat(decimals int) string {
	if decimals <= 0 {
		return "0"
	}
	return "0." + strings.Repeat("0", decimals)
}
