// Package export renders the asset list as a spreadsheet.
package export

import (
	"bytes"
	"fmt"

	"asset-registry/internal/dto"

	"github.com/xuri/excelize/v2"
)

const (
	SheetName   = "Ativos"
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var headers = []string{
	"ID", "Código", "Nome", "Descrição", "Marca", "Modelo", "Empresa", "Setor",
	"Grupo", "Subgrupo", "Status", "Onde está", "Imagem", "Data de cadastro",
}

var columnWidths = []float64{8, 14, 30, 40, 16, 18, 24, 16, 18, 18, 10, 20, 40, 20}

func cells(r dto.AssetRow) []interface{} {
	date := ""
	if !r.RegistrationDate.IsZero() {
		date = r.RegistrationDate.Format("02/01/2006 15:04")
	}
	return []interface{}{
		r.ID, r.Code, r.Name, r.Description, r.Brand, r.Model, r.Company, r.Sector,
		r.GroupName, r.SubgroupName, r.Status, r.Location, r.ImageURL, date,
	}
}

// AssetsXLSX writes a header row followed by one row per asset.
func AssetsXLSX(rows []dto.AssetRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(SheetName)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("delete default sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	for col, h := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(SheetName, cell, h); err != nil {
			return nil, fmt.Errorf("set header %s: %w", cell, err)
		}
		if err := f.SetCellStyle(SheetName, cell, cell, headerStyle); err != nil {
			return nil, fmt.Errorf("set header style: %w", err)
		}
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(SheetName, name, name, columnWidths[col]); err != nil {
			return nil, fmt.Errorf("set column width: %w", err)
		}
	}

	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		values := cells(r)
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := f.SetPanes(SheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return nil, fmt.Errorf("freeze header: %w", err)
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
