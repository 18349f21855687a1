package infra

import (
	"bytes"
	"fmt"

	"investigacion/internal/dto"

	"github.com/xuri/excelize/v2"
)

// RenderReporteXLSX renders data as a workbook with one sheet per grouping.
func RenderReporteXLSX(data *dto.ReporteData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	header, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#1E3C78"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("xlsx: style: %w", err)
	}

	sheets := []struct {
		name string
		cols []string
		rows [][]any
	}{
		{
			name: "Resumen",
			cols: []string{"Concepto", "Valor"},
			rows: [][]any{
				{"Total de trabajos", data.Resumen.TotalTrabajos},
				{"Líneas consultadas", data.Resumen.LineasConsultadas},
				{"Períodos consultados", data.Resumen.PeriodosConsultados},
				{"Fecha de generación", data.Resumen.FechaGeneracion.Format("2006-01-02 15:04:05")},
			},
		},
		{name: "Por línea", cols: []string{"ID", "Línea", "Trabajos"}},
		{name: "Por período", cols: []string{"ID", "Período", "Trabajos"}},
		{name: "Línea y período", cols: []string{"Línea", "Período", "Trabajos"}},
	}
	for _, l := range data.TrabajosPorLinea {
		sheets[1].rows = append(sheets[1].rows, []any{l.LineaDeInvestigacionID, l.NombreLinea, l.CantidadTrabajos})
	}
	for _, p := range data.TrabajosPorPeriodo {
		sheets[2].rows = append(sheets[2].rows, []any{p.PeriodoAcademicoID, p.Periodo, p.CantidadTrabajos})
	}
	for _, d := range data.TrabajosPorLineaYPeriodo {
		sheets[3].rows = append(sheets[3].rows, []any{d.NombreLinea, d.Periodo, d.CantidadTrabajos})
	}
	if data.Estadisticas != nil {
		est := struct {
			name string
			cols []string
			rows [][]any
		}{name: "Estadísticas", cols: []string{"Línea", "Trabajos", "Porcentaje"}}
		for _, e := range data.Estadisticas.Estadisticas {
			nombre := "Sin nombre"
			if e.LineaDeInvestigacion != nil {
				nombre = e.LineaDeInvestigacion.Nombre
			}
			pct, _ := e.Porcentaje.Float64()
			est.rows = append(est.rows, []any{nombre, e.CantidadTrabajos, pct})
		}
		sheets = append(sheets, est)
	}

	for i, s := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", s.name); err != nil {
				return nil, fmt.Errorf("xlsx: rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(s.name); err != nil {
			return nil, fmt.Errorf("xlsx: new sheet %q: %w", s.name, err)
		}

		for c, title := range s.cols {
			cell, _ := excelize.CoordinatesToCellName(c+1, 1)
			f.SetCellValue(s.name, cell, title)
		}
		last, _ := excelize.CoordinatesToCellName(len(s.cols), 1)
		f.SetCellStyle(s.name, "A1", last, header)

		for r, row := range s.rows {
			cell, _ := excelize.CoordinatesToCellName(1, r+2)
			if err := f.SetSheetRow(s.name, cell, &row); err != nil {
				return nil, fmt.Errorf("xlsx: write row: %w", err)
			}
		}
		lastCol, _ := excelize.ColumnNumberToName(len(s.cols))
		f.SetColWidth(s.name, "A", lastCol, 22)
	}
	f.SetActiveSheet(0)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("xlsx: write: %w", err)
	}
	return buf.Bytes(), nil
}
