package infra

// pdf.go: report rendering with go-pdf/fpdf.
// A4 portrait document with:
//   - Title and generation timestamp
//   - Summary block (totals and consulted ids)
//   - Works per research line
//   - Works per academic period
//   - Line × period detail
//   - Optional statistics snapshot

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"investigacion/internal/dto"

	"github.com/go-pdf/fpdf"
)

const maxNombreLineaPDF = 35

// RenderReportePDF renders data as an in-memory PDF document.
func RenderReportePDF(data *dto.ReporteData) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AliasNbPages("{nb}")
	// Core fonts are cp1252; translate accents and ñ from UTF-8
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(0, 6, tr(fmt.Sprintf("Página %d/{nb}", pdf.PageNo())), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 15)
	pdf.CellFormat(contentW, 9, tr("REPORTE DE TRABAJOS DE INVESTIGACIÓN"), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, tr("Generado: "+data.Resumen.FechaGeneracion.Format("02/01/2006 15:04")), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// ── Summary ──────────────────────────────────────────────────────────────
	pdf.SetFillColor(235, 240, 250)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW, 7, tr("Resumen"), "1", 1, "L", true, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	resumen := [][2]string{
		{"Total de trabajos", fmt.Sprintf("%d", data.Resumen.TotalTrabajos)},
		{"Líneas consultadas", fmt.Sprintf("%d", data.Resumen.LineasConsultadas)},
		{"Períodos consultados", fmt.Sprintf("%d", data.Resumen.PeriodosConsultados)},
	}
	for _, r := range resumen {
		pdf.CellFormat(contentW*0.6, 6, tr(r[0]), "LB", 0, "L", false, 0, "")
		pdf.CellFormat(contentW*0.4, 6, r[1], "RB", 1, "R", false, 0, "")
	}
	pdf.Ln(5)

	// ── Works per line ───────────────────────────────────────────────────────
	seccion(pdf, tr, contentW, "TRABAJOS POR LÍNEA DE INVESTIGACIÓN")
	encabezado(pdf, tr, []string{"Línea de investigación", "Trabajos"}, []float64{contentW * 0.8, contentW * 0.2})
	for _, l := range data.TrabajosPorLinea {
		fila(pdf, tr, []string{truncar(l.NombreLinea), fmt.Sprintf("%d", l.CantidadTrabajos)},
			[]float64{contentW * 0.8, contentW * 0.2})
	}
	vacio(pdf, tr, contentW, len(data.TrabajosPorLinea))
	pdf.Ln(5)

	// ── Works per period ─────────────────────────────────────────────────────
	seccion(pdf, tr, contentW, "TRABAJOS POR PERÍODO ACADÉMICO")
	encabezado(pdf, tr, []string{"Período", "Trabajos"}, []float64{contentW * 0.8, contentW * 0.2})
	for _, p := range data.TrabajosPorPeriodo {
		fila(pdf, tr, []string{p.Periodo, fmt.Sprintf("%d", p.CantidadTrabajos)},
			[]float64{contentW * 0.8, contentW * 0.2})
	}
	vacio(pdf, tr, contentW, len(data.TrabajosPorPeriodo))
	pdf.Ln(5)

	// ── Line × period ────────────────────────────────────────────────────────
	seccion(pdf, tr, contentW, "DETALLE POR LÍNEA Y PERÍODO")
	widths := []float64{contentW * 0.55, contentW * 0.25, contentW * 0.2}
	encabezado(pdf, tr, []string{"Línea", "Período", "Trabajos"}, widths)
	for _, d := range data.TrabajosPorLineaYPeriodo {
		fila(pdf, tr, []string{truncar(d.NombreLinea), d.Periodo, fmt.Sprintf("%d", d.CantidadTrabajos)}, widths)
	}
	vacio(pdf, tr, contentW, len(data.TrabajosPorLineaYPeriodo))

	// ── Statistics ───────────────────────────────────────────────────────────
	if data.Estadisticas != nil {
		pdf.Ln(5)
		seccion(pdf, tr, contentW, "ESTADÍSTICAS POR LÍNEA")
		widths := []float64{contentW * 0.6, contentW * 0.2, contentW * 0.2}
		encabezado(pdf, tr, []string{"Línea", "Trabajos", "%"}, widths)
		for _, e := range data.Estadisticas.Estadisticas {
			nombre := "Sin nombre"
			if e.LineaDeInvestigacion != nil {
				nombre = e.LineaDeInvestigacion.Nombre
			}
			fila(pdf, tr, []string{truncar(nombre), fmt.Sprintf("%d", e.CantidadTrabajos), e.Porcentaje.StringFixed(2)}, widths)
		}
		vacio(pdf, tr, contentW, len(data.Estadisticas.Estadisticas))
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: render: %w", err)
	}
	return buf.Bytes(), nil
}

func seccion(pdf *fpdf.Fpdf, tr func(string) string, w float64, titulo string) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetTextColor(30, 60, 120)
	pdf.CellFormat(w, 7, tr(titulo), "B", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(1)
}

func encabezado(pdf *fpdf.Fpdf, tr func(string) string, cols []string, widths []float64) {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(220, 225, 235)
	for i, c := range cols {
		align := "L"
		if i == len(cols)-1 {
			align = "R"
		}
		pdf.CellFormat(widths[i], 6, tr(c), "1", 0, align, true, 0, "")
	}
	pdf.Ln(-1)
}

func fila(pdf *fpdf.Fpdf, tr func(string) string, cols []string, widths []float64) {
	pdf.SetFont("Helvetica", "", 9)
	for i, c := range cols {
		align := "L"
		if i == len(cols)-1 {
			align = "R"
		}
		pdf.CellFormat(widths[i], 6, tr(c), "1", 0, align, false, 0, "")
	}
	pdf.Ln(-1)
}

func vacio(pdf *fpdf.Fpdf, tr func(string) string, w float64, n int) {
	if n > 0 {
		return
	}
	pdf.SetFont("Helvetica", "I", 9)
	pdf.CellFormat(w, 6, tr("Sin resultados para los filtros seleccionados"), "1", 1, "C", false, 0, "")
}

// truncar shortens names past maxNombreLineaPDF runes, keeping room for "...".
func truncar(s string) string {
	if utf8.RuneCountInString(s) <= maxNombreLineaPDF {
		return s
	}
	r := []rune(s)
	return string(r[:maxNombreLineaPDF-3]) + "..."
}
