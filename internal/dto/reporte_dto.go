package dto

import "time"

const (
	FormatoPDF  = "pdf"
	FormatoXLSX = "xlsx"
	FormatoJSON = "json"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type ReporteRequest struct {
	LineasInvestigacion []uint               `json:"lineasInvestigacion" validate:"required,min=1,max=500,dive,gt=0"`
	PeriodosAcademicos  []uint               `json:"periodosAcademicos"  validate:"required,min=1,max=500,dive,gt=0"`
	Configuracion       ReporteConfiguracion `json:"configuracion"`
}

type ReporteConfiguracion struct {
	// Formato defaults to pdf; unknown values return raw data with a warning
	Formato             string `json:"formato"`
	IncluirEstadisticas bool   `json:"incluirEstadisticas"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ReporteResumen struct {
	TotalTrabajos       int64     `json:"total_trabajos"`
	LineasConsultadas   int       `json:"lineas_consultadas"`
	PeriodosConsultados int       `json:"periodos_consultados"`
	FechaGeneracion     time.Time `json:"fecha_generacion"`
}

type TrabajosPorLinea struct {
	LineaDeInvestigacionID uint   `json:"lineaDeInvestigacionId"`
	CantidadTrabajos       int64  `json:"cantidadTrabajos"`
	NombreLinea            string `json:"nombreLinea"`
}

type TrabajosPorPeriodo struct {
	PeriodoAcademicoID uint   `json:"periodoAcademicoId"`
	CantidadTrabajos   int64  `json:"cantidadTrabajos"`
	Periodo            string `json:"periodo"`
}

type TrabajosPorLineaYPeriodo struct {
	LineaDeInvestigacionID uint   `json:"lineaDeInvestigacionId"`
	PeriodoAcademicoID     uint   `json:"periodoAcademicoId"`
	CantidadTrabajos       int64  `json:"cantidadTrabajos"`
	NombreLinea            string `json:"nombreLinea"`
	Periodo                string `json:"periodo"`
}

type ReporteFiltros struct {
	LineasInvestigacion []uint `json:"lineas_investigacion"`
	PeriodosAcademicos  []uint `json:"periodos_academicos"`
}

type ReporteArchivo struct {
	Nombre string `json:"nombre"`
	Mime   string `json:"mime"`
	Base64 string `json:"base64"`
}

type ReporteData struct {
	Resumen                  ReporteResumen             `json:"resumen"`
	TrabajosPorLinea         []TrabajosPorLinea         `json:"trabajos_por_linea"`
	TrabajosPorPeriodo       []TrabajosPorPeriodo       `json:"trabajos_por_periodo"`
	TrabajosPorLineaYPeriodo []TrabajosPorLineaYPeriodo `json:"trabajos_por_linea_y_periodo"`
	FiltrosAplicados         ReporteFiltros             `json:"filtros_aplicados"`
	Configuracion            ReporteConfiguracion       `json:"configuracion"`
	Estadisticas             *EstadisticasResponse      `json:"estadisticas,omitempty"`
	Archivo                  *ReporteArchivo            `json:"archivo,omitempty"`
}
