package dto

// BusquedaQuery backs GET /search/main and GET /filters/search.
// Q and Query are aliases for the free-text term.
type BusquedaQuery struct {
	Q                  string `form:"q"                  validate:"max=200"`
	Query              string `form:"query"              validate:"max=200"`
	Titulo             string `form:"titulo"             validate:"max=200"`
	Autor              string `form:"autor"              validate:"max=200"`
	Periodo            string `form:"periodo"            validate:"max=50"`
	LineaInvestigacion string `form:"lineaInvestigacion" validate:"max=255"`
	Estado             string `form:"estado"             validate:"omitempty,oneof=PENDIENTE VALIDADO RECHAZADO"`
	Page               int    `form:"page,default=1"     validate:"min=1"`
	Limit              int    `form:"limit,default=10"   validate:"min=1,max=100"`
	SortBy             string `form:"sortBy"`
	SortOrder          string `form:"sortOrder"`
}

// Termino returns the free-text term, preferring q over query.
func (q BusquedaQuery) Termino() string {
	if q.Q != "" {
		return q.Q
	}
	return q.Query
}

type BusquedaFiltros struct {
	Titulo             string `json:"titulo,omitempty"`
	Autor              string `json:"autor,omitempty"`
	Periodo            string `json:"periodo,omitempty"`
	LineaInvestigacion string `json:"lineaInvestigacion,omitempty"`
	Estado             string `json:"estado,omitempty"`
}

type BusquedaInfo struct {
	SearchTerm   string          `json:"searchTerm"`
	Filters      BusquedaFiltros `json:"filters"`
	ResultsFound int64           `json:"resultsFound"`
	SortBy       string          `json:"sortBy"`
	SortOrder    string          `json:"sortOrder"`
}

type BusquedaResponse struct {
	Trabajos   []TrabajoResponse `json:"trabajos"`
	Pagination Pagination        `json:"pagination"`
	Search     BusquedaInfo      `json:"search"`
}
