package service

import (
	"investigacion/internal/dto"
	"investigacion/internal/model"
)

// MapUsuario converts a user to its public form, without the password hash.
func MapUsuario(u *model.Usuario) dto.UsuarioResponse {
	return dto.UsuarioResponse{
		ID:        u.ID,
		Name:      u.Name,
		LastName:  u.LastName,
		Email:     u.Email,
		Cedula:    u.Cedula,
		Role:      u.Role,
		Estado:    u.Estado,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func mapLinea(l *model.LineaDeInvestigacion) dto.LineaResponse {
	return dto.LineaResponse{
		ID:        l.ID,
		Nombre:    l.Nombre,
		Estado:    l.Estado,
		UsuarioID: l.UsuarioID,
		CreatedAt: &l.CreatedAt,
		UpdatedAt: &l.UpdatedAt,
	}
}

func mapPeriodo(p *model.PeriodoAcademico) dto.PeriodoResponse {
	return dto.PeriodoResponse{
		ID:        p.ID,
		Periodo:   p.Periodo,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func mapTrabajo(t *model.Trabajo, docURL string) dto.TrabajoResponse {
	r := dto.TrabajoResponse{
		ID:                     t.ID,
		Titulo:                 t.Titulo,
		Autor:                  t.Autor,
		Resumen:                t.Resumen,
		Doc:                    t.Doc,
		DocURL:                 docURL,
		Estado:                 t.Estado,
		LineaDeInvestigacionID: t.LineaDeInvestigacionID,
		PeriodoAcademicoID:     t.PeriodoAcademicoID,
		CreatedAt:              t.CreatedAt,
		UpdatedAt:              t.UpdatedAt,
	}
	if t.LineaDeInvestigacion != nil {
		r.LineaDeInvestigacion = &dto.LineaResumen{ID: t.LineaDeInvestigacion.ID, Nombre: t.LineaDeInvestigacion.Nombre}
	}
	if t.PeriodoAcademico != nil {
		r.PeriodoAcademico = &dto.PeriodoResumen{ID: t.PeriodoAcademico.ID, Periodo: t.PeriodoAcademico.Periodo}
	}
	return r
}
