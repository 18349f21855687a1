package service

import (
	"context"
	"fmt"
	"strings"

	"investigacion/internal/apierror"
	"investigacion/internal/dto"
	"investigacion/internal/model"
	"investigacion/internal/repository"
)

type PeriodoService interface {
	Crear(ctx context.Context, actor *model.Usuario, req dto.CrearPeriodoRequest, ip string) (*dto.PeriodoEnvelope, error)
	Actualizar(ctx context.Context, actor *model.Usuario, req dto.ActualizarPeriodoRequest, ip string) (*dto.PeriodoEnvelope, error)
	Listar(ctx context.Context) (*dto.ListaPeriodosResponse, error)
}

type periodoService struct {
	repo     repository.PeriodoRepository
	bitacora BitacoraService
}

func NewPeriodoService(repo repository.PeriodoRepository, bitacora BitacoraService) PeriodoService {
	return &periodoService{repo: repo, bitacora: bitacora}
}

const msgPeriodoDuplicado = "Ya existe un periodo académico con ese nombre"

func (s *periodoService) Crear(ctx context.Context, actor *model.Usuario, req dto.CrearPeriodoRequest, ip string) (*dto.PeriodoEnvelope, error) {
	periodo := strings.TrimSpace(req.Periodo)
	if periodo == "" {
		return nil, apierror.Validacion("El periodo es requerido")
	}
	taken, err := s.repo.ExistsPeriodo(ctx, periodo, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apierror.Conflicto(msgPeriodoDuplicado)
	}

	p := &model.PeriodoAcademico{Periodo: periodo}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, traducir(err, "", msgPeriodoDuplicado)
	}
	s.bitacora.Registrar(ctx, actor.ID, model.AccionCrearPeriodo,
		fmt.Sprintf("El usuario %s creó el periodo académico %q", actor.Email, periodo), ip)
	return &dto.PeriodoEnvelope{PeriodoAcademico: mapPeriodo(p)}, nil
}

func (s *periodoService) Actualizar(ctx context.Context, actor *model.Usuario, req dto.ActualizarPeriodoRequest, ip string) (*dto.PeriodoEnvelope, error) {
	existente, err := s.repo.FindByID(ctx, req.ID)
	if err != nil {
		return nil, traducir(err, "Periodo académico no encontrado", "")
	}
	periodo := strings.TrimSpace(req.Periodo)
	if periodo == "" {
		return nil, apierror.Validacion("El periodo es requerido")
	}
	if periodo != existente.Periodo {
		taken, err := s.repo.ExistsPeriodo(ctx, periodo, existente.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apierror.Conflicto(msgPeriodoDuplicado)
		}
		if err := s.repo.Update(ctx, existente.ID, periodo); err != nil {
			return nil, traducir(err, "Periodo académico no encontrado", msgPeriodoDuplicado)
		}
	}

	actualizado, err := s.repo.FindByID(ctx, existente.ID)
	if err != nil {
		return nil, err
	}
	s.bitacora.Registrar(ctx, actor.ID, model.AccionActualizarPeriodo,
		fmt.Sprintf("El usuario %s actualizó el periodo académico (ID: %d)", actor.Email, existente.ID), ip)
	return &dto.PeriodoEnvelope{PeriodoAcademico: mapPeriodo(actualizado)}, nil
}

func (s *periodoService) Listar(ctx context.Context) (*dto.ListaPeriodosResponse, error) {
	rows, err := s.repo.ListConConteo(ctx)
	if err != nil {
		return nil, err
	}
	periodos := make([]dto.PeriodoResponse, len(rows))
	for i, r := range rows {
		periodos[i] = dto.PeriodoResponse{
			ID:        r.ID,
			Periodo:   r.Periodo,
			CreatedAt: r.CreatedAt,
			UpdatedAt: r.UpdatedAt,
			Count:     &dto.PeriodoCount{Trabajos: r.Trabajos},
		}
	}
	return &dto.ListaPeriodosResponse{Periodos: periodos, Total: len(periodos)}, nil
}
