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

type LineaService interface {
	Crear(ctx context.Context, actor *model.Usuario, req dto.CrearLineaRequest, ip string) (*dto.LineaResponse, error)
	Actualizar(ctx context.Context, actor *model.Usuario, req dto.ActualizarLineaRequest, ip string) (*dto.LineaResponse, error)
	// Listar returns the compact {id, nombre, estado} form.
	Listar(ctx context.Context) ([]dto.LineaResponse, error)
}

type lineaService struct {
	repo     repository.LineaRepository
	bitacora BitacoraService
}

func NewLineaService(repo repository.LineaRepository, bitacora BitacoraService) LineaService {
	return &lineaService{repo: repo, bitacora: bitacora}
}

const msgLineaDuplicada = "Ya existe una línea de investigación con ese nombre"

func (s *lineaService) Crear(ctx context.Context, actor *model.Usuario, req dto.CrearLineaRequest, ip string) (*dto.LineaResponse, error) {
	nombre := strings.TrimSpace(req.Nombre)
	if nombre == "" {
		return nil, apierror.Validacion("El nombre es requerido")
	}
	taken, err := s.repo.ExistsNombre(ctx, nombre, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apierror.Conflicto(msgLineaDuplicada)
	}

	l := &model.LineaDeInvestigacion{Nombre: nombre, Estado: true, UsuarioID: actor.ID}
	if err := s.repo.Create(ctx, l); err != nil {
		return nil, traducir(err, "", msgLineaDuplicada)
	}
	s.bitacora.Registrar(ctx, actor.ID, model.AccionCrearLinea,
		fmt.Sprintf("El usuario %s creó la línea de investigación %q", actor.Email, nombre), ip)
	resp := mapLinea(l)
	return &resp, nil
}

func (s *lineaService) Actualizar(ctx context.Context, actor *model.Usuario, req dto.ActualizarLineaRequest, ip string) (*dto.LineaResponse, error) {
	existente, err := s.repo.FindByID(ctx, req.ID)
	if err != nil {
		return nil, traducir(err, "Línea de investigación no encontrada", "")
	}

	var patch repository.LineaPatch
	if req.Nombre != nil {
		nombre := strings.TrimSpace(*req.Nombre)
		if nombre != existente.Nombre {
			taken, err := s.repo.ExistsNombre(ctx, nombre, existente.ID)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, apierror.Conflicto(msgLineaDuplicada)
			}
			patch.Nombre = &nombre
		}
	}
	if req.Estado != nil && *req.Estado != existente.Estado {
		patch.Estado = req.Estado
	}
	if patch.Nombre == nil && patch.Estado == nil {
		return nil, apierror.Validacion("No se proporcionaron cambios para actualizar")
	}

	if err := s.repo.Update(ctx, existente.ID, patch); err != nil {
		return nil, traducir(err, "Línea de investigación no encontrada", msgLineaDuplicada)
	}
	actualizada, err := s.repo.FindByID(ctx, existente.ID)
	if err != nil {
		return nil, err
	}
	s.bitacora.Registrar(ctx, actor.ID, model.AccionActualizarLinea,
		fmt.Sprintf("El usuario %s actualizó la línea de investigación %q (ID: %d)", actor.Email, existente.Nombre, existente.ID), ip)
	resp := mapLinea(actualizada)
	return &resp, nil
}

func (s *lineaService) Listar(ctx context.Context) ([]dto.LineaResponse, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.LineaResponse, len(list))
	for i, l := range list {
		resp[i] = dto.LineaResponse{ID: l.ID, Nombre: l.Nombre, Estado: l.Estado}
	}
	return resp, nil
}
