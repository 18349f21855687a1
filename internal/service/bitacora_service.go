package service

import (
	"context"

	"investigacion/internal/model"
	"investigacion/internal/repository"

	"github.com/rs/zerolog/log"
)

// BitacoraService appends audit entries. A failed write is logged and never
// fails the calling operation.
type BitacoraService interface {
	Registrar(ctx context.Context, usuarioID uint, accion, mensaje, ip string)
}

type bitacoraService struct {
	repo repository.BitacoraRepository
}

func NewBitacoraService(repo repository.BitacoraRepository) BitacoraService {
	return &bitacoraService{repo: repo}
}

func (s *bitacoraService) Registrar(ctx context.Context, usuarioID uint, accion, mensaje, ip string) {
	entry := &model.Bitacora{UsuarioID: usuarioID, Accion: accion, Mensaje: mensaje}
	if ip != "" {
		entry.IP = &ip
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		log.Warn().Err(err).
			Uint("usuario_id", usuarioID).
			Str("accion", accion).
			Msg("bitacora: no se pudo registrar la accion")
	}
}
