package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"investigacion/internal/apierror"
	"investigacion/internal/model"
	"investigacion/internal/repository"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenInvalido       = errors.New("token invalido o expirado")
	ErrUsuarioNoEncontrado = errors.New("usuario del token no encontrado")
	ErrUsuarioInactivo     = errors.New("usuario inactivo")
)

// Claims is the session payload: only the user id travels in the token.
type Claims struct {
	UsuarioID uint `json:"id"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies session tokens.
type TokenService interface {
	Emitir(usuarioID uint) (string, error)
	// Verificar checks signature and expiry, then loads the referenced user.
	// Both steps must pass. Failures are KindAuth errors wrapping one of the
	// Err* sentinels above.
	Verificar(ctx context.Context, token string) (*model.Usuario, error)
}

type tokenService struct {
	repo   repository.UsuarioRepository
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(repo repository.UsuarioRepository, secret string, ttl time.Duration) TokenService {
	return &tokenService{repo: repo, secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (s *tokenService) Emitir(usuarioID uint) (string, error) {
	now := s.now()
	claims := Claims{
		UsuarioID: usuarioID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("firmar token: %w", err)
	}
	return signed, nil
}

func (s *tokenService) Verificar(ctx context.Context, raw string) (*model.Usuario, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil || !token.Valid || claims.UsuarioID == 0 {
		return nil, &apierror.Error{Kind: apierror.KindAuth, Message: "Token inválido o expirado", Err: ErrTokenInvalido}
	}

	user, err := s.repo.FindByID(ctx, claims.UsuarioID)
	if err != nil {
		if esNoEncontrado(err) {
			return nil, &apierror.Error{Kind: apierror.KindAuth, Message: "Usuario no encontrado", Err: ErrUsuarioNoEncontrado}
		}
		return nil, err
	}
	if !user.Estado {
		return nil, &apierror.Error{Kind: apierror.KindAuth, Message: "Usuario inactivo", Err: ErrUsuarioInactivo}
	}
	return user, nil
}
