package service

import (
	"context"
	"testing"
	"time"

	"investigacion/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToken_RoundTrip(t *testing.T) {
	repo := newStubUsuarioRepo()
	u := &model.Usuario{Email: "a@b.c", Estado: true}
	require.NoError(t, repo.Create(context.Background(), u))

	svc := NewTokenService(repo, testSecret, time.Hour)
	tok, err := svc.Emitir(u.ID)
	require.NoError(t, err)

	got, err := svc.Verificar(context.Background(), tok)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
}

func TestToken_Expired(t *testing.T) {
	repo := newStubUsuarioRepo()
	u := &model.Usuario{Estado: true}
	require.NoError(t, repo.Create(context.Background(), u))

	svc := NewTokenService(repo, testSecret, time.Hour).(*tokenService)
	issued := time.Now()
	svc.now = func() time.Time { return issued }
	tok, err := svc.Emitir(u.ID)
	require.NoError(t, err)

	svc.now = func() time.Time { return issued.Add(2 * time.Hour) }
	_, err = svc.Verificar(context.Background(), tok)
	assert.ErrorIs(t, err, ErrTokenInvalido)
}

func TestToken_WrongSecret(t *testing.T) {
	repo := newStubUsuarioRepo()
	u := &model.Usuario{Estado: true}
	require.NoError(t, repo.Create(context.Background(), u))

	tok, err := NewTokenService(repo, "otro-secreto", time.Hour).Emitir(u.ID)
	require.NoError(t, err)

	_, err = NewTokenService(repo, testSecret, time.Hour).Verificar(context.Background(), tok)
	assert.ErrorIs(t, err, ErrTokenInvalido)
}

func TestToken_UserGoneOrInactive(t *testing.T) {
	repo := newStubUsuarioRepo()
	svc := NewTokenService(repo, testSecret, time.Hour)

	tok, err := svc.Emitir(42)
	require.NoError(t, err)
	_, err = svc.Verificar(context.Background(), tok)
	assert.ErrorIs(t, err, ErrUsuarioNoEncontrado)

	u := &model.Usuario{Estado: false}
	require.NoError(t, repo.Create(context.Background(), u))
	tok, err = svc.Emitir(u.ID)
	require.NoError(t, err)
	_, err = svc.Verificar(context.Background(), tok)
	assert.ErrorIs(t, err, ErrUsuarioInactivo)
}
