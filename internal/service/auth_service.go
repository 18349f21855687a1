package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"investigacion/internal/apierror"
	"investigacion/internal/dto"
	"investigacion/internal/model"
	"investigacion/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

// RecuperacionSender delivers the password-recovery link. The worker
// dispatcher implements it by enqueueing a mail job.
type RecuperacionSender interface {
	EnqueueRecuperacion(ctx context.Context, email, link string) error
}

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest, ip string) (*dto.SesionResponse, error)
	Register(ctx context.Context, req dto.RegisterRequest, ip string) (*dto.SesionResponse, error)
	// ActualizarUsuario lets SUPER edit anyone and others edit themselves.
	// Only SUPER may change role or estado.
	ActualizarUsuario(ctx context.Context, actor *model.Usuario, req dto.ActualizarUsuarioRequest, ip string) (*dto.UsuarioResponse, error)
	CambiarPassword(ctx context.Context, actor *model.Usuario, req dto.CambiarPasswordRequest, ip string) (*dto.UsuarioResponse, error)
	ListarUsuarios(ctx context.Context) ([]dto.UsuarioResponse, error)
	SolicitarRecuperacion(ctx context.Context, req dto.RecuperacionRequest) error
	ResetPassword(ctx context.Context, req dto.ResetPasswordRequest, ip string) (*dto.UsuarioEnvelope, error)
}

type authService struct {
	repo        repository.UsuarioRepository
	tokens      TokenService
	bitacora    BitacoraService
	mail        RecuperacionSender
	frontendURL string
}

func NewAuthService(
	repo repository.UsuarioRepository,
	tokens TokenService,
	bitacora BitacoraService,
	mail RecuperacionSender,
	frontendURL string,
) AuthService {
	return &authService{repo: repo, tokens: tokens, bitacora: bitacora, mail: mail, frontendURL: frontendURL}
}

// errCredenciales is the single answer for unknown email and wrong password.
var errCredenciales = apierror.Auth("Credenciales inválidas")

func (s *authService) Login(ctx context.Context, req dto.LoginRequest, ip string) (*dto.SesionResponse, error) {
	user, err := s.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if esNoEncontrado(err) {
			return nil, errCredenciales
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, errCredenciales
	}
	if !user.Estado {
		return nil, apierror.Prohibido("El usuario está inactivo")
	}

	token, err := s.tokens.Emitir(user.ID)
	if err != nil {
		return nil, err
	}
	s.bitacora.Registrar(ctx, user.ID, model.AccionLoginSuccess, "Login exitoso", ip)
	return &dto.SesionResponse{Token: token, Usuario: MapUsuario(user)}, nil
}

func (s *authService) Register(ctx context.Context, req dto.RegisterRequest, ip string) (*dto.SesionResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	cedula := strings.TrimSpace(req.Cedula)

	taken, err := s.repo.ExistsEmail(ctx, email, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apierror.Conflicto("El correo electrónico ya está registrado")
	}
	taken, err = s.repo.ExistsCedula(ctx, cedula, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apierror.Conflicto("La cédula ya está registrada")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, err
	}
	user := &model.Usuario{
		Name:     strings.TrimSpace(req.Name),
		LastName: strings.TrimSpace(req.LastName),
		Email:    email,
		Password: string(hash),
		Cedula:   cedula,
		Role:     model.RolEditor,
		Estado:   true,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, traducir(err, "", "El correo electrónico o la cédula ya están registrados")
	}

	token, err := s.tokens.Emitir(user.ID)
	if err != nil {
		return nil, err
	}
	s.bitacora.Registrar(ctx, user.ID, model.AccionRegisterSuccess, "Registro exitoso", ip)
	return &dto.SesionResponse{Token: token, Usuario: MapUsuario(user)}, nil
}

func (s *authService) ActualizarUsuario(ctx context.Context, actor *model.Usuario, req dto.ActualizarUsuarioRequest, ip string) (*dto.UsuarioResponse, error) {
	esSuper := actor.Role == model.RolSuper
	if !esSuper && actor.ID != req.ID {
		return nil, apierror.Prohibido("No tienes permisos para actualizar este usuario")
	}
	if !esSuper && (req.Role != nil || req.Estado != nil) {
		return nil, apierror.Prohibido("Solo un usuario SUPER puede cambiar el rol o el estado")
	}

	existente, err := s.repo.FindByID(ctx, req.ID)
	if err != nil {
		return nil, traducir(err, "Usuario no encontrado", "")
	}

	var patch repository.UsuarioPatch
	var campos []string
	if req.Name != nil {
		v := strings.TrimSpace(*req.Name)
		patch.Name = &v
		campos = append(campos, "name")
	}
	if req.LastName != nil {
		v := strings.TrimSpace(*req.LastName)
		patch.LastName = &v
		campos = append(campos, "lastName")
	}
	if req.Email != nil {
		v := strings.ToLower(strings.TrimSpace(*req.Email))
		if v != existente.Email {
			taken, err := s.repo.ExistsEmail(ctx, v, existente.ID)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, apierror.Conflicto("El correo electrónico ya está registrado por otro usuario")
			}
		}
		patch.Email = &v
		campos = append(campos, "email")
	}
	if req.Cedula != nil {
		v := strings.TrimSpace(*req.Cedula)
		if v != existente.Cedula {
			taken, err := s.repo.ExistsCedula(ctx, v, existente.ID)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, apierror.Conflicto("La cédula ya está registrada por otro usuario")
			}
		}
		patch.Cedula = &v
		campos = append(campos, "cedula")
	}
	if req.Password != nil && *req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcryptCost)
		if err != nil {
			return nil, err
		}
		h := string(hash)
		patch.Password = &h
		campos = append(campos, "password")
	}
	if req.Role != nil {
		patch.Role = req.Role
		campos = append(campos, "role")
	}
	if req.Estado != nil {
		patch.Estado = req.Estado
		campos = append(campos, "estado")
	}

	if patch.Vacio() {
		return nil, apierror.Validacion("Debe proporcionar al menos un campo para actualizar")
	}
	if err := s.repo.Update(ctx, existente.ID, patch); err != nil {
		return nil, traducir(err, "Usuario no encontrado", "El correo electrónico o la cédula ya están registrados")
	}
	actualizado, err := s.repo.FindByID(ctx, existente.ID)
	if err != nil {
		return nil, err
	}

	s.bitacora.Registrar(ctx, actor.ID, model.AccionUserUpdate,
		fmt.Sprintf("Usuario %s actualizado. Campos modificados: %s", actualizado.Email, strings.Join(campos, ", ")), ip)
	resp := MapUsuario(actualizado)
	return &resp, nil
}

func (s *authService) CambiarPassword(ctx context.Context, actor *model.Usuario, req dto.CambiarPasswordRequest, ip string) (*dto.UsuarioResponse, error) {
	user, err := s.setPassword(ctx, req.ID, req.NuevaContrasena)
	if err != nil {
		return nil, err
	}
	s.bitacora.Registrar(ctx, actor.ID, model.AccionCambioPasswordAdmin,
		fmt.Sprintf("Se cambió la contraseña del usuario %s", user.Email), ip)
	resp := MapUsuario(user)
	return &resp, nil
}

func (s *authService) ListarUsuarios(ctx context.Context) ([]dto.UsuarioResponse, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.UsuarioResponse, len(users))
	for i := range users {
		resp[i] = MapUsuario(&users[i])
	}
	return resp, nil
}

func (s *authService) SolicitarRecuperacion(ctx context.Context, req dto.RecuperacionRequest) error {
	user, err := s.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		return traducir(err, "Usuario no encontrado", "")
	}
	token, err := s.tokens.Emitir(user.ID)
	if err != nil {
		return err
	}
	link := s.frontendURL + "?token=" + url.QueryEscape(token)
	if err := s.mail.EnqueueRecuperacion(ctx, user.Email, link); err != nil {
		return apierror.Interno("No se pudo enviar el correo de restablecimiento de contraseña", err)
	}
	return nil
}

func (s *authService) ResetPassword(ctx context.Context, req dto.ResetPasswordRequest, ip string) (*dto.UsuarioEnvelope, error) {
	owner, err := s.tokens.Verificar(ctx, req.Token)
	if err != nil {
		return nil, err
	}
	user, err := s.setPassword(ctx, owner.ID, req.NuevaContrasena)
	if err != nil {
		return nil, err
	}
	token, err := s.tokens.Emitir(user.ID)
	if err != nil {
		return nil, err
	}
	s.bitacora.Registrar(ctx, user.ID, model.AccionCambioPassword,
		fmt.Sprintf("El usuario %s cambió su contraseña", user.Email), ip)
	return &dto.UsuarioEnvelope{Usuario: MapUsuario(user), Token: token}, nil
}

func (s *authService) setPassword(ctx context.Context, id uint, plain string) (*model.Usuario, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, traducir(err, "Usuario no encontrado", "")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcryptCost)
	if err != nil {
		return nil, err
	}
	h := string(hash)
	if err := s.repo.Update(ctx, id, repository.UsuarioPatch{Password: &h}); err != nil {
		return nil, traducir(err, "Usuario no encontrado", "")
	}
	return s.repo.FindByID(ctx, id)
}
