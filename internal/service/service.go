// Package service owns the authentication lifecycle and the authoritative
// in-memory current-profile signal.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/evaluapro/desempeno-cli/internal/clients/auth"
	"github.com/evaluapro/desempeno-cli/internal/entity"
)

type SessionStore interface {
	SaveToken(token, kind string) error
	Token() string
	TokenKind() string
	HasToken() bool
	SaveProfile(p entity.Profile) error
	Profile() (entity.Profile, bool)
	Clear() error
}

type AuthAPI interface {
	Login(ctx context.Context, correo, password string) (*auth.LoginResponse, error)
	Logout(ctx context.Context) error
	Me(ctx context.Context) (*auth.CurrentUserResponse, error)
	Register(ctx context.Context, req auth.RegisterRequest) error
	ChangePassword(ctx context.Context, currentPassword, newPassword string) error
	RequestPasswordReset(ctx context.Context, email string) error
	VerifyResetToken(ctx context.Context, email, codigo string) (bool, error)
	ResetPassword(ctx context.Context, email, codigo, newPassword string) error
	ConfirmarCorreo(ctx context.Context, token string) error
	ReenviarConfirmacion(ctx context.Context, email string) error
}

type Service struct {
	store SessionStore
	api   AuthAPI

	mu   sync.Mutex
	subs []func(*entity.Profile)
}

func NewService(store SessionStore, api AuthAPI) *Service {
	return &Service{store: store, api: api}
}

// Subscribe registers a listener for profile changes; it fires with nil
// when the session ends.
func (s *Service) Subscribe(fn func(*entity.Profile)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.subs = append(s.subs, fn)
}

func (s *Service) publish(p *entity.Profile) {
	s.mu.Lock()
	subs := make([]func(*entity.Profile), len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(p)
	}
}

// Login exchanges credentials for a token, persists it with the derived
// profile, and publishes the profile. Failures propagate unchanged: no
// retry, no fallback role.
func (s *Service) Login(ctx context.Context, correo, password string) (entity.Profile, error) {
	resp, err := s.api.Login(ctx, correo, password)
	if err != nil {
		return entity.Profile{}, err
	}

	if err := s.store.SaveToken(resp.AccessToken, resp.TokenType); err != nil {
		return entity.Profile{}, fmt.Errorf("persist token: %w", err)
	}

	email := resp.Correo
	if email == "" {
		email = correo
	}

	profile := entity.Profile{
		UserID:   resp.IDUsuario,
		Nombre:   resp.Nombre,
		Apellido: resp.Apellido,
		Email:    email,
		Rol:      deriveRoleName(resp.Rol, resp.NombreRol, resp.IDRol),
		RolID:    resp.IDRol,
	}

	if err := s.store.SaveProfile(profile); err != nil {
		return entity.Profile{}, fmt.Errorf("persist profile: %w", err)
	}

	s.publish(&profile)

	return profile, nil
}

// Logout tells the backend and clears the local session either way, so a
// dead backend never traps the user in an authenticated client.
func (s *Service) Logout(ctx context.Context) error {
	apiErr := s.api.Logout(ctx)

	if err := s.store.Clear(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}

	s.publish(nil)

	if apiErr != nil {
		slog.WarnContext(ctx, "backend logout failed, local session cleared", "error", apiErr)
		return fmt.Errorf("backend logout: %w", apiErr)
	}

	return nil
}

func (s *Service) IsAuthenticated() bool {
	return s.store.HasToken()
}

func (s *Service) CurrentProfile() (entity.Profile, bool) {
	return s.store.Profile()
}

func (s *Service) CurrentRoleName() string {
	p, ok := s.store.Profile()
	if !ok {
		return ""
	}

	return p.Rol
}

func (s *Service) HasRole(role string) bool {
	return s.CurrentRoleName() == role
}

func (s *Service) HasAnyRole(roles []string) bool {
	current := s.CurrentRoleName()
	if current == "" {
		return false
	}

	for _, role := range roles {
		if role == current {
			return true
		}
	}

	return false
}

// RoleHome resolves the landing route for the cached role; unknown or
// absent roles land on the Colaborador dashboard.
func (s *Service) RoleHome() string {
	return entity.HomeRoute(s.CurrentRoleName())
}

// RefreshProfile replaces the cached profile with the backend's current
// view of the user.
func (s *Service) RefreshProfile(ctx context.Context) (entity.Profile, error) {
	resp, err := s.api.Me(ctx)
	if err != nil {
		return entity.Profile{}, err
	}

	nombreRol := resp.NombreRol
	if resp.Rol != nil && resp.Rol.NombreRol != "" {
		nombreRol = resp.Rol.NombreRol
	}

	email := resp.Correo
	if email == "" {
		email = resp.Email
	}

	profile := entity.Profile{
		UserID:   resp.IDUsuario,
		Nombre:   resp.Nombre,
		Apellido: resp.Apellido,
		Email:    email,
		Rol:      deriveRoleName("", nombreRol, resp.IDRol),
		RolID:    resp.IDRol,
		Area:     resp.Area,
		Cargo:    resp.Cargo,
	}

	if err := s.store.SaveProfile(profile); err != nil {
		return entity.Profile{}, fmt.Errorf("persist profile: %w", err)
	}

	s.publish(&profile)

	return profile, nil
}

func (s *Service) Register(ctx context.Context, req auth.RegisterRequest) error {
	return s.api.Register(ctx, req)
}

func (s *Service) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	return s.api.ChangePassword(ctx, currentPassword, newPassword)
}

// The reset sub-protocol is stateless here; the calling form holds the
// code across the three steps.

func (s *Service) RequestPasswordReset(ctx context.Context, email string) error {
	return s.api.RequestPasswordReset(ctx, email)
}

func (s *Service) VerifyResetCode(ctx context.Context, email, codigo string) error {
	valid, err := s.api.VerifyResetToken(ctx, email, codigo)
	if err != nil {
		return err
	}

	if !valid {
		return entity.ErrCodeInvalid
	}

	return nil
}

func (s *Service) ResetPassword(ctx context.Context, email, codigo, newPassword string) error {
	return s.api.ResetPassword(ctx, email, codigo, newPassword)
}

func (s *Service) ConfirmarCorreo(ctx context.Context, token string) error {
	return s.api.ConfirmarCorreo(ctx, token)
}

func (s *Service) ReenviarConfirmacion(ctx context.Context, email string) error {
	return s.api.ReenviarConfirmacion(ctx, email)
}

// TokenClaims peeks at the stored token's claims without verifying the
// signature. Display only; the authentication predicate stays HasToken.
func (s *Service) TokenClaims() (jwt.MapClaims, error) {
	token := s.store.Token()
	if token == "" {
		return nil, entity.ErrNotLoggedIn
	}

	claims := jwt.MapClaims{}

	_, _, err := jwt.NewParser().ParseUnverified(token, claims)
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	return claims, nil
}

// deriveRoleName applies the precedence: explicit role name, then the
// nombre_rol field, then the canonical id table, then the
// lowest-privilege default.
func deriveRoleName(rol, nombreRol string, idRol int) string {
	switch {
	case rol != "":
		return rol
	case nombreRol != "":
		return nombreRol
	case idRol != 0:
		return entity.RoleNameByID(idRol)
	default:
		return entity.RoleColaborador
	}
}
