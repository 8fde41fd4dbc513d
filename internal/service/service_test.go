package service_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	authclient "github.com/evaluapro/desempeno-cli/internal/clients/auth"
	"github.com/evaluapro/desempeno-cli/internal/entity"
	"github.com/evaluapro/desempeno-cli/internal/service"
	"github.com/evaluapro/desempeno-cli/internal/session"
)

type fakeAPI struct {
	loginResp *authclient.LoginResponse
	loginErr  error
	logoutErr error
	meResp    *authclient.CurrentUserResponse
	meErr     error
	verifyOK  bool
	verifyErr error
}

func (f *fakeAPI) Login(ctx context.Context, correo, password string) (*authclient.LoginResponse, error) {
	return f.loginResp, f.loginErr
}

func (f *fakeAPI) Logout(ctx context.Context) error { return f.logoutErr }

func (f *fakeAPI) Me(ctx context.Context) (*authclient.CurrentUserResponse, error) {
	return f.meResp, f.meErr
}

func (f *fakeAPI) Register(ctx context.Context, req authclient.RegisterRequest) error { return nil }

func (f *fakeAPI) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	return nil
}

func (f *fakeAPI) RequestPasswordReset(ctx context.Context, email string) error { return nil }

func (f *fakeAPI) VerifyResetToken(ctx context.Context, email, codigo string) (bool, error) {
	return f.verifyOK, f.verifyErr
}

func (f *fakeAPI) ResetPassword(ctx context.Context, email, codigo, newPassword string) error {
	return nil
}

func (f *fakeAPI) ConfirmarCorreo(ctx context.Context, token string) error { return nil }

func (f *fakeAPI) ReenviarConfirmacion(ctx context.Context, email string) error { return nil }

func newService(t *testing.T, api *fakeAPI) (*service.Service, *session.Store) {
	t.Helper()

	store := session.NewStore(filepath.Join(t.TempDir(), "session.json"))

	return service.NewService(store, api), store
}

func TestService_LoginPersistsSession(t *testing.T) {
	t.Parallel()

	svc, store := newService(t, &fakeAPI{
		loginResp: &authclient.LoginResponse{
			AccessToken: "abc123",
			TokenType:   "Bearer",
			IDUsuario:   7,
			Nombre:      "Ana",
			Apellido:    "García",
			Correo:      "ana@empresa.com",
			IDRol:       2,
		},
	})

	var published *entity.Profile

	svc.Subscribe(func(p *entity.Profile) { published = p })

	profile, err := svc.Login(context.Background(), "ana@empresa.com", "secreto")
	require.NoError(t, err)
	require.Equal(t, entity.RoleRRHH, profile.Rol)

	require.True(t, svc.IsAuthenticated())
	require.Equal(t, "abc123", store.Token())

	stored, ok := store.Profile()
	require.True(t, ok)
	require.Equal(t, profile, stored)

	require.NotNil(t, published)
	require.Equal(t, profile, *published)
}

func TestService_LoginFailurePropagates(t *testing.T) {
	t.Parallel()

	wantErr := &entity.APIError{Status: 401, Detail: "bad credentials"}
	svc, _ := newService(t, &fakeAPI{loginErr: wantErr})

	_, err := svc.Login(context.Background(), "ana@empresa.com", "mala")
	require.ErrorIs(t, err, entity.ErrInvalidCredentials)

	var apiErr *entity.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "bad credentials", apiErr.Detail)

	require.False(t, svc.IsAuthenticated())
}

func TestService_RoleDerivationPrecedence(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		resp authclient.LoginResponse
		want string
	}{
		{
			name: "explicit role name wins",
			resp: authclient.LoginResponse{Rol: "Director", NombreRol: "RRHH", IDRol: 1},
			want: "Director",
		},
		{
			name: "nombre_rol beats the id table",
			resp: authclient.LoginResponse{NombreRol: "RRHH", IDRol: 1},
			want: "RRHH",
		},
		{
			name: "id maps through the canonical table",
			resp: authclient.LoginResponse{IDRol: 5},
			want: entity.RoleManager,
		},
		{
			name: "unknown id falls back to lowest privilege",
			resp: authclient.LoginResponse{IDRol: 99},
			want: entity.RoleColaborador,
		},
		{
			name: "nothing at all defaults to lowest privilege",
			resp: authclient.LoginResponse{},
			want: entity.RoleColaborador,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			resp := test.resp
			resp.AccessToken = "abc123"

			svc, _ := newService(t, &fakeAPI{loginResp: &resp})

			profile, err := svc.Login(context.Background(), "ana@empresa.com", "secreto")
			require.NoError(t, err)
			require.Equal(t, test.want, profile.Rol)
			require.NotEmpty(t, profile.Rol)
		})
	}
}

func TestService_LogoutClearsLocallyEvenOnBackendError(t *testing.T) {
	t.Parallel()

	svc, store := newService(t, &fakeAPI{
		loginResp: &authclient.LoginResponse{AccessToken: "abc123", TokenType: "Bearer"},
		logoutErr: errors.New("backend down"),
	})

	_, err := svc.Login(context.Background(), "ana@empresa.com", "secreto")
	require.NoError(t, err)

	err = svc.Logout(context.Background())
	require.Error(t, err)

	require.False(t, store.HasToken(), "local session must clear even when the backend call fails")
	require.False(t, svc.IsAuthenticated())
}

func TestService_RoleQueries(t *testing.T) {
	t.Parallel()

	svc, store := newService(t, &fakeAPI{})
	require.NoError(t, store.SaveToken("abc123", "Bearer"))
	require.NoError(t, store.SaveProfile(entity.Profile{Rol: entity.RoleManager}))

	require.Equal(t, entity.RoleManager, svc.CurrentRoleName())
	require.True(t, svc.HasRole(entity.RoleManager))
	require.False(t, svc.HasRole(entity.RoleAdministrador))
	require.True(t, svc.HasAnyRole([]string{entity.RoleRRHH, entity.RoleManager}))
	require.False(t, svc.HasAnyRole([]string{entity.RoleRRHH, entity.RoleAdministrador}))
	require.Equal(t, "/manager/dashboard", svc.RoleHome())
}

func TestService_RoleHomeDefaultsWithoutProfile(t *testing.T) {
	t.Parallel()

	svc, _ := newService(t, &fakeAPI{})

	require.Empty(t, svc.CurrentRoleName())
	require.False(t, svc.HasAnyRole([]string{entity.RoleRRHH}))
	require.Equal(t, "/colaborador/dashboard", svc.RoleHome())
}

func TestService_VerifyResetCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		api       fakeAPI
		errFn     require.ErrorAssertionFunc
		wantIsErr error
	}{
		{"valid code", fakeAPI{verifyOK: true}, require.NoError, nil},
		{"invalid code", fakeAPI{verifyOK: false}, require.Error, entity.ErrCodeInvalid},
		{"transport error", fakeAPI{verifyErr: errors.New("boom")}, require.Error, nil},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			api := test.api
			svc, _ := newService(t, &api)

			err := svc.VerifyResetCode(context.Background(), "ana@empresa.com", "123456")
			test.errFn(t, err)

			if test.wantIsErr != nil {
				require.ErrorIs(t, err, test.wantIsErr)
			}
		})
	}
}

func TestService_RefreshProfile(t *testing.T) {
	t.Parallel()

	svc, store := newService(t, &fakeAPI{
		meResp: &authclient.CurrentUserResponse{
			IDUsuario: 7,
			Nombre:    "Ana",
			Apellido:  "García",
			Correo:    "ana@empresa.com",
			IDRol:     2,
			Area:      "Talento",
			Cargo:     "Analista",
			Rol:       &authclient.RolDetail{IDRol: 2, NombreRol: "RRHH"},
		},
	})

	profile, err := svc.RefreshProfile(context.Background())
	require.NoError(t, err)
	require.Equal(t, entity.RoleRRHH, profile.Rol)
	require.Equal(t, "Talento", profile.Area)

	stored, ok := store.Profile()
	require.True(t, ok)
	require.Equal(t, profile, stored)
}

func TestService_TokenClaims(t *testing.T) {
	t.Parallel()

	svc, store := newService(t, &fakeAPI{})

	_, err := svc.TokenClaims()
	require.ErrorIs(t, err, entity.ErrNotLoggedIn)

	// header {"alg":"none"} . payload {"sub":"7","exp":4102444800}
	unsigned := "eyJhbGciOiJub25lIiwidHlwIjoiSldUIn0." +
		"eyJzdWIiOiI3IiwiZXhwIjo0MTAyNDQ0ODAwfQ."
	require.NoError(t, store.SaveToken(unsigned, "Bearer"))

	claims, err := svc.TokenClaims()
	require.NoError(t, err)

	sub, err := claims.GetSubject()
	require.NoError(t, err)
	require.Equal(t, "7", sub)
}
