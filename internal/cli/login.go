package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evaluapro/desempeno-cli/internal/entity"
)

func (a *App) newLoginCmd() *cobra.Command {
	var correo, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Iniciar sesión",
		RunE: func(cmd *cobra.Command, args []string) error {
			if (correo == "" || password == "") && interactive() {
				if err := loginForm(&correo, &password); err != nil {
					return err
				}
			}

			if correo == "" || password == "" {
				return errors.New("se requieren --correo y --password")
			}

			profile, err := a.svc.Login(cmd.Context(), correo, password)
			if err != nil {
				return fmt.Errorf("%s: %w", loginErrorMessage(err), err)
			}

			fmt.Fprintf(a.out, "Bienvenido, %s (%s)\n", profile.DisplayName(), profile.Rol)
			fmt.Fprintf(a.out, "Vista inicial: %s\n", a.svc.RoleHome())

			return nil
		},
	}

	cmd.Flags().StringVar(&correo, "correo", "", "correo del usuario")
	cmd.Flags().StringVar(&password, "password", "", "contraseña")

	return cmd
}

// loginErrorMessage mirrors the login form texts: the backend's detail
// wins when present, the fixed per-status text otherwise.
func loginErrorMessage(err error) string {
	var apiErr *entity.APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}

	switch {
	case errors.Is(err, entity.ErrInvalidCredentials):
		return "Credenciales inválidas. Verifica tu email y contraseña."
	case errors.Is(err, entity.ErrForbidden):
		return "Usuario inactivo o correo no confirmado."
	case errors.Is(err, entity.ErrBackendUnavailable):
		return "No se pudo conectar con el servidor. Verifica tu conexión."
	default:
		return "Ocurrió un error al iniciar sesión. Intenta nuevamente."
	}
}
