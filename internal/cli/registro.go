package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	authclient "github.com/evaluapro/desempeno-cli/internal/clients/auth"
	"github.com/evaluapro/desempeno-cli/internal/entity"
)

func (a *App) newRegistroCmd() *cobra.Command {
	var (
		nombre, apellido, email, password string
		area, cargo                       string
		idRol                             int
	)

	cmd := &cobra.Command{
		Use:   "registro",
		Short: "Registrar un nuevo usuario",
		RunE: func(cmd *cobra.Command, args []string) error {
			if (nombre == "" || email == "" || password == "") && interactive() {
				if err := registroForm(&nombre, &apellido, &email, &password, &idRol); err != nil {
					return err
				}
			}

			if nombre == "" || email == "" || password == "" {
				return errors.New("se requieren --nombre, --email y --password")
			}

			err := a.svc.Register(cmd.Context(), authclient.RegisterRequest{
				Nombre:   nombre,
				Apellido: apellido,
				Email:    email,
				Password: password,
				IDRol:    idRol,
				Area:     area,
				Cargo:    cargo,
			})
			if err != nil {
				var apiErr *entity.APIError
				if errors.As(err, &apiErr) && apiErr.Detail != "" {
					return fmt.Errorf("%s: %w", apiErr.Detail, err)
				}

				return fmt.Errorf("registro: %w", err)
			}

			fmt.Fprintln(a.out, "Registro exitoso. Revise su correo para confirmar la cuenta.")

			return nil
		},
	}

	cmd.Flags().StringVar(&nombre, "nombre", "", "nombre")
	cmd.Flags().StringVar(&apellido, "apellido", "", "apellido")
	cmd.Flags().StringVar(&email, "email", "", "correo electrónico")
	cmd.Flags().StringVar(&password, "password", "", "contraseña")
	cmd.Flags().IntVar(&idRol, "rol", 0, "id de rol (1 Administrador, 2 RRHH, 3 Director, 4 Colaborador, 5 Manager)")
	cmd.Flags().StringVar(&area, "area", "", "área")
	cmd.Flags().StringVar(&cargo, "cargo", "", "cargo")

	return cmd
}
