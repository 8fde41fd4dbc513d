package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) newCorreoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "correo",
		Short: "Confirmación de correo electrónico",
	}

	cmd.AddCommand(a.newCorreoConfirmarCmd(), a.newCorreoReenviarCmd())

	return cmd
}

func (a *App) newCorreoConfirmarCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "confirmar <token>",
		Short: "Confirmar el correo con el token recibido",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.svc.ConfirmarCorreo(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("confirmar correo: %w", err)
			}

			fmt.Fprintln(a.out, "Correo confirmado. Ya puede iniciar sesión.")

			return nil
		},
	}
}

func (a *App) newCorreoReenviarCmd() *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "reenviar",
		Short: "Reenviar el correo de confirmación",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" {
				if !interactive() {
					return errors.New("se requiere --email")
				}

				if err := promptString("Correo de la cuenta", &email); err != nil {
					return err
				}
			}

			if err := a.svc.ReenviarConfirmacion(cmd.Context(), email); err != nil {
				return fmt.Errorf("reenviar confirmación: %w", err)
			}

			fmt.Fprintln(a.out, "Correo de confirmación reenviado.")

			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "correo de la cuenta")

	return cmd
}
