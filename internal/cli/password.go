package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evaluapro/desempeno-cli/internal/entity"
)

func (a *App) newPasswordCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "password",
		Short: "Gestionar la contraseña",
	}

	cmd.AddCommand(a.newPasswordCambiarCmd(), a.newPasswordRecuperarCmd())

	return cmd
}

func (a *App) newPasswordCambiarCmd() *cobra.Command {
	var actual, nueva string

	cmd := &cobra.Command{
		Use:   "cambiar",
		Short: "Cambiar la contraseña actual",
		RunE: func(cmd *cobra.Command, args []string) error {
			if (actual == "" || nueva == "") && interactive() {
				if err := promptPassword("Contraseña actual", &actual); err != nil {
					return err
				}

				if err := promptPassword("Contraseña nueva", &nueva); err != nil {
					return err
				}
			}

			if actual == "" || nueva == "" {
				return errors.New("se requieren --actual y --nueva")
			}

			if err := a.svc.ChangePassword(cmd.Context(), actual, nueva); err != nil {
				return fmt.Errorf("cambiar contraseña: %w", err)
			}

			fmt.Fprintln(a.out, "Contraseña actualizada.")

			return nil
		},
	}

	cmd.Flags().StringVar(&actual, "actual", "", "contraseña actual")
	cmd.Flags().StringVar(&nueva, "nueva", "", "contraseña nueva")

	return cmd
}

// newPasswordRecuperarCmd walks the three reset steps: request a code by
// email, verify the 6-digit code, submit the new password bound to the
// verified (email, code) pair. The command holds the code across steps;
// the backend sees three independent requests.
func (a *App) newPasswordRecuperarCmd() *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "recuperar",
		Short: "Recuperar la contraseña con un código por correo",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if email == "" {
				if !interactive() {
					return errors.New("se requiere --email")
				}

				if err := promptString("Correo de la cuenta", &email); err != nil {
					return err
				}
			}

			if err := a.svc.RequestPasswordReset(ctx, email); err != nil {
				return fmt.Errorf("solicitar código: %w", err)
			}

			fmt.Fprintln(a.out, "Se envió un código de verificación a su correo.")

			if !interactive() {
				fmt.Fprintln(a.out, "Continúe el proceso desde una terminal interactiva.")
				return nil
			}

			var codigo string
			if err := promptResetCode(&codigo); err != nil {
				return err
			}

			if err := a.svc.VerifyResetCode(ctx, email, codigo); err != nil {
				if errors.Is(err, entity.ErrCodeInvalid) {
					return fmt.Errorf("código incorrecto o vencido: %w", err)
				}

				return fmt.Errorf("verificar código: %w", err)
			}

			var nueva string
			if err := promptPassword("Contraseña nueva", &nueva); err != nil {
				return err
			}

			if err := a.svc.ResetPassword(ctx, email, codigo, nueva); err != nil {
				return fmt.Errorf("restablecer contraseña: %w", err)
			}

			fmt.Fprintln(a.out, "Contraseña restablecida. Ya puede iniciar sesión.")

			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "correo de la cuenta")

	return cmd
}
