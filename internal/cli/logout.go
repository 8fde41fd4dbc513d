package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Cerrar sesión",
		RunE: func(cmd *cobra.Command, args []string) error {
			err := a.svc.Logout(cmd.Context())
			if err != nil {
				// Local session is already cleared; the backend call is
				// best effort.
				fmt.Fprintf(a.err, "No se pudo notificar al servidor: %v\n", err)
			}

			fmt.Fprintln(a.out, "Sesión cerrada.")

			return nil
		},
	}
}
