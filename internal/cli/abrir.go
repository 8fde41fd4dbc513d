package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evaluapro/desempeno-cli/internal/entity"
	"github.com/evaluapro/desempeno-cli/internal/guard"
)

// newAbrirCmd is the navigation entry point: it resolves the requested
// route against the route table, runs it through the role guard and
// reports the decision the way the router would act on it.
func (a *App) newAbrirCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "abrir <ruta>",
		Short: "Abrir una ruta de la aplicación",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			target, ok := guard.Resolve(path)
			if !ok {
				return fmt.Errorf("%w: %s", entity.ErrRouteNotFound, path)
			}

			if guard.Public(path) {
				fmt.Fprintf(a.out, "Abriendo %s\n", path)
				return nil
			}

			decision, err := guard.NewRoleGuard(a.svc).CanActivate(cmd.Context(), target)
			if err != nil {
				return err
			}

			switch decision.Kind {
			case guard.Admit:
				fmt.Fprintf(a.out, "Abriendo %s\n", decision.Route)
			case guard.RedirectLogin:
				fmt.Fprintf(a.out, "Inicie sesión para continuar: `desempeno login` y luego `desempeno abrir %s`\n", decision.ReturnURL)
			case guard.RedirectHome:
				fmt.Fprintf(a.out, "Su rol no tiene acceso a %s. Redirigiendo a %s\n", path, decision.Route)
			}

			return nil
		},
	}
}

func (a *App) newInicioCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inicio",
		Short: "Ir a la vista inicial del rol",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.svc.IsAuthenticated() {
				fmt.Fprintln(a.out, "No ha iniciado sesión. Use `desempeno login`.")
				return nil
			}

			fmt.Fprintf(a.out, "Abriendo %s\n", a.svc.RoleHome())

			return nil
		},
	}
}
