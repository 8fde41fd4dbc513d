package cli

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	labelStyle = lipgloss.NewStyle().Faint(true).Width(10)
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

func (a *App) newEstadoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "estado",
		Short: "Ver el estado de la sesión",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.svc.IsAuthenticated() {
				fmt.Fprintln(a.out, "No ha iniciado sesión. Use `desempeno login`.")
				return nil
			}

			fmt.Fprintln(a.out, titleStyle.Render("Sesión activa"))

			profile, ok := a.svc.CurrentProfile()
			if ok {
				fmt.Fprintf(a.out, "%s %s\n", labelStyle.Render("Usuario"), profile.DisplayName())
				fmt.Fprintf(a.out, "%s %s\n", labelStyle.Render("Correo"), profile.Email)
				fmt.Fprintf(a.out, "%s %s\n", labelStyle.Render("Rol"), profile.Rol)
			} else {
				// Token without profile is a valid transient state.
				fmt.Fprintln(a.out, warnStyle.Render("Perfil no disponible; use `desempeno perfil` para recargarlo."))
			}

			claims, err := a.svc.TokenClaims()
			if err == nil {
				if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
					label := labelStyle.Render("Expira")
					if time.Now().After(exp.Time) {
						fmt.Fprintf(a.out, "%s %s %s\n", label, exp.Format(time.RFC3339), warnStyle.Render("(vencido)"))
					} else {
						fmt.Fprintf(a.out, "%s %s\n", label, exp.Format(time.RFC3339))
					}
				}
			}

			return nil
		},
	}
}

func (a *App) newPerfilCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "perfil",
		Short: "Recargar el perfil desde el servidor",
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := a.svc.RefreshProfile(cmd.Context())
			if err != nil {
				return fmt.Errorf("recargar perfil: %w", err)
			}

			fmt.Fprintf(a.out, "%s %s\n", labelStyle.Render("Usuario"), profile.DisplayName())
			fmt.Fprintf(a.out, "%s %s\n", labelStyle.Render("Correo"), profile.Email)
			fmt.Fprintf(a.out, "%s %s\n", labelStyle.Render("Rol"), profile.Rol)

			if profile.Area != "" {
				fmt.Fprintf(a.out, "%s %s\n", labelStyle.Render("Área"), profile.Area)
			}

			if profile.Cargo != "" {
				fmt.Fprintf(a.out, "%s %s\n", labelStyle.Render("Cargo"), profile.Cargo)
			}

			return nil
		},
	}
}
