// Package cli is the command surface of the desempeno client.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	authclient "github.com/evaluapro/desempeno-cli/internal/clients/auth"
	"github.com/evaluapro/desempeno-cli/internal/service"
	"github.com/evaluapro/desempeno-cli/internal/session"
	"github.com/evaluapro/desempeno-cli/internal/transport"
	"github.com/evaluapro/desempeno-cli/pkg/config"
	"github.com/evaluapro/desempeno-cli/pkg/logger"
)

type App struct {
	cfg config.Config
	svc *service.Service
	out io.Writer
	err io.Writer
}

// Execute wires config, logger, session store, transport and service,
// then runs the command tree.
func Execute(ctx context.Context) error {
	cfg, err := config.New(".env")
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	l := logger.New(logger.ParseLevel(cfg.LogLevel))
	slog.SetDefault(l)

	store := session.NewStore(cfg.SessionFile)

	rt := transport.NewAuthRoundTripper(http.DefaultTransport, store)

	client := authclient.NewClient(cfg, rt)
	svc := service.NewService(store, client)

	app := &App{cfg: cfg, svc: svc, out: os.Stdout, err: os.Stderr}

	// A 401 anywhere ends the session; tell the user where to go next.
	rt.OnUnauthorized = func() {
		fmt.Fprintln(app.err, "Sesión expirada. Inicie sesión nuevamente con `desempeno login`.")
	}
	rt.OnForbidden = func() {
		fmt.Fprintln(app.err, transport.StatusMessage(http.StatusForbidden))
	}

	return app.newRootCmd().ExecuteContext(ctx)
}

func (a *App) newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "desempeno",
		Short: "Cliente de terminal para la plataforma de evaluación de desempeño",
		Long: `Cliente de terminal para la plataforma de evaluación de desempeño.

Autentíquese con 'desempeno login' y navegue las vistas de su rol con
'desempeno abrir <ruta>' o 'desempeno inicio'.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		a.newLoginCmd(),
		a.newLogoutCmd(),
		a.newRegistroCmd(),
		a.newEstadoCmd(),
		a.newPerfilCmd(),
		a.newPasswordCmd(),
		a.newCorreoCmd(),
		a.newAbrirCmd(),
		a.newInicioCmd(),
	)

	return root
}
