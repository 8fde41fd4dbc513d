// Package transport owns the request pipeline: bearer-token attachment
// before dispatch and authorization-failure handling on the way back.
package transport

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gofrs/uuid/v5"

	"github.com/evaluapro/desempeno-cli/pkg/logger"
)

type SessionStore interface {
	Token() string
	TokenKind() string
	Clear() error
}

// AuthRoundTripper clones every outgoing request and, when the session
// store holds a token, sets `Authorization: <kind> <token>` from the
// canonical storage keys. A 401 response clears the session and reports
// a forced logout to OnUnauthorized, uniformly for every endpoint; a 403
// reports a permission denial without touching the session.
type AuthRoundTripper struct {
	Transport http.RoundTripper
	Store     SessionStore

	// OnUnauthorized and OnForbidden are the caller's redirect hooks;
	// either may be nil.
	OnUnauthorized func()
	OnForbidden    func()
}

func NewAuthRoundTripper(transport http.RoundTripper, store SessionStore) *AuthRoundTripper {
	return &AuthRoundTripper{Transport: transport, Store: store}
}

func (a *AuthRoundTripper) RoundTrip(r *http.Request) (*http.Response, error) {
	ctx := r.Context()

	r = r.Clone(ctx)

	if id, err := uuid.NewV4(); err == nil {
		r.Header.Set("X-Request-Id", id.String())
	}

	if token := a.Store.Token(); token != "" {
		kind := a.Store.TokenKind()
		r.Header.Set("Authorization", kind+" "+token)
	}

	slog.InfoContext(ctx, "outgoing request", "request", fmt.Sprintf("%s %s", r.Method, r.URL.Redacted()))

	resp, err := a.Transport.RoundTrip(r)
	if err != nil {
		return nil, fmt.Errorf("round trip: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		// The held token is no longer valid; keeping an authenticated
		// session past this point would be incorrect.
		if err := a.Store.Clear(); err != nil {
			slog.ErrorContext(ctx, "clear session after 401", "error", err)
		}

		slog.WarnContext(logger.SetURL(ctx, r.URL.Redacted()), "unauthorized response, session cleared")

		if a.OnUnauthorized != nil {
			a.OnUnauthorized()
		}
	case http.StatusForbidden:
		slog.WarnContext(logger.SetURL(ctx, r.URL.Redacted()), "forbidden response")

		if a.OnForbidden != nil {
			a.OnForbidden()
		}
	}

	return resp, nil
}

// StatusMessage is the fixed status→message table used to annotate
// errors shown to the user.
func StatusMessage(status int) string {
	switch status {
	case http.StatusUnauthorized:
		return "No autorizado. Por favor, inicie sesión."
	case http.StatusForbidden:
		return "No tiene permisos para realizar esta acción."
	case http.StatusNotFound:
		return "Recurso no encontrado."
	case http.StatusInternalServerError:
		return "Error del servidor. Intente más tarde."
	default:
		return "Ha ocurrido un error"
	}
}
