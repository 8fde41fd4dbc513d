// Package guard decides whether a navigation target may be entered.
// Both guards share one contract: a context-aware call returning a
// Decision, so callers never special-case a synchronous shape.
package guard

import (
	"context"
)

type Authenticator interface {
	IsAuthenticated() bool
	CurrentRoleName() string
	RoleHome() string
}

type DecisionKind int

const (
	Admit DecisionKind = iota
	RedirectLogin
	RedirectHome
)

// Decision is the guard verdict. RedirectLogin carries the originally
// requested path so login can return there; RedirectHome carries the
// role landing route.
type Decision struct {
	Kind      DecisionKind
	ReturnURL string
	Route     string
}

// Target is a navigable route plus its authorization requirement. A nil
// or empty RequiredRoles means any authenticated role.
type Target struct {
	Path          string
	RequiredRoles []string
}

const loginRoute = "/auth/login"

// AuthGuard admits iff the session is authenticated at the moment of
// evaluation.
type AuthGuard struct {
	auth Authenticator
}

func NewAuthGuard(auth Authenticator) *AuthGuard {
	return &AuthGuard{auth: auth}
}

func (g *AuthGuard) CanActivate(ctx context.Context, target Target) (Decision, error) {
	if err := ctx.Err(); err != nil {
		return Decision{}, err
	}

	if g.auth.IsAuthenticated() {
		return Decision{Kind: Admit, Route: target.Path}, nil
	}

	return Decision{Kind: RedirectLogin, Route: loginRoute, ReturnURL: target.Path}, nil
}

// RoleGuard layers exact, case-sensitive role membership on top of the
// authentication check. There is no role hierarchy: Administrador does
// not satisfy a Manager-only target.
type RoleGuard struct {
	auth Authenticator
}

func NewRoleGuard(auth Authenticator) *RoleGuard {
	return &RoleGuard{auth: auth}
}

func (g *RoleGuard) CanActivate(ctx context.Context, target Target) (Decision, error) {
	if err := ctx.Err(); err != nil {
		return Decision{}, err
	}

	if !g.auth.IsAuthenticated() {
		return Decision{Kind: RedirectLogin, Route: loginRoute, ReturnURL: target.Path}, nil
	}

	if len(target.RequiredRoles) == 0 {
		return Decision{Kind: Admit, Route: target.Path}, nil
	}

	role := g.auth.CurrentRoleName()
	for _, allowed := range target.RequiredRoles {
		if role == allowed {
			return Decision{Kind: Admit, Route: target.Path}, nil
		}
	}

	return Decision{Kind: RedirectHome, Route: g.auth.RoleHome()}, nil
}
