package guard

import (
	"strings"

	"github.com/evaluapro/desempeno-cli/internal/entity"
)

// routes maps the navigable prefixes to their authorization requirement.
// An empty role set means any authenticated role; the auth feature is
// public.
var routes = []struct {
	prefix string
	roles  []string
	public bool
}{
	{prefix: "/auth", public: true},
	{prefix: "/colaborador"},
	{prefix: "/manager", roles: []string{entity.RoleManager}},
	{prefix: "/director", roles: []string{entity.RoleDirector}},
	{prefix: "/rrhh", roles: []string{entity.RoleRRHH, entity.RoleAdministrador}},
	{prefix: "/admin", roles: []string{entity.RoleAdministrador}},
}

// Resolve matches a path against the route table. ok is false for paths
// outside every navigable prefix.
func Resolve(path string) (Target, bool) {
	for _, r := range routes {
		if path == r.prefix || strings.HasPrefix(path, r.prefix+"/") {
			if r.public {
				return Target{Path: path}, true
			}

			return Target{Path: path, RequiredRoles: r.roles}, true
		}
	}

	return Target{}, false
}

// Public reports whether the path needs no guard at all.
func Public(path string) bool {
	return path == "/auth" || strings.HasPrefix(path, "/auth/")
}
