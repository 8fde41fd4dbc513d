package entity

const (
	RoleAdministrador = "Administrador"
	RoleRRHH          = "RRHH"
	RoleDirector      = "Director"
	RoleColaborador   = "Colaborador"
	RoleManager       = "Manager"
)

// roleNames is the canonical id→name table used by the backend's role
// schema. Unknown ids fall back to the lowest-privilege role.
var roleNames = map[int]string{
	1: RoleAdministrador,
	2: RoleRRHH,
	3: RoleDirector,
	4: RoleColaborador,
	5: RoleManager,
}

func RoleNameByID(id int) string {
	if name, ok := roleNames[id]; ok {
		return name
	}

	return RoleColaborador
}

// RoleIDs returns the canonical ids in ascending order, for role pickers.
func RoleIDs() []int {
	return []int{1, 2, 3, 4, 5}
}

// HomeRoute maps a role name to its landing route. Unknown or empty roles
// land on the Colaborador dashboard.
func HomeRoute(role string) string {
	switch role {
	case RoleAdministrador:
		return "/admin/dashboard"
	case RoleRRHH:
		return "/rrhh/panel-control"
	case RoleManager:
		return "/manager/dashboard"
	case RoleDirector:
		return "/director/dashboard"
	case RoleColaborador:
		return "/colaborador/dashboard"
	default:
		return "/colaborador/dashboard"
	}
}
