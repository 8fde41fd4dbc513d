package entity

// Profile is the cached identity kept client-side after login. Field names
// follow the backend's login payload.
type Profile struct {
	UserID   int    `json:"id_usuario"`
	Nombre   string `json:"nombre"`
	Apellido string `json:"apellido"`
	Email    string `json:"email"`
	Rol      string `json:"rol"`
	RolID    int    `json:"id_rol,omitempty"`
	Area     string `json:"area,omitempty"`
	Cargo    string `json:"cargo,omitempty"`
}

func (p Profile) DisplayName() string {
	if p.Apellido == "" {
		return p.Nombre
	}

	return p.Nombre + " " + p.Apellido
}
