package entity_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/evaluapro/desempeno-cli/internal/entity"
)

func TestRoleNameByID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		id   int
		want string
	}{
		{1, entity.RoleAdministrador},
		{2, entity.RoleRRHH},
		{3, entity.RoleDirector},
		{4, entity.RoleColaborador},
		{5, entity.RoleManager},
		{0, entity.RoleColaborador},
		{99, entity.RoleColaborador},
	}

	for _, test := range tests {
		require.Equal(t, test.want, entity.RoleNameByID(test.id))
	}
}

func TestHomeRoute(t *testing.T) {
	t.Parallel()

	tests := []struct {
		role string
		want string
	}{
		{entity.RoleAdministrador, "/admin/dashboard"},
		{entity.RoleRRHH, "/rrhh/panel-control"},
		{entity.RoleManager, "/manager/dashboard"},
		{entity.RoleDirector, "/director/dashboard"},
		{entity.RoleColaborador, "/colaborador/dashboard"},
		{"", "/colaborador/dashboard"},
		{"Becario", "/colaborador/dashboard"},
	}

	for _, test := range tests {
		require.Equal(t, test.want, entity.HomeRoute(test.role))
	}
}
