package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/evaluapro/desempeno-cli/internal/entity"
)

func interactive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

func loginForm(correo, password *string) error {
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Correo").
			Placeholder("usuario@empresa.com").
			Value(correo),
		huh.NewInput().
			Title("Contraseña").
			EchoMode(huh.EchoModePassword).
			Value(password),
	))

	if err := form.Run(); err != nil {
		return fmt.Errorf("formulario de login: %w", err)
	}

	return nil
}

func registroForm(nombre, apellido, email, password *string, idRol *int) error {
	options := make([]huh.Option[int], 0, len(entity.RoleIDs()))
	for _, id := range entity.RoleIDs() {
		options = append(options, huh.NewOption(entity.RoleNameByID(id), id))
	}

	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().Title("Nombre").Value(nombre),
		huh.NewInput().Title("Apellido").Value(apellido),
		huh.NewInput().Title("Correo").Value(email),
		huh.NewInput().
			Title("Contraseña").
			EchoMode(huh.EchoModePassword).
			Value(password),
		huh.NewSelect[int]().
			Title("Rol").
			Options(options...).
			Value(idRol),
	))

	if err := form.Run(); err != nil {
		return fmt.Errorf("formulario de registro: %w", err)
	}

	return nil
}

func promptString(title string, value *string) error {
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().Title(title).Value(value),
	))

	if err := form.Run(); err != nil {
		return fmt.Errorf("formulario: %w", err)
	}

	return nil
}

func promptPassword(title string, value *string) error {
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title(title).
			EchoMode(huh.EchoModePassword).
			Value(value),
	))

	if err := form.Run(); err != nil {
		return fmt.Errorf("formulario: %w", err)
	}

	return nil
}

// promptResetCode asks for the 6-digit reset code and validates its
// shape locally before it travels to the backend.
func promptResetCode(value *string) error {
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Código de verificación (6 dígitos)").
			CharLimit(6).
			Validate(func(s string) error {
				if len(s) != 6 {
					return fmt.Errorf("el código debe tener 6 dígitos")
				}

				if _, err := strconv.Atoi(s); err != nil {
					return fmt.Errorf("el código debe ser numérico")
				}

				return nil
			}).
			Value(value),
	))

	if err := form.Run(); err != nil {
		return fmt.Errorf("formulario: %w", err)
	}

	return nil
}
