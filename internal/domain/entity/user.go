package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin    = "admin"
	RoleEmpleado = "empleado"
)

// User representa un usuario del sistema (quien atiende o cobra turnos).
type User struct {
	ID           string
	Username     string
	PasswordHash string // bcrypt hash
	Role         string // admin, empleado
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
