package auth

import (
	"context"
	"strings"
)

// Role del usuario autenticado.
type Role string

const (
	RolePatient Role = "patient"
	RoleDoctor  Role = "doctor"
	RoleAdmin   Role = "admin"
)

// ParseRole acepta mayúsculas/espacios. Vacío o desconocido => patient.
func ParseRole(s string) Role {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleDoctor:
		return RoleDoctor
	case RoleAdmin:
		return RoleAdmin
	default:
		return RolePatient
	}
}

// Claims representa la información extraída del token.
type Claims struct {
	UserID string
	Email  string
	Role   Role
}

// AuthVerifier verifica un bearer token y devuelve claims (incluido el rol).
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}
