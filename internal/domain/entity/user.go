package entity

import "time"

// User representa una cuenta de la tienda. IsAdmin habilita el acceso
// administrativo (ver todos los pedidos, editar productos ajenos).
type User struct {
	ID           int64
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	IsAdmin      bool
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
