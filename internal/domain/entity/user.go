package entity

import "time"

// User usuario interno de la herramienta (acceso al registro y al análisis).
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Status       string // active | disabled
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
