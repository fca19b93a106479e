package model

import (
	"time"

	"github.com/google/uuid"
)

// Cliente is a customer contact record. Only Nombre is required;
// the rest is free-form contact data.
type Cliente struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre    string    `gorm:"index;not null"`
	Email     *string
	Telefono  *string
	Direccion *string
	Notas     *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Cliente) TableName() string { return "clientes" }
