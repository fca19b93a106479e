package model

import (
	"time"

	"github.com/google/uuid"
)

// Proveedor represents a supplier with commercial contact data.
type Proveedor struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre    string    `gorm:"index;not null"`
	Contacto  *string
	Email     *string
	Telefono  *string
	Direccion *string
	CreatedAt time.Time
	UpdatedAt time.Time

	Pedidos []Pedido `gorm:"foreignKey:ProveedorID"`
}

func (Proveedor) TableName() string { return "proveedores" }
