package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MetodoPagoPendiente is the sentinel payment method stamped on sales
// materialized from a converted presupuesto.
const MetodoPagoPendiente = "pendiente"

// Venta is a completed sale, created directly at the point of sale or
// derived from a converted Presupuesto. The customer name/phone is always
// denormalized onto the row; ClienteID is an optional reference.
type Venta struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ClienteNombre   string    `gorm:"not null"`
	ClienteTelefono *string
	ClienteID       *uuid.UUID      `gorm:"type:uuid;index"`
	Subtotal        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Descuento       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Total           decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	MetodoPago      string          `gorm:"type:varchar(20);not null"`
	Notas           *string
	UsuarioID       *uuid.UUID `gorm:"type:uuid"`
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Cliente *Cliente    `gorm:"foreignKey:ClienteID"`
	Items   []VentaItem `gorm:"foreignKey:VentaID"`
}

func (Venta) TableName() string { return "ventas" }

// VentaItem is one sold product line. PrecioTotal = Cantidad × PrecioUnitario.
type VentaItem struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VentaID        uuid.UUID       `gorm:"type:uuid;index;not null"`
	ProductoID     uuid.UUID       `gorm:"type:uuid;not null"`
	Cantidad       int             `gorm:"not null"`
	PrecioUnitario decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	PrecioTotal    decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	Producto *Producto `gorm:"foreignKey:ProductoID"`
}

func (VentaItem) TableName() string { return "ventas_detalle" }
