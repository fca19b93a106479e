package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de un presupuesto.
// borrador → enviado → {aprobado, rechazado}; aprobado → convertido.
// convertido y rechazado son terminales; solo borrador admite edición de items.
const (
	PresupuestoBorrador   = "borrador"
	PresupuestoEnviado    = "enviado"
	PresupuestoAprobado   = "aprobado"
	PresupuestoRechazado  = "rechazado"
	PresupuestoConvertido = "convertido"
)

// Presupuesto is a priced quotation for a customer, convertible into a Venta.
// Total = Subtotal − Descuento. Item prices are snapshotted at creation and
// never re-synced with the live product price.
type Presupuesto struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ClienteNombre   string    `gorm:"not null"`
	ClienteTelefono *string
	ClienteID       *uuid.UUID      `gorm:"type:uuid;index"`
	Estado          string          `gorm:"type:varchar(20);not null;default:'borrador'"`
	Subtotal        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Descuento       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Total           decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	ValidoHasta     time.Time       `gorm:"not null"`
	Notas           *string
	UsuarioID       *uuid.UUID `gorm:"type:uuid"`
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Cliente *Cliente          `gorm:"foreignKey:ClienteID"`
	Items   []PresupuestoItem `gorm:"foreignKey:PresupuestoID"`
}

func (Presupuesto) TableName() string { return "presupuestos" }

// PresupuestoItem is one quoted product line. PrecioUnitario is the price
// at quotation time; PrecioTotal = Cantidad × PrecioUnitario.
type PresupuestoItem struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PresupuestoID  uuid.UUID       `gorm:"type:uuid;index;not null"`
	ProductoID     uuid.UUID       `gorm:"type:uuid;not null"`
	Cantidad       int             `gorm:"not null"`
	PrecioUnitario decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	PrecioTotal    decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	Producto *Producto `gorm:"foreignKey:ProductoID"`
}

func (PresupuestoItem) TableName() string { return "presupuestos_detalle" }
