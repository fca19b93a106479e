package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Gasto is an operating expense entry. NumeroGasto is a human-readable
// sequential identifier (GAS-000123) generated from a Postgres sequence.
type Gasto struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	NumeroGasto string          `gorm:"uniqueIndex;not null"`
	Fecha       time.Time       `gorm:"index;not null"`
	Categoria   string          `gorm:"index;not null"`
	Descripcion string          `gorm:"not null"`
	Monto       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Proveedor   *string
	MetodoPago  string `gorm:"type:varchar(20);not null"`
	Comprobante *string
	Notas       *string
	UsuarioID   *uuid.UUID `gorm:"type:uuid"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Gasto) TableName() string { return "gastos" }
