package model

import (
	"time"

	"github.com/google/uuid"
)

// Tipos de movimiento de stock.
const (
	MovimientoVenta      = "venta"
	MovimientoConversion = "conversion_presupuesto"
	MovimientoRecepcion  = "recepcion_pedido"
	MovimientoAjuste     = "ajuste_manual"
)

// MovimientoStock registra cada cambio de stock en un producto.
// Se crea automáticamente al vender, convertir un presupuesto o recibir
// un pedido de proveedor.
type MovimientoStock struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductoID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Tipo          string    `gorm:"not null"`
	Cantidad      int       `gorm:"not null"` // positive = entrada, negative = salida
	StockAnterior int       `gorm:"not null"`
	StockNuevo    int       `gorm:"not null"`
	Motivo        string
	ReferenciaID  *uuid.UUID `gorm:"type:uuid"` // venta_id, presupuesto_id o pedido_id
	CreatedAt     time.Time

	Producto *Producto `gorm:"foreignKey:ProductoID"`
}

// TableName overrides GORM's default pluralization (movimiento_stocks → movimientos_stock).
func (MovimientoStock) TableName() string { return "movimientos_stock" }
