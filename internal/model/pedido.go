package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de un pedido a proveedor.
// pendiente → {enviado, cancelado}; enviado → {recibido, cancelado}.
const (
	PedidoPendiente = "pendiente"
	PedidoEnviado   = "enviado"
	PedidoRecibido  = "recibido"
	PedidoCancelado = "cancelado"
)

// Pedido is an outbound purchase order placed with a supplier.
// FechaRecibido is stamped exactly when the estado transitions to recibido
// and is never cleared afterwards.
type Pedido struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProveedorID   uuid.UUID       `gorm:"type:uuid;index;not null"`
	Estado        string          `gorm:"type:varchar(20);not null;default:'pendiente'"`
	Total         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Notas         *string
	FechaEsperada *time.Time
	FechaRecibido *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Proveedor *Proveedor   `gorm:"foreignKey:ProveedorID"`
	Items     []PedidoItem `gorm:"foreignKey:PedidoID"`
}

func (Pedido) TableName() string { return "pedidos" }

// PedidoItem is one ordered product line priced at supplier cost.
type PedidoItem struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PedidoID      uuid.UUID       `gorm:"type:uuid;index;not null"`
	ProductoID    uuid.UUID       `gorm:"type:uuid;not null"`
	Cantidad      int             `gorm:"not null"`
	CostoUnitario decimal.Decimal `gorm:"type:decimal(10,2);not null"`

	Producto *Producto `gorm:"foreignKey:ProductoID"`
}

func (PedidoItem) TableName() string { return "pedidos_detalle" }
