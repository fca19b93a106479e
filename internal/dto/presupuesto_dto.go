package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// ItemPresupuestoRequest quotes one product at its current price; the price
// is snapshotted server-side at save time.
type ItemPresupuestoRequest struct {
	ProductoID string `json:"producto_id" validate:"required,uuid"`
	Cantidad   int    `json:"cantidad"    validate:"required,min=1"`
}

type GuardarPresupuestoRequest struct {
	ClienteNombre   string  `json:"cliente_nombre"   validate:"required,min=1"`
	ClienteTelefono *string `json:"cliente_telefono"`
	// ClienteID references an existing client; NuevoCliente creates one first.
	ClienteID    *string `json:"cliente_id"    validate:"omitempty,uuid"`
	NuevoCliente bool    `json:"nuevo_cliente"`
	// DescuentoPct is a percentage over the computed subtotal.
	DescuentoPct decimal.Decimal          `json:"descuento_pct" validate:"min=0,max=100"`
	ValidoHasta  string                   `json:"valido_hasta"  validate:"required"` // YYYY-MM-DD
	Notas        *string                  `json:"notas"`
	Items        []ItemPresupuestoRequest `json:"items" validate:"required,min=1,dive"`
}

type CambiarEstadoPresupuestoRequest struct {
	Estado string `json:"estado" validate:"required,oneof=enviado aprobado rechazado"`
}

type EnviarPresupuestoRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type PresupuestoFilter struct {
	Estado string `form:"estado"` // empty = all
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ItemPresupuestoResponse struct {
	ProductoID     string          `json:"producto_id"`
	Producto       string          `json:"producto"`
	SKU            string          `json:"sku"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	PrecioTotal    decimal.Decimal `json:"precio_total"`
}

type PresupuestoResponse struct {
	ID              string                    `json:"id"`
	ClienteNombre   string                    `json:"cliente_nombre"`
	ClienteTelefono *string                   `json:"cliente_telefono,omitempty"`
	Estado          string                    `json:"estado"`
	Subtotal        decimal.Decimal           `json:"subtotal"`
	Descuento       decimal.Decimal           `json:"descuento"`
	Total           decimal.Decimal           `json:"total"`
	ValidoHasta     string                    `json:"valido_hasta"`
	Notas           *string                   `json:"notas,omitempty"`
	Items           []ItemPresupuestoResponse `json:"items"`
	CreatedAt       string                    `json:"created_at"`
}

type PresupuestoListResponse struct {
	Data  []PresupuestoResponse `json:"data"`
	Total int64                 `json:"total"`
	Page  int                   `json:"page"`
	Limit int                   `json:"limit"`
}

// ConversionResponse reports the Venta materialized from a converted quote.
type ConversionResponse struct {
	VentaID       string          `json:"venta_id"`
	PresupuestoID string          `json:"presupuesto_id"`
	Total         decimal.Decimal `json:"total"`
}
