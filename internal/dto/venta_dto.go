package dto

import "github.com/shopspring/decimal"

// ─── Filter / List ──────────────────────────────────────────────────────────

// VentaFilter is bound from the query string of GET /v1/ventas.
type VentaFilter struct {
	Fecha string `form:"fecha"` // YYYY-MM-DD; empty = all
	Page  int    `form:"page,default=1"   validate:"min=1"`
	Limit int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

type ItemVentaRequest struct {
	ProductoID string `json:"producto_id" validate:"required,uuid"`
	Cantidad   int    `json:"cantidad"    validate:"required,min=1"`
}

type RegistrarVentaRequest struct {
	ClienteNombre   string  `json:"cliente_nombre"   validate:"required,min=1"`
	ClienteTelefono *string `json:"cliente_telefono"`
	// ClienteID references an existing client; NuevoCliente creates one first.
	ClienteID    *string            `json:"cliente_id"    validate:"omitempty,uuid"`
	NuevoCliente bool               `json:"nuevo_cliente"`
	MetodoPago   string             `json:"metodo_pago"   validate:"required,oneof=efectivo debito credito transferencia"`
	DescuentoPct decimal.Decimal    `json:"descuento_pct" validate:"min=0,max=100"`
	Notas        *string            `json:"notas"`
	Items        []ItemVentaRequest `json:"items" validate:"required,min=1,dive"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ItemVentaResponse struct {
	ProductoID     string          `json:"producto_id"`
	Producto       string          `json:"producto"`
	SKU            string          `json:"sku"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	PrecioTotal    decimal.Decimal `json:"precio_total"`
}

type VentaResponse struct {
	ID              string              `json:"id"`
	ClienteNombre   string              `json:"cliente_nombre"`
	ClienteTelefono *string             `json:"cliente_telefono,omitempty"`
	Subtotal        decimal.Decimal     `json:"subtotal"`
	Descuento       decimal.Decimal     `json:"descuento"`
	Total           decimal.Decimal     `json:"total"`
	MetodoPago      string              `json:"metodo_pago"`
	Notas           *string             `json:"notas,omitempty"`
	Items           []ItemVentaResponse `json:"items"`
	CreatedAt       string              `json:"created_at"`
}

type VentaListResponse struct {
	Data  []VentaResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}
