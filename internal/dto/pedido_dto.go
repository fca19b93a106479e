package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type ItemPedidoRequest struct {
	ProductoID    string          `json:"producto_id"    validate:"required,uuid"`
	Cantidad      int             `json:"cantidad"       validate:"required,min=1"`
	CostoUnitario decimal.Decimal `json:"costo_unitario" validate:"min=0"`
}

type CrearPedidoRequest struct {
	ProveedorID   string              `json:"proveedor_id"   validate:"required,uuid"`
	Notas         *string             `json:"notas"`
	FechaEsperada *string             `json:"fecha_esperada"` // YYYY-MM-DD
	Items         []ItemPedidoRequest `json:"items" validate:"required,min=1,dive"`
}

type CambiarEstadoPedidoRequest struct {
	Estado string `json:"estado" validate:"required,oneof=enviado recibido cancelado"`
}

type PedidoFilter struct {
	Estado string `form:"estado"` // empty = all
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ItemPedidoResponse struct {
	ProductoID    string          `json:"producto_id"`
	Producto      string          `json:"producto"`
	SKU           string          `json:"sku"`
	Cantidad      int             `json:"cantidad"`
	CostoUnitario decimal.Decimal `json:"costo_unitario"`
}

type PedidoResponse struct {
	ID            string               `json:"id"`
	ProveedorID   string               `json:"proveedor_id"`
	Proveedor     string               `json:"proveedor"`
	Estado        string               `json:"estado"`
	Total         decimal.Decimal      `json:"total"`
	Notas         *string              `json:"notas,omitempty"`
	FechaEsperada *string              `json:"fecha_esperada,omitempty"`
	FechaRecibido *string              `json:"fecha_recibido,omitempty"`
	Items         []ItemPedidoResponse `json:"items"`
	CreatedAt     string               `json:"created_at"`
}

type PedidoListResponse struct {
	Data  []PedidoResponse `json:"data"`
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}
