package dto

import (
	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

// VarianteInput is one talle/color combination of the product being saved.
type VarianteInput struct {
	Talle       string `json:"talle"        validate:"required"`
	Color       string `json:"color"        validate:"required"`
	Stock       int    `json:"stock"        validate:"min=0"`
	StockMinimo int    `json:"stock_minimo" validate:"min=0"`
}

// GuardarProductoRequest creates or replaces a logical product and all of
// its variants as a single unit.
type GuardarProductoRequest struct {
	Nombre      string          `json:"nombre"       validate:"required,min=1"`
	Descripcion *string         `json:"descripcion"`
	Precio      decimal.Decimal `json:"precio"       validate:"min=0"`
	Costo       decimal.Decimal `json:"costo"        validate:"min=0"`
	CategoriaID string          `json:"categoria_id" validate:"required,uuid"`
	SkuBase     string          `json:"sku_base"     validate:"required,min=1"`
	Variantes   []VarianteInput `json:"variantes"    validate:"required,min=1,dive"`
}

type ProductoFilter struct {
	Nombre      string `form:"nombre"`
	SKU         string `form:"sku"`
	CategoriaID string `form:"categoria_id"`
	Page        int    `form:"page,default=1"   validate:"min=1"`
	Limit       int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// VarianteResponse is one stocked variant row.
type VarianteResponse struct {
	ID          string `json:"id"`
	SKU         string `json:"sku"`
	Talle       string `json:"talle"`
	Color       string `json:"color"`
	Stock       int    `json:"stock"`
	StockMinimo int    `json:"stock_minimo"`
}

// ProductoResponse groups all variant rows sharing a sku_base.
type ProductoResponse struct {
	Nombre      string             `json:"nombre"`
	Descripcion *string            `json:"descripcion,omitempty"`
	Precio      decimal.Decimal    `json:"precio"`
	Costo       decimal.Decimal    `json:"costo"`
	SkuBase     string             `json:"sku_base"`
	CategoriaID string             `json:"categoria_id"`
	Categoria   string             `json:"categoria,omitempty"`
	Variantes   []VarianteResponse `json:"variantes"`
}

type ProductoListResponse struct {
	Data  []ProductoResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}

// PrecioResponse is the public price-check payload, cached in Redis.
type PrecioResponse struct {
	SKU    string          `json:"sku"`
	Nombre string          `json:"nombre"`
	Talle  string          `json:"talle"`
	Color  string          `json:"color"`
	Precio decimal.Decimal `json:"precio"`
	Stock  int             `json:"stock"`
}

type MovimientoFilter struct {
	ProductoID string `form:"producto_id"`
	Tipo       string `form:"tipo"`
	Page       int    `form:"page,default=1"   validate:"min=1"`
	Limit      int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// MovimientoResponse is one entry of the stock movement journal.
type MovimientoResponse struct {
	ID            string  `json:"id"`
	ProductoID    string  `json:"producto_id"`
	Producto      string  `json:"producto,omitempty"`
	SKU           string  `json:"sku,omitempty"`
	Tipo          string  `json:"tipo"`
	Cantidad      int     `json:"cantidad"`
	StockAnterior int     `json:"stock_anterior"`
	StockNuevo    int     `json:"stock_nuevo"`
	Motivo        string  `json:"motivo,omitempty"`
	ReferenciaID  *string `json:"referencia_id,omitempty"`
	CreatedAt     string  `json:"created_at"`
}

type MovimientoListResponse struct {
	Data  []MovimientoResponse `json:"data"`
	Total int64                `json:"total"`
	Page  int                  `json:"page"`
	Limit int                  `json:"limit"`
}
