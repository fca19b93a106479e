package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type GuardarGastoRequest struct {
	Fecha       string          `json:"fecha"       validate:"required"` // YYYY-MM-DD
	Categoria   string          `json:"categoria"   validate:"required,min=1"`
	Descripcion string          `json:"descripcion" validate:"required,min=1"`
	Monto       decimal.Decimal `json:"monto"       validate:"required,gt=0"`
	Proveedor   *string         `json:"proveedor"`
	MetodoPago  string          `json:"metodo_pago" validate:"required,oneof=efectivo debito credito transferencia"`
	Comprobante *string         `json:"comprobante"`
	Notas       *string         `json:"notas"`
}

type GastoFilter struct {
	Categoria string `form:"categoria"`
	Desde     string `form:"desde"` // YYYY-MM-DD
	Hasta     string `form:"hasta"` // YYYY-MM-DD
	Page      int    `form:"page,default=1"   validate:"min=1"`
	Limit     int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type GastoResponse struct {
	ID          string          `json:"id"`
	NumeroGasto string          `json:"numero_gasto"`
	Fecha       string          `json:"fecha"`
	Categoria   string          `json:"categoria"`
	Descripcion string          `json:"descripcion"`
	Monto       decimal.Decimal `json:"monto"`
	Proveedor   *string         `json:"proveedor,omitempty"`
	MetodoPago  string          `json:"metodo_pago"`
	Comprobante *string         `json:"comprobante,omitempty"`
	Notas       *string         `json:"notas,omitempty"`
}

type GastoListResponse struct {
	Data  []GastoResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}
