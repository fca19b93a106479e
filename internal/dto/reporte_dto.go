package dto

import "github.com/shopspring/decimal"

// ReporteFilter bounds a report to a date range (inclusive).
type ReporteFilter struct {
	Desde string `form:"desde"` // YYYY-MM-DD; empty = no lower bound
	Hasta string `form:"hasta"` // YYYY-MM-DD; empty = no upper bound
}

// VentaDiaria is one grouped row of the daily sales report.
type VentaDiaria struct {
	Fecha    string          `json:"fecha"`
	Total    decimal.Decimal `json:"total"`
	Cantidad int             `json:"cantidad"` // number of sales that day
}

// TopProducto ranks a product by units sold and revenue.
type TopProducto struct {
	Producto string          `json:"producto"`
	Cantidad int             `json:"cantidad"`
	Total    decimal.Decimal `json:"total"`
}

// GananciaProducto reports per-product profit. Margen is 0 when revenue is 0.
type GananciaProducto struct {
	Producto string          `json:"producto"`
	Cantidad int             `json:"cantidad"`
	Venta    decimal.Decimal `json:"venta"`
	Costo    decimal.Decimal `json:"costo"`
	Ganancia decimal.Decimal `json:"ganancia"`
	Margen   decimal.Decimal `json:"margen"` // percentage
}

// AlertaStock flags a variant at or below its minimum stock.
type AlertaStock struct {
	ProductoID  string `json:"producto_id"`
	Producto    string `json:"producto"`
	SKU         string `json:"sku"`
	Talle       string `json:"talle"`
	Color       string `json:"color"`
	Stock       int    `json:"stock"`
	StockMinimo int    `json:"stock_minimo"`
}

// ResumenResponse is the dashboard summary card payload.
type ResumenResponse struct {
	VentasTotal      decimal.Decimal `json:"ventas_total"`
	VentasHoy        decimal.Decimal `json:"ventas_hoy"`
	UnidadesVendidas int             `json:"unidades_vendidas"`
	GananciaBruta    decimal.Decimal `json:"ganancia_bruta"`
	MargenPromedio   decimal.Decimal `json:"margen_promedio"` // percentage
	GastosTotal      decimal.Decimal `json:"gastos_total"`
	AlertasStock     int             `json:"alertas_stock"`
}
