package service

import (
	"context"
	"sort"
	"time"

	"github.com/vibesind/vibes-gestion/internal/dto"
	"github.com/vibesind/vibes-gestion/internal/repository"

	"github.com/shopspring/decimal"
)

var cien = decimal.NewFromInt(100)

// ReporteService computes sales, profit and stock reports. Aggregation
// happens in application code over preloaded ventas; at the volumes of a
// small retail shop this beats maintaining a parallel set of SQL rollups.
type ReporteService interface {
	VentasPorDia(ctx context.Context, filter dto.ReporteFilter) ([]dto.VentaDiaria, error)
	TopProductos(ctx context.Context, filter dto.ReporteFilter) ([]dto.TopProducto, error)
	Ganancias(ctx context.Context, filter dto.ReporteFilter) ([]dto.GananciaProducto, error)
	AlertasStock(ctx context.Context) ([]dto.AlertaStock, error)
	Resumen(ctx context.Context, filter dto.ReporteFilter) (*dto.ResumenResponse, error)
}

type reporteService struct {
	ventaRepo    repository.VentaRepository
	productoRepo repository.ProductoRepository
	gastoRepo    repository.GastoRepository
}

func NewReporteService(
	ventaRepo repository.VentaRepository,
	productoRepo repository.ProductoRepository,
	gastoRepo repository.GastoRepository,
) ReporteService {
	return &reporteService{
		ventaRepo:    ventaRepo,
		productoRepo: productoRepo,
		gastoRepo:    gastoRepo,
	}
}

// parseRango turns the YYYY-MM-DD bounds into a [desde, hasta) interval.
// hasta is advanced one day so the upper bound is inclusive.
func parseRango(filter dto.ReporteFilter) (time.Time, time.Time) {
	var desde, hasta time.Time
	if filter.Desde != "" {
		if t, err := time.Parse("2006-01-02", filter.Desde); err == nil {
			desde = t
		}
	}
	if filter.Hasta != "" {
		if t, err := time.Parse("2006-01-02", filter.Hasta); err == nil {
			hasta = t.AddDate(0, 0, 1)
		}
	}
	return desde, hasta
}

func (s *reporteService) VentasPorDia(ctx context.Context, filter dto.ReporteFilter) ([]dto.VentaDiaria, error) {
	desde, hasta := parseRango(filter)
	ventas, err := s.ventaRepo.ListEntreFechas(ctx, desde, hasta)
	if err != nil {
		return nil, err
	}

	porDia := make(map[string]*dto.VentaDiaria)
	for i := range ventas {
		dia := ventas[i].CreatedAt.Format("2006-01-02")
		agg, ok := porDia[dia]
		if !ok {
			agg = &dto.VentaDiaria{Fecha: dia, Total: decimal.Zero}
			porDia[dia] = agg
		}
		agg.Total = agg.Total.Add(ventas[i].Total)
		agg.Cantidad++
	}

	out := make([]dto.VentaDiaria, 0, len(porDia))
	for _, agg := range porDia {
		out = append(out, *agg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Fecha < out[j].Fecha })
	return out, nil
}

// TopProductos ranks products by units sold and keeps the top 10.
func (s *reporteService) TopProductos(ctx context.Context, filter dto.ReporteFilter) ([]dto.TopProducto, error) {
	desde, hasta := parseRango(filter)
	ventas, err := s.ventaRepo.ListEntreFechas(ctx, desde, hasta)
	if err != nil {
		return nil, err
	}

	porProducto := make(map[string]*dto.TopProducto)
	for i := range ventas {
		for _, item := range ventas[i].Items {
			nombre := item.ProductoID.String()
			if item.Producto != nil {
				nombre = item.Producto.Nombre
			}
			agg, ok := porProducto[nombre]
			if !ok {
				agg = &dto.TopProducto{Producto: nombre, Total: decimal.Zero}
				porProducto[nombre] = agg
			}
			agg.Cantidad += item.Cantidad
			agg.Total = agg.Total.Add(item.PrecioTotal)
		}
	}

	out := make([]dto.TopProducto, 0, len(porProducto))
	for _, agg := range porProducto {
		out = append(out, *agg)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Cantidad != out[j].Cantidad {
			return out[i].Cantidad > out[j].Cantidad
		}
		return out[i].Producto < out[j].Producto
	})
	if len(out) > 10 {
		out = out[:10]
	}
	return out, nil
}

// Ganancias computes per-product profit: (precio_unitario − costo) ×
// cantidad, with margen = ganancia / venta × 100 (0 when venta is 0).
func (s *reporteService) Ganancias(ctx context.Context, filter dto.ReporteFilter) ([]dto.GananciaProducto, error) {
	desde, hasta := parseRango(filter)
	ventas, err := s.ventaRepo.ListEntreFechas(ctx, desde, hasta)
	if err != nil {
		return nil, err
	}

	porProducto := make(map[string]*dto.GananciaProducto)
	for i := range ventas {
		for _, item := range ventas[i].Items {
			nombre := item.ProductoID.String()
			costo := decimal.Zero
			if item.Producto != nil {
				nombre = item.Producto.Nombre
				costo = item.Producto.Costo
			}
			agg, ok := porProducto[nombre]
			if !ok {
				agg = &dto.GananciaProducto{
					Producto: nombre,
					Venta:    decimal.Zero,
					Costo:    decimal.Zero,
					Ganancia: decimal.Zero,
				}
				porProducto[nombre] = agg
			}
			cantidad := decimal.NewFromInt(int64(item.Cantidad))
			agg.Cantidad += item.Cantidad
			agg.Venta = agg.Venta.Add(item.PrecioUnitario.Mul(cantidad))
			agg.Costo = agg.Costo.Add(costo.Mul(cantidad))
			agg.Ganancia = agg.Ganancia.Add(item.PrecioUnitario.Sub(costo).Mul(cantidad))
		}
	}

	out := make([]dto.GananciaProducto, 0, len(porProducto))
	for _, agg := range porProducto {
		if agg.Venta.IsPositive() {
			agg.Margen = agg.Ganancia.Div(agg.Venta).Mul(cien).Round(2)
		} else {
			agg.Margen = decimal.Zero
		}
		out = append(out, *agg)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Ganancia.GreaterThan(out[j].Ganancia)
	})
	return out, nil
}

func (s *reporteService) AlertasStock(ctx context.Context) ([]dto.AlertaStock, error) {
	productos, err := s.productoRepo.FindBajoStock(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AlertaStock, 0, len(productos))
	for i := range productos {
		p := &productos[i]
		out = append(out, dto.AlertaStock{
			ProductoID:  p.ID.String(),
			Producto:    p.Nombre,
			SKU:         p.SKU,
			Talle:       p.Talle,
			Color:       p.Color,
			Stock:       p.Stock,
			StockMinimo: p.StockMinimo,
		})
	}
	return out, nil
}

// Resumen assembles the dashboard card payload for the given range.
func (s *reporteService) Resumen(ctx context.Context, filter dto.ReporteFilter) (*dto.ResumenResponse, error) {
	desde, hasta := parseRango(filter)
	ventas, err := s.ventaRepo.ListEntreFechas(ctx, desde, hasta)
	if err != nil {
		return nil, err
	}

	hoy := time.Now().Format("2006-01-02")
	resumen := &dto.ResumenResponse{
		VentasTotal:   decimal.Zero,
		VentasHoy:     decimal.Zero,
		GananciaBruta: decimal.Zero,
		GastosTotal:   decimal.Zero,
	}
	ingresos := decimal.Zero
	for i := range ventas {
		v := &ventas[i]
		resumen.VentasTotal = resumen.VentasTotal.Add(v.Total)
		if v.CreatedAt.Format("2006-01-02") == hoy {
			resumen.VentasHoy = resumen.VentasHoy.Add(v.Total)
		}
		for _, item := range v.Items {
			resumen.UnidadesVendidas += item.Cantidad
			costo := decimal.Zero
			if item.Producto != nil {
				costo = item.Producto.Costo
			}
			cantidad := decimal.NewFromInt(int64(item.Cantidad))
			ingresos = ingresos.Add(item.PrecioUnitario.Mul(cantidad))
			resumen.GananciaBruta = resumen.GananciaBruta.Add(item.PrecioUnitario.Sub(costo).Mul(cantidad))
		}
	}
	if ingresos.IsPositive() {
		resumen.MargenPromedio = resumen.GananciaBruta.Div(ingresos).Mul(cien).Round(2)
	} else {
		resumen.MargenPromedio = decimal.Zero
	}

	gastos, err := s.gastoRepo.SumEntreFechas(ctx, desde, hasta)
	if err != nil {
		return nil, err
	}
	for i := range gastos {
		resumen.GastosTotal = resumen.GastosTotal.Add(gastos[i].Monto)
	}

	alertas, err := s.productoRepo.FindBajoStock(ctx)
	if err != nil {
		return nil, err
	}
	resumen.AlertasStock = len(alertas)

	return resumen, nil
}
