package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/vibesind/vibes-gestion/internal/dto"
	"github.com/vibesind/vibes-gestion/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reporteFixture struct {
	svc          ReporteService
	ventaRepo    *stubVentaRepo
	productoRepo *stubProductoRepo
	gastoRepo    *stubGastoRepo
}

func newReporteFixture() *reporteFixture {
	f := &reporteFixture{
		ventaRepo:    newStubVentaRepo(),
		productoRepo: newStubProductoRepo(),
		gastoRepo:    newStubGastoRepo(),
	}
	f.svc = NewReporteService(f.ventaRepo, f.productoRepo, f.gastoRepo)
	return f
}

// venta seeds a sale of one product line at the given unit price/cost.
func (f *reporteFixture) venta(t *testing.T, nombre string, precio, costo int64, cantidad int, creada time.Time) {
	t.Helper()
	p := f.productoRepo.agregar(&model.Producto{
		Nombre: nombre,
		SKU:    fmt.Sprintf("%s-%d", nombre, len(f.productoRepo.productos)),
		Precio: decimal.NewFromInt(precio),
		Costo:  decimal.NewFromInt(costo),
		Stock:  100,
		// High minimum would trip the low-stock alert; keep it at zero.
	})
	total := decimal.NewFromInt(precio * int64(cantidad))
	v := &model.Venta{
		ClienteNombre: "Consumidor final",
		Subtotal:      total,
		Descuento:     decimal.Zero,
		Total:         total,
		MetodoPago:    "efectivo",
		CreatedAt:     creada,
		Items: []model.VentaItem{{
			ProductoID:     p.ID,
			Cantidad:       cantidad,
			PrecioUnitario: decimal.NewFromInt(precio),
			PrecioTotal:    total,
			Producto:       p,
		}},
	}
	require.NoError(t, f.ventaRepo.CreateTx(nil, v))
}

func TestVentasPorDia(t *testing.T) {
	ctx := context.Background()
	f := newReporteFixture()
	dia1 := time.Date(2026, 8, 10, 11, 0, 0, 0, time.UTC)
	dia2 := time.Date(2026, 8, 12, 16, 30, 0, 0, time.UTC)
	f.venta(t, "Remera", 8000, 3500, 2, dia1)
	f.venta(t, "Pantalón", 20000, 9000, 1, dia1)
	f.venta(t, "Campera", 45000, 21000, 1, dia2)

	out, err := f.svc.VentasPorDia(ctx, dto.ReporteFilter{Desde: "2026-08-01", Hasta: "2026-08-31"})
	require.NoError(t, err)
	require.Len(t, out, 2)

	assert.Equal(t, "2026-08-10", out[0].Fecha)
	assert.Equal(t, 2, out[0].Cantidad)
	assert.True(t, out[0].Total.Equal(decimal.NewFromInt(36000)))
	assert.Equal(t, "2026-08-12", out[1].Fecha)
	assert.True(t, out[1].Total.Equal(decimal.NewFromInt(45000)))
}

func TestVentasPorDiaRangoInclusivo(t *testing.T) {
	ctx := context.Background()
	f := newReporteFixture()
	// Late in the evening of the upper-bound day: still inside the range.
	f.venta(t, "Remera", 8000, 3500, 1, time.Date(2026, 8, 31, 23, 0, 0, 0, time.UTC))
	f.venta(t, "Pantalón", 20000, 9000, 1, time.Date(2026, 9, 1, 0, 30, 0, 0, time.UTC))

	out, err := f.svc.VentasPorDia(ctx, dto.ReporteFilter{Desde: "2026-08-01", Hasta: "2026-08-31"})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "2026-08-31", out[0].Fecha)
}

func TestTopProductos(t *testing.T) {
	ctx := context.Background()
	f := newReporteFixture()
	dia := time.Date(2026, 8, 10, 11, 0, 0, 0, time.UTC)
	// Twelve products with decreasing units sold; only ten survive.
	for i := 0; i < 12; i++ {
		f.venta(t, fmt.Sprintf("Producto %02d", i), 1000, 400, 12-i, dia)
	}

	out, err := f.svc.TopProductos(ctx, dto.ReporteFilter{})
	require.NoError(t, err)
	require.Len(t, out, 10)
	assert.Equal(t, "Producto 00", out[0].Producto)
	assert.Equal(t, 12, out[0].Cantidad)
	assert.Equal(t, 3, out[9].Cantidad)
}

func TestGanancias(t *testing.T) {
	ctx := context.Background()
	f := newReporteFixture()
	dia := time.Date(2026, 8, 10, 11, 0, 0, 0, time.UTC)
	f.venta(t, "Remera", 8000, 3500, 2, dia)

	out, err := f.svc.Ganancias(ctx, dto.ReporteFilter{})
	require.NoError(t, err)
	require.Len(t, out, 1)

	g := out[0]
	assert.Equal(t, "Remera", g.Producto)
	assert.Equal(t, 2, g.Cantidad)
	assert.True(t, g.Venta.Equal(decimal.NewFromInt(16000)))
	assert.True(t, g.Costo.Equal(decimal.NewFromInt(7000)))
	assert.True(t, g.Ganancia.Equal(decimal.NewFromInt(9000)))
	// 9000/16000 × 100 = 56.25
	assert.True(t, g.Margen.Equal(decimal.NewFromFloat(56.25)), "margen %s", g.Margen)
}

func TestGananciasMargenSinVenta(t *testing.T) {
	ctx := context.Background()
	f := newReporteFixture()
	// A gifted item: price 0, so margin must come out as 0, not a division error.
	f.venta(t, "Muestra", 0, 500, 1, time.Date(2026, 8, 10, 11, 0, 0, 0, time.UTC))

	out, err := f.svc.Ganancias(ctx, dto.ReporteFilter{})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.True(t, out[0].Margen.IsZero())
	assert.True(t, out[0].Ganancia.Equal(decimal.NewFromInt(-500)))
}

func TestAlertasStock(t *testing.T) {
	ctx := context.Background()
	f := newReporteFixture()
	f.productoRepo.agregar(&model.Producto{
		Nombre: "Remera básica", SKU: "REM001MROJO", Talle: "M", Color: "Rojo",
		Stock: 1, StockMinimo: 3,
	})
	f.productoRepo.agregar(&model.Producto{
		Nombre: "Pantalón cargo", SKU: "PAN001MNEGRO", Talle: "M", Color: "Negro",
		Stock: 20, StockMinimo: 3,
	})

	out, err := f.svc.AlertasStock(ctx)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "REM001MROJO", out[0].SKU)
	assert.Equal(t, 1, out[0].Stock)
	assert.Equal(t, 3, out[0].StockMinimo)
}

func TestResumen(t *testing.T) {
	ctx := context.Background()
	f := newReporteFixture()
	hoy := time.Now()
	ayer := hoy.AddDate(0, 0, -1)
	f.venta(t, "Remera", 8000, 3500, 2, hoy)
	f.venta(t, "Pantalón", 20000, 9000, 1, ayer)

	require.NoError(t, f.gastoRepo.Crear(ctx, &model.Gasto{
		NumeroGasto: "GAS-000001",
		Fecha:       hoy,
		Categoria:   "servicios",
		Descripcion: "Luz",
		Monto:       decimal.NewFromInt(30000),
		MetodoPago:  "debito",
	}))

	resumen, err := f.svc.Resumen(ctx, dto.ReporteFilter{})
	require.NoError(t, err)

	assert.True(t, resumen.VentasTotal.Equal(decimal.NewFromInt(36000)))
	assert.True(t, resumen.VentasHoy.Equal(decimal.NewFromInt(16000)))
	assert.Equal(t, 3, resumen.UnidadesVendidas)
	// (8000−3500)×2 + (20000−9000)×1 = 20000.
	assert.True(t, resumen.GananciaBruta.Equal(decimal.NewFromInt(20000)))
	// 20000/36000 × 100 ≈ 55.56
	assert.True(t, resumen.MargenPromedio.Equal(decimal.NewFromFloat(55.56)), "margen %s", resumen.MargenPromedio)
	assert.True(t, resumen.GastosTotal.Equal(decimal.NewFromInt(30000)))
	assert.Equal(t, 0, resumen.AlertasStock)
}
