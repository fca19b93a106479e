package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vibesind/vibes-gestion/internal/dto"
	"github.com/vibesind/vibes-gestion/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type presupuestoFixture struct {
	svc          PresupuestoService
	repo         *stubPresupuestoRepo
	ventaRepo    *stubVentaRepo
	productoRepo *stubProductoRepo
	clienteRepo  *stubClienteRepo
	movRepo      *stubMovimientoRepo
}

func newPresupuestoFixture() *presupuestoFixture {
	f := &presupuestoFixture{
		repo:         newStubPresupuestoRepo(),
		ventaRepo:    newStubVentaRepo(),
		productoRepo: newStubProductoRepo(),
		clienteRepo:  newStubClienteRepo(),
		movRepo:      &stubMovimientoRepo{},
	}
	f.svc = NewPresupuestoService(f.repo, f.ventaRepo, f.productoRepo, f.clienteRepo, f.movRepo, nil, "", "Vibes Indumentaria")
	return f
}

func (f *presupuestoFixture) producto(nombre, sku string, precio int64, stock int) *model.Producto {
	return f.productoRepo.agregar(&model.Producto{
		Nombre:  nombre,
		SKU:     sku,
		SkuBase: sku,
		Talle:   "M",
		Color:   "Rojo",
		Precio:  decimal.NewFromInt(precio),
		Costo:   decimal.NewFromInt(precio / 2),
		Stock:   stock,
	})
}

// presupuestoAprobado seeds a quote ready for conversion, with items
// preloaded the way the repository returns them.
func (f *presupuestoFixture) presupuestoAprobado(t *testing.T, p *model.Producto, cantidad int) *model.Presupuesto {
	t.Helper()
	precioTotal := p.Precio.Mul(decimal.NewFromInt(int64(cantidad)))
	pre := &model.Presupuesto{
		ClienteNombre: "Marta Suárez",
		Estado:        model.PresupuestoAprobado,
		Subtotal:      precioTotal,
		Descuento:     decimal.Zero,
		Total:         precioTotal,
		ValidoHasta:   time.Now().AddDate(0, 0, 15),
		Items: []model.PresupuestoItem{{
			ProductoID:     p.ID,
			Cantidad:       cantidad,
			PrecioUnitario: p.Precio,
			PrecioTotal:    precioTotal,
			Producto:       p,
		}},
	}
	require.NoError(t, f.repo.CreateTx(nil, pre))
	return pre
}

func TestCrearPresupuesto(t *testing.T) {
	ctx := context.Background()
	f := newPresupuestoFixture()
	p := f.producto("Remera básica", "REM001MROJO", 8000, 10)

	req := dto.GuardarPresupuestoRequest{
		ClienteNombre: "Marta Suárez",
		NuevoCliente:  true,
		DescuentoPct:  decimal.NewFromInt(10),
		ValidoHasta:   "2026-09-30",
		Items: []dto.ItemPresupuestoRequest{
			{ProductoID: p.ID.String(), Cantidad: 3},
		},
	}
	resp, err := f.svc.Crear(ctx, uuid.New(), req)
	require.NoError(t, err)

	assert.Equal(t, model.PresupuestoBorrador, resp.Estado)
	assert.True(t, resp.Subtotal.Equal(decimal.NewFromInt(24000)))
	assert.True(t, resp.Descuento.Equal(decimal.NewFromInt(2400)))
	assert.True(t, resp.Total.Equal(decimal.NewFromInt(21600)))
	require.Len(t, resp.Items, 1)
	// The line price is snapshotted from the product at creation time.
	assert.True(t, resp.Items[0].PrecioUnitario.Equal(decimal.NewFromInt(8000)))

	// NuevoCliente creates the client record alongside the quote.
	assert.Len(t, f.clienteRepo.clientes, 1)

	// Stock is untouched until conversion.
	assert.Equal(t, 10, p.Stock)
}

func TestCrearPresupuestoFechaInvalida(t *testing.T) {
	f := newPresupuestoFixture()
	p := f.producto("Remera básica", "REM001MROJO", 8000, 10)

	req := dto.GuardarPresupuestoRequest{
		ClienteNombre: "Marta Suárez",
		ValidoHasta:   "30/09/2026",
		Items: []dto.ItemPresupuestoRequest{
			{ProductoID: p.ID.String(), Cantidad: 1},
		},
	}
	_, err := f.svc.Crear(context.Background(), uuid.New(), req)
	require.Error(t, err)
}

func TestActualizarPresupuestoSoloBorrador(t *testing.T) {
	ctx := context.Background()
	f := newPresupuestoFixture()
	p := f.producto("Remera básica", "REM001MROJO", 8000, 10)
	pre := f.presupuestoAprobado(t, p, 1)

	req := dto.GuardarPresupuestoRequest{
		ClienteNombre: "Marta Suárez",
		ValidoHasta:   "2026-09-30",
		Items: []dto.ItemPresupuestoRequest{
			{ProductoID: p.ID.String(), Cantidad: 2},
		},
	}
	_, err := f.svc.Actualizar(ctx, pre.ID, req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "borrador")
}

func TestCambiarEstadoPresupuesto(t *testing.T) {
	ctx := context.Background()
	f := newPresupuestoFixture()
	p := f.producto("Remera básica", "REM001MROJO", 8000, 10)
	pre := f.presupuestoAprobado(t, p, 1)
	pre.Estado = model.PresupuestoBorrador

	// Forward transitions succeed in order.
	require.NoError(t, f.svc.CambiarEstado(ctx, pre.ID, model.PresupuestoEnviado))
	assert.Equal(t, model.PresupuestoEnviado, pre.Estado)
	require.NoError(t, f.svc.CambiarEstado(ctx, pre.ID, model.PresupuestoAprobado))

	// aprobado only moves forward via conversion, never by estado change.
	err := f.svc.CambiarEstado(ctx, pre.ID, model.PresupuestoConvertido)
	require.Error(t, err)

	// No going back.
	err = f.svc.CambiarEstado(ctx, pre.ID, model.PresupuestoBorrador)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "transición de estado inválida")
}

func TestCambiarEstadoSaltoInvalido(t *testing.T) {
	ctx := context.Background()
	f := newPresupuestoFixture()
	p := f.producto("Remera básica", "REM001MROJO", 8000, 10)
	pre := f.presupuestoAprobado(t, p, 1)
	pre.Estado = model.PresupuestoBorrador

	// borrador cannot jump straight to aprobado.
	err := f.svc.CambiarEstado(ctx, pre.ID, model.PresupuestoAprobado)
	require.Error(t, err)

	// rechazado is terminal.
	pre.Estado = model.PresupuestoRechazado
	err = f.svc.CambiarEstado(ctx, pre.ID, model.PresupuestoEnviado)
	require.Error(t, err)
}

func TestConvertirAVenta(t *testing.T) {
	ctx := context.Background()
	f := newPresupuestoFixture()
	p := f.producto("Remera básica", "REM001MROJO", 8000, 10)
	pre := f.presupuestoAprobado(t, p, 3)

	resp, err := f.svc.ConvertirAVenta(ctx, pre.ID, uuid.New())
	require.NoError(t, err)
	assert.Equal(t, pre.ID.String(), resp.PresupuestoID)
	assert.True(t, resp.Total.Equal(pre.Total))

	ventaID, err := uuid.Parse(resp.VentaID)
	require.NoError(t, err)
	venta, err := f.ventaRepo.FindByID(ctx, ventaID)
	require.NoError(t, err)

	// The sale carries the quoted amounts and a pending payment method.
	assert.Equal(t, model.MetodoPagoPendiente, venta.MetodoPago)
	assert.True(t, venta.Total.Equal(pre.Total))
	require.Len(t, venta.Items, 1)
	assert.True(t, venta.Items[0].PrecioUnitario.Equal(decimal.NewFromInt(8000)))
	require.NotNil(t, venta.Notas)
	assert.Equal(t, fmt.Sprintf("Convertido desde presupuesto #%s", cortarID(pre.ID)), *venta.Notas)

	// Stock dropped and the movement was journaled.
	assert.Equal(t, 7, p.Stock)
	require.Len(t, f.movRepo.movimientos, 1)
	mov := f.movRepo.movimientos[0]
	assert.Equal(t, model.MovimientoConversion, mov.Tipo)
	assert.Equal(t, -3, mov.Cantidad)
	assert.Equal(t, 10, mov.StockAnterior)
	assert.Equal(t, 7, mov.StockNuevo)

	assert.Equal(t, model.PresupuestoConvertido, pre.Estado)

	// A converted quote cannot be converted twice.
	_, err = f.svc.ConvertirAVenta(ctx, pre.ID, uuid.New())
	require.Error(t, err)
}

func TestConvertirAVentaSoloAprobados(t *testing.T) {
	ctx := context.Background()
	f := newPresupuestoFixture()
	p := f.producto("Remera básica", "REM001MROJO", 8000, 10)
	pre := f.presupuestoAprobado(t, p, 1)
	pre.Estado = model.PresupuestoEnviado

	_, err := f.svc.ConvertirAVenta(ctx, pre.ID, uuid.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "aprobados")
}

func TestConvertirAVentaStockInsuficiente(t *testing.T) {
	ctx := context.Background()
	f := newPresupuestoFixture()
	p := f.producto("Remera básica", "REM001MROJO", 8000, 2)
	pre := f.presupuestoAprobado(t, p, 5)

	_, err := f.svc.ConvertirAVenta(ctx, pre.ID, uuid.New())
	require.Error(t, err)
	assert.Equal(t, "Stock insuficiente para Remera básica. Stock disponible: 2", err.Error())

	// Nothing moved: the quote stays aprobado and stock is intact.
	assert.Equal(t, model.PresupuestoAprobado, pre.Estado)
	assert.Equal(t, 2, p.Stock)
	assert.Empty(t, f.movRepo.movimientos)
}

func TestConvertirAVentaStockAgotadoEnTransaccion(t *testing.T) {
	// A concurrent sale drains the row after the pre-flight check; the
	// conditional decrement catches it and the quote is not converted.
	ctx := context.Background()
	f := newPresupuestoFixture()
	p := f.producto("Remera básica", "REM001MROJO", 8000, 10)
	pre := f.presupuestoAprobado(t, p, 3)
	f.productoRepo.forzarFaltaStock = true

	_, err := f.svc.ConvertirAVenta(ctx, pre.ID, uuid.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Stock insuficiente para Remera básica")
	assert.Equal(t, model.PresupuestoAprobado, pre.Estado)
	assert.Empty(t, f.movRepo.movimientos)
}

func TestEliminarPresupuesto(t *testing.T) {
	ctx := context.Background()
	f := newPresupuestoFixture()
	p := f.producto("Remera básica", "REM001MROJO", 8000, 10)
	pre := f.presupuestoAprobado(t, p, 1)

	require.NoError(t, f.svc.Eliminar(ctx, pre.ID))
	_, err := f.repo.FindByID(ctx, pre.ID)
	require.Error(t, err)

	err = f.svc.Eliminar(ctx, pre.ID)
	require.Error(t, err)
}

func TestEnviarPorEmailSinDispatcher(t *testing.T) {
	ctx := context.Background()
	f := newPresupuestoFixture()
	p := f.producto("Remera básica", "REM001MROJO", 8000, 10)
	pre := f.presupuestoAprobado(t, p, 1)

	err := f.svc.EnviarPorEmail(ctx, pre.ID, "cliente@mail.com")
	require.Error(t, err)

	err = f.svc.EnviarPorEmail(ctx, uuid.New(), "cliente@mail.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no encontrado")
}

func TestGenerarPDFPresupuesto(t *testing.T) {
	ctx := context.Background()
	f := newPresupuestoFixture()
	dir := t.TempDir()
	f.svc = NewPresupuestoService(f.repo, f.ventaRepo, f.productoRepo, f.clienteRepo, f.movRepo, nil, dir, "Vibes Indumentaria")
	p := f.producto("Remera básica", "REM001MROJO", 8000, 10)
	pre := f.presupuestoAprobado(t, p, 2)

	path, err := f.svc.GenerarPDF(ctx, pre.ID)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "presupuesto_"+cortarID(pre.ID)+".pdf"), path)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestGenerarPDFPresupuestoInexistente(t *testing.T) {
	f := newPresupuestoFixture()
	_, err := f.svc.GenerarPDF(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no encontrado")
}

func TestConvertirAVentaRegistraStockReal(t *testing.T) {
	ctx := context.Background()
	f := newPresupuestoFixture()
	p := f.producto("Remera básica", "REM001MROJO", 8000, 6)

	// Snapshot preloaded before otra venta drained part of the stock: the
	// journal must record the real before/after values, not the snapshot.
	desactualizado := *p
	desactualizado.Stock = 10

	precioTotal := p.Precio.Mul(decimal.NewFromInt(2))
	pre := &model.Presupuesto{
		ClienteNombre: "Marta Suárez",
		Estado:        model.PresupuestoAprobado,
		Subtotal:      precioTotal,
		Descuento:     decimal.Zero,
		Total:         precioTotal,
		ValidoHasta:   time.Now().AddDate(0, 0, 15),
		Items: []model.PresupuestoItem{{
			ProductoID:     p.ID,
			Cantidad:       2,
			PrecioUnitario: p.Precio,
			PrecioTotal:    precioTotal,
			Producto:       &desactualizado,
		}},
	}
	require.NoError(t, f.repo.CreateTx(nil, pre))

	_, err := f.svc.ConvertirAVenta(ctx, pre.ID, uuid.New())
	require.NoError(t, err)

	assert.Equal(t, 4, p.Stock)
	require.Len(t, f.movRepo.movimientos, 1)
	mov := f.movRepo.movimientos[0]
	assert.Equal(t, 6, mov.StockAnterior)
	assert.Equal(t, 4, mov.StockNuevo)
	assert.Equal(t, -2, mov.Cantidad)
}
