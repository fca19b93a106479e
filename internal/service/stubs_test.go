package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/vibesind/vibes-gestion/internal/dto"
	"github.com/vibesind/vibes-gestion/internal/model"
	"github.com/vibesind/vibes-gestion/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// In-memory repository stubs. DB() returns nil so runTx executes the
// callback directly, without a real transaction.

// ── Productos ────────────────────────────────────────────────────────────────

type stubProductoRepo struct {
	productos map[uuid.UUID]*model.Producto
	// forzarFaltaStock makes every conditional decrement fail, simulating
	// a concurrent sale draining the row between read and update.
	forzarFaltaStock bool
}

func newStubProductoRepo() *stubProductoRepo {
	return &stubProductoRepo{productos: make(map[uuid.UUID]*model.Producto)}
}

func (r *stubProductoRepo) agregar(p *model.Producto) *model.Producto {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.productos[p.ID] = p
	return p
}

func (r *stubProductoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Producto, error) {
	p, ok := r.productos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProductoRepo) FindBySKU(_ context.Context, sku string) (*model.Producto, error) {
	for _, p := range r.productos {
		if p.SKU == sku {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubProductoRepo) variantes(skuBase string) []model.Producto {
	var out []model.Producto
	for _, p := range r.productos {
		if p.SkuBase == skuBase {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Talle != out[j].Talle {
			return out[i].Talle < out[j].Talle
		}
		return out[i].Color < out[j].Color
	})
	return out
}

func (r *stubProductoRepo) FindVariantes(_ context.Context, skuBase string) ([]model.Producto, error) {
	return r.variantes(skuBase), nil
}

func (r *stubProductoRepo) FindVariantesTx(_ *gorm.DB, skuBase string) ([]model.Producto, error) {
	return r.variantes(skuBase), nil
}

func (r *stubProductoRepo) List(_ context.Context, _ dto.ProductoFilter) ([]model.Producto, int64, error) {
	var out []model.Producto
	for _, p := range r.productos {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SKU < out[j].SKU })
	return out, int64(len(out)), nil
}

func (r *stubProductoRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.productos, id)
	return nil
}

func (r *stubProductoRepo) CountByCategoria(_ context.Context, categoriaID uuid.UUID) (int64, error) {
	var n int64
	for _, p := range r.productos {
		if p.CategoriaID == categoriaID {
			n++
		}
	}
	return n, nil
}

func (r *stubProductoRepo) FindBajoStock(_ context.Context) ([]model.Producto, error) {
	var out []model.Producto
	for _, p := range r.productos {
		if p.Stock <= p.StockMinimo {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubProductoRepo) CreateTx(_ *gorm.DB, p *model.Producto) error {
	r.agregar(p)
	return nil
}

func (r *stubProductoRepo) UpdateTx(_ *gorm.DB, p *model.Producto) error {
	if _, ok := r.productos[p.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.productos[p.ID] = p
	return nil
}

func (r *stubProductoRepo) DeleteTx(_ *gorm.DB, id uuid.UUID) error {
	delete(r.productos, id)
	return nil
}

func (r *stubProductoRepo) DescontarStockTx(_ *gorm.DB, id uuid.UUID, cantidad int) (int, error) {
	if r.forzarFaltaStock {
		return 0, repository.ErrStockInsuficiente
	}
	p, ok := r.productos[id]
	if !ok {
		return 0, gorm.ErrRecordNotFound
	}
	if p.Stock < cantidad {
		return 0, repository.ErrStockInsuficiente
	}
	p.Stock -= cantidad
	return p.Stock, nil
}

func (r *stubProductoRepo) IncrementarStockTx(_ *gorm.DB, id uuid.UUID, cantidad int) (int, error) {
	p, ok := r.productos[id]
	if !ok {
		return 0, gorm.ErrRecordNotFound
	}
	p.Stock += cantidad
	return p.Stock, nil
}

func (r *stubProductoRepo) DB() *gorm.DB { return nil }

var _ repository.ProductoRepository = (*stubProductoRepo)(nil)

// ── Categorías ───────────────────────────────────────────────────────────────

type stubCategoriaRepo struct {
	categorias map[uuid.UUID]*model.Categoria
}

func newStubCategoriaRepo() *stubCategoriaRepo {
	return &stubCategoriaRepo{categorias: make(map[uuid.UUID]*model.Categoria)}
}

func (r *stubCategoriaRepo) agregar(nombre string) *model.Categoria {
	c := &model.Categoria{ID: uuid.New(), Nombre: nombre}
	r.categorias[c.ID] = c
	return c
}

func (r *stubCategoriaRepo) Crear(_ context.Context, c *model.Categoria) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.categorias[c.ID] = c
	return nil
}

func (r *stubCategoriaRepo) Listar(_ context.Context) ([]model.Categoria, error) {
	var out []model.Categoria
	for _, c := range r.categorias {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nombre < out[j].Nombre })
	return out, nil
}

func (r *stubCategoriaRepo) ObtenerPorID(_ context.Context, id uuid.UUID) (*model.Categoria, error) {
	c, ok := r.categorias[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubCategoriaRepo) ObtenerPorNombre(_ context.Context, nombre string) (*model.Categoria, error) {
	for _, c := range r.categorias {
		if c.Nombre == nombre {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubCategoriaRepo) Actualizar(_ context.Context, c *model.Categoria) error {
	r.categorias[c.ID] = c
	return nil
}

func (r *stubCategoriaRepo) Eliminar(_ context.Context, id uuid.UUID) error {
	delete(r.categorias, id)
	return nil
}

var _ repository.CategoriaRepository = (*stubCategoriaRepo)(nil)

// ── Clientes ─────────────────────────────────────────────────────────────────

type stubClienteRepo struct {
	clientes map[uuid.UUID]*model.Cliente
}

func newStubClienteRepo() *stubClienteRepo {
	return &stubClienteRepo{clientes: make(map[uuid.UUID]*model.Cliente)}
}

func (r *stubClienteRepo) Crear(_ context.Context, c *model.Cliente) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.clientes[c.ID] = c
	return nil
}

func (r *stubClienteRepo) CrearTx(_ *gorm.DB, c *model.Cliente) error {
	return r.Crear(context.Background(), c)
}

func (r *stubClienteRepo) Listar(_ context.Context, nombre string) ([]model.Cliente, error) {
	var out []model.Cliente
	for _, c := range r.clientes {
		out = append(out, *c)
	}
	return out, nil
}

func (r *stubClienteRepo) ObtenerPorID(_ context.Context, id uuid.UUID) (*model.Cliente, error) {
	c, ok := r.clientes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubClienteRepo) Actualizar(_ context.Context, c *model.Cliente) error {
	r.clientes[c.ID] = c
	return nil
}

func (r *stubClienteRepo) Eliminar(_ context.Context, id uuid.UUID) error {
	delete(r.clientes, id)
	return nil
}

var _ repository.ClienteRepository = (*stubClienteRepo)(nil)

// ── Proveedores ──────────────────────────────────────────────────────────────

type stubProveedorRepo struct {
	proveedores map[uuid.UUID]*model.Proveedor
}

func newStubProveedorRepo() *stubProveedorRepo {
	return &stubProveedorRepo{proveedores: make(map[uuid.UUID]*model.Proveedor)}
}

func (r *stubProveedorRepo) agregar(nombre string) *model.Proveedor {
	p := &model.Proveedor{ID: uuid.New(), Nombre: nombre}
	r.proveedores[p.ID] = p
	return p
}

func (r *stubProveedorRepo) Crear(_ context.Context, p *model.Proveedor) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.proveedores[p.ID] = p
	return nil
}

func (r *stubProveedorRepo) Listar(_ context.Context, nombre string) ([]model.Proveedor, error) {
	var out []model.Proveedor
	for _, p := range r.proveedores {
		if nombre != "" && !strings.Contains(strings.ToLower(p.Nombre), strings.ToLower(nombre)) {
			continue
		}
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nombre < out[j].Nombre })
	return out, nil
}

func (r *stubProveedorRepo) ObtenerPorID(_ context.Context, id uuid.UUID) (*model.Proveedor, error) {
	p, ok := r.proveedores[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProveedorRepo) Actualizar(_ context.Context, p *model.Proveedor) error {
	r.proveedores[p.ID] = p
	return nil
}

func (r *stubProveedorRepo) Eliminar(_ context.Context, id uuid.UUID) error {
	delete(r.proveedores, id)
	return nil
}

var _ repository.ProveedorRepository = (*stubProveedorRepo)(nil)

// ── Presupuestos ─────────────────────────────────────────────────────────────

type stubPresupuestoRepo struct {
	presupuestos map[uuid.UUID]*model.Presupuesto
}

func newStubPresupuestoRepo() *stubPresupuestoRepo {
	return &stubPresupuestoRepo{presupuestos: make(map[uuid.UUID]*model.Presupuesto)}
}

func (r *stubPresupuestoRepo) CreateTx(_ *gorm.DB, p *model.Presupuesto) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	for i := range p.Items {
		if p.Items[i].ID == uuid.Nil {
			p.Items[i].ID = uuid.New()
		}
		p.Items[i].PresupuestoID = p.ID
	}
	r.presupuestos[p.ID] = p
	return nil
}

func (r *stubPresupuestoRepo) UpdateTx(_ *gorm.DB, p *model.Presupuesto) error {
	existing, ok := r.presupuestos[p.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	items := existing.Items
	r.presupuestos[p.ID] = p
	if p.Items == nil {
		p.Items = items
	}
	return nil
}

func (r *stubPresupuestoRepo) DeleteItemsTx(_ *gorm.DB, presupuestoID uuid.UUID) error {
	if p, ok := r.presupuestos[presupuestoID]; ok {
		p.Items = nil
	}
	return nil
}

func (r *stubPresupuestoRepo) CreateItemsTx(_ *gorm.DB, items []model.PresupuestoItem) error {
	if len(items) == 0 {
		return nil
	}
	p, ok := r.presupuestos[items[0].PresupuestoID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for i := range items {
		if items[i].ID == uuid.Nil {
			items[i].ID = uuid.New()
		}
	}
	p.Items = append(p.Items, items...)
	return nil
}

func (r *stubPresupuestoRepo) DeleteTx(_ *gorm.DB, id uuid.UUID) error {
	delete(r.presupuestos, id)
	return nil
}

func (r *stubPresupuestoRepo) UpdateEstadoTx(_ *gorm.DB, id uuid.UUID, estado string) error {
	p, ok := r.presupuestos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Estado = estado
	return nil
}

func (r *stubPresupuestoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Presupuesto, error) {
	p, ok := r.presupuestos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubPresupuestoRepo) List(_ context.Context, filter dto.PresupuestoFilter) ([]model.Presupuesto, int64, error) {
	var out []model.Presupuesto
	for _, p := range r.presupuestos {
		if filter.Estado != "" && p.Estado != filter.Estado {
			continue
		}
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *stubPresupuestoRepo) UpdateEstado(_ context.Context, id uuid.UUID, estado string) error {
	return r.UpdateEstadoTx(nil, id, estado)
}

func (r *stubPresupuestoRepo) DB() *gorm.DB { return nil }

var _ repository.PresupuestoRepository = (*stubPresupuestoRepo)(nil)

// ── Ventas ───────────────────────────────────────────────────────────────────

type stubVentaRepo struct {
	ventas map[uuid.UUID]*model.Venta
}

func newStubVentaRepo() *stubVentaRepo {
	return &stubVentaRepo{ventas: make(map[uuid.UUID]*model.Venta)}
}

func (r *stubVentaRepo) CreateTx(_ *gorm.DB, v *model.Venta) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	if v.CreatedAt.IsZero() {
		v.CreatedAt = time.Now()
	}
	for i := range v.Items {
		if v.Items[i].ID == uuid.Nil {
			v.Items[i].ID = uuid.New()
		}
		v.Items[i].VentaID = v.ID
	}
	r.ventas[v.ID] = v
	return nil
}

func (r *stubVentaRepo) DeleteItemsTx(_ *gorm.DB, ventaID uuid.UUID) error {
	if v, ok := r.ventas[ventaID]; ok {
		v.Items = nil
	}
	return nil
}

func (r *stubVentaRepo) DeleteTx(_ *gorm.DB, id uuid.UUID) error {
	delete(r.ventas, id)
	return nil
}

func (r *stubVentaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Venta, error) {
	v, ok := r.ventas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return v, nil
}

func (r *stubVentaRepo) List(_ context.Context, _ dto.VentaFilter) ([]model.Venta, int64, error) {
	var out []model.Venta
	for _, v := range r.ventas {
		out = append(out, *v)
	}
	return out, int64(len(out)), nil
}

func (r *stubVentaRepo) ListEntreFechas(_ context.Context, desde, hasta time.Time) ([]model.Venta, error) {
	var out []model.Venta
	for _, v := range r.ventas {
		if !desde.IsZero() && v.CreatedAt.Before(desde) {
			continue
		}
		if !hasta.IsZero() && !v.CreatedAt.Before(hasta) {
			continue
		}
		out = append(out, *v)
	}
	return out, nil
}

func (r *stubVentaRepo) DB() *gorm.DB { return nil }

var _ repository.VentaRepository = (*stubVentaRepo)(nil)

// ── Pedidos ──────────────────────────────────────────────────────────────────

type stubPedidoRepo struct {
	pedidos map[uuid.UUID]*model.Pedido
}

func newStubPedidoRepo() *stubPedidoRepo {
	return &stubPedidoRepo{pedidos: make(map[uuid.UUID]*model.Pedido)}
}

func (r *stubPedidoRepo) CreateTx(_ *gorm.DB, p *model.Pedido) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	for i := range p.Items {
		if p.Items[i].ID == uuid.Nil {
			p.Items[i].ID = uuid.New()
		}
		p.Items[i].PedidoID = p.ID
	}
	r.pedidos[p.ID] = p
	return nil
}

func (r *stubPedidoRepo) UpdateEstadoTx(_ *gorm.DB, id uuid.UUID, estado string, fechaRecibido *time.Time) error {
	p, ok := r.pedidos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Estado = estado
	if fechaRecibido != nil {
		p.FechaRecibido = fechaRecibido
	}
	return nil
}

func (r *stubPedidoRepo) DeleteItemsTx(_ *gorm.DB, pedidoID uuid.UUID) error {
	if p, ok := r.pedidos[pedidoID]; ok {
		p.Items = nil
	}
	return nil
}

func (r *stubPedidoRepo) DeleteTx(_ *gorm.DB, id uuid.UUID) error {
	delete(r.pedidos, id)
	return nil
}

func (r *stubPedidoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Pedido, error) {
	p, ok := r.pedidos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubPedidoRepo) List(_ context.Context, filter dto.PedidoFilter) ([]model.Pedido, int64, error) {
	var out []model.Pedido
	for _, p := range r.pedidos {
		if filter.Estado != "" && p.Estado != filter.Estado {
			continue
		}
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *stubPedidoRepo) DB() *gorm.DB { return nil }

var _ repository.PedidoRepository = (*stubPedidoRepo)(nil)

// ── Gastos ───────────────────────────────────────────────────────────────────

type stubGastoRepo struct {
	gastos map[uuid.UUID]*model.Gasto
	seq    int
}

func newStubGastoRepo() *stubGastoRepo {
	return &stubGastoRepo{gastos: make(map[uuid.UUID]*model.Gasto)}
}

func (r *stubGastoRepo) Crear(_ context.Context, g *model.Gasto) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	r.gastos[g.ID] = g
	return nil
}

func (r *stubGastoRepo) ObtenerPorID(_ context.Context, id uuid.UUID) (*model.Gasto, error) {
	g, ok := r.gastos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return g, nil
}

func (r *stubGastoRepo) List(_ context.Context, _ dto.GastoFilter) ([]model.Gasto, int64, error) {
	var out []model.Gasto
	for _, g := range r.gastos {
		out = append(out, *g)
	}
	return out, int64(len(out)), nil
}

func (r *stubGastoRepo) Actualizar(_ context.Context, g *model.Gasto) error {
	r.gastos[g.ID] = g
	return nil
}

func (r *stubGastoRepo) Eliminar(_ context.Context, id uuid.UUID) error {
	delete(r.gastos, id)
	return nil
}

func (r *stubGastoRepo) NextNumero(_ context.Context) (int, error) {
	r.seq++
	return r.seq, nil
}

func (r *stubGastoRepo) SumEntreFechas(_ context.Context, desde, hasta time.Time) ([]model.Gasto, error) {
	var out []model.Gasto
	for _, g := range r.gastos {
		if !desde.IsZero() && g.Fecha.Before(desde) {
			continue
		}
		if !hasta.IsZero() && !g.Fecha.Before(hasta) {
			continue
		}
		out = append(out, *g)
	}
	return out, nil
}

var _ repository.GastoRepository = (*stubGastoRepo)(nil)

// ── Movimientos de stock ─────────────────────────────────────────────────────

type stubMovimientoRepo struct {
	movimientos []model.MovimientoStock
}

func (r *stubMovimientoRepo) Create(_ context.Context, m *model.MovimientoStock) error {
	return r.CreateTx(nil, m)
}

func (r *stubMovimientoRepo) CreateTx(_ *gorm.DB, m *model.MovimientoStock) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.movimientos = append(r.movimientos, *m)
	return nil
}

func (r *stubMovimientoRepo) List(_ context.Context, _ repository.MovimientoStockFilter) ([]model.MovimientoStock, int64, error) {
	return r.movimientos, int64(len(r.movimientos)), nil
}

var _ repository.MovimientoStockRepository = (*stubMovimientoRepo)(nil)
