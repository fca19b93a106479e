package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vibesind/vibes-gestion/internal/dto"
	"github.com/vibesind/vibes-gestion/internal/infra"
	"github.com/vibesind/vibes-gestion/internal/model"
	"github.com/vibesind/vibes-gestion/internal/repository"
	"github.com/vibesind/vibes-gestion/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// transicionesPresupuesto encodes the one-directional state machine.
// convertido is reachable only through ConvertirAVenta.
var transicionesPresupuesto = map[string][]string{
	model.PresupuestoBorrador: {model.PresupuestoEnviado},
	model.PresupuestoEnviado:  {model.PresupuestoAprobado, model.PresupuestoRechazado},
}

// PresupuestoService owns the quotation lifecycle, including the
// conversion of an approved quote into a Venta with stock decrement.
type PresupuestoService interface {
	Crear(ctx context.Context, usuarioID uuid.UUID, req dto.GuardarPresupuestoRequest) (*dto.PresupuestoResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.GuardarPresupuestoRequest) (*dto.PresupuestoResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.PresupuestoResponse, error)
	Listar(ctx context.Context, filter dto.PresupuestoFilter) (*dto.PresupuestoListResponse, error)
	CambiarEstado(ctx context.Context, id uuid.UUID, nuevoEstado string) error
	ConvertirAVenta(ctx context.Context, id uuid.UUID, usuarioID uuid.UUID) (*dto.ConversionResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
	// GenerarPDF renders the quote document and returns the file path.
	GenerarPDF(ctx context.Context, id uuid.UUID) (string, error)
	// EnviarPorEmail enqueues the async PDF render + mail job.
	EnviarPorEmail(ctx context.Context, id uuid.UUID, email string) error
}

type presupuestoService struct {
	repo         repository.PresupuestoRepository
	ventaRepo    repository.VentaRepository
	productoRepo repository.ProductoRepository
	clienteRepo  repository.ClienteRepository
	movRepo      repository.MovimientoStockRepository
	dispatcher   *worker.Dispatcher
	pdfPath      string
	negocio      string
}

func NewPresupuestoService(
	repo repository.PresupuestoRepository,
	ventaRepo repository.VentaRepository,
	productoRepo repository.ProductoRepository,
	clienteRepo repository.ClienteRepository,
	movRepo repository.MovimientoStockRepository,
	dispatcher *worker.Dispatcher,
	pdfPath string,
	negocio string,
) PresupuestoService {
	return &presupuestoService{
		repo:         repo,
		ventaRepo:    ventaRepo,
		productoRepo: productoRepo,
		clienteRepo:  clienteRepo,
		movRepo:      movRepo,
		dispatcher:   dispatcher,
		pdfPath:      pdfPath,
		negocio:      negocio,
	}
}

// resolverItems snapshots the current product price onto each quoted line
// and computes subtotal. The snapshot is never re-synced afterwards.
func (s *presupuestoService) resolverItems(ctx context.Context, items []dto.ItemPresupuestoRequest) ([]model.PresupuestoItem, decimal.Decimal, error) {
	resolved := make([]model.PresupuestoItem, 0, len(items))
	subtotal := decimal.Zero
	for _, item := range items {
		pid, err := uuid.Parse(item.ProductoID)
		if err != nil {
			return nil, decimal.Zero, fmt.Errorf("producto_id inválido: %w", err)
		}
		p, err := s.productoRepo.FindByID(ctx, pid)
		if err != nil {
			return nil, decimal.Zero, fmt.Errorf("producto %s no encontrado", item.ProductoID)
		}
		lineTotal := p.Precio.Mul(decimal.NewFromInt(int64(item.Cantidad)))
		subtotal = subtotal.Add(lineTotal)
		resolved = append(resolved, model.PresupuestoItem{
			ProductoID:     pid,
			Cantidad:       item.Cantidad,
			PrecioUnitario: p.Precio,
			PrecioTotal:    lineTotal,
		})
	}
	return resolved, subtotal, nil
}

func (s *presupuestoService) Crear(ctx context.Context, usuarioID uuid.UUID, req dto.GuardarPresupuestoRequest) (*dto.PresupuestoResponse, error) {
	validoHasta, err := time.Parse("2006-01-02", req.ValidoHasta)
	if err != nil {
		return nil, errors.New("La fecha de validez es requerida")
	}

	items, subtotal, err := s.resolverItems(ctx, req.Items)
	if err != nil {
		return nil, err
	}
	descuento := subtotal.Mul(req.DescuentoPct).Div(decimal.NewFromInt(100))
	total := subtotal.Sub(descuento)

	var presupuesto model.Presupuesto
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		clienteID, err := s.resolverCliente(tx, req)
		if err != nil {
			return err
		}

		uid := usuarioID
		presupuesto = model.Presupuesto{
			ClienteNombre:   req.ClienteNombre,
			ClienteTelefono: req.ClienteTelefono,
			ClienteID:       clienteID,
			Estado:          model.PresupuestoBorrador,
			Subtotal:        subtotal,
			Descuento:       descuento,
			Total:           total,
			ValidoHasta:     validoHasta,
			Notas:           req.Notas,
			UsuarioID:       &uid,
			Items:           items,
		}
		return s.repo.CreateTx(tx, &presupuesto)
	})
	if txErr != nil {
		return nil, txErr
	}
	return s.ObtenerPorID(ctx, presupuesto.ID)
}

// resolverCliente optionally creates a new Cliente inside the same
// transaction and returns the id to attach to the quote/sale.
func (s *presupuestoService) resolverCliente(tx *gorm.DB, req dto.GuardarPresupuestoRequest) (*uuid.UUID, error) {
	if req.ClienteID != nil {
		id, err := uuid.Parse(*req.ClienteID)
		if err != nil {
			return nil, errors.New("cliente_id inválido")
		}
		return &id, nil
	}
	if !req.NuevoCliente {
		return nil, nil
	}
	c := &model.Cliente{Nombre: req.ClienteNombre, Telefono: req.ClienteTelefono}
	if err := s.clienteRepo.CrearTx(tx, c); err != nil {
		return nil, err
	}
	return &c.ID, nil
}

// Actualizar replaces the quote header and its whole item set. Only
// borrador quotes are editable.
func (s *presupuestoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.GuardarPresupuestoRequest) (*dto.PresupuestoResponse, error) {
	existente, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("presupuesto no encontrado")
	}
	if existente.Estado != model.PresupuestoBorrador {
		return nil, errors.New("solo los presupuestos en borrador pueden editarse")
	}

	validoHasta, err := time.Parse("2006-01-02", req.ValidoHasta)
	if err != nil {
		return nil, errors.New("La fecha de validez es requerida")
	}

	items, subtotal, err := s.resolverItems(ctx, req.Items)
	if err != nil {
		return nil, err
	}
	descuento := subtotal.Mul(req.DescuentoPct).Div(decimal.NewFromInt(100))
	total := subtotal.Sub(descuento)

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		existente.ClienteNombre = req.ClienteNombre
		existente.ClienteTelefono = req.ClienteTelefono
		existente.Subtotal = subtotal
		existente.Descuento = descuento
		existente.Total = total
		existente.ValidoHasta = validoHasta
		existente.Notas = req.Notas
		existente.Items = nil
		if err := s.repo.UpdateTx(tx, existente); err != nil {
			return err
		}
		if err := s.repo.DeleteItemsTx(tx, id); err != nil {
			return err
		}
		for i := range items {
			items[i].PresupuestoID = id
		}
		return s.repo.CreateItemsTx(tx, items)
	})
	if txErr != nil {
		return nil, txErr
	}
	return s.ObtenerPorID(ctx, id)
}

func (s *presupuestoService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.PresupuestoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("presupuesto no encontrado")
	}
	resp := presupuestoToResponse(p)
	return resp, nil
}

func (s *presupuestoService) Listar(ctx context.Context, filter dto.PresupuestoFilter) (*dto.PresupuestoListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	list, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.PresupuestoResponse, 0, len(list))
	for i := range list {
		data = append(data, *presupuestoToResponse(&list[i]))
	}
	return &dto.PresupuestoListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

// CambiarEstado advances the quote along the one-directional state
// machine. Terminal states (rechazado, convertido) admit no transition.
func (s *presupuestoService) CambiarEstado(ctx context.Context, id uuid.UUID, nuevoEstado string) error {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return errors.New("presupuesto no encontrado")
	}
	for _, permitido := range transicionesPresupuesto[p.Estado] {
		if permitido == nuevoEstado {
			return s.repo.UpdateEstado(ctx, id, nuevoEstado)
		}
	}
	return fmt.Errorf("transición de estado inválida: %s → %s", p.Estado, nuevoEstado)
}

// ConvertirAVenta materializes a Venta from an approved quote.
// The whole sequence — venta, items, conditional stock decrements,
// movimientos and the estado flip — runs in one transaction, so a stock
// shortage or any mid-sequence failure leaves the quote untouched.
func (s *presupuestoService) ConvertirAVenta(ctx context.Context, id uuid.UUID, usuarioID uuid.UUID) (*dto.ConversionResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("presupuesto no encontrado")
	}
	if p.Estado != model.PresupuestoAprobado {
		return nil, errors.New("solo los presupuestos aprobados pueden convertirse")
	}

	// Pre-flight stock check so the caller gets a message naming the
	// product; the conditional decrement inside the tx remains the
	// authoritative guard against concurrent sales.
	for _, item := range p.Items {
		producto, err := s.productoRepo.FindByID(ctx, item.ProductoID)
		if err != nil {
			return nil, fmt.Errorf("producto %s no encontrado", item.ProductoID)
		}
		if producto.Stock < item.Cantidad {
			return nil, fmt.Errorf("Stock insuficiente para %s. Stock disponible: %d", producto.Nombre, producto.Stock)
		}
	}

	var venta model.Venta
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		notas := fmt.Sprintf("Convertido desde presupuesto #%s", cortarID(p.ID))
		uid := usuarioID
		venta = model.Venta{
			ClienteNombre:   p.ClienteNombre,
			ClienteTelefono: p.ClienteTelefono,
			ClienteID:       p.ClienteID,
			Subtotal:        p.Subtotal,
			Descuento:       p.Descuento,
			Total:           p.Total,
			MetodoPago:      model.MetodoPagoPendiente,
			Notas:           &notas,
			UsuarioID:       &uid,
		}
		for _, item := range p.Items {
			venta.Items = append(venta.Items, model.VentaItem{
				ProductoID:     item.ProductoID,
				Cantidad:       item.Cantidad,
				PrecioUnitario: item.PrecioUnitario,
				PrecioTotal:    item.PrecioUnitario.Mul(decimal.NewFromInt(int64(item.Cantidad))),
			})
		}
		if err := s.ventaRepo.CreateTx(tx, &venta); err != nil {
			return err
		}

		for _, item := range p.Items {
			stockNuevo, err := s.productoRepo.DescontarStockTx(tx, item.ProductoID, item.Cantidad)
			if err != nil {
				if errors.Is(err, repository.ErrStockInsuficiente) {
					nombre := item.ProductoID.String()
					disponible := 0
					if item.Producto != nil {
						nombre = item.Producto.Nombre
						disponible = item.Producto.Stock
					}
					return fmt.Errorf("Stock insuficiente para %s. Stock disponible: %d", nombre, disponible)
				}
				return err
			}

			ref := venta.ID
			mov := &model.MovimientoStock{
				ProductoID:    item.ProductoID,
				Tipo:          model.MovimientoConversion,
				Cantidad:      -item.Cantidad,
				StockAnterior: stockNuevo + item.Cantidad,
				StockNuevo:    stockNuevo,
				Motivo:        fmt.Sprintf("Conversión presupuesto #%s", cortarID(p.ID)),
				ReferenciaID:  &ref,
			}
			if err := s.movRepo.CreateTx(tx, mov); err != nil {
				return err
			}
		}

		return s.repo.UpdateEstadoTx(tx, p.ID, model.PresupuestoConvertido)
	})
	if txErr != nil {
		return nil, txErr
	}

	return &dto.ConversionResponse{
		VentaID:       venta.ID.String(),
		PresupuestoID: p.ID.String(),
		Total:         venta.Total,
	}, nil
}

// Eliminar removes the quote and its items in one transaction.
func (s *presupuestoService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return errors.New("presupuesto no encontrado")
	}
	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.DeleteItemsTx(tx, id); err != nil {
			return err
		}
		return s.repo.DeleteTx(tx, id)
	})
}

func (s *presupuestoService) GenerarPDF(ctx context.Context, id uuid.UUID) (string, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return "", errors.New("presupuesto no encontrado")
	}
	return infra.GeneratePresupuestoPDF(p, s.pdfPath, s.negocio)
}

func (s *presupuestoService) EnviarPorEmail(ctx context.Context, id uuid.UUID, email string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return errors.New("presupuesto no encontrado")
	}
	if s.dispatcher == nil {
		return errors.New("envío de presupuestos no disponible")
	}
	return s.dispatcher.EnqueuePresupuesto(ctx, map[string]interface{}{
		"presupuesto_id": id.String(),
		"email":          email,
	})
}

// cortarID yields the short human-readable quote reference used in notes
// and printed documents (last 8 chars of the UUID, as shown in the UI).
func cortarID(id uuid.UUID) string {
	s := id.String()
	return s[len(s)-8:]
}

func presupuestoToResponse(p *model.Presupuesto) *dto.PresupuestoResponse {
	items := make([]dto.ItemPresupuestoResponse, 0, len(p.Items))
	for _, item := range p.Items {
		nombre, sku := "", ""
		if item.Producto != nil {
			nombre = item.Producto.Nombre
			sku = item.Producto.SKU
		}
		items = append(items, dto.ItemPresupuestoResponse{
			ProductoID:     item.ProductoID.String(),
			Producto:       nombre,
			SKU:            sku,
			Cantidad:       item.Cantidad,
			PrecioUnitario: item.PrecioUnitario,
			PrecioTotal:    item.PrecioTotal,
		})
	}
	return &dto.PresupuestoResponse{
		ID:              p.ID.String(),
		ClienteNombre:   p.ClienteNombre,
		ClienteTelefono: p.ClienteTelefono,
		Estado:          p.Estado,
		Subtotal:        p.Subtotal,
		Descuento:       p.Descuento,
		Total:           p.Total,
		ValidoHasta:     p.ValidoHasta.Format("2006-01-02"),
		Notas:           p.Notas,
		Items:           items,
		CreatedAt:       p.CreatedAt.Format(time.RFC3339),
	}
}
