package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vibesind/vibes-gestion/internal/dto"
	"github.com/vibesind/vibes-gestion/internal/model"
	"github.com/vibesind/vibes-gestion/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// transicionesPedido encodes the purchase-order state machine.
// recibido y cancelado son terminales.
var transicionesPedido = map[string][]string{
	model.PedidoPendiente: {model.PedidoEnviado, model.PedidoCancelado},
	model.PedidoEnviado:   {model.PedidoRecibido, model.PedidoCancelado},
}

// PedidoService tracks supplier purchase orders. Receiving an order
// increments stock for every line and journals the movement.
type PedidoService interface {
	Crear(ctx context.Context, req dto.CrearPedidoRequest) (*dto.PedidoResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.PedidoResponse, error)
	Listar(ctx context.Context, filter dto.PedidoFilter) (*dto.PedidoListResponse, error)
	CambiarEstado(ctx context.Context, id uuid.UUID, nuevoEstado string) error
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type pedidoService struct {
	repo          repository.PedidoRepository
	productoRepo  repository.ProductoRepository
	proveedorRepo repository.ProveedorRepository
	movRepo       repository.MovimientoStockRepository
}

func NewPedidoService(
	repo repository.PedidoRepository,
	productoRepo repository.ProductoRepository,
	proveedorRepo repository.ProveedorRepository,
	movRepo repository.MovimientoStockRepository,
) PedidoService {
	return &pedidoService{
		repo:          repo,
		productoRepo:  productoRepo,
		proveedorRepo: proveedorRepo,
		movRepo:       movRepo,
	}
}

func (s *pedidoService) Crear(ctx context.Context, req dto.CrearPedidoRequest) (*dto.PedidoResponse, error) {
	proveedorID, err := uuid.Parse(req.ProveedorID)
	if err != nil {
		return nil, errors.New("proveedor_id inválido")
	}
	if _, err := s.proveedorRepo.ObtenerPorID(ctx, proveedorID); err != nil {
		return nil, errors.New("proveedor no encontrado")
	}

	var fechaEsperada *time.Time
	if req.FechaEsperada != nil && *req.FechaEsperada != "" {
		t, err := time.Parse("2006-01-02", *req.FechaEsperada)
		if err != nil {
			return nil, errors.New("fecha_esperada inválida, formato esperado YYYY-MM-DD")
		}
		fechaEsperada = &t
	}

	items := make([]model.PedidoItem, 0, len(req.Items))
	total := decimal.Zero
	for _, item := range req.Items {
		pid, err := uuid.Parse(item.ProductoID)
		if err != nil {
			return nil, fmt.Errorf("producto_id inválido: %w", err)
		}
		costo := item.CostoUnitario
		if costo.IsZero() {
			// Sin costo explícito se toma el costo actual del producto.
			p, err := s.productoRepo.FindByID(ctx, pid)
			if err != nil {
				return nil, fmt.Errorf("producto %s no encontrado", item.ProductoID)
			}
			costo = p.Costo
		} else if _, err := s.productoRepo.FindByID(ctx, pid); err != nil {
			return nil, fmt.Errorf("producto %s no encontrado", item.ProductoID)
		}
		total = total.Add(costo.Mul(decimal.NewFromInt(int64(item.Cantidad))))
		items = append(items, model.PedidoItem{
			ProductoID:    pid,
			Cantidad:      item.Cantidad,
			CostoUnitario: costo,
		})
	}

	pedido := model.Pedido{
		ProveedorID:   proveedorID,
		Estado:        model.PedidoPendiente,
		Total:         total,
		Notas:         req.Notas,
		FechaEsperada: fechaEsperada,
		Items:         items,
	}
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		return s.repo.CreateTx(tx, &pedido)
	})
	if txErr != nil {
		return nil, txErr
	}
	return s.ObtenerPorID(ctx, pedido.ID)
}

func (s *pedidoService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.PedidoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("pedido no encontrado")
	}
	return pedidoToResponse(p), nil
}

func (s *pedidoService) Listar(ctx context.Context, filter dto.PedidoFilter) (*dto.PedidoListResponse, error) {
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
	data := make([]dto.PedidoResponse, 0, len(list))
	for i := range list {
		data = append(data, *pedidoToResponse(&list[i]))
	}
	return &dto.PedidoListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

// CambiarEstado advances the order. The transition to recibido stamps
// fecha_recibido and increments stock for every line inside the same
// transaction, journaling a MovimientoStock per product.
func (s *pedidoService) CambiarEstado(ctx context.Context, id uuid.UUID, nuevoEstado string) error {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return errors.New("pedido no encontrado")
	}

	permitida := false
	for _, destino := range transicionesPedido[p.Estado] {
		if destino == nuevoEstado {
			permitida = true
			break
		}
	}
	if !permitida {
		return fmt.Errorf("transición de estado inválida: %s → %s", p.Estado, nuevoEstado)
	}

	if nuevoEstado != model.PedidoRecibido {
		return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
			return s.repo.UpdateEstadoTx(tx, id, nuevoEstado, nil)
		})
	}

	ahora := time.Now()
	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.UpdateEstadoTx(tx, id, model.PedidoRecibido, &ahora); err != nil {
			return err
		}
		for _, item := range p.Items {
			stockNuevo, err := s.productoRepo.IncrementarStockTx(tx, item.ProductoID, item.Cantidad)
			if err != nil {
				return err
			}
			ref := p.ID
			mov := &model.MovimientoStock{
				ProductoID:    item.ProductoID,
				Tipo:          model.MovimientoRecepcion,
				Cantidad:      item.Cantidad,
				StockAnterior: stockNuevo - item.Cantidad,
				StockNuevo:    stockNuevo,
				Motivo:        fmt.Sprintf("Recepción pedido #%s", cortarID(p.ID)),
				ReferenciaID:  &ref,
			}
			if err := s.movRepo.CreateTx(tx, mov); err != nil {
				return err
			}
		}
		return nil
	})
}

// Eliminar borra el pedido y sus items. Los pedidos recibidos no se
// eliminan: el stock ya ingresó y el historial debe conservarse.
func (s *pedidoService) Eliminar(ctx context.Context, id uuid.UUID) error {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return errors.New("pedido no encontrado")
	}
	if p.Estado == model.PedidoRecibido {
		return errors.New("no se puede eliminar un pedido recibido")
	}
	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.DeleteItemsTx(tx, id); err != nil {
			return err
		}
		return s.repo.DeleteTx(tx, id)
	})
}

func pedidoToResponse(p *model.Pedido) *dto.PedidoResponse {
	items := make([]dto.ItemPedidoResponse, 0, len(p.Items))
	for _, item := range p.Items {
		nombre, sku := "", ""
		if item.Producto != nil {
			nombre = item.Producto.Nombre
			sku = item.Producto.SKU
		}
		items = append(items, dto.ItemPedidoResponse{
			ProductoID:    item.ProductoID.String(),
			Producto:      nombre,
			SKU:           sku,
			Cantidad:      item.Cantidad,
			CostoUnitario: item.CostoUnitario,
		})
	}
	proveedor := ""
	if p.Proveedor != nil {
		proveedor = p.Proveedor.Nombre
	}
	var fechaEsperada, fechaRecibido *string
	if p.FechaEsperada != nil {
		f := p.FechaEsperada.Format("2006-01-02")
		fechaEsperada = &f
	}
	if p.FechaRecibido != nil {
		f := p.FechaRecibido.Format("2006-01-02")
		fechaRecibido = &f
	}
	return &dto.PedidoResponse{
		ID:            p.ID.String(),
		ProveedorID:   p.ProveedorID.String(),
		Proveedor:     proveedor,
		Estado:        p.Estado,
		Total:         p.Total,
		Notas:         p.Notas,
		FechaEsperada: fechaEsperada,
		FechaRecibido: fechaRecibido,
		Items:         items,
		CreatedAt:     p.CreatedAt.Format(time.RFC3339),
	}
}
