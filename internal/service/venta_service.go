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

// VentaService registers direct POS sales. Stock is decremented with a
// conditional update inside the sale transaction; quote conversions reuse
// the same repos through PresupuestoService.
type VentaService interface {
	Registrar(ctx context.Context, usuarioID uuid.UUID, req dto.RegistrarVentaRequest) (*dto.VentaResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.VentaResponse, error)
	Listar(ctx context.Context, filter dto.VentaFilter) (*dto.VentaListResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type ventaService struct {
	repo         repository.VentaRepository
	productoRepo repository.ProductoRepository
	clienteRepo  repository.ClienteRepository
	movRepo      repository.MovimientoStockRepository
}

func NewVentaService(
	repo repository.VentaRepository,
	productoRepo repository.ProductoRepository,
	clienteRepo repository.ClienteRepository,
	movRepo repository.MovimientoStockRepository,
) VentaService {
	return &ventaService{
		repo:         repo,
		productoRepo: productoRepo,
		clienteRepo:  clienteRepo,
		movRepo:      movRepo,
	}
}

func (s *ventaService) Registrar(ctx context.Context, usuarioID uuid.UUID, req dto.RegistrarVentaRequest) (*dto.VentaResponse, error) {
	type lineaVenta struct {
		producto *model.Producto
		cantidad int
	}

	lineas := make([]lineaVenta, 0, len(req.Items))
	subtotal := decimal.Zero
	for _, item := range req.Items {
		pid, err := uuid.Parse(item.ProductoID)
		if err != nil {
			return nil, fmt.Errorf("producto_id inválido: %w", err)
		}
		p, err := s.productoRepo.FindByID(ctx, pid)
		if err != nil {
			return nil, fmt.Errorf("producto %s no encontrado", item.ProductoID)
		}
		if p.Stock < item.Cantidad {
			return nil, fmt.Errorf("Stock insuficiente para %s. Stock disponible: %d", p.Nombre, p.Stock)
		}
		subtotal = subtotal.Add(p.Precio.Mul(decimal.NewFromInt(int64(item.Cantidad))))
		lineas = append(lineas, lineaVenta{producto: p, cantidad: item.Cantidad})
	}

	descuento := subtotal.Mul(req.DescuentoPct).Div(decimal.NewFromInt(100))
	total := subtotal.Sub(descuento)

	var venta model.Venta
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		clienteID, err := s.resolverCliente(tx, req)
		if err != nil {
			return err
		}

		uid := usuarioID
		venta = model.Venta{
			ClienteNombre:   req.ClienteNombre,
			ClienteTelefono: req.ClienteTelefono,
			ClienteID:       clienteID,
			Subtotal:        subtotal,
			Descuento:       descuento,
			Total:           total,
			MetodoPago:      req.MetodoPago,
			Notas:           req.Notas,
			UsuarioID:       &uid,
		}
		for _, l := range lineas {
			venta.Items = append(venta.Items, model.VentaItem{
				ProductoID:     l.producto.ID,
				Cantidad:       l.cantidad,
				PrecioUnitario: l.producto.Precio,
				PrecioTotal:    l.producto.Precio.Mul(decimal.NewFromInt(int64(l.cantidad))),
			})
		}
		if err := s.repo.CreateTx(tx, &venta); err != nil {
			return err
		}

		for _, l := range lineas {
			stockNuevo, err := s.productoRepo.DescontarStockTx(tx, l.producto.ID, l.cantidad)
			if err != nil {
				if errors.Is(err, repository.ErrStockInsuficiente) {
					return fmt.Errorf("Stock insuficiente para %s. Stock disponible: %d", l.producto.Nombre, l.producto.Stock)
				}
				return err
			}
			ref := venta.ID
			mov := &model.MovimientoStock{
				ProductoID:    l.producto.ID,
				Tipo:          model.MovimientoVenta,
				Cantidad:      -l.cantidad,
				StockAnterior: stockNuevo + l.cantidad,
				StockNuevo:    stockNuevo,
				Motivo:        "Venta directa",
				ReferenciaID:  &ref,
			}
			if err := s.movRepo.CreateTx(tx, mov); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return s.ObtenerPorID(ctx, venta.ID)
}

func (s *ventaService) resolverCliente(tx *gorm.DB, req dto.RegistrarVentaRequest) (*uuid.UUID, error) {
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

func (s *ventaService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.VentaResponse, error) {
	v, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("venta no encontrada")
	}
	return ventaToResponse(v), nil
}

func (s *ventaService) Listar(ctx context.Context, filter dto.VentaFilter) (*dto.VentaListResponse, error) {
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
	data := make([]dto.VentaResponse, 0, len(list))
	for i := range list {
		data = append(data, *ventaToResponse(&list[i]))
	}
	return &dto.VentaListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

// Eliminar removes the sale and its items. Stock consumed by the sale is
// NOT restored; corrections go through a stock adjustment.
func (s *ventaService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return errors.New("venta no encontrada")
	}
	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.DeleteItemsTx(tx, id); err != nil {
			return err
		}
		return s.repo.DeleteTx(tx, id)
	})
}

func ventaToResponse(v *model.Venta) *dto.VentaResponse {
	items := make([]dto.ItemVentaResponse, 0, len(v.Items))
	for _, item := range v.Items {
		nombre, sku := "", ""
		if item.Producto != nil {
			nombre = item.Producto.Nombre
			sku = item.Producto.SKU
		}
		items = append(items, dto.ItemVentaResponse{
			ProductoID:     item.ProductoID.String(),
			Producto:       nombre,
			SKU:            sku,
			Cantidad:       item.Cantidad,
			PrecioUnitario: item.PrecioUnitario,
			PrecioTotal:    item.PrecioTotal,
		})
	}
	return &dto.VentaResponse{
		ID:              v.ID.String(),
		ClienteNombre:   v.ClienteNombre,
		ClienteTelefono: v.ClienteTelefono,
		Subtotal:        v.Subtotal,
		Descuento:       v.Descuento,
		Total:           v.Total,
		MetodoPago:      v.MetodoPago,
		Notas:           v.Notas,
		Items:           items,
		CreatedAt:       v.CreatedAt.Format(time.RFC3339),
	}
}
