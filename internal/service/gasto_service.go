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
)

// GastoService registra los gastos operativos del negocio.
type GastoService interface {
	Crear(ctx context.Context, usuarioID uuid.UUID, req dto.GuardarGastoRequest) (*dto.GastoResponse, error)
	Listar(ctx context.Context, filter dto.GastoFilter) (*dto.GastoListResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.GastoResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.GuardarGastoRequest) (*dto.GastoResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type gastoService struct {
	repo repository.GastoRepository
}

func NewGastoService(repo repository.GastoRepository) GastoService {
	return &gastoService{repo: repo}
}

func (s *gastoService) Crear(ctx context.Context, usuarioID uuid.UUID, req dto.GuardarGastoRequest) (*dto.GastoResponse, error) {
	fecha, err := time.Parse("2006-01-02", req.Fecha)
	if err != nil {
		return nil, errors.New("fecha inválida, formato esperado YYYY-MM-DD")
	}
	num, err := s.repo.NextNumero(ctx)
	if err != nil {
		return nil, err
	}
	uid := usuarioID
	g := &model.Gasto{
		NumeroGasto: fmt.Sprintf("GAS-%06d", num),
		Fecha:       fecha,
		Categoria:   req.Categoria,
		Descripcion: req.Descripcion,
		Monto:       req.Monto,
		Proveedor:   req.Proveedor,
		MetodoPago:  req.MetodoPago,
		Comprobante: req.Comprobante,
		Notas:       req.Notas,
		UsuarioID:   &uid,
	}
	if err := s.repo.Crear(ctx, g); err != nil {
		return nil, err
	}
	return gastoToResponse(g), nil
}

func (s *gastoService) Listar(ctx context.Context, filter dto.GastoFilter) (*dto.GastoListResponse, error) {
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
	data := make([]dto.GastoResponse, 0, len(list))
	for i := range list {
		data = append(data, *gastoToResponse(&list[i]))
	}
	return &dto.GastoListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *gastoService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.GastoResponse, error) {
	g, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		return nil, errors.New("gasto no encontrado")
	}
	return gastoToResponse(g), nil
}

// Actualizar edita todo menos el número de gasto, que es inmutable.
func (s *gastoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.GuardarGastoRequest) (*dto.GastoResponse, error) {
	g, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		return nil, errors.New("gasto no encontrado")
	}
	fecha, err := time.Parse("2006-01-02", req.Fecha)
	if err != nil {
		return nil, errors.New("fecha inválida, formato esperado YYYY-MM-DD")
	}
	g.Fecha = fecha
	g.Categoria = req.Categoria
	g.Descripcion = req.Descripcion
	g.Monto = req.Monto
	g.Proveedor = req.Proveedor
	g.MetodoPago = req.MetodoPago
	g.Comprobante = req.Comprobante
	g.Notas = req.Notas
	if err := s.repo.Actualizar(ctx, g); err != nil {
		return nil, err
	}
	return gastoToResponse(g), nil
}

func (s *gastoService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.ObtenerPorID(ctx, id); err != nil {
		return errors.New("gasto no encontrado")
	}
	return s.repo.Eliminar(ctx, id)
}

func gastoToResponse(g *model.Gasto) *dto.GastoResponse {
	return &dto.GastoResponse{
		ID:          g.ID.String(),
		NumeroGasto: g.NumeroGasto,
		Fecha:       g.Fecha.Format("2006-01-02"),
		Categoria:   g.Categoria,
		Descripcion: g.Descripcion,
		Monto:       g.Monto,
		Proveedor:   g.Proveedor,
		MetodoPago:  g.MetodoPago,
		Comprobante: g.Comprobante,
		Notas:       g.Notas,
	}
}
