package service

import (
	"context"
	"errors"

	"github.com/vibesind/vibes-gestion/internal/dto"
	"github.com/vibesind/vibes-gestion/internal/model"
	"github.com/vibesind/vibes-gestion/internal/repository"

	"github.com/google/uuid"
)

// ClienteService maneja el alta, edición y baja de clientes.
type ClienteService interface {
	Crear(ctx context.Context, req dto.GuardarClienteRequest) (*dto.ClienteResponse, error)
	Listar(ctx context.Context, nombre string) ([]dto.ClienteResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ClienteResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.GuardarClienteRequest) (*dto.ClienteResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type clienteService struct {
	repo repository.ClienteRepository
}

func NewClienteService(repo repository.ClienteRepository) ClienteService {
	return &clienteService{repo: repo}
}

func (s *clienteService) Crear(ctx context.Context, req dto.GuardarClienteRequest) (*dto.ClienteResponse, error) {
	c := &model.Cliente{
		Nombre:    req.Nombre,
		Email:     req.Email,
		Telefono:  req.Telefono,
		Direccion: req.Direccion,
		Notas:     req.Notas,
	}
	if err := s.repo.Crear(ctx, c); err != nil {
		return nil, err
	}
	return clienteToResponse(c), nil
}

func (s *clienteService) Listar(ctx context.Context, nombre string) ([]dto.ClienteResponse, error) {
	list, err := s.repo.Listar(ctx, nombre)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ClienteResponse, 0, len(list))
	for i := range list {
		out = append(out, *clienteToResponse(&list[i]))
	}
	return out, nil
}

func (s *clienteService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ClienteResponse, error) {
	c, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		return nil, errors.New("cliente no encontrado")
	}
	return clienteToResponse(c), nil
}

func (s *clienteService) Actualizar(ctx context.Context, id uuid.UUID, req dto.GuardarClienteRequest) (*dto.ClienteResponse, error) {
	c, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		return nil, errors.New("cliente no encontrado")
	}
	c.Nombre = req.Nombre
	c.Email = req.Email
	c.Telefono = req.Telefono
	c.Direccion = req.Direccion
	c.Notas = req.Notas
	if err := s.repo.Actualizar(ctx, c); err != nil {
		return nil, err
	}
	return clienteToResponse(c), nil
}

// Eliminar borra el cliente. Las ventas y presupuestos existentes
// conservan el nombre copiado, por eso la baja no los afecta.
func (s *clienteService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.ObtenerPorID(ctx, id); err != nil {
		return errors.New("cliente no encontrado")
	}
	return s.repo.Eliminar(ctx, id)
}

func clienteToResponse(c *model.Cliente) *dto.ClienteResponse {
	return &dto.ClienteResponse{
		ID:        c.ID.String(),
		Nombre:    c.Nombre,
		Email:     c.Email,
		Telefono:  c.Telefono,
		Direccion: c.Direccion,
		Notas:     c.Notas,
	}
}
