package service

import (
	"context"
	"errors"

	"github.com/vibesind/vibes-gestion/internal/dto"
	"github.com/vibesind/vibes-gestion/internal/model"
	"github.com/vibesind/vibes-gestion/internal/repository"

	"github.com/google/uuid"
)

// ProveedorService maneja el registro de proveedores.
type ProveedorService interface {
	Crear(ctx context.Context, req dto.GuardarProveedorRequest) (*dto.ProveedorResponse, error)
	Listar(ctx context.Context, nombre string) ([]dto.ProveedorResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ProveedorResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.GuardarProveedorRequest) (*dto.ProveedorResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type proveedorService struct {
	repo repository.ProveedorRepository
}

func NewProveedorService(repo repository.ProveedorRepository) ProveedorService {
	return &proveedorService{repo: repo}
}

func (s *proveedorService) Crear(ctx context.Context, req dto.GuardarProveedorRequest) (*dto.ProveedorResponse, error) {
	p := &model.Proveedor{
		Nombre:    req.Nombre,
		Contacto:  req.Contacto,
		Email:     req.Email,
		Telefono:  req.Telefono,
		Direccion: req.Direccion,
	}
	if err := s.repo.Crear(ctx, p); err != nil {
		return nil, err
	}
	return proveedorToResponse(p), nil
}

func (s *proveedorService) Listar(ctx context.Context, nombre string) ([]dto.ProveedorResponse, error) {
	list, err := s.repo.Listar(ctx, nombre)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProveedorResponse, 0, len(list))
	for i := range list {
		out = append(out, *proveedorToResponse(&list[i]))
	}
	return out, nil
}

func (s *proveedorService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ProveedorResponse, error) {
	p, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		return nil, errors.New("proveedor no encontrado")
	}
	return proveedorToResponse(p), nil
}

func (s *proveedorService) Actualizar(ctx context.Context, id uuid.UUID, req dto.GuardarProveedorRequest) (*dto.ProveedorResponse, error) {
	p, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		return nil, errors.New("proveedor no encontrado")
	}
	p.Nombre = req.Nombre
	p.Contacto = req.Contacto
	p.Email = req.Email
	p.Telefono = req.Telefono
	p.Direccion = req.Direccion
	if err := s.repo.Actualizar(ctx, p); err != nil {
		return nil, err
	}
	return proveedorToResponse(p), nil
}

func (s *proveedorService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.ObtenerPorID(ctx, id); err != nil {
		return errors.New("proveedor no encontrado")
	}
	return s.repo.Eliminar(ctx, id)
}

func proveedorToResponse(p *model.Proveedor) *dto.ProveedorResponse {
	return &dto.ProveedorResponse{
		ID:        p.ID.String(),
		Nombre:    p.Nombre,
		Contacto:  p.Contacto,
		Email:     p.Email,
		Telefono:  p.Telefono,
		Direccion: p.Direccion,
	}
}
