package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/vibesind/vibes-gestion/internal/dto"
	"github.com/vibesind/vibes-gestion/internal/model"
	"github.com/vibesind/vibes-gestion/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CategoriaService maneja las categorías del catálogo.
type CategoriaService interface {
	Crear(ctx context.Context, req dto.CrearCategoriaRequest) (*dto.CategoriaResponse, error)
	Listar(ctx context.Context) ([]dto.CategoriaResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.CategoriaResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarCategoriaRequest) (*dto.CategoriaResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type categoriaService struct {
	repo         repository.CategoriaRepository
	productoRepo repository.ProductoRepository
}

func NewCategoriaService(repo repository.CategoriaRepository, productoRepo repository.ProductoRepository) CategoriaService {
	return &categoriaService{repo: repo, productoRepo: productoRepo}
}

func (s *categoriaService) Crear(ctx context.Context, req dto.CrearCategoriaRequest) (*dto.CategoriaResponse, error) {
	if existente, err := s.repo.ObtenerPorNombre(ctx, req.Nombre); err == nil && existente != nil {
		return nil, errors.New("Ya existe una categoría con ese nombre")
	}
	c := &model.Categoria{Nombre: req.Nombre, Descripcion: req.Descripcion}
	if err := s.repo.Crear(ctx, c); err != nil {
		return nil, err
	}
	return s.toResponse(ctx, c), nil
}

func (s *categoriaService) Listar(ctx context.Context) ([]dto.CategoriaResponse, error) {
	list, err := s.repo.Listar(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoriaResponse, 0, len(list))
	for i := range list {
		out = append(out, *s.toResponse(ctx, &list[i]))
	}
	return out, nil
}

func (s *categoriaService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.CategoriaResponse, error) {
	c, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		return nil, errors.New("categoría no encontrada")
	}
	return s.toResponse(ctx, c), nil
}

func (s *categoriaService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarCategoriaRequest) (*dto.CategoriaResponse, error) {
	c, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		return nil, errors.New("categoría no encontrada")
	}
	if req.Nombre != nil && *req.Nombre != c.Nombre {
		if existente, err := s.repo.ObtenerPorNombre(ctx, *req.Nombre); err == nil && existente != nil && existente.ID != id {
			return nil, errors.New("Ya existe una categoría con ese nombre")
		}
		c.Nombre = *req.Nombre
	}
	if req.Descripcion != nil {
		c.Descripcion = req.Descripcion
	}
	if err := s.repo.Actualizar(ctx, c); err != nil {
		return nil, err
	}
	return s.toResponse(ctx, c), nil
}

// Eliminar rejects the delete while the category still has products, so
// no product is ever left pointing at a missing category.
func (s *categoriaService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.ObtenerPorID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("categoría no encontrada")
		}
		return err
	}
	count, err := s.productoRepo.CountByCategoria(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("No se puede eliminar la categoría porque tiene %d producto(s) asociado(s)", count)
	}
	return s.repo.Eliminar(ctx, id)
}

func (s *categoriaService) toResponse(ctx context.Context, c *model.Categoria) *dto.CategoriaResponse {
	count, err := s.productoRepo.CountByCategoria(ctx, c.ID)
	if err != nil {
		count = 0
	}
	return &dto.CategoriaResponse{
		ID:             c.ID,
		Nombre:         c.Nombre,
		Descripcion:    c.Descripcion,
		ProductosCount: count,
	}
}
