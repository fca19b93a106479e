package repository

import (
	"context"

	"github.com/vibesind/vibes-gestion/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProveedorRepository defines CRUD operations for Proveedor.
type ProveedorRepository interface {
	Crear(ctx context.Context, p *model.Proveedor) error
	Listar(ctx context.Context, nombre string) ([]model.Proveedor, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*model.Proveedor, error)
	Actualizar(ctx context.Context, p *model.Proveedor) error
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type proveedorRepository struct{ db *gorm.DB }

func NewProveedorRepository(db *gorm.DB) ProveedorRepository {
	return &proveedorRepository{db: db}
}

func (r *proveedorRepository) Crear(ctx context.Context, p *model.Proveedor) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *proveedorRepository) Listar(ctx context.Context, nombre string) ([]model.Proveedor, error) {
	var list []model.Proveedor
	q := r.db.WithContext(ctx).Order("nombre asc")
	if nombre != "" {
		q = q.Where("nombre ILIKE ?", "%"+nombre+"%")
	}
	err := q.Find(&list).Error
	return list, err
}

func (r *proveedorRepository) ObtenerPorID(ctx context.Context, id uuid.UUID) (*model.Proveedor, error) {
	var p model.Proveedor
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *proveedorRepository) Actualizar(ctx context.Context, p *model.Proveedor) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *proveedorRepository) Eliminar(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Proveedor{}, "id = ?", id).Error
}
