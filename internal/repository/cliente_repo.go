package repository

import (
	"context"

	"github.com/vibesind/vibes-gestion/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ClienteRepository defines CRUD operations for Cliente.
type ClienteRepository interface {
	Crear(ctx context.Context, c *model.Cliente) error
	CrearTx(tx *gorm.DB, c *model.Cliente) error
	Listar(ctx context.Context, nombre string) ([]model.Cliente, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*model.Cliente, error)
	Actualizar(ctx context.Context, c *model.Cliente) error
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type clienteRepository struct{ db *gorm.DB }

func NewClienteRepository(db *gorm.DB) ClienteRepository {
	return &clienteRepository{db: db}
}

func (r *clienteRepository) Crear(ctx context.Context, c *model.Cliente) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *clienteRepository) CrearTx(tx *gorm.DB, c *model.Cliente) error {
	return tx.Create(c).Error
}

func (r *clienteRepository) Listar(ctx context.Context, nombre string) ([]model.Cliente, error) {
	var list []model.Cliente
	q := r.db.WithContext(ctx).Order("nombre asc")
	if nombre != "" {
		q = q.Where("nombre ILIKE ?", "%"+nombre+"%")
	}
	err := q.Find(&list).Error
	return list, err
}

func (r *clienteRepository) ObtenerPorID(ctx context.Context, id uuid.UUID) (*model.Cliente, error) {
	var c model.Cliente
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *clienteRepository) Actualizar(ctx context.Context, c *model.Cliente) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *clienteRepository) Eliminar(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Cliente{}, "id = ?", id).Error
}
