package repository

import (
	"context"
	"time"

	"github.com/vibesind/vibes-gestion/internal/dto"
	"github.com/vibesind/vibes-gestion/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PedidoRepository defines data access for supplier purchase orders.
type PedidoRepository interface {
	CreateTx(tx *gorm.DB, p *model.Pedido) error
	// UpdateEstadoTx writes the new estado and, when fechaRecibido is
	// non-nil, stamps it in the same statement.
	UpdateEstadoTx(tx *gorm.DB, id uuid.UUID, estado string, fechaRecibido *time.Time) error
	DeleteItemsTx(tx *gorm.DB, pedidoID uuid.UUID) error
	DeleteTx(tx *gorm.DB, id uuid.UUID) error

	FindByID(ctx context.Context, id uuid.UUID) (*model.Pedido, error)
	List(ctx context.Context, filter dto.PedidoFilter) ([]model.Pedido, int64, error)

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type pedidoRepo struct{ db *gorm.DB }

func NewPedidoRepository(db *gorm.DB) PedidoRepository { return &pedidoRepo{db: db} }

func (r *pedidoRepo) DB() *gorm.DB { return r.db }

func (r *pedidoRepo) CreateTx(tx *gorm.DB, p *model.Pedido) error {
	return tx.Create(p).Error
}

func (r *pedidoRepo) UpdateEstadoTx(tx *gorm.DB, id uuid.UUID, estado string, fechaRecibido *time.Time) error {
	patch := map[string]interface{}{"estado": estado}
	if fechaRecibido != nil {
		patch["fecha_recibido"] = *fechaRecibido
	}
	return tx.Model(&model.Pedido{}).Where("id = ?", id).Updates(patch).Error
}

func (r *pedidoRepo) DeleteItemsTx(tx *gorm.DB, pedidoID uuid.UUID) error {
	return tx.Where("pedido_id = ?", pedidoID).Delete(&model.PedidoItem{}).Error
}

func (r *pedidoRepo) DeleteTx(tx *gorm.DB, id uuid.UUID) error {
	return tx.Where("id = ?", id).Delete(&model.Pedido{}).Error
}

func (r *pedidoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Pedido, error) {
	var p model.Pedido
	err := r.db.WithContext(ctx).
		Preload("Proveedor").
		Preload("Items.Producto").
		First(&p, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *pedidoRepo) List(ctx context.Context, filter dto.PedidoFilter) ([]model.Pedido, int64, error) {
	var pedidos []model.Pedido
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Pedido{})
	if filter.Estado != "" && filter.Estado != "all" {
		q = q.Where("estado = ?", filter.Estado)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Proveedor").Preload("Items.Producto").
		Order("created_at DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&pedidos).Error
	return pedidos, total, err
}
