package repository

import (
	"context"

	"github.com/vibesind/vibes-gestion/internal/dto"
	"github.com/vibesind/vibes-gestion/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PresupuestoRepository defines data access for quotations and their items.
type PresupuestoRepository interface {
	CreateTx(tx *gorm.DB, p *model.Presupuesto) error
	UpdateTx(tx *gorm.DB, p *model.Presupuesto) error
	DeleteItemsTx(tx *gorm.DB, presupuestoID uuid.UUID) error
	CreateItemsTx(tx *gorm.DB, items []model.PresupuestoItem) error
	DeleteTx(tx *gorm.DB, id uuid.UUID) error
	UpdateEstadoTx(tx *gorm.DB, id uuid.UUID, estado string) error

	FindByID(ctx context.Context, id uuid.UUID) (*model.Presupuesto, error)
	List(ctx context.Context, filter dto.PresupuestoFilter) ([]model.Presupuesto, int64, error)
	UpdateEstado(ctx context.Context, id uuid.UUID, estado string) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type presupuestoRepo struct{ db *gorm.DB }

func NewPresupuestoRepository(db *gorm.DB) PresupuestoRepository {
	return &presupuestoRepo{db: db}
}

func (r *presupuestoRepo) DB() *gorm.DB { return r.db }

func (r *presupuestoRepo) CreateTx(tx *gorm.DB, p *model.Presupuesto) error {
	return tx.Create(p).Error
}

func (r *presupuestoRepo) UpdateTx(tx *gorm.DB, p *model.Presupuesto) error {
	return tx.Save(p).Error
}

func (r *presupuestoRepo) DeleteItemsTx(tx *gorm.DB, presupuestoID uuid.UUID) error {
	return tx.Delete(&model.PresupuestoItem{}, "presupuesto_id = ?", presupuestoID).Error
}

func (r *presupuestoRepo) CreateItemsTx(tx *gorm.DB, items []model.PresupuestoItem) error {
	if len(items) == 0 {
		return nil
	}
	return tx.Create(&items).Error
}

func (r *presupuestoRepo) DeleteTx(tx *gorm.DB, id uuid.UUID) error {
	return tx.Delete(&model.Presupuesto{}, "id = ?", id).Error
}

func (r *presupuestoRepo) UpdateEstadoTx(tx *gorm.DB, id uuid.UUID, estado string) error {
	return tx.Model(&model.Presupuesto{}).Where("id = ?", id).Update("estado", estado).Error
}

func (r *presupuestoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Presupuesto, error) {
	var p model.Presupuesto
	err := r.db.WithContext(ctx).
		Preload("Items.Producto").
		First(&p, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *presupuestoRepo) List(ctx context.Context, filter dto.PresupuestoFilter) ([]model.Presupuesto, int64, error) {
	var list []model.Presupuesto
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Presupuesto{})
	if filter.Estado != "" && filter.Estado != "all" {
		q = q.Where("estado = ?", filter.Estado)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Items.Producto").
		Order("created_at DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&list).Error
	return list, total, err
}

func (r *presupuestoRepo) UpdateEstado(ctx context.Context, id uuid.UUID, estado string) error {
	return r.db.WithContext(ctx).Model(&model.Presupuesto{}).
		Where("id = ?", id).Update("estado", estado).Error
}
