package repository

import (
	"context"
	"time"

	"github.com/vibesind/vibes-gestion/internal/dto"
	"github.com/vibesind/vibes-gestion/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VentaRepository defines data access for sales and their items.
type VentaRepository interface {
	CreateTx(tx *gorm.DB, v *model.Venta) error
	DeleteItemsTx(tx *gorm.DB, ventaID uuid.UUID) error
	DeleteTx(tx *gorm.DB, id uuid.UUID) error

	FindByID(ctx context.Context, id uuid.UUID) (*model.Venta, error)
	List(ctx context.Context, filter dto.VentaFilter) ([]model.Venta, int64, error)

	// ListEntreFechas returns sales (with items and products preloaded)
	// within the inclusive date range; zero times disable either bound.
	// Feeds the in-application report aggregation.
	ListEntreFechas(ctx context.Context, desde, hasta time.Time) ([]model.Venta, error)

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type ventaRepo struct{ db *gorm.DB }

func NewVentaRepository(db *gorm.DB) VentaRepository { return &ventaRepo{db: db} }

func (r *ventaRepo) DB() *gorm.DB { return r.db }

func (r *ventaRepo) CreateTx(tx *gorm.DB, v *model.Venta) error {
	return tx.Create(v).Error
}

func (r *ventaRepo) DeleteItemsTx(tx *gorm.DB, ventaID uuid.UUID) error {
	return tx.Delete(&model.VentaItem{}, "venta_id = ?", ventaID).Error
}

func (r *ventaRepo) DeleteTx(tx *gorm.DB, id uuid.UUID) error {
	return tx.Delete(&model.Venta{}, "id = ?", id).Error
}

func (r *ventaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Venta, error) {
	var v model.Venta
	err := r.db.WithContext(ctx).Preload("Items.Producto").First(&v, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *ventaRepo) List(ctx context.Context, filter dto.VentaFilter) ([]model.Venta, int64, error) {
	var ventas []model.Venta
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Venta{})
	if filter.Fecha != "" {
		q = q.Where("DATE(created_at) = ?", filter.Fecha)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Items.Producto").
		Order("created_at DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&ventas).Error
	return ventas, total, err
}

func (r *ventaRepo) ListEntreFechas(ctx context.Context, desde, hasta time.Time) ([]model.Venta, error) {
	var ventas []model.Venta
	q := r.db.WithContext(ctx).Model(&model.Venta{})
	if !desde.IsZero() {
		q = q.Where("created_at >= ?", desde)
	}
	if !hasta.IsZero() {
		q = q.Where("created_at < ?", hasta)
	}
	err := q.Preload("Items.Producto").Order("created_at ASC").Find(&ventas).Error
	return ventas, err
}
