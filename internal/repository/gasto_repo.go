package repository

import (
	"context"
	"time"

	"github.com/vibesind/vibes-gestion/internal/dto"
	"github.com/vibesind/vibes-gestion/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GastoRepository defines data access for expense entries.
type GastoRepository interface {
	Crear(ctx context.Context, g *model.Gasto) error
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*model.Gasto, error)
	List(ctx context.Context, filter dto.GastoFilter) ([]model.Gasto, int64, error)
	Actualizar(ctx context.Context, g *model.Gasto) error
	Eliminar(ctx context.Context, id uuid.UUID) error
	// NextNumero draws the next value from the gastos numbering sequence.
	NextNumero(ctx context.Context) (int, error)
	// SumEntreFechas totals gastos within the inclusive date range.
	SumEntreFechas(ctx context.Context, desde, hasta time.Time) ([]model.Gasto, error)
}

type gastoRepo struct{ db *gorm.DB }

func NewGastoRepository(db *gorm.DB) GastoRepository { return &gastoRepo{db: db} }

func (r *gastoRepo) Crear(ctx context.Context, g *model.Gasto) error {
	return r.db.WithContext(ctx).Create(g).Error
}

func (r *gastoRepo) ObtenerPorID(ctx context.Context, id uuid.UUID) (*model.Gasto, error) {
	var g model.Gasto
	err := r.db.WithContext(ctx).First(&g, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *gastoRepo) List(ctx context.Context, filter dto.GastoFilter) ([]model.Gasto, int64, error) {
	var gastos []model.Gasto
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Gasto{})
	if filter.Categoria != "" && filter.Categoria != "all" {
		q = q.Where("categoria = ?", filter.Categoria)
	}
	if filter.Desde != "" {
		q = q.Where("fecha >= ?", filter.Desde)
	}
	if filter.Hasta != "" {
		q = q.Where("fecha <= ?", filter.Hasta)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("fecha DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&gastos).Error
	return gastos, total, err
}

func (r *gastoRepo) Actualizar(ctx context.Context, g *model.Gasto) error {
	return r.db.WithContext(ctx).Save(g).Error
}

func (r *gastoRepo) Eliminar(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Gasto{}, "id = ?", id).Error
}

func (r *gastoRepo) NextNumero(ctx context.Context) (int, error) {
	// Uses a PostgreSQL sequence for atomic expense number generation
	var num int
	err := r.db.WithContext(ctx).Raw("SELECT nextval('gastos_numero_seq')").Scan(&num).Error
	return num, err
}

func (r *gastoRepo) SumEntreFechas(ctx context.Context, desde, hasta time.Time) ([]model.Gasto, error) {
	var gastos []model.Gasto
	q := r.db.WithContext(ctx).Model(&model.Gasto{})
	if !desde.IsZero() {
		q = q.Where("fecha >= ?", desde)
	}
	if !hasta.IsZero() {
		q = q.Where("fecha < ?", hasta)
	}
	err := q.Find(&gastos).Error
	return gastos, err
}
