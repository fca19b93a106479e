package repository

import (
	"context"

	"github.com/vibesind/vibes-gestion/internal/dto"
	"github.com/vibesind/vibes-gestion/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProductoRepository defines the data access contract for product variants.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via in-memory stubs.
type ProductoRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Producto, error)
	FindBySKU(ctx context.Context, sku string) (*model.Producto, error)
	// FindVariantes returns every variant row sharing a sku_base,
	// ordered by talle then color.
	FindVariantes(ctx context.Context, skuBase string) ([]model.Producto, error)
	List(ctx context.Context, filter dto.ProductoFilter) ([]model.Producto, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CountByCategoria(ctx context.Context, categoriaID uuid.UUID) (int64, error)
	FindBajoStock(ctx context.Context) ([]model.Producto, error)

	// Used inside transactions — callers must pass the tx instance.
	CreateTx(tx *gorm.DB, p *model.Producto) error
	UpdateTx(tx *gorm.DB, p *model.Producto) error
	DeleteTx(tx *gorm.DB, id uuid.UUID) error
	FindVariantesTx(tx *gorm.DB, skuBase string) ([]model.Producto, error)
	// DescontarStockTx performs a conditional decrement: stock is reduced
	// only when the row still holds at least cantidad units, and the
	// resulting stock is returned. Returns ErrStockInsuficiente otherwise.
	DescontarStockTx(tx *gorm.DB, id uuid.UUID, cantidad int) (int, error)
	// IncrementarStockTx adds cantidad units and returns the resulting stock.
	IncrementarStockTx(tx *gorm.DB, id uuid.UUID, cantidad int) (int, error)

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type productoRepo struct{ db *gorm.DB }

func NewProductoRepository(db *gorm.DB) ProductoRepository { return &productoRepo{db: db} }

func (r *productoRepo) DB() *gorm.DB { return r.db }

func (r *productoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Producto, error) {
	var p model.Producto
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productoRepo) FindBySKU(ctx context.Context, sku string) (*model.Producto, error) {
	var p model.Producto
	err := r.db.WithContext(ctx).Where("sku = ?", sku).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productoRepo) FindVariantes(ctx context.Context, skuBase string) ([]model.Producto, error) {
	var productos []model.Producto
	err := r.db.WithContext(ctx).
		Where("sku_base = ?", skuBase).
		Order("talle ASC, color ASC").
		Find(&productos).Error
	return productos, err
}

func (r *productoRepo) FindVariantesTx(tx *gorm.DB, skuBase string) ([]model.Producto, error) {
	var productos []model.Producto
	err := tx.Where("sku_base = ?", skuBase).Order("talle ASC, color ASC").Find(&productos).Error
	return productos, err
}

func (r *productoRepo) List(ctx context.Context, filter dto.ProductoFilter) ([]model.Producto, int64, error) {
	var productos []model.Producto
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Producto{})

	if filter.Nombre != "" {
		q = q.Where("nombre ILIKE ?", "%"+filter.Nombre+"%")
	}
	if filter.SKU != "" {
		q = q.Where("sku = ? OR sku_base = ?", filter.SKU, filter.SKU)
	}
	if filter.CategoriaID != "" {
		q = q.Where("categoria_id = ?", filter.CategoriaID)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Categoria").
		Order("nombre ASC, sku ASC").
		Limit(filter.Limit).Offset(offset).
		Find(&productos).Error
	return productos, total, err
}

func (r *productoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Producto{}, "id = ?", id).Error
}

func (r *productoRepo) CountByCategoria(ctx context.Context, categoriaID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Producto{}).
		Where("categoria_id = ?", categoriaID).
		Count(&count).Error
	return count, err
}

func (r *productoRepo) FindBajoStock(ctx context.Context) ([]model.Producto, error) {
	var productos []model.Producto
	err := r.db.WithContext(ctx).
		Where("stock <= stock_minimo").
		Order("stock ASC").
		Find(&productos).Error
	return productos, err
}

func (r *productoRepo) CreateTx(tx *gorm.DB, p *model.Producto) error {
	return tx.Create(p).Error
}

func (r *productoRepo) UpdateTx(tx *gorm.DB, p *model.Producto) error {
	return tx.Save(p).Error
}

func (r *productoRepo) DeleteTx(tx *gorm.DB, id uuid.UUID) error {
	return tx.Delete(&model.Producto{}, "id = ?", id).Error
}

func (r *productoRepo) DescontarStockTx(tx *gorm.DB, id uuid.UUID, cantidad int) (int, error) {
	// Conditional decrement: the WHERE clause is the authoritative stock
	// check, so two concurrent sales of the last unit cannot both pass.
	// RETURNING yields the post-decrement stock for the movement journal.
	var p model.Producto
	res := tx.Model(&p).
		Clauses(clause.Returning{Columns: []clause.Column{{Name: "stock"}}}).
		Where("id = ? AND stock >= ?", id, cantidad).
		Update("stock", gorm.Expr("stock - ?", cantidad))
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, ErrStockInsuficiente
	}
	return p.Stock, nil
}

func (r *productoRepo) IncrementarStockTx(tx *gorm.DB, id uuid.UUID, cantidad int) (int, error) {
	var p model.Producto
	res := tx.Model(&p).
		Clauses(clause.Returning{Columns: []clause.Column{{Name: "stock"}}}).
		Where("id = ?", id).
		Update("stock", gorm.Expr("stock + ?", cantidad))
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, gorm.ErrRecordNotFound
	}
	return p.Stock, nil
}
