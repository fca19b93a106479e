package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Producto is one stocked variant (talle+color) of a logical product.
// All variants of the same logical product share SkuBase, Nombre,
// Descripcion, Precio, Costo and CategoriaID; SKU is the derived
// per-variant identifier (sku_base + TALLE + COLOR) and is globally unique.
type Producto struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre      string    `gorm:"index;not null"`
	Descripcion *string
	Precio      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Costo       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	SKU         string          `gorm:"column:sku;uniqueIndex;not null"`
	SkuBase     string          `gorm:"column:sku_base;index;not null"`
	Talle       string          `gorm:"not null"`
	Color       string          `gorm:"not null"`
	Stock       int             `gorm:"not null;default:0"`
	StockMinimo int             `gorm:"not null;default:0"`
	CategoriaID uuid.UUID       `gorm:"type:uuid;index;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Categoria *Categoria `gorm:"foreignKey:CategoriaID"`
}

func (Producto) TableName() string { return "productos" }
