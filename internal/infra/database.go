package infra

import (
	"fmt"

	"github.com/vibesind/vibes-gestion/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate
// over every model and applies the idempotent SQL patches that AutoMigrate
// cannot express (sequences, partial indexes).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}

	return db, nil
}

// RunMigrations creates or updates the schema. Also used by the
// integration tests against a throwaway container.
func RunMigrations(db *gorm.DB) error {
	// gen_random_uuid() requires pgcrypto on Postgres < 13
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error; err != nil {
		return fmt.Errorf("pgcrypto: %w", err)
	}

	if err := db.AutoMigrate(
		&model.Categoria{},
		&model.Producto{},
		&model.Cliente{},
		&model.Proveedor{},
		&model.Presupuesto{},
		&model.PresupuestoItem{},
		&model.Venta{},
		&model.VentaItem{},
		&model.Pedido{},
		&model.PedidoItem{},
		&model.Gasto{},
		&model.MovimientoStock{},
		&model.Usuario{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}

	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that AutoMigrate cannot handle.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// Sequence feeding the expense numbering (GAS-000123).
		`CREATE SEQUENCE IF NOT EXISTS gastos_numero_seq START 1`,
		// Partial index for the low-stock alert query.
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_productos_bajo_stock') THEN
		    CREATE INDEX idx_productos_bajo_stock
		        ON productos (stock)
		        WHERE stock <= stock_minimo;
		  END IF;
		END $$`,
	}

	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", sql[:min(len(sql), 60)], err)
		}
	}
	return nil
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
