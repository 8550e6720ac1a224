package infra

import (
	"fmt"

	"github.com/JosiasEnriquezQ19/iphone-store-management-system/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx and runs AutoMigrate
// for the full schema. TranslateError is required: los servicios distinguen
// colisiones de índice único (números de comprobante, pedido_id, documentos)
// mediante gorm.ErrDuplicatedKey.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
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
		return nil, fmt.Errorf("migrations: %w", err)
	}

	return db, nil
}

// RunMigrations creates or updates all tables. Safe to re-run on an existing
// schema; integration tests call it directly.
func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Cargo{},
		&model.Usuario{},
		&model.Cliente{},
		&model.Proveedor{},
		&model.Producto{},
		&model.Pedido{},
		&model.DetallePedido{},
		&model.Comprobante{},
		&model.DetalleComprobante{},
		&model.MovimientoStock{},
	)
}
