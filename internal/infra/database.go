package infra

import (
	"fmt"

	"github.com/Spartan-876/Acuamont-System-sub000/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx and runs AutoMigrate
// for the full schema. Money columns are decimal(12,2); AutoMigrate honors the
// explicit types on the models.
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
		return nil, fmt.Errorf("migrations: %w", err)
	}
	return db, nil
}

// RunMigrations creates or updates all tables. Order matters: referenced
// tables before referencing ones so the FK constraints resolve.
func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Categoria{},
		&model.Proveedor{},
		&model.Producto{},
		&model.Cliente{},
		&model.Usuario{},
		&model.MetodoPago{},
		&model.SerieComprobante{},
		&model.Venta{},
		&model.DetalleVenta{},
		&model.Cuota{},
		&model.Pago{},
		&model.MovimientoStock{},
		&model.HistorialPrecio{},
	)
}
