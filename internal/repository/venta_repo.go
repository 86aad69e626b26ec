package repository

import (
	"context"
	"time"

	"github.com/Spartan-876/Acuamont-System-sub000/internal/dto"
	"github.com/Spartan-876/Acuamont-System-sub000/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// VentaRepository persists the Venta aggregate (venta + detalles + cuotas) and
// its append-only pagos. Mutating methods take the enclosing transaction; the
// service layer owns the transaction boundary.
type VentaRepository interface {
	CreateTx(tx *gorm.DB, v *model.Venta) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Venta, error)
	// FindByIDForUpdateTx loads the venta row with a FOR UPDATE lock so that
	// anulación and pagos against the same venta serialize.
	FindByIDForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.Venta, error)
	UpdateTx(tx *gorm.DB, v *model.Venta) error
	FindCuotaByID(ctx context.Context, id uuid.UUID) (*model.Cuota, error)
	FindCuotaForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.Cuota, error)
	UpdateCuotaTx(tx *gorm.DB, c *model.Cuota) error
	CreatePagoTx(tx *gorm.DB, p *model.Pago) error
	ListCuotas(ctx context.Context, ventaID uuid.UUID) ([]model.Cuota, error)
	ListPagosByVenta(ctx context.Context, ventaID uuid.UUID) ([]model.Pago, error)
	List(ctx context.Context, filter dto.VentaFilter) ([]model.Venta, int64, error)
	TotalDesde(ctx context.Context, desde time.Time) (decimal.Decimal, error)
	DeudaPendiente(ctx context.Context) (decimal.Decimal, error)
	DB() *gorm.DB // exposes the DB for transaction creation in service layer
}

type ventaRepo struct{ db *gorm.DB }

func NewVentaRepository(db *gorm.DB) VentaRepository { return &ventaRepo{db: db} }

func (r *ventaRepo) DB() *gorm.DB { return r.db }

func (r *ventaRepo) CreateTx(tx *gorm.DB, v *model.Venta) error {
	// Create cascades Detalles and Cuotas through the association graph.
	return tx.Create(v).Error
}

func (r *ventaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Venta, error) {
	var v model.Venta
	err := r.db.WithContext(ctx).
		Preload("Detalles.Producto").
		Preload("Cuotas", func(db *gorm.DB) *gorm.DB { return db.Order("numero ASC") }).
		Preload("Serie").
		Preload("Cliente").
		Preload("MetodoPago").
		First(&v, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *ventaRepo) FindByIDForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.Venta, error) {
	var v model.Venta
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&v, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	// Associations are loaded without locks; only the root row needs the lock.
	if err := tx.Where("venta_id = ?", id).Order("numero ASC").Find(&v.Cuotas).Error; err != nil {
		return nil, err
	}
	if err := tx.Where("venta_id = ?", id).Find(&v.Detalles).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *ventaRepo) UpdateTx(tx *gorm.DB, v *model.Venta) error {
	return tx.Model(&model.Venta{}).Where("id = ?", v.ID).Updates(map[string]interface{}{
		"deuda":  v.Deuda,
		"estado": v.Estado,
	}).Error
}

func (r *ventaRepo) FindCuotaByID(ctx context.Context, id uuid.UUID) (*model.Cuota, error) {
	var c model.Cuota
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ventaRepo) FindCuotaForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.Cuota, error) {
	var c model.Cuota
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&c, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ventaRepo) UpdateCuotaTx(tx *gorm.DB, c *model.Cuota) error {
	return tx.Model(&model.Cuota{}).Where("id = ?", c.ID).Updates(map[string]interface{}{
		"saldo":  c.Saldo,
		"estado": c.Estado,
	}).Error
}

func (r *ventaRepo) CreatePagoTx(tx *gorm.DB, p *model.Pago) error {
	return tx.Create(p).Error
}

func (r *ventaRepo) ListCuotas(ctx context.Context, ventaID uuid.UUID) ([]model.Cuota, error) {
	var cuotas []model.Cuota
	err := r.db.WithContext(ctx).
		Where("venta_id = ?", ventaID).
		Order("numero ASC").
		Find(&cuotas).Error
	return cuotas, err
}

func (r *ventaRepo) ListPagosByVenta(ctx context.Context, ventaID uuid.UUID) ([]model.Pago, error) {
	var pagos []model.Pago
	err := r.db.WithContext(ctx).
		Joins("JOIN cuotas ON cuotas.id = pagos.cuota_id").
		Where("cuotas.venta_id = ?", ventaID).
		Order("pagos.fecha ASC").
		Find(&pagos).Error
	return pagos, err
}

func (r *ventaRepo) List(ctx context.Context, filter dto.VentaFilter) ([]model.Venta, int64, error) {
	var ventas []model.Venta
	var total int64
	offset := (filter.Page - 1) * filter.Limit

	q := r.db.WithContext(ctx).Model(&model.Venta{})

	switch filter.Estado {
	case "", "all":
		// no filter
	case "pendiente":
		q = q.Where("estado = ?", model.VentaPendiente)
	case "pagada":
		q = q.Where("estado = ?", model.VentaPagada)
	case "anulada":
		q = q.Where("estado = ?", model.VentaAnulada)
	}
	if filter.Fecha != "" {
		q = q.Where("DATE(fecha) = ?", filter.Fecha)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Detalles.Producto").
		Preload("Cuotas", func(db *gorm.DB) *gorm.DB { return db.Order("numero ASC") }).
		Preload("Serie").
		Preload("MetodoPago").
		Order("fecha DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&ventas).Error

	return ventas, total, err
}

// TotalDesde sums totals of non-anuladas ventas with fecha >= desde.
func (r *ventaRepo) TotalDesde(ctx context.Context, desde time.Time) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := r.db.WithContext(ctx).Model(&model.Venta{}).
		Select("COALESCE(SUM(total), 0)").
		Where("estado <> ? AND fecha >= ?", model.VentaAnulada, desde).
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

// DeudaPendiente sums outstanding debt across all non-anuladas ventas.
func (r *ventaRepo) DeudaPendiente(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := r.db.WithContext(ctx).Model(&model.Venta{}).
		Select("COALESCE(SUM(deuda), 0)").
		Where("estado <> ?", model.VentaAnulada).
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}
