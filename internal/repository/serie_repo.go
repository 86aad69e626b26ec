package repository

import (
	"context"

	"github.com/Spartan-876/Acuamont-System-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SerieRepository manages document numbering series. The correlative counter
// only moves through AvanzarCorrelativoTx, always inside the sale's transaction
// and always after the venta row itself has been persisted.
type SerieRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.SerieComprobante, error)
	// FindByIDForUpdateTx locks the serie row so concurrent sales against the
	// same series cannot read the same correlative.
	FindByIDForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.SerieComprobante, error)
	AvanzarCorrelativoTx(tx *gorm.DB, id uuid.UUID, nuevo int64) error
	List(ctx context.Context) ([]model.SerieComprobante, error)
}

type serieRepo struct{ db *gorm.DB }

func NewSerieRepository(db *gorm.DB) SerieRepository { return &serieRepo{db: db} }

func (r *serieRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.SerieComprobante, error) {
	var s model.SerieComprobante
	err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *serieRepo) FindByIDForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.SerieComprobante, error) {
	var s model.SerieComprobante
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&s, "id = ? AND activo = true", id).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// AvanzarCorrelativoTx moves the counter forward. The monotonic guard in the
// WHERE clause means a stale write matches zero rows instead of rewinding.
func (r *serieRepo) AvanzarCorrelativoTx(tx *gorm.DB, id uuid.UUID, nuevo int64) error {
	res := tx.Model(&model.SerieComprobante{}).
		Where("id = ? AND numero_actual < ?", id, nuevo).
		Update("numero_actual", nuevo)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *serieRepo) List(ctx context.Context) ([]model.SerieComprobante, error) {
	var series []model.SerieComprobante
	err := r.db.WithContext(ctx).Order("serie ASC").Find(&series).Error
	return series, err
}
