package repository

import (
	"context"

	"github.com/Spartan-876/Acuamont-System-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MetodoPagoRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.MetodoPago, error)
	List(ctx context.Context) ([]model.MetodoPago, error)
}

type metodoPagoRepo struct{ db *gorm.DB }

func NewMetodoPagoRepository(db *gorm.DB) MetodoPagoRepository {
	return &metodoPagoRepo{db: db}
}

func (r *metodoPagoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.MetodoPago, error) {
	var m model.MetodoPago
	err := r.db.WithContext(ctx).First(&m, "id = ? AND activo = true", id).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *metodoPagoRepo) List(ctx context.Context) ([]model.MetodoPago, error) {
	var metodos []model.MetodoPago
	err := r.db.WithContext(ctx).Where("activo = true").Order("nombre ASC").Find(&metodos).Error
	return metodos, err
}
