package model

import (
	"time"

	"github.com/google/uuid"
)

// SerieComprobante is a document numbering sequence (e.g. invoice series F001).
// NumeroActual only increases. Each venta consumes exactly one correlative,
// assigned at creation and never reused even when the venta is anulada.
type SerieComprobante struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Serie       string    `gorm:"uniqueIndex;not null"`
	Descripcion *string
	NumeroActual int64 `gorm:"not null;default:0"`
	Activo       bool  `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (SerieComprobante) TableName() string { return "series_comprobante" }
