package model

import (
	"time"

	"github.com/google/uuid"
)

// Categoria clasifica productos: bidones, filtros, dispensadores, accesorios.
// Se desactiva, nunca se borra, para no dejar productos huérfanos.
type Categoria struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre      string    `gorm:"uniqueIndex;not null"`
	Descripcion *string
	Activo      bool `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Categoria) TableName() string { return "categorias" }
