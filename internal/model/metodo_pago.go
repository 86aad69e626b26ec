package model

import (
	"time"

	"github.com/google/uuid"
)

// TipoMetodoPago is the stable identifier the venta engine branches on.
// Nombre is display-only and may be renamed or localized freely.
type TipoMetodoPago string

const (
	MetodoContado TipoMetodoPago = "contado"
	MetodoCredito TipoMetodoPago = "credito"
	MetodoOtro    TipoMetodoPago = "otro"
)

// MetodoPago is a configured payment method (Contado, Crédito, Transferencia…).
type MetodoPago struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre    string         `gorm:"uniqueIndex;not null"`
	Tipo      TipoMetodoPago `gorm:"type:varchar(20);not null;default:'otro'"`
	Activo    bool           `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (MetodoPago) TableName() string { return "metodos_pago" }
