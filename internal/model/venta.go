package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EstadoVenta is the lifecycle state of a Venta. A venta is never deleted:
// anulación is the terminal state and keeps correlativo, total and pagos intact.
type EstadoVenta int

const (
	VentaPendiente EstadoVenta = 0
	VentaPagada    EstadoVenta = 1
	VentaAnulada   EstadoVenta = 2
)

func (e EstadoVenta) String() string {
	switch e {
	case VentaPendiente:
		return "pendiente"
	case VentaPagada:
		return "pagada"
	case VentaAnulada:
		return "anulada"
	}
	return "desconocido"
}

// EstadoCuota mirrors EstadoVenta for individual installments.
type EstadoCuota int

const (
	CuotaPendiente EstadoCuota = 0
	CuotaPagada    EstadoCuota = 1
	CuotaAnulada   EstadoCuota = 2
)

func (e EstadoCuota) String() string {
	switch e {
	case CuotaPendiente:
		return "pendiente"
	case CuotaPagada:
		return "pagada"
	case CuotaAnulada:
		return "anulada"
	}
	return "desconocido"
}

// Venta is the aggregate root of the sales ledger. Detalles and Cuotas are
// owned exclusively by the venta and are loaded/saved through it; rows removed
// from the in-memory collections are deleted in storage in the same transaction.
type Venta struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SerieID     uuid.UUID `gorm:"type:uuid;not null;index"`
	// Correlativo is assigned from the serie at creation and never changes,
	// not even when the venta is later anulada.
	Correlativo  int64           `gorm:"not null"`
	ClienteID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	UsuarioID    uuid.UUID       `gorm:"type:uuid;not null"`
	MetodoPagoID uuid.UUID       `gorm:"type:uuid;not null"`
	Fecha        time.Time       `gorm:"not null;index"`
	Total        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Deuda        decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Estado       EstadoVenta     `gorm:"type:smallint;not null;default:0"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Serie      *SerieComprobante `gorm:"foreignKey:SerieID"`
	Cliente    *Cliente          `gorm:"foreignKey:ClienteID"`
	Usuario    *Usuario          `gorm:"foreignKey:UsuarioID"`
	MetodoPago *MetodoPago       `gorm:"foreignKey:MetodoPagoID"`
	Detalles   []DetalleVenta    `gorm:"foreignKey:VentaID;constraint:OnDelete:CASCADE"`
	Cuotas     []Cuota           `gorm:"foreignKey:VentaID;constraint:OnDelete:CASCADE"`
}

func (Venta) TableName() string { return "ventas" }

// DetalleVenta is one line of a venta. PrecioUnitario is a snapshot of the
// product's sale price at creation time; later price changes never affect it.
type DetalleVenta struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VentaID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductoID     uuid.UUID       `gorm:"type:uuid;not null"`
	Cantidad       int             `gorm:"not null"`
	PrecioUnitario decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	Producto *Producto `gorm:"foreignKey:ProductoID"`
}

func (DetalleVenta) TableName() string { return "detalles_venta" }

// Cuota is one scheduled installment of a credit venta.
// Invariant: 0 <= Saldo <= Monto; Estado=CuotaPagada ⇔ Saldo=0 while not anulada.
type Cuota struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VentaID uuid.UUID `gorm:"type:uuid;not null;index"`
	// Numero is 1-based and contiguous within the venta.
	Numero           int             `gorm:"not null"`
	Monto            decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Saldo            decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	FechaVencimiento time.Time       `gorm:"not null"`
	Estado           EstadoCuota     `gorm:"type:smallint;not null;default:0"`
	CreatedAt        time.Time
	UpdatedAt        time.Time

	Pagos []Pago `gorm:"foreignKey:CuotaID;constraint:OnDelete:CASCADE"`
}

func (Cuota) TableName() string { return "cuotas" }

// Pago is one money transfer applied against a cuota. Pagos are append-only:
// they are never updated or deleted, not even when the venta is anulada — the
// ledger history is reconstructed by replaying them.
type Pago struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CuotaID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Monto       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Metodo      string          `gorm:"type:varchar(30);not null"`
	Observacion *string
	Fecha       time.Time `gorm:"not null"`
	CreatedAt   time.Time
}

func (Pago) TableName() string { return "pagos" }
