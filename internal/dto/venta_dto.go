package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type DetalleVentaRequest struct {
	ProductoID string `json:"producto_id" validate:"required,uuid"`
	Cantidad   int    `json:"cantidad"    validate:"required,min=1"`
}

// CuotaRequest is one planned installment of a credit sale. Cuotas are applied
// in the order given; Numero is assigned 1..N by the engine.
type CuotaRequest struct {
	Monto            decimal.Decimal `json:"monto"             validate:"required"`
	FechaVencimiento string          `json:"fecha_vencimiento" validate:"required,datetime=2006-01-02"`
}

type CrearVentaRequest struct {
	ClienteID    string                `json:"cliente_id"     validate:"required,uuid"`
	SerieID      string                `json:"serie_id"       validate:"required,uuid"`
	MetodoPagoID string                `json:"metodo_pago_id" validate:"required,uuid"`
	Detalles     []DetalleVentaRequest `json:"detalles"       validate:"required,min=1,dive"`
	// PagoInicial and Cuotas are only honored for credit methods.
	// Invariant: Total == PagoInicial + Σ Cuotas.Monto (2-decimal compare).
	PagoInicial decimal.Decimal `json:"pago_inicial"`
	Cuotas      []CuotaRequest  `json:"cuotas" validate:"omitempty,dive"`
}

type RegistrarPagoRequest struct {
	Monto       decimal.Decimal `json:"monto"  validate:"required"`
	Metodo      string          `json:"metodo" validate:"required,min=2,max=30"`
	Observacion *string         `json:"observacion"`
}

// ─── Filter / List ──────────────────────────────────────────────────────────

// VentaFilter is bound from query string of GET /v1/ventas.
type VentaFilter struct {
	Fecha  string `form:"fecha"`  // YYYY-MM-DD; empty = no date filter
	Estado string `form:"estado"` // pendiente | pagada | anulada | all
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type DetalleVentaResponse struct {
	ProductoID     string          `json:"producto_id"`
	Producto       string          `json:"producto"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

type CuotaResponse struct {
	ID               string          `json:"id"`
	Numero           int             `json:"numero"`
	Monto            decimal.Decimal `json:"monto"`
	Saldo            decimal.Decimal `json:"saldo"`
	FechaVencimiento string          `json:"fecha_vencimiento"`
	Estado           string          `json:"estado"`
}

type PagoResponse struct {
	ID          string          `json:"id"`
	CuotaID     string          `json:"cuota_id"`
	Monto       decimal.Decimal `json:"monto"`
	Metodo      string          `json:"metodo"`
	Observacion *string         `json:"observacion,omitempty"`
	Fecha       string          `json:"fecha"`
}

type VentaResponse struct {
	ID          string                 `json:"id"`
	Serie       string                 `json:"serie"`
	Correlativo int64                  `json:"correlativo"`
	ClienteID   string                 `json:"cliente_id"`
	UsuarioID   string                 `json:"usuario_id"`
	MetodoPago  string                 `json:"metodo_pago"`
	Fecha       string                 `json:"fecha"`
	Total       decimal.Decimal        `json:"total"`
	Deuda       decimal.Decimal        `json:"deuda"`
	Estado      string                 `json:"estado"`
	Detalles    []DetalleVentaResponse `json:"detalles"`
	Cuotas      []CuotaResponse        `json:"cuotas,omitempty"`
}

type VentaListResponse struct {
	Data  []VentaResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

// ResumenVentasResponse carries the read-only aggregates over non-voided sales.
type ResumenVentasResponse struct {
	TotalHoy       decimal.Decimal `json:"total_hoy"`
	TotalMes       decimal.Decimal `json:"total_mes"`
	DeudaPendiente decimal.Decimal `json:"deuda_pendiente"`
}
