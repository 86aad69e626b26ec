package service

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Typed business errors of the venta engine. Every validation failure aborts
// the enclosing transaction with zero persisted side effects; handlers map
// these to HTTP codes with errors.As. Nothing is retried inside the engine.

// ErrNoEncontrado indicates a referenced entity does not exist.
type ErrNoEncontrado struct {
	Entidad string
	ID      string
}

func (e *ErrNoEncontrado) Error() string {
	return fmt.Sprintf("%s %s no encontrado", e.Entidad, e.ID)
}

// ErrStockInsuficiente aborts a sale whose requested quantity exceeds the
// available stock of a product. The whole sale fails; no line is persisted.
type ErrStockInsuficiente struct {
	ProductoID uuid.UUID
	Nombre     string
	Disponible int
	Solicitado int
}

func (e *ErrStockInsuficiente) Error() string {
	return fmt.Sprintf("stock insuficiente para %s: disponible %d, solicitado %d",
		e.Nombre, e.Disponible, e.Solicitado)
}

// ErrPlanCuotasInconsistente reports both sides of the failed equality
// total == pago inicial + Σ cuotas (2-decimal compare).
type ErrPlanCuotasInconsistente struct {
	Total     decimal.Decimal
	PlanTotal decimal.Decimal
}

func (e *ErrPlanCuotasInconsistente) Error() string {
	return fmt.Sprintf("plan de cuotas inconsistente: total %s, inicial + cuotas %s",
		e.Total.StringFixed(2), e.PlanTotal.StringFixed(2))
}

// ErrPlanCuotasVacio rejects a credit sale without at least one installment.
type ErrPlanCuotasVacio struct{}

func (e *ErrPlanCuotasVacio) Error() string {
	return "una venta a crédito requiere al menos una cuota"
}

// ErrVentaYaAnulada rejects a second anulación and any pago against an
// already-anulada venta. Anulación is not idempotent.
type ErrVentaYaAnulada struct {
	VentaID uuid.UUID
}

func (e *ErrVentaYaAnulada) Error() string {
	return fmt.Sprintf("la venta %s ya está anulada", e.VentaID)
}

// ErrPagoExcedeSaldo rejects an overpayment, reporting the current saldo.
// Partial underpayment is always allowed; overpayment never is.
type ErrPagoExcedeSaldo struct {
	CuotaID   uuid.UUID
	Saldo     decimal.Decimal
	Intentado decimal.Decimal
}

func (e *ErrPagoExcedeSaldo) Error() string {
	return fmt.Sprintf("el pago %s excede el saldo %s de la cuota %s",
		e.Intentado.StringFixed(2), e.Saldo.StringFixed(2), e.CuotaID)
}

// ErrConflictoConcurrencia surfaces a guarded update that matched zero rows.
// Retrying is the caller's responsibility, never the engine's.
type ErrConflictoConcurrencia struct {
	Recurso string
	ID      uuid.UUID
}

func (e *ErrConflictoConcurrencia) Error() string {
	return fmt.Sprintf("conflicto de concurrencia sobre %s %s", e.Recurso, e.ID)
}
