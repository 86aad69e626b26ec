package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

// AjusteStockRequest increments or decrements a product's stock outside the
// venta engine (recounts, breakage, received merchandise).
type AjusteStockRequest struct {
	Delta  int    `json:"delta"  validate:"required"`
	Motivo string `json:"motivo" validate:"required,min=5"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type MovimientoStockResponse struct {
	ID            string  `json:"id"`
	ProductoID    string  `json:"producto_id"`
	Producto      string  `json:"producto"`
	Tipo          string  `json:"tipo"`
	Cantidad      int     `json:"cantidad"`
	StockAnterior int     `json:"stock_anterior"`
	StockNuevo    int     `json:"stock_nuevo"`
	Motivo        string  `json:"motivo"`
	ReferenciaID  *string `json:"referencia_id,omitempty"`
	CreatedAt     string  `json:"created_at"`
}

// AlertaStockResponse flags a product at or below its security threshold.
type AlertaStockResponse struct {
	ProductoID     string `json:"producto_id"`
	Nombre         string `json:"nombre"`
	Stock          int    `json:"stock"`
	StockSeguridad int    `json:"stock_seguridad"`
}
