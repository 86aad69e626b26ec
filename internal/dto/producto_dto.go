package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearProductoRequest struct {
	CodigoBarras   string          `json:"codigo_barras"   validate:"required,min=4,max=18"`
	Nombre         string          `json:"nombre"          validate:"required,min=2,max=120"`
	Descripcion    *string         `json:"descripcion"`
	CategoriaID    *string         `json:"categoria_id"    validate:"omitempty,uuid"`
	ProveedorID    *string         `json:"proveedor_id"    validate:"omitempty,uuid"`
	PrecioCompra   decimal.Decimal `json:"precio_compra"   validate:"required"`
	PrecioVenta    decimal.Decimal `json:"precio_venta"    validate:"required"`
	Stock          int             `json:"stock"           validate:"min=0"`
	StockSeguridad int             `json:"stock_seguridad" validate:"min=0"`
}

type ActualizarProductoRequest struct {
	Nombre         *string          `json:"nombre"          validate:"omitempty,min=2,max=120"`
	Descripcion    *string          `json:"descripcion"`
	CategoriaID    *string          `json:"categoria_id"    validate:"omitempty,uuid"`
	ProveedorID    *string          `json:"proveedor_id"    validate:"omitempty,uuid"`
	PrecioCompra   *decimal.Decimal `json:"precio_compra"`
	PrecioVenta    *decimal.Decimal `json:"precio_venta"`
	StockSeguridad *int             `json:"stock_seguridad" validate:"omitempty,min=0"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

type ProductoFilter struct {
	Barcode     string `form:"barcode"`
	Nombre      string `form:"nombre"`
	CategoriaID string `form:"categoria_id"`
	ProveedorID string `form:"proveedor_id"`
	Activo      string `form:"activo"` // "false" = inactivos, "all" = todos
	Page        int    `form:"page,default=1"   validate:"min=1"`
	Limit       int    `form:"limit,default=20" validate:"min=1,max=100"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductoResponse struct {
	ID             string          `json:"id"`
	CodigoBarras   string          `json:"codigo_barras"`
	Nombre         string          `json:"nombre"`
	Descripcion    *string         `json:"descripcion"`
	CategoriaID    *string         `json:"categoria_id"`
	ProveedorID    *string         `json:"proveedor_id"`
	PrecioCompra   decimal.Decimal `json:"precio_compra"`
	PrecioVenta    decimal.Decimal `json:"precio_venta"`
	Stock          int             `json:"stock"`
	StockSeguridad int             `json:"stock_seguridad"`
	Activo         bool            `json:"activo"`
}

type ProductoListResponse struct {
	Data  []ProductoResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}

// HistorialPrecioResponse is one immutable price-change record of a product.
type HistorialPrecioResponse struct {
	ID            string          `json:"id"`
	CompraAntes   decimal.Decimal `json:"compra_antes"`
	CompraDespues decimal.Decimal `json:"compra_despues"`
	VentaAntes    decimal.Decimal `json:"venta_antes"`
	VentaDespues  decimal.Decimal `json:"venta_despues"`
	CreatedAt     string          `json:"created_at"`
}
