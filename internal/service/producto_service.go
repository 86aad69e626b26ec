package service

import (
	"context"
	"errors"

	"github.com/Spartan-876/Acuamont-System-sub000/internal/dto"
	"github.com/Spartan-876/Acuamont-System-sub000/internal/model"
	"github.com/Spartan-876/Acuamont-System-sub000/internal/repository"

	"github.com/google/uuid"
)

type ProductoService interface {
	Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error)
	BuscarPorCodigo(ctx context.Context, codigo string) (*dto.ProductoResponse, error)
	Listar(ctx context.Context, filter dto.ProductoFilter) (*dto.ProductoListResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error)
	Desactivar(ctx context.Context, id uuid.UUID) error
	Reactivar(ctx context.Context, id uuid.UUID) error
	HistorialPrecios(ctx context.Context, id uuid.UUID, page, limit int) ([]dto.HistorialPrecioResponse, int64, error)
}

type productoService struct {
	repo      repository.ProductoRepository
	historial repository.HistorialPrecioRepository
}

func NewProductoService(repo repository.ProductoRepository, historial repository.HistorialPrecioRepository) ProductoService {
	return &productoService{repo: repo, historial: historial}
}

func (s *productoService) Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error) {
	if req.PrecioVenta.IsNegative() || req.PrecioCompra.IsNegative() {
		return nil, errors.New("los precios no pueden ser negativos")
	}

	p := &model.Producto{
		ID:             uuid.New(),
		CodigoBarras:   req.CodigoBarras,
		Nombre:         req.Nombre,
		Descripcion:    req.Descripcion,
		PrecioCompra:   req.PrecioCompra.Round(2),
		PrecioVenta:    req.PrecioVenta.Round(2),
		Stock:          req.Stock,
		StockSeguridad: req.StockSeguridad,
		Activo:         true,
	}
	if req.CategoriaID != nil {
		cid, err := uuid.Parse(*req.CategoriaID)
		if err != nil {
			return nil, errors.New("categoria_id inválido")
		}
		p.CategoriaID = &cid
	}
	if req.ProveedorID != nil {
		pid, err := uuid.Parse(*req.ProveedorID)
		if err != nil {
			return nil, errors.New("proveedor_id inválido")
		}
		p.ProveedorID = &pid
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return productoToResponse(p), nil
}

func (s *productoService) Obtener(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, &ErrNoEncontrado{Entidad: "producto", ID: id.String()}
	}
	return productoToResponse(p), nil
}

func (s *productoService) BuscarPorCodigo(ctx context.Context, codigo string) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByBarcode(ctx, codigo)
	if err != nil {
		return nil, &ErrNoEncontrado{Entidad: "producto", ID: codigo}
	}
	return productoToResponse(p), nil
}

func (s *productoService) Listar(ctx context.Context, filter dto.ProductoFilter) (*dto.ProductoListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}
	productos, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductoResponse, len(productos))
	for i := range productos {
		items[i] = *productoToResponse(&productos[i])
	}
	return &dto.ProductoListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

// Actualizar applies partial updates. A price change also appends an immutable
// HistorialPrecio record; existing venta lines keep their snapshot regardless.
func (s *productoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, &ErrNoEncontrado{Entidad: "producto", ID: id.String()}
	}

	compraAntes := p.PrecioCompra
	ventaAntes := p.PrecioVenta
	cambioPrecio := false

	if req.Nombre != nil {
		p.Nombre = *req.Nombre
	}
	if req.Descripcion != nil {
		p.Descripcion = req.Descripcion
	}
	if req.CategoriaID != nil {
		cid, err := uuid.Parse(*req.CategoriaID)
		if err != nil {
			return nil, errors.New("categoria_id inválido")
		}
		p.CategoriaID = &cid
	}
	if req.ProveedorID != nil {
		pid, err := uuid.Parse(*req.ProveedorID)
		if err != nil {
			return nil, errors.New("proveedor_id inválido")
		}
		p.ProveedorID = &pid
	}
	if req.PrecioCompra != nil {
		if req.PrecioCompra.IsNegative() {
			return nil, errors.New("el precio de compra no puede ser negativo")
		}
		if !req.PrecioCompra.Equal(p.PrecioCompra) {
			cambioPrecio = true
		}
		p.PrecioCompra = req.PrecioCompra.Round(2)
	}
	if req.PrecioVenta != nil {
		if req.PrecioVenta.IsNegative() {
			return nil, errors.New("el precio de venta no puede ser negativo")
		}
		if !req.PrecioVenta.Equal(p.PrecioVenta) {
			cambioPrecio = true
		}
		p.PrecioVenta = req.PrecioVenta.Round(2)
	}
	if req.StockSeguridad != nil {
		p.StockSeguridad = *req.StockSeguridad
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	if cambioPrecio {
		h := &model.HistorialPrecio{
			ProductoID:    p.ID,
			CompraAntes:   compraAntes,
			CompraDespues: p.PrecioCompra,
			VentaAntes:    ventaAntes,
			VentaDespues:  p.PrecioVenta,
		}
		if err := s.historial.Create(ctx, h); err != nil {
			return nil, err
		}
	}

	return productoToResponse(p), nil
}

func (s *productoService) Desactivar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return &ErrNoEncontrado{Entidad: "producto", ID: id.String()}
	}
	return s.repo.SoftDelete(ctx, id)
}

func (s *productoService) Reactivar(ctx context.Context, id uuid.UUID) error {
	return s.repo.Reactivar(ctx, id)
}

func (s *productoService) HistorialPrecios(ctx context.Context, id uuid.UUID, page, limit int) ([]dto.HistorialPrecioResponse, int64, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, 0, &ErrNoEncontrado{Entidad: "producto", ID: id.String()}
	}
	rows, total, err := s.historial.ListByProducto(ctx, id, page, limit)
	if err != nil {
		return nil, 0, err
	}
	resp := make([]dto.HistorialPrecioResponse, len(rows))
	for i, h := range rows {
		resp[i] = dto.HistorialPrecioResponse{
			ID:            h.ID.String(),
			CompraAntes:   h.CompraAntes,
			CompraDespues: h.CompraDespues,
			VentaAntes:    h.VentaAntes,
			VentaDespues:  h.VentaDespues,
			CreatedAt:     h.CreatedAt.Format("2006-01-02 15:04:05"),
		}
	}
	return resp, total, nil
}

func productoToResponse(p *model.Producto) *dto.ProductoResponse {
	resp := &dto.ProductoResponse{
		ID:             p.ID.String(),
		CodigoBarras:   p.CodigoBarras,
		Nombre:         p.Nombre,
		Descripcion:    p.Descripcion,
		PrecioCompra:   p.PrecioCompra,
		PrecioVenta:    p.PrecioVenta,
		Stock:          p.Stock,
		StockSeguridad: p.StockSeguridad,
		Activo:         p.Activo,
	}
	if p.CategoriaID != nil {
		s := p.CategoriaID.String()
		resp.CategoriaID = &s
	}
	if p.ProveedorID != nil {
		s := p.ProveedorID.String()
		resp.ProveedorID = &s
	}
	return resp
}
