package service

import (
	"context"
	"errors"

	"github.com/Spartan-876/Acuamont-System-sub000/internal/dto"
	"github.com/Spartan-876/Acuamont-System-sub000/internal/model"
	"github.com/Spartan-876/Acuamont-System-sub000/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AjusteService handles manual stock adjustments outside the sale flow:
// recounts, breakage, received merchandise. Sales never call it; they mutate
// stock inside their own transaction.
type AjusteService interface {
	RegistrarAjuste(ctx context.Context, productoID uuid.UUID, req dto.AjusteStockRequest) (*dto.MovimientoStockResponse, error)
	ListarMovimientos(ctx context.Context, filter repository.MovimientoStockFilter) ([]dto.MovimientoStockResponse, int64, error)
	Alertas(ctx context.Context) ([]dto.AlertaStockResponse, error)
}

type ajusteService struct {
	productos   repository.ProductoRepository
	movimientos repository.MovimientoStockRepository
}

func NewAjusteService(productos repository.ProductoRepository, movimientos repository.MovimientoStockRepository) AjusteService {
	return &ajusteService{productos: productos, movimientos: movimientos}
}

func (s *ajusteService) RegistrarAjuste(ctx context.Context, productoID uuid.UUID, req dto.AjusteStockRequest) (*dto.MovimientoStockResponse, error) {
	if req.Delta == 0 {
		return nil, errors.New("el ajuste debe ser distinto de cero")
	}

	var mov *model.MovimientoStock
	txErr := runTx(ctx, s.productos.DB(), func(tx *gorm.DB) error {
		p, err := s.productos.FindByIDForUpdateTx(tx, productoID)
		if err != nil {
			return &ErrNoEncontrado{Entidad: "producto", ID: productoID.String()}
		}
		if p.Stock+req.Delta < 0 {
			return &ErrStockInsuficiente{
				ProductoID: productoID,
				Nombre:     p.Nombre,
				Disponible: p.Stock,
				Solicitado: -req.Delta,
			}
		}
		if err := s.productos.UpdateStockTx(tx, productoID, req.Delta); err != nil {
			return err
		}
		mov = &model.MovimientoStock{
			ID:            uuid.New(),
			ProductoID:    productoID,
			Tipo:          "ajuste",
			Cantidad:      req.Delta,
			StockAnterior: p.Stock,
			StockNuevo:    p.Stock + req.Delta,
			Motivo:        req.Motivo,
		}
		mov.Producto = p
		return s.movimientos.CreateTx(tx, mov)
	})
	if txErr != nil {
		return nil, txErr
	}
	resp := movimientoToResponse(mov)
	return &resp, nil
}

func (s *ajusteService) ListarMovimientos(ctx context.Context, filter repository.MovimientoStockFilter) ([]dto.MovimientoStockResponse, int64, error) {
	movimientos, total, err := s.movimientos.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	resp := make([]dto.MovimientoStockResponse, len(movimientos))
	for i := range movimientos {
		resp[i] = movimientoToResponse(&movimientos[i])
	}
	return resp, total, nil
}

func (s *ajusteService) Alertas(ctx context.Context) ([]dto.AlertaStockResponse, error) {
	productos, err := s.productos.ListBajoStockSeguridad(ctx)
	if err != nil {
		return nil, err
	}
	alertas := make([]dto.AlertaStockResponse, len(productos))
	for i, p := range productos {
		alertas[i] = dto.AlertaStockResponse{
			ProductoID:     p.ID.String(),
			Nombre:         p.Nombre,
			Stock:          p.Stock,
			StockSeguridad: p.StockSeguridad,
		}
	}
	return alertas, nil
}

func movimientoToResponse(m *model.MovimientoStock) dto.MovimientoStockResponse {
	resp := dto.MovimientoStockResponse{
		ID:            m.ID.String(),
		ProductoID:    m.ProductoID.String(),
		Tipo:          m.Tipo,
		Cantidad:      m.Cantidad,
		StockAnterior: m.StockAnterior,
		StockNuevo:    m.StockNuevo,
		Motivo:        m.Motivo,
		CreatedAt:     m.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if m.Producto != nil {
		resp.Producto = m.Producto.Nombre
	}
	if m.ReferenciaID != nil {
		s := m.ReferenciaID.String()
		resp.ReferenciaID = &s
	}
	return resp
}
