package service

import (
	"context"

	"github.com/Spartan-876/Acuamont-System-sub000/internal/dto"
	"github.com/Spartan-876/Acuamont-System-sub000/internal/repository"
)

// CatalogoService exposes the read-only sale-configuration catalogs: payment
// methods and document series. Both are seeded, not managed through the API.
type CatalogoService interface {
	ListarMetodosPago(ctx context.Context) ([]dto.MetodoPagoResponse, error)
	ListarSeries(ctx context.Context) ([]dto.SerieResponse, error)
}

type catalogoService struct {
	metodos repository.MetodoPagoRepository
	series  repository.SerieRepository
}

func NewCatalogoService(metodos repository.MetodoPagoRepository, series repository.SerieRepository) CatalogoService {
	return &catalogoService{metodos: metodos, series: series}
}

func (s *catalogoService) ListarMetodosPago(ctx context.Context) ([]dto.MetodoPagoResponse, error) {
	metodos, err := s.metodos.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.MetodoPagoResponse, len(metodos))
	for i, m := range metodos {
		resp[i] = dto.MetodoPagoResponse{
			ID:     m.ID.String(),
			Nombre: m.Nombre,
			Tipo:   string(m.Tipo),
			Activo: m.Activo,
		}
	}
	return resp, nil
}

func (s *catalogoService) ListarSeries(ctx context.Context) ([]dto.SerieResponse, error) {
	series, err := s.series.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.SerieResponse, len(series))
	for i, sc := range series {
		resp[i] = dto.SerieResponse{
			ID:           sc.ID.String(),
			Serie:        sc.Serie,
			NumeroActual: sc.NumeroActual,
			Activo:       sc.Activo,
		}
	}
	return resp, nil
}
