package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Spartan-876/Acuamont-System-sub000/internal/dto"
	"github.com/Spartan-876/Acuamont-System-sub000/internal/handler"
	"github.com/Spartan-876/Acuamont-System-sub000/internal/middleware"
	"github.com/Spartan-876/Acuamont-System-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ventaServiceStub cuenta las invocaciones; los handlers se prueban sin motor.
type ventaServiceStub struct {
	creadas int
}

func (s *ventaServiceStub) CrearVenta(_ context.Context, _ uuid.UUID, _ dto.CrearVentaRequest) (*dto.VentaResponse, error) {
	s.creadas++
	return &dto.VentaResponse{ID: uuid.NewString(), Estado: "pagada"}, nil
}

func (s *ventaServiceStub) ReemplazarVenta(_ context.Context, _, _ uuid.UUID, _ dto.CrearVentaRequest) (*dto.VentaResponse, error) {
	s.creadas++
	return &dto.VentaResponse{ID: uuid.NewString(), Estado: "pagada"}, nil
}

func (s *ventaServiceStub) AnularVenta(_ context.Context, _ uuid.UUID) (*dto.VentaResponse, error) {
	return nil, nil
}

func (s *ventaServiceStub) RegistrarPago(_ context.Context, _ uuid.UUID, _ dto.RegistrarPagoRequest) (*dto.VentaResponse, error) {
	return nil, nil
}

func (s *ventaServiceStub) ObtenerVenta(_ context.Context, _ uuid.UUID) (*dto.VentaResponse, error) {
	return nil, nil
}

func (s *ventaServiceStub) ListarVentas(_ context.Context, _ dto.VentaFilter) (*dto.VentaListResponse, error) {
	return nil, nil
}

func (s *ventaServiceStub) ListarCuotas(_ context.Context, _ uuid.UUID) ([]dto.CuotaResponse, error) {
	return nil, nil
}

func (s *ventaServiceStub) ListarPagos(_ context.Context, _ uuid.UUID) ([]dto.PagoResponse, error) {
	return nil, nil
}

func (s *ventaServiceStub) Resumen(_ context.Context) (*dto.ResumenVentasResponse, error) {
	return nil, nil
}

var _ service.VentaService = (*ventaServiceStub)(nil)

// nuevoRouterVentas monta el handler con claims inyectados, como los dejaría
// JWTAuth tras validar el token.
func nuevoRouterVentas(svc *ventaServiceStub, claims *middleware.JWTClaims) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := handler.NewVentasHandler(svc)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ClaimsKey, claims)
		c.Next()
	})
	r.POST("/v1/ventas", h.CrearVenta)
	r.POST("/v1/ventas/:id/reemplazar", h.ReemplazarVenta)
	return r
}

func cuerpoVentaValido(t *testing.T) []byte {
	t.Helper()
	body, err := json.Marshal(dto.CrearVentaRequest{
		ClienteID:    uuid.NewString(),
		SerieID:      uuid.NewString(),
		MetodoPagoID: uuid.NewString(),
		Detalles: []dto.DetalleVentaRequest{
			{ProductoID: uuid.NewString(), Cantidad: 1},
		},
	})
	require.NoError(t, err)
	return body
}

func TestCrearVentaClaimUserIDMalFormado(t *testing.T) {
	svc := &ventaServiceStub{}
	r := nuevoRouterVentas(svc, &middleware.JWTClaims{UserID: "no-es-un-uuid", Rol: "vendedor"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/ventas", bytes.NewReader(cuerpoVentaValido(t)))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, 0, svc.creadas, "el motor nunca se invoca con un claim roto")
}

func TestReemplazarVentaClaimUserIDMalFormado(t *testing.T) {
	svc := &ventaServiceStub{}
	r := nuevoRouterVentas(svc, &middleware.JWTClaims{UserID: "", Rol: "administrador"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/ventas/"+uuid.NewString()+"/reemplazar", bytes.NewReader(cuerpoVentaValido(t)))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, 0, svc.creadas)
}

func TestCrearVentaClaimValido(t *testing.T) {
	svc := &ventaServiceStub{}
	r := nuevoRouterVentas(svc, &middleware.JWTClaims{UserID: uuid.NewString(), Rol: "vendedor"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/ventas", bytes.NewReader(cuerpoVentaValido(t)))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 1, svc.creadas)
}
