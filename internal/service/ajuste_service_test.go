package service_test

import (
	"context"
	"testing"

	"github.com/Spartan-876/Acuamont-System-sub000/internal/dto"
	"github.com/Spartan-876/Acuamont-System-sub000/internal/model"
	"github.com/Spartan-876/Acuamont-System-sub000/internal/repository"
	"github.com/Spartan-876/Acuamont-System-sub000/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAjusteFixture() (service.AjusteService, *stubProductoRepo, *stubMovimientoRepo, uuid.UUID) {
	productos := newStubProductoRepo()
	movimientos := &stubMovimientoRepo{}

	id := uuid.New()
	productos.add(&model.Producto{
		ID: id, Nombre: "Bidón de agua 20L",
		PrecioVenta: decimal.RequireFromString("10.00"),
		Stock:       10, StockSeguridad: 3, Activo: true,
	})
	return service.NewAjusteService(productos, movimientos), productos, movimientos, id
}

func TestRegistrarAjustePositivo(t *testing.T) {
	svc, productos, movimientos, id := newAjusteFixture()

	resp, err := svc.RegistrarAjuste(context.Background(), id, dto.AjusteStockRequest{
		Delta: 15, Motivo: "Recepción de mercadería proveedor Acuamont",
	})
	require.NoError(t, err)

	assert.Equal(t, "ajuste", resp.Tipo)
	assert.Equal(t, 15, resp.Cantidad)
	assert.Equal(t, 10, resp.StockAnterior)
	assert.Equal(t, 25, resp.StockNuevo)

	p, _ := productos.FindByID(context.Background(), id)
	assert.Equal(t, 25, p.Stock)
	assert.Len(t, movimientos.byTipo("ajuste"), 1)
}

func TestRegistrarAjusteNegativo(t *testing.T) {
	svc, productos, _, id := newAjusteFixture()

	resp, err := svc.RegistrarAjuste(context.Background(), id, dto.AjusteStockRequest{
		Delta: -4, Motivo: "Merma por bidones dañados",
	})
	require.NoError(t, err)
	assert.Equal(t, 6, resp.StockNuevo)

	p, _ := productos.FindByID(context.Background(), id)
	assert.Equal(t, 6, p.Stock)
}

func TestRegistrarAjusteDejaStockNegativo(t *testing.T) {
	svc, productos, movimientos, id := newAjusteFixture()

	_, err := svc.RegistrarAjuste(context.Background(), id, dto.AjusteStockRequest{
		Delta: -11, Motivo: "Recuento anual de almacén",
	})
	var stockErr *service.ErrStockInsuficiente
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 10, stockErr.Disponible)
	assert.Equal(t, 11, stockErr.Solicitado)

	p, _ := productos.FindByID(context.Background(), id)
	assert.Equal(t, 10, p.Stock)
	assert.Empty(t, movimientos.movimientos)
}

func TestRegistrarAjusteDeltaCero(t *testing.T) {
	svc, _, _, id := newAjusteFixture()

	_, err := svc.RegistrarAjuste(context.Background(), id, dto.AjusteStockRequest{
		Delta: 0, Motivo: "Sin cambios reales",
	})
	require.Error(t, err)
}

func TestRegistrarAjusteProductoInexistente(t *testing.T) {
	svc, _, _, _ := newAjusteFixture()

	_, err := svc.RegistrarAjuste(context.Background(), uuid.New(), dto.AjusteStockRequest{
		Delta: 5, Motivo: "Recepción de mercadería",
	})
	var notFound *service.ErrNoEncontrado
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "producto", notFound.Entidad)
}

func TestListarMovimientosFiltraPorProducto(t *testing.T) {
	svc, productos, _, id := newAjusteFixture()
	otro := uuid.New()
	productos.add(&model.Producto{
		ID: otro, Nombre: "Filtro purificador",
		PrecioVenta: decimal.RequireFromString("25.50"), Stock: 8, Activo: true,
	})

	_, err := svc.RegistrarAjuste(context.Background(), id, dto.AjusteStockRequest{Delta: 2, Motivo: "Recepción parcial"})
	require.NoError(t, err)
	_, err = svc.RegistrarAjuste(context.Background(), otro, dto.AjusteStockRequest{Delta: -1, Motivo: "Filtro de muestra"})
	require.NoError(t, err)

	soloOtro, total, err := svc.ListarMovimientos(context.Background(), repository.MovimientoStockFilter{ProductoID: &otro})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, soloOtro, 1)
	assert.Equal(t, otro.String(), soloOtro[0].ProductoID)
	assert.Equal(t, -1, soloOtro[0].Cantidad)
}

func TestAlertasBajoStockSeguridad(t *testing.T) {
	svc, productos, _, id := newAjusteFixture()

	// stock 10 > seguridad 3: sin alertas todavía
	alertas, err := svc.Alertas(context.Background())
	require.NoError(t, err)
	assert.Empty(t, alertas)

	_, err = svc.RegistrarAjuste(context.Background(), id, dto.AjusteStockRequest{
		Delta: -8, Motivo: "Venta en bloque a distribuidora",
	})
	require.NoError(t, err)

	alertas, err = svc.Alertas(context.Background())
	require.NoError(t, err)
	require.Len(t, alertas, 1)
	assert.Equal(t, 2, alertas[0].Stock)
	assert.Equal(t, 3, alertas[0].StockSeguridad)

	// Inactivos nunca alertan
	productos.productos[id].Activo = false
	alertas, err = svc.Alertas(context.Background())
	require.NoError(t, err)
	assert.Empty(t, alertas)
}
