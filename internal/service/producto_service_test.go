package service_test

import (
	"context"
	"testing"

	"github.com/Spartan-876/Acuamont-System-sub000/internal/dto"
	"github.com/Spartan-876/Acuamont-System-sub000/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProductoFixture() (service.ProductoService, *stubProductoRepo, *stubHistorialRepo) {
	productos := newStubProductoRepo()
	historial := &stubHistorialRepo{}
	return service.NewProductoService(productos, historial), productos, historial
}

func crearBidon(t *testing.T, svc service.ProductoService) *dto.ProductoResponse {
	t.Helper()
	resp, err := svc.Crear(context.Background(), dto.CrearProductoRequest{
		CodigoBarras:   "7750000000011",
		Nombre:         "Bidón de agua 20L",
		PrecioCompra:   decimal.RequireFromString("6.50"),
		PrecioVenta:    decimal.RequireFromString("10.00"),
		Stock:          50,
		StockSeguridad: 5,
	})
	require.NoError(t, err)
	return resp
}

func TestCrearProducto(t *testing.T) {
	svc, _, _ := newProductoFixture()
	resp := crearBidon(t, svc)

	assert.True(t, resp.Activo)
	assert.Equal(t, 50, resp.Stock)
	assert.True(t, resp.PrecioVenta.Equal(decimal.RequireFromString("10.00")))

	porCodigo, err := svc.BuscarPorCodigo(context.Background(), "7750000000011")
	require.NoError(t, err)
	assert.Equal(t, resp.ID, porCodigo.ID)
}

func TestCrearProductoPrecioNegativo(t *testing.T) {
	svc, _, _ := newProductoFixture()
	_, err := svc.Crear(context.Background(), dto.CrearProductoRequest{
		CodigoBarras: "7750000000028",
		Nombre:       "Filtro purificador",
		PrecioCompra: decimal.RequireFromString("-1.00"),
		PrecioVenta:  decimal.RequireFromString("25.50"),
	})
	require.Error(t, err)
}

func TestActualizarProductoRegistraHistorialDePrecio(t *testing.T) {
	svc, _, historial := newProductoFixture()
	creado := crearBidon(t, svc)
	id := uuid.MustParse(creado.ID)

	nuevoPrecio := decimal.RequireFromString("12.00")
	resp, err := svc.Actualizar(context.Background(), id, dto.ActualizarProductoRequest{
		PrecioVenta: &nuevoPrecio,
	})
	require.NoError(t, err)
	assert.True(t, resp.PrecioVenta.Equal(nuevoPrecio))

	require.Len(t, historial.registros, 1)
	h := historial.registros[0]
	assert.True(t, h.VentaAntes.Equal(decimal.RequireFromString("10.00")))
	assert.True(t, h.VentaDespues.Equal(nuevoPrecio))
	assert.True(t, h.CompraAntes.Equal(h.CompraDespues), "precio de compra sin cambio")
}

func TestActualizarProductoSinCambioDePrecioNoRegistraHistorial(t *testing.T) {
	svc, _, historial := newProductoFixture()
	creado := crearBidon(t, svc)

	nombre := "Bidón de agua 20L retornable"
	_, err := svc.Actualizar(context.Background(), uuid.MustParse(creado.ID), dto.ActualizarProductoRequest{
		Nombre: &nombre,
	})
	require.NoError(t, err)
	assert.Empty(t, historial.registros)
}

func TestDesactivarYReactivarProducto(t *testing.T) {
	svc, productos, _ := newProductoFixture()
	creado := crearBidon(t, svc)
	id := uuid.MustParse(creado.ID)

	require.NoError(t, svc.Desactivar(context.Background(), id))
	p, _ := productos.FindByID(context.Background(), id)
	assert.False(t, p.Activo)

	// Desactivado no aparece por código de barras, pero la fila sigue
	// existiendo y accesible por ID: el retiro nunca borra.
	_, err := svc.BuscarPorCodigo(context.Background(), "7750000000011")
	var notFound *service.ErrNoEncontrado
	require.ErrorAs(t, err, &notFound)

	retirado, err := svc.Obtener(context.Background(), id)
	require.NoError(t, err)
	assert.False(t, retirado.Activo)

	require.NoError(t, svc.Reactivar(context.Background(), id))
	_, err = svc.BuscarPorCodigo(context.Background(), "7750000000011")
	require.NoError(t, err)
}

func TestObtenerProductoInexistente(t *testing.T) {
	svc, _, _ := newProductoFixture()
	_, err := svc.Obtener(context.Background(), uuid.New())
	var notFound *service.ErrNoEncontrado
	require.ErrorAs(t, err, &notFound)
}

func TestHistorialPreciosDeProducto(t *testing.T) {
	svc, _, _ := newProductoFixture()
	creado := crearBidon(t, svc)
	id := uuid.MustParse(creado.ID)

	for _, precio := range []string{"11.00", "12.50"} {
		p := decimal.RequireFromString(precio)
		_, err := svc.Actualizar(context.Background(), id, dto.ActualizarProductoRequest{PrecioVenta: &p})
		require.NoError(t, err)
	}

	rows, total, err := svc.HistorialPrecios(context.Background(), id, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, rows, 2)
	assert.True(t, rows[1].VentaAntes.Equal(decimal.RequireFromString("11.00")))
	assert.True(t, rows[1].VentaDespues.Equal(decimal.RequireFromString("12.50")))
}
