package handler

import (
	"errors"
	"net/http"

	"github.com/Spartan-876/Acuamont-System-sub000/internal/apierror"
	"github.com/Spartan-876/Acuamont-System-sub000/internal/dto"
	"github.com/Spartan-876/Acuamont-System-sub000/internal/middleware"
	"github.com/Spartan-876/Acuamont-System-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type VentasHandler struct{ svc service.VentaService }

func NewVentasHandler(svc service.VentaService) *VentasHandler { return &VentasHandler{svc: svc} }

// usuarioIDFromClaims extrae el UUID del usuario autenticado. Un claim mal
// formado se corta aquí con 401; no debe degradar en un 404 de usuario.
func usuarioIDFromClaims(c *gin.Context) (uuid.UUID, bool) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, apierror.New("Autenticacion requerida"))
		return uuid.Nil, false
	}
	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New("Token invalido o expirado"))
		return uuid.Nil, false
	}
	return id, true
}

// respondVentaError maps the engine's typed errors to HTTP status codes.
func respondVentaError(c *gin.Context, err error) {
	var (
		noEncontrado  *service.ErrNoEncontrado
		stock         *service.ErrStockInsuficiente
		planInconsist *service.ErrPlanCuotasInconsistente
		planVacio     *service.ErrPlanCuotasVacio
		yaAnulada     *service.ErrVentaYaAnulada
		excedeSaldo   *service.ErrPagoExcedeSaldo
		conflicto     *service.ErrConflictoConcurrencia
	)
	switch {
	case errors.As(err, &noEncontrado):
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
	case errors.As(err, &stock), errors.As(err, &yaAnulada), errors.As(err, &excedeSaldo):
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
	case errors.As(err, &planInconsist), errors.As(err, &planVacio):
		c.JSON(http.StatusUnprocessableEntity, apierror.New(err.Error()))
	case errors.As(err, &conflicto):
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
	default:
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
	}
}

// CrearVenta godoc
// @Summary      Crear una nueva venta
// @Description  Crea una venta ACID: descuenta stock, asigna correlativo y, si el método es crédito, valida el plan de cuotas.
// @Tags         ventas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CrearVentaRequest true "Detalle de la venta"
// @Success      201  {object} dto.VentaResponse
// @Failure      400  {object} apierror.APIError
// @Failure      401  {object} apierror.APIError
// @Failure      409  {object} apierror.APIError
// @Failure      422  {object} apierror.APIError
// @Router       /v1/ventas [post]
func (h *VentasHandler) CrearVenta(c *gin.Context) {
	var req dto.CrearVentaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	usuarioID, ok := usuarioIDFromClaims(c)
	if !ok {
		return
	}

	resp, err := h.svc.CrearVenta(c.Request.Context(), usuarioID, req)
	if err != nil {
		respondVentaError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// AnularVenta godoc
// @Summary      Anular venta
// @Description  Anula una venta: restaura stock, anula cuotas pendientes y deja total y correlativo intactos.
// @Tags         ventas
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID de la venta"
// @Success      200  {object} dto.VentaResponse
// @Failure      404  {object} apierror.APIError
// @Failure      409  {object} apierror.APIError
// @Router       /v1/ventas/{id}/anular [post]
func (h *VentasHandler) AnularVenta(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.AnularVenta(c.Request.Context(), id)
	if err != nil {
		respondVentaError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ReemplazarVenta godoc
// @Summary      Reemplazar venta
// @Description  Anula la venta indicada y crea una nueva en la misma transacción; si la creación falla, la anulación se revierte.
// @Tags         ventas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string                true "UUID de la venta a reemplazar"
// @Param        body body dto.CrearVentaRequest true "Detalle de la venta nueva"
// @Success      201  {object} dto.VentaResponse
// @Failure      404  {object} apierror.APIError
// @Failure      409  {object} apierror.APIError
// @Router       /v1/ventas/{id}/reemplazar [post]
func (h *VentasHandler) ReemplazarVenta(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.CrearVentaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	usuarioID, ok := usuarioIDFromClaims(c)
	if !ok {
		return
	}

	resp, err := h.svc.ReemplazarVenta(c.Request.Context(), usuarioID, id, req)
	if err != nil {
		respondVentaError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// RegistrarPago godoc
// @Summary      Registrar pago de cuota
// @Description  Aplica un pago parcial o total contra una cuota. Rechaza sobrepagos y pagos sobre ventas anuladas.
// @Tags         ventas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string                   true "UUID de la cuota"
// @Param        body body dto.RegistrarPagoRequest true "Pago"
// @Success      200  {object} dto.VentaResponse
// @Failure      404  {object} apierror.APIError
// @Failure      409  {object} apierror.APIError
// @Router       /v1/cuotas/{id}/pagos [post]
func (h *VentasHandler) RegistrarPago(c *gin.Context) {
	cuotaID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.RegistrarPagoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RegistrarPago(c.Request.Context(), cuotaID, req)
	if err != nil {
		respondVentaError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ObtenerVenta godoc
// @Summary      Obtener venta
// @Tags         ventas
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID de la venta"
// @Success      200  {object} dto.VentaResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/ventas/{id} [get]
func (h *VentasHandler) ObtenerVenta(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.ObtenerVenta(c.Request.Context(), id)
	if err != nil {
		respondVentaError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListarVentas godoc
// @Summary      Listar ventas
// @Description  Retorna lista paginada de ventas filtrada por fecha y estado.
// @Tags         ventas
// @Produce      json
// @Security     BearerAuth
// @Param        fecha  query string false "Fecha YYYY-MM-DD (sin filtro si se omite)"
// @Param        estado query string false "pendiente | pagada | anulada | all"
// @Param        page   query int    false "Página (default 1)"
// @Param        limit  query int    false "Registros por página (default 50)"
// @Success      200    {object} dto.VentaListResponse
// @Failure      400    {object} apierror.APIError
// @Router       /v1/ventas [get]
func (h *VentasHandler) ListarVentas(c *gin.Context) {
	var filter dto.VentaFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.ListarVentas(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar ventas"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListarCuotas godoc
// @Summary      Listar cuotas de una venta
// @Tags         ventas
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID de la venta"
// @Success      200 {array}  dto.CuotaResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/ventas/{id}/cuotas [get]
func (h *VentasHandler) ListarCuotas(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.ListarCuotas(c.Request.Context(), id)
	if err != nil {
		respondVentaError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListarPagos godoc
// @Summary      Listar pagos de una venta
// @Tags         ventas
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID de la venta"
// @Success      200 {array}  dto.PagoResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/ventas/{id}/pagos [get]
func (h *VentasHandler) ListarPagos(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.ListarPagos(c.Request.Context(), id)
	if err != nil {
		respondVentaError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Resumen godoc
// @Summary      Resumen de ventas
// @Description  Totales del día y del mes (ventas no anuladas) y deuda pendiente total.
// @Tags         ventas
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.ResumenVentasResponse
// @Router       /v1/ventas/resumen [get]
func (h *VentasHandler) Resumen(c *gin.Context) {
	resp, err := h.svc.Resumen(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al calcular el resumen"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
