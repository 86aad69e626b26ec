package handler

import (
	"net/http"
	"strconv"

	"github.com/Spartan-876/Acuamont-System-sub000/internal/apierror"
	"github.com/Spartan-876/Acuamont-System-sub000/internal/dto"
	"github.com/Spartan-876/Acuamont-System-sub000/internal/repository"
	"github.com/Spartan-876/Acuamont-System-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type InventarioHandler struct{ svc service.AjusteService }

func NewInventarioHandler(svc service.AjusteService) *InventarioHandler {
	return &InventarioHandler{svc: svc}
}

// AjustarStock godoc
// @Summary      Ajustar stock de un producto
// @Description  Ajuste manual (recuento, merma, recepción de mercadería). Nunca deja el stock negativo.
// @Tags         inventario
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string                 true "UUID del producto"
// @Param        body body dto.AjusteStockRequest true "Ajuste"
// @Success      200  {object} dto.MovimientoStockResponse
// @Failure      404  {object} apierror.APIError
// @Failure      409  {object} apierror.APIError
// @Router       /v1/inventario/productos/{id}/ajustes [post]
func (h *InventarioHandler) AjustarStock(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.AjusteStockRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RegistrarAjuste(c.Request.Context(), id, req)
	if err != nil {
		respondVentaError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListarMovimientos godoc
// @Summary      Listar movimientos de stock
// @Tags         inventario
// @Produce      json
// @Security     BearerAuth
// @Param        producto_id query string false "Filtrar por producto"
// @Param        tipo        query string false "venta | anulacion | ajuste"
// @Param        page        query int    false "Página"
// @Param        limit       query int    false "Registros por página"
// @Success      200 {array} dto.MovimientoStockResponse
// @Router       /v1/inventario/movimientos [get]
func (h *InventarioHandler) ListarMovimientos(c *gin.Context) {
	filter := repository.MovimientoStockFilter{
		Tipo: c.Query("tipo"),
	}
	if pid := c.Query("producto_id"); pid != "" {
		id, err := uuid.Parse(pid)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("producto_id invalido"))
			return
		}
		filter.ProductoID = &id
	}
	filter.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	filter.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "100"))

	rows, total, err := h.svc.ListarMovimientos(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar movimientos"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": rows, "total": total, "page": filter.Page, "limit": filter.Limit})
}

// Alertas godoc
// @Summary      Productos en o bajo su stock de seguridad
// @Tags         inventario
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.AlertaStockResponse
// @Router       /v1/inventario/alertas [get]
func (h *InventarioHandler) Alertas(c *gin.Context) {
	resp, err := h.svc.Alertas(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar alertas"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
