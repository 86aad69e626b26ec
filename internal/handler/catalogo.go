package handler

import (
	"net/http"

	"github.com/Spartan-876/Acuamont-System-sub000/internal/apierror"
	"github.com/Spartan-876/Acuamont-System-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

type CatalogoHandler struct{ svc service.CatalogoService }

func NewCatalogoHandler(svc service.CatalogoService) *CatalogoHandler {
	return &CatalogoHandler{svc: svc}
}

// ListarMetodosPago godoc
// @Summary      Listar métodos de pago activos
// @Tags         catalogo
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.MetodoPagoResponse
// @Router       /v1/metodos-pago [get]
func (h *CatalogoHandler) ListarMetodosPago(c *gin.Context) {
	resp, err := h.svc.ListarMetodosPago(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar metodos de pago"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListarSeries godoc
// @Summary      Listar series de comprobante
// @Tags         catalogo
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.SerieResponse
// @Router       /v1/series [get]
func (h *CatalogoHandler) ListarSeries(c *gin.Context) {
	resp, err := h.svc.ListarSeries(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar series"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
