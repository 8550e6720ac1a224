package handler

import (
	"net/http"
	"strconv"

	"github.com/JosiasEnriquezQ19/iphone-store-management-system/internal/apierror"
	"github.com/JosiasEnriquezQ19/iphone-store-management-system/internal/dto"
	"github.com/JosiasEnriquezQ19/iphone-store-management-system/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// DetallesHandler expone las líneas de pedido. El id de detalle es el
// autoincremental, no un UUID.
type DetallesHandler struct {
	svc service.DetallePedidoService
}

func NewDetallesHandler(svc service.DetallePedidoService) *DetallesHandler {
	return &DetallesHandler{svc: svc}
}

// Agregar handles POST /v1/pedidos/:id/detalles.
func (h *DetallesHandler) Agregar(c *gin.Context) {
	pedidoID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.DetallePedidoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Agregar(c.Request.Context(), pedidoID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Listar handles GET /v1/pedidos/:id/detalles.
func (h *DetallesHandler) Listar(c *gin.Context) {
	pedidoID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.ListarPorPedido(c.Request.Context(), pedidoID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Actualizar handles PUT /v1/detalles/:detalleId.
func (h *DetallesHandler) Actualizar(c *gin.Context) {
	detalleID, err := strconv.ParseInt(c.Param("detalleId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID de detalle invalido"))
		return
	}
	var req dto.ActualizarDetalleRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), detalleID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Eliminar handles DELETE /v1/detalles/:detalleId.
func (h *DetallesHandler) Eliminar(c *gin.Context) {
	detalleID, err := strconv.ParseInt(c.Param("detalleId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID de detalle invalido"))
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), detalleID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
