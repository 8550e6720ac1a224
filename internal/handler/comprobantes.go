package handler

import (
	"net/http"

	"github.com/JosiasEnriquezQ19/iphone-store-management-system/internal/apierror"
	"github.com/JosiasEnriquezQ19/iphone-store-management-system/internal/dto"
	"github.com/JosiasEnriquezQ19/iphone-store-management-system/internal/middleware"
	"github.com/JosiasEnriquezQ19/iphone-store-management-system/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ComprobantesHandler struct {
	svc service.ComprobanteService
}

func NewComprobantesHandler(svc service.ComprobanteService) *ComprobantesHandler {
	return &ComprobantesHandler{svc: svc}
}

// Generar handles POST /v1/comprobantes. El PDF y el envío por correo
// ocurren en el worker, la respuesta vuelve apenas se confirma el número.
func (h *ComprobantesHandler) Generar(c *gin.Context) {
	var req dto.GenerarComprobanteRequest
	if !bindAndValidate(c, &req) {
		return
	}

	claims := middleware.GetClaims(c)
	usuarioID, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New("Token mal formado"))
		return
	}

	resp, err := h.svc.GenerarDesdePedido(c.Request.Context(), usuarioID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ComprobantesHandler) Listar(c *gin.Context) {
	var filter dto.ComprobanteFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ComprobantesHandler) Obtener(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.Obtener(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ObtenerPorNumero handles GET /v1/comprobantes/numero/:numero.
func (h *ComprobantesHandler) ObtenerPorNumero(c *gin.Context) {
	numero := c.Param("numero")
	resp, err := h.svc.ObtenerPorNumero(c.Request.Context(), numero)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ObtenerPorPedido handles GET /v1/pedidos/:id/comprobante.
func (h *ComprobantesHandler) ObtenerPorPedido(c *gin.Context) {
	pedidoID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.ObtenerPorPedido(c.Request.Context(), pedidoID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ComprobantesHandler) Anular(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.AnularComprobanteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.Anular(c.Request.Context(), id, req.Motivo); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
