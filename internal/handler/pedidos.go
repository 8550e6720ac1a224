package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/JosiasEnriquezQ19/iphone-store-management-system/internal/apierror"
	"github.com/JosiasEnriquezQ19/iphone-store-management-system/internal/dto"
	"github.com/JosiasEnriquezQ19/iphone-store-management-system/internal/middleware"
	"github.com/JosiasEnriquezQ19/iphone-store-management-system/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PedidosHandler struct {
	svc      service.PedidoService
	detalles service.DetallePedidoService
}

func NewPedidosHandler(svc service.PedidoService, detalles service.DetallePedidoService) *PedidosHandler {
	return &PedidosHandler{svc: svc, detalles: detalles}
}

func (h *PedidosHandler) Registrar(c *gin.Context) {
	var req dto.RegistrarPedidoRequest
	if !bindAndValidate(c, &req) {
		return
	}

	claims := middleware.GetClaims(c)
	usuarioID, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New("Token mal formado"))
		return
	}

	resp, err := h.svc.Registrar(c.Request.Context(), usuarioID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *PedidosHandler) Listar(c *gin.Context) {
	var filter dto.PedidoFilter
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

func (h *PedidosHandler) Obtener(c *gin.Context) {
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

func (h *PedidosHandler) Anular(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.AnularPedidoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.Anular(c.Request.Context(), id, req.Motivo); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RecalcularTotal handles POST /v1/pedidos/:id/recalcular.
func (h *PedidosHandler) RecalcularTotal(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.RecalcularTotal(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PedidosHandler) ListarPorCliente(c *gin.Context) {
	clienteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.ListarPorCliente(c.Request.Context(), clienteID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListarPorUsuario handles GET /v1/usuarios/:id/pedidos — ventas por vendedor.
func (h *PedidosHandler) ListarPorUsuario(c *gin.Context) {
	usuarioID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.ListarPorUsuario(c.Request.Context(), usuarioID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// TotalDia handles GET /v1/reportes/ventas/dia?fecha=YYYY-MM-DD.
func (h *PedidosHandler) TotalDia(c *gin.Context) {
	fechaStr := c.DefaultQuery("fecha", time.Now().Format("2006-01-02"))
	fecha, err := time.Parse("2006-01-02", fechaStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("fecha invalida, use YYYY-MM-DD"))
		return
	}
	resp, err := h.svc.TotalVentasDia(c.Request.Context(), fecha)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// TotalMes handles GET /v1/reportes/ventas/mes?year=2026&month=8.
func (h *PedidosHandler) TotalMes(c *gin.Context) {
	year, err := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(time.Now().Year())))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("year invalido"))
		return
	}
	month, err := strconv.Atoi(c.DefaultQuery("month", strconv.Itoa(int(time.Now().Month()))))
	if err != nil || month < 1 || month > 12 {
		c.JSON(http.StatusBadRequest, apierror.New("month invalido"))
		return
	}
	resp, err := h.svc.TotalVentasMes(c.Request.Context(), year, time.Month(month))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
