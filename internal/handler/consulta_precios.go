package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/JosiasEnriquezQ19/iphone-store-management-system/internal/apierror"
	"github.com/JosiasEnriquezQ19/iphone-store-management-system/internal/dto"
	"github.com/JosiasEnriquezQ19/iphone-store-management-system/internal/model"
	"github.com/JosiasEnriquezQ19/iphone-store-management-system/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const precioCacheTTL = 4 * time.Hour

// ConsultaPreciosHandler serves the public price check endpoint.
// No authentication required, no side effects whatsoever.
type ConsultaPreciosHandler struct {
	repo repository.ProductoRepository
	rdb  *redis.Client
}

func NewConsultaPreciosHandler(repo repository.ProductoRepository, rdb *redis.Client) *ConsultaPreciosHandler {
	return &ConsultaPreciosHandler{repo: repo, rdb: rdb}
}

// GetPrecio handles GET /v1/precio/:id.
func (h *ConsultaPreciosHandler) GetPrecio(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	ctx := c.Request.Context()
	cacheKey := "precio:" + id.String()

	// 1. Try Redis cache
	if cached, err := h.rdb.Get(ctx, cacheKey).Bytes(); err == nil {
		var resp dto.ConsultaPrecioResponse
		if jsonErr := json.Unmarshal(cached, &resp); jsonErr == nil {
			c.JSON(http.StatusOK, resp)
			return
		}
	}

	// 2. Cache miss — query DB
	producto, err := h.repo.FindByID(ctx, id)
	if err != nil || producto.Estado != model.ProductoActivo {
		c.JSON(http.StatusNotFound, apierror.New("Producto no encontrado"))
		return
	}

	resp := dto.ConsultaPrecioResponse{
		Modelo:          producto.Modelo,
		Almacenamiento:  producto.Almacenamiento,
		PrecioVenta:     producto.PrecioVenta,
		StockDisponible: producto.Stock,
	}

	// 3. Populate cache — best effort, ignore errors
	if b, jsonErr := json.Marshal(resp); jsonErr == nil {
		_ = h.rdb.Set(context.Background(), cacheKey, b, precioCacheTTL).Err()
	}

	c.JSON(http.StatusOK, resp)
}
