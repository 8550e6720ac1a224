package dto

import "github.com/shopspring/decimal"

// ─── Filter / List ──────────────────────────────────────────────────────────

// ProductoFilter is bound from query string of GET /v1/productos.
type ProductoFilter struct {
	Modelo      string `form:"modelo"`
	ProveedorID string `form:"proveedor_id"         validate:"omitempty,uuid"`
	Estado      string `form:"estado,default=Activo"` // Activo | Inactivo | all
	Page        int    `form:"page,default=1"   validate:"min=1"`
	Limit       int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type ProductoListResponse struct {
	Data  []ProductoResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearProductoRequest struct {
	ProveedorID   string          `json:"proveedor_id"  validate:"required,uuid"`
	Modelo        string          `json:"modelo"        validate:"required,min=2,max=120"`
	Lanzamiento   string          `json:"lanzamiento"   validate:"omitempty,max=40"`
	Procesador    string          `json:"procesador"    validate:"omitempty,max=80"`
	Ram           string          `json:"ram"           validate:"omitempty,max=40"`
	Almacenamiento string         `json:"almacenamiento" validate:"omitempty,max=40"`
	PrecioVenta   decimal.Decimal `json:"precio_venta"  validate:"required"`
	PrecioCosto   decimal.Decimal `json:"precio_costo"  validate:"required"`
	Stock         int             `json:"stock"         validate:"min=0"`
}

type ActualizarProductoRequest struct {
	ProveedorID    *string          `json:"proveedor_id"   validate:"omitempty,uuid"`
	Modelo         *string          `json:"modelo"         validate:"omitempty,min=2,max=120"`
	Lanzamiento    *string          `json:"lanzamiento"    validate:"omitempty,max=40"`
	Procesador     *string          `json:"procesador"     validate:"omitempty,max=80"`
	Ram            *string          `json:"ram"            validate:"omitempty,max=40"`
	Almacenamiento *string          `json:"almacenamiento" validate:"omitempty,max=40"`
	PrecioVenta    *decimal.Decimal `json:"precio_venta"`
	PrecioCosto    *decimal.Decimal `json:"precio_costo"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// ConsultaPrecioResponse is the public price check payload. It deliberately
// omits precio_costo and proveedor.
type ConsultaPrecioResponse struct {
	Modelo          string          `json:"modelo"`
	Almacenamiento  string          `json:"almacenamiento,omitempty"`
	PrecioVenta     decimal.Decimal `json:"precio_venta"`
	StockDisponible int             `json:"stock_disponible"`
}

type ProductoResponse struct {
	ID             string          `json:"id"`
	ProveedorID    string          `json:"proveedor_id"`
	Proveedor      string          `json:"proveedor,omitempty"`
	Modelo         string          `json:"modelo"`
	Lanzamiento    string          `json:"lanzamiento,omitempty"`
	Procesador     string          `json:"procesador,omitempty"`
	Ram            string          `json:"ram,omitempty"`
	Almacenamiento string          `json:"almacenamiento,omitempty"`
	PrecioVenta    decimal.Decimal `json:"precio_venta"`
	PrecioCosto    decimal.Decimal `json:"precio_costo"`
	Stock          int             `json:"stock"`
	Estado         string          `json:"estado"`
}
