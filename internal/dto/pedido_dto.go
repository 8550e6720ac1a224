package dto

import "github.com/shopspring/decimal"

// ─── Filter / List ──────────────────────────────────────────────────────────

// PedidoFilter is bound from query string of GET /v1/pedidos.
type PedidoFilter struct {
	Fecha     string `form:"fecha"`                  // YYYY-MM-DD
	Estado    string `form:"estado,default=Emitido"` // Emitido | Anulado | all
	TipoPago  string `form:"tipo_pago"`
	ClienteID string `form:"cliente_id"       validate:"omitempty,uuid"`
	Page      int    `form:"page,default=1"   validate:"min=1"`
	Limit     int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type PedidoListResponse struct {
	Data  []PedidoResponse `json:"data"`
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

type DetallePedidoRequest struct {
	ProductoID string `json:"producto_id" validate:"required,uuid"`
	Cantidad   int    `json:"cantidad"    validate:"required,min=1"`
	// PrecioUnitario: optional override; when absent the line freezes the
	// precio_venta vigente del producto.
	PrecioUnitario *decimal.Decimal `json:"precio_unitario"`
}

type RegistrarPedidoRequest struct {
	ClienteID    string                 `json:"cliente_id"    validate:"required,uuid"`
	TipoPago     string                 `json:"tipo_pago"     validate:"required,oneof=Efectivo Tarjeta Transferencia"`
	FechaEntrega *string                `json:"fecha_entrega" validate:"omitempty,datetime=2006-01-02"`
	Detalles     []DetallePedidoRequest `json:"detalles"      validate:"required,min=1,dive"`
}

type ActualizarDetalleRequest struct {
	Cantidad       *int             `json:"cantidad"        validate:"omitempty,min=1"`
	PrecioUnitario *decimal.Decimal `json:"precio_unitario"`
}

type AnularPedidoRequest struct {
	Motivo string `json:"motivo" validate:"required,min=5"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type DetallePedidoResponse struct {
	ID             int64           `json:"id"`
	ProductoID     string          `json:"producto_id"`
	Producto       string          `json:"producto,omitempty"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

type PedidoResponse struct {
	ID           string                  `json:"id"`
	ClienteID    string                  `json:"cliente_id"`
	Cliente      string                  `json:"cliente,omitempty"`
	UsuarioID    string                  `json:"usuario_id"`
	Usuario      string                  `json:"usuario,omitempty"`
	FechaPedido  string                  `json:"fecha_pedido"`
	FechaEntrega *string                 `json:"fecha_entrega,omitempty"`
	TipoPago     string                  `json:"tipo_pago"`
	TotalPagar   decimal.Decimal         `json:"total_pagar"`
	Estado       string                  `json:"estado"`
	Detalles     []DetallePedidoResponse `json:"detalles"`
}

type TotalVentasResponse struct {
	Fecha string          `json:"fecha,omitempty"`
	Mes   string          `json:"mes,omitempty"`
	Total decimal.Decimal `json:"total"`
}
