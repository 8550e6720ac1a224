package dto

import "github.com/shopspring/decimal"

// ─── Filter / List ──────────────────────────────────────────────────────────

// ComprobanteFilter is bound from query string of GET /v1/comprobantes.
type ComprobanteFilter struct {
	Fecha     string `form:"fecha"`                  // YYYY-MM-DD
	Estado    string `form:"estado,default=Emitido"` // Emitido | Anulado | all
	Tipo      string `form:"tipo"             validate:"omitempty,oneof=BOLETA FACTURA"`
	ClienteID string `form:"cliente_id"       validate:"omitempty,uuid"`
	Page      int    `form:"page,default=1"   validate:"min=1"`
	Limit     int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type ComprobanteListResponse struct {
	Data  []ComprobanteResponse `json:"data"`
	Total int64                 `json:"total"`
	Page  int                   `json:"page"`
	Limit int                   `json:"limit"`
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

type GenerarComprobanteRequest struct {
	PedidoID        string `json:"pedido_id"        validate:"required,uuid"`
	TipoComprobante string `json:"tipo_comprobante" validate:"required,oneof=BOLETA FACTURA"`
	// ClienteEmail: optional — when present, the comprobante worker mails the PDF.
	ClienteEmail *string `json:"cliente_email" validate:"omitempty,email"`
}

type AnularComprobanteRequest struct {
	Motivo string `json:"motivo" validate:"required,min=5"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type DetalleComprobanteResponse struct {
	ProductoID     string          `json:"producto_id"`
	Producto       string          `json:"producto,omitempty"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

type ComprobanteResponse struct {
	ID                string                       `json:"id"`
	PedidoID          string                       `json:"pedido_id"`
	NumeroComprobante string                       `json:"numero_comprobante"`
	TipoComprobante   string                       `json:"tipo_comprobante"`
	Cliente           string                       `json:"cliente,omitempty"`
	Usuario           string                       `json:"usuario,omitempty"`
	FechaEmision      string                       `json:"fecha_emision"`
	Subtotal          decimal.Decimal              `json:"subtotal"`
	IGV               decimal.Decimal              `json:"igv"`
	TotalPagar        decimal.Decimal              `json:"total_pagar"`
	Estado            string                       `json:"estado"`
	PDFPath           string                       `json:"pdf_path,omitempty"`
	Detalles          []DetalleComprobanteResponse `json:"detalles"`
}
