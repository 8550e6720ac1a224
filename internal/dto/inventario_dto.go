package dto

// AjusteStockRequest covers PATCH /v1/productos/:id/stock. Tipo "ajuste"
// establece el stock en Cantidad; "reposicion" lo incrementa.
type AjusteStockRequest struct {
	Tipo     string `json:"tipo"     validate:"required,oneof=ajuste reposicion"`
	Cantidad int    `json:"cantidad" validate:"min=0"`
	Motivo   string `json:"motivo"   validate:"required,min=3"`
}

type MovimientoStockResponse struct {
	ID            string `json:"id"`
	ProductoID    string `json:"producto_id"`
	Tipo          string `json:"tipo"`
	Cantidad      int    `json:"cantidad"`
	StockAnterior int    `json:"stock_anterior"`
	StockNuevo    int    `json:"stock_nuevo"`
	Motivo        string `json:"motivo,omitempty"`
	ReferenciaID  string `json:"referencia_id,omitempty"`
	CreatedAt     string `json:"created_at"`
}
