package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Tipos de comprobante.
const (
	ComprobanteBoleta  = "BOLETA"
	ComprobanteFactura = "FACTURA"
)

// Comprobante es el documento fiscal derivado de un pedido (relación 1:1,
// reforzada por el índice único sobre pedido_id). NumeroComprobante es único
// a nivel sistema: PREFIJO + correlativo de 6 dígitos (BOL000123 / FAC000045).
// Los montos se congelan en la emisión; anular no los recalcula.
type Comprobante struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PedidoID          uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	ClienteID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	UsuarioID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	TipoPago          string          `gorm:"type:varchar(50);not null"`
	TipoComprobante   string          `gorm:"type:varchar(50);not null"`
	NumeroComprobante string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	Subtotal          decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	IGV               decimal.Decimal `gorm:"type:decimal(10,2);not null;column:igv"`
	TotalPagar        decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	FechaEmision      time.Time       `gorm:"not null"`
	Estado            string          `gorm:"type:varchar(10);not null;default:'Emitido'"`
	// PDFPath es relativo a PDF_STORAGE_PATH; lo escribe el worker al renderizar.
	PDFPath   *string `gorm:"column:pdf_path"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Pedido   *Pedido              `gorm:"foreignKey:PedidoID"`
	Cliente  *Cliente             `gorm:"foreignKey:ClienteID"`
	Usuario  *Usuario             `gorm:"foreignKey:UsuarioID"`
	Detalles []DetalleComprobante `gorm:"foreignKey:ComprobanteID"`
}

func (Comprobante) TableName() string { return "comprobantes" }

// DetalleComprobante es la foto de una línea de pedido tomada al emitir el
// comprobante. Ediciones posteriores del pedido o del catálogo no la tocan.
type DetalleComprobante struct {
	ID             int64           `gorm:"primaryKey;autoIncrement"`
	ComprobanteID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductoID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Cantidad       int             `gorm:"not null"`
	PrecioUnitario decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CreatedAt      time.Time

	Producto *Producto `gorm:"foreignKey:ProductoID"`
}

func (DetalleComprobante) TableName() string { return "detalles_comprobante" }
