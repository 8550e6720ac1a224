package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Estados compartidos por pedidos y comprobantes. Emitido → Anulado es la única
// transición válida y es terminal.
const (
	EstadoEmitido = "Emitido"
	EstadoAnulado = "Anulado"
)

// Tipos de pago aceptados.
const (
	PagoEfectivo      = "Efectivo"
	PagoTarjeta       = "Tarjeta"
	PagoTransferencia = "Transferencia"
)

// Pedido es una venta: un cliente, un usuario emisor y sus líneas de detalle.
// TotalPagar es un valor derivado — mientras el pedido está Emitido siempre
// es igual a la suma de los subtotales de sus detalles; al anularse queda
// congelado.
type Pedido struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ClienteID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	UsuarioID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	FechaPedido  time.Time       `gorm:"not null"`
	FechaEntrega *time.Time      `gorm:"type:date"`
	TipoPago     string          `gorm:"type:varchar(50);not null"`
	TotalPagar   decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	Estado       string          `gorm:"type:varchar(10);not null;default:'Emitido'"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Cliente  *Cliente        `gorm:"foreignKey:ClienteID"`
	Usuario  *Usuario        `gorm:"foreignKey:UsuarioID"`
	Detalles []DetallePedido `gorm:"foreignKey:PedidoID"`
}

func (Pedido) TableName() string { return "pedidos" }

// DetallePedido es una línea de pedido. PrecioUnitario es una copia del precio
// de venta del producto al momento de la inserción — cambios posteriores del
// catálogo no alteran pedidos históricos. El ID autoincremental da el orden
// de inserción.
type DetallePedido struct {
	ID             int64           `gorm:"primaryKey;autoIncrement"`
	PedidoID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductoID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Cantidad       int             `gorm:"not null;check:cantidad > 0"`
	PrecioUnitario decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CreatedAt      time.Time

	Producto *Producto `gorm:"foreignKey:ProductoID"`
}

func (DetallePedido) TableName() string { return "detalles_pedido" }
