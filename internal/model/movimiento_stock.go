package model

import (
	"time"

	"github.com/google/uuid"
)

// Tipos de movimiento de stock.
const (
	MovimientoVenta        = "venta"
	MovimientoAjuste       = "ajuste_manual"
	MovimientoReposicion   = "reposicion"
	MovimientoRestauracion = "restauracion_anulacion"
)

// MovimientoStock registra cada cambio de stock de un producto. Además de
// auditoría, las filas de tipo restauracion_anulacion actúan como token de
// reversa: si existe una para un pedido, su stock ya fue restaurado y una
// segunda anulación (pedido o comprobante) no debe reponerlo de nuevo.
type MovimientoStock struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductoID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Tipo          string    `gorm:"type:varchar(30);not null"`
	Cantidad      int       `gorm:"not null"` // positivo = entrada, negativo = salida
	StockAnterior int       `gorm:"not null"`
	StockNuevo    int       `gorm:"not null"`
	Motivo        string
	ReferenciaID  *uuid.UUID `gorm:"type:uuid;index"` // pedido_id cuando aplica
	CreatedAt     time.Time

	Producto *Producto `gorm:"foreignKey:ProductoID"`
}

// TableName evita la pluralización de GORM (movimiento_stocks → movimientos_stock).
func (MovimientoStock) TableName() string { return "movimientos_stock" }
