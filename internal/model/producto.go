package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Estados de producto.
const (
	ProductoActivo   = "Activo"
	ProductoInactivo = "Inactivo"
)

// Producto es un modelo de iPhone en catálogo. El stock solo se muta a través
// del ledger de inventario (UPDATE condicional), nunca con Save directo.
type Producto struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProveedorID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Modelo         string          `gorm:"type:varchar(100);not null;index"`
	Lanzamiento    string          `gorm:"type:varchar(4);not null"`
	Procesador     string          `gorm:"type:varchar(50);not null"`
	Ram            string          `gorm:"type:varchar(20);not null"`
	Almacenamiento string          `gorm:"type:varchar(20);not null"`
	PrecioVenta    decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	PrecioCosto    decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	// Stock nunca es negativo: la columna lleva CHECK y el ledger usa
	// UPDATE ... WHERE stock >= cantidad.
	Stock     int     `gorm:"not null;default:0;check:stock >= 0"`
	Imagen    *string `gorm:"type:varchar(255)"`
	Estado    string  `gorm:"type:varchar(10);not null;default:'Activo'"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Proveedor *Proveedor `gorm:"foreignKey:ProveedorID"`
}

func (Producto) TableName() string { return "productos" }
