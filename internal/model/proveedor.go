package model

import (
	"time"

	"github.com/google/uuid"
)

// Proveedor de equipos. CRUD plano con baja lógica vía Estado.
type Proveedor struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RazonSocial string    `gorm:"type:varchar(150);not null"`
	RUC         string    `gorm:"type:varchar(15);not null;uniqueIndex;column:ruc"`
	Telefono    *string   `gorm:"type:varchar(20)"`
	Email       *string   `gorm:"type:varchar(100)"`
	Direccion   *string   `gorm:"type:varchar(200)"`
	Estado      string    `gorm:"type:varchar(10);not null;default:'Activo'"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Proveedor) TableName() string { return "proveedores" }
