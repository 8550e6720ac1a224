package model

import (
	"time"

	"github.com/google/uuid"
)

// Cliente de la tienda. CRUD plano con baja lógica vía Estado.
type Cliente struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TipoDoc   string    `gorm:"type:varchar(10);not null;default:'DNI'"`
	NumDoc    string    `gorm:"type:varchar(15);not null;uniqueIndex"`
	Nombre    string    `gorm:"type:varchar(100);not null"`
	Telefono  *string   `gorm:"type:varchar(20)"`
	Email     *string   `gorm:"type:varchar(100)"`
	Direccion *string   `gorm:"type:varchar(200)"`
	Estado    string    `gorm:"type:varchar(10);not null;default:'Activo'"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Cliente) TableName() string { return "clientes" }
