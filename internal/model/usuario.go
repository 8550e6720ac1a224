package model

import (
	"time"

	"github.com/google/uuid"
)

// Roles de usuario.
const (
	RolAdministrador = "Administrador"
	RolVendedor      = "Vendedor"
)

// Usuario del sistema. La contraseña se guarda como hash bcrypt; al crear un
// usuario sin contraseña se genera una aleatoria y se envía por correo.
type Usuario struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username     string     `gorm:"type:varchar(50);not null;uniqueIndex"`
	Nombre       string     `gorm:"type:varchar(100);not null"`
	Email        *string    `gorm:"type:varchar(100)"`
	PasswordHash string     `gorm:"type:varchar(100);not null"`
	Rol          string     `gorm:"type:varchar(20);not null;default:'Vendedor'"`
	CargoID      *uuid.UUID `gorm:"type:uuid;index"`
	Activo       bool       `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Cargo *Cargo `gorm:"foreignKey:CargoID"`
}

func (Usuario) TableName() string { return "usuarios" }

// Cargo (puesto) asignable a usuarios. Mantenimiento de tabla simple.
type Cargo struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre      string    `gorm:"type:varchar(50);not null;uniqueIndex"`
	Descripcion *string   `gorm:"type:varchar(200)"`
	Activo      bool      `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Cargo) TableName() string { return "cargos" }
