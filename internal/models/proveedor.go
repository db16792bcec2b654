package models

import "time"

type Proveedor struct {
	ID        uint   `gorm:"primaryKey"`
	Nombre    string `gorm:"size:100;not null"`
	Direccion string `gorm:"size:100"`
	Telefono  string `gorm:"size:100"`
	Detalles  string `gorm:"type:text"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
