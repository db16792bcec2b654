package models

import "time"

type Categoria struct {
	ID        uint   `gorm:"primaryKey"`
	Nombre    string `gorm:"size:50;not null;unique"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
