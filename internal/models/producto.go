package models

import "time"

type Producto struct {
	// Código asignado por el negocio (el de la etiqueta), no autoincremental.
	CodigoProducto uint   `gorm:"primaryKey;autoIncrement:false"`
	NombreProducto string `gorm:"size:100;not null;index"`
	PrecioCosto    int    `gorm:"not null"`
	// Calculado al crear/modificar: costo + IVA 19% + margen 40%.
	PrecioVenta int `gorm:"not null"`
	StockMinimo int `gorm:"not null"`
	// Invariante: nunca negativo.
	StockActual int        `gorm:"not null"`
	CategoriaID *uint      `gorm:"index"`
	Categoria   *Categoria `gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
