package models

import "time"

// LimiteCreditoIlimitado: valor centinela para clientes sin tope de crédito.
const LimiteCreditoIlimitado = -1

type Cliente struct {
	ID        uint   `gorm:"primaryKey"`
	Nombre    string `gorm:"size:100;not null"`
	Apellido  string `gorm:"size:100;not null"`
	Telefono  string `gorm:"size:20"`
	Direccion string `gorm:"size:255"`
	// -1 = sin límite. Con límite finito la deuda nunca puede superarlo.
	LimiteCredito int `gorm:"not null;default:0"`
	Deuda         int `gorm:"not null;default:0"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (c *Cliente) CreditoIlimitado() bool {
	return c.LimiteCredito == LimiteCreditoIlimitado
}
