package models

import "time"

type MetodoPago string

const (
	PagoEfectivo      MetodoPago = "Efectivo"
	PagoTarjeta       MetodoPago = "Tarjeta"
	PagoTransferencia MetodoPago = "Transferencia"
	PagoDeuda         MetodoPago = "Deuda"
)

func (m MetodoPago) EsValido() bool {
	switch m {
	case PagoEfectivo, PagoTarjeta, PagoTransferencia, PagoDeuda:
		return true
	}
	return false
}

type Venta struct {
	ID    uint      `gorm:"primaryKey"`
	Fecha time.Time `gorm:"index;not null"`
	// Siempre igual a la suma de precio_unitario * cantidad de sus items.
	Total      int        `gorm:"not null"`
	MetodoPago MetodoPago `gorm:"size:13;not null"`
	ClienteID  *uint
	Cliente    *Cliente
	VendedorID *uint
	Vendedor   *User       `gorm:"foreignKey:VendedorID;constraint:OnDelete:SET NULL"`
	Items      []VentaItem `gorm:"foreignKey:VentaID;constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time
}

// VentaItem conserva la composición de la venta con el precio al momento
// de vender, aunque el producto cambie o se elimine después.
type VentaItem struct {
	ID             uint   `gorm:"primaryKey"`
	VentaID        uint   `gorm:"index;not null"`
	CodigoProducto uint   `gorm:"not null"`
	NombreProducto string `gorm:"size:100;not null"`
	PrecioUnitario int    `gorm:"not null"`
	Cantidad       int    `gorm:"not null"`
}
