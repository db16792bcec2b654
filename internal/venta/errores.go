package venta

import (
	"errors"
	"fmt"
)

var (
	ErrCarritoVacio       = errors.New("el carrito está vacío")
	ErrVentaSinCliente    = errors.New("una venta con deuda requiere un cliente")
	ErrMetodoPagoInvalido = errors.New("el método de pago no es válido")
)

// IntegridadVentaError indica que la venta falló después de iniciada la
// transacción y no se pudo garantizar la reversión. Requiere revisión
// manual, a diferencia de los errores de validación.
type IntegridadVentaError struct {
	Causa error
}

func (e *IntegridadVentaError) Error() string {
	return fmt.Sprintf("fallo de integridad al registrar la venta: %v", e.Causa)
}

func (e *IntegridadVentaError) Unwrap() error {
	return e.Causa
}
