package clientes

import (
	"errors"
	"fmt"
)

var (
	ErrClienteNoExiste = errors.New("el cliente no existe")
	ErrMontoInvalido   = errors.New("el monto no es válido")
)

// LimiteCreditoError se produce cuando un cargo dejaría la deuda por
// encima del límite de crédito del cliente.
type LimiteCreditoError struct {
	Limite    int
	Intentado int
}

func (e *LimiteCreditoError) Error() string {
	return fmt.Sprintf("el cargo dejaría la deuda en %d, sobre el límite de crédito de %d", e.Intentado, e.Limite)
}
