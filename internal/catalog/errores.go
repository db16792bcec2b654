package catalog

import (
	"errors"
	"fmt"
)

var (
	ErrProductoNoExiste = errors.New("el producto no existe")
	ErrBusquedaAmbigua  = errors.New("la búsqueda coincide con más de un producto")
	ErrCantidadInvalida = errors.New("la cantidad debe ser mayor a 0")
)

// StockInsuficienteError lleva el stock disponible al momento de fallar,
// para que el mensaje al usuario pueda decir cuántas unidades quedan.
type StockInsuficienteError struct {
	Codigo     uint
	Nombre     string
	Disponible int
}

func (e *StockInsuficienteError) Error() string {
	return fmt.Sprintf("stock insuficiente para el producto %d (%q): disponible %d", e.Codigo, e.Nombre, e.Disponible)
}
