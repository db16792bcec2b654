package venta

import (
	"sync"

	"minimarket-backend/internal/catalog"
	"minimarket-backend/internal/models"
)

// Linea es una posición del carrito. Nombre y precio quedan congelados al
// momento de agregar, para que el ticket no cambie si alguien edita el
// producto a mitad de la venta.
type Linea struct {
	CodigoProducto uint   `json:"codigo_producto"`
	NombreProducto string `json:"nombre_producto"`
	PrecioVenta    int    `json:"precio_venta"`
	Cantidad       int    `json:"cantidad"`

	// Stock observado al agregar; cota superior de la línea.
	StockAlAgregar int `json:"-"`
}

// Carrito es la venta en preparación de un vendedor. No toca la base de
// datos: el stock recién se descuenta al registrar la venta.
type Carrito struct {
	Lineas []Linea `json:"lineas"`
}

// Agregar suma cantidad al carrito, fusionando con la línea existente del
// mismo producto si la hay. La línea no puede superar el stock actual.
func (car *Carrito) Agregar(p *models.Producto, cantidad int) error {
	if cantidad <= 0 {
		return catalog.ErrCantidadInvalida
	}

	for i := range car.Lineas {
		l := &car.Lineas[i]
		if l.CodigoProducto == p.CodigoProducto {
			if l.Cantidad+cantidad > p.StockActual {
				return &catalog.StockInsuficienteError{
					Codigo:     p.CodigoProducto,
					Nombre:     p.NombreProducto,
					Disponible: p.StockActual,
				}
			}
			l.Cantidad += cantidad
			l.StockAlAgregar = p.StockActual
			return nil
		}
	}

	if cantidad > p.StockActual {
		return &catalog.StockInsuficienteError{
			Codigo:     p.CodigoProducto,
			Nombre:     p.NombreProducto,
			Disponible: p.StockActual,
		}
	}

	car.Lineas = append(car.Lineas, Linea{
		CodigoProducto: p.CodigoProducto,
		NombreProducto: p.NombreProducto,
		PrecioVenta:    p.PrecioVenta,
		Cantidad:       cantidad,
		StockAlAgregar: p.StockActual,
	})
	return nil
}

// Quitar elimina la línea del producto. Quitar un producto que no está en
// el carrito no es un error.
func (car *Carrito) Quitar(codigo uint) {
	for i := range car.Lineas {
		if car.Lineas[i].CodigoProducto == codigo {
			car.Lineas = append(car.Lineas[:i], car.Lineas[i+1:]...)
			return
		}
	}
}

func (car *Carrito) Vaciar() {
	car.Lineas = nil
}

func (car *Carrito) Vacio() bool {
	return len(car.Lineas) == 0
}

func (car *Carrito) Total() int {
	total := 0
	for _, l := range car.Lineas {
		total += l.PrecioVenta * l.Cantidad
	}
	return total
}

// Almacen guarda el carrito en curso de cada vendedor, en memoria. Un
// vendedor tiene a lo más una venta en preparación; el carrito no
// sobrevive al reinicio del servidor.
type Almacen struct {
	mu          sync.Mutex
	porVendedor map[uint]*Carrito
}

func NuevoAlmacen() *Almacen {
	return &Almacen{porVendedor: make(map[uint]*Carrito)}
}

// Del devuelve el carrito del vendedor, creándolo si no existe.
func (a *Almacen) Del(vendedorID uint) *Carrito {
	a.mu.Lock()
	defer a.mu.Unlock()
	car, ok := a.porVendedor[vendedorID]
	if !ok {
		car = &Carrito{}
		a.porVendedor[vendedorID] = car
	}
	return car
}

func (a *Almacen) Vaciar(vendedorID uint) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.porVendedor, vendedorID)
}
