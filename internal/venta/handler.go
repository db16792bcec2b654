package venta

import (
	"errors"
	"fmt"
	"strconv"

	"minimarket-backend/internal/audit"
	"minimarket-backend/internal/auth"
	"minimarket-backend/internal/catalog"
	"minimarket-backend/internal/clientes"
	"minimarket-backend/internal/database"
	"minimarket-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type AgregarLineaRequest struct {
	// Código numérico o fragmento del nombre del producto.
	Producto string `json:"producto"`
	Cantidad int    `json:"cantidad"`
}

type RegistrarVentaRequest struct {
	MetodoPago string `json:"metodo_pago"`
	IDCliente  *uint  `json:"id_cliente"`
}

func vendedorActual(c *fiber.Ctx) (uint, string) {
	userID, _ := c.Locals(auth.CtxUserIDKey).(uint)
	userName, _ := c.Locals(auth.CtxUsernameKey).(string)
	return userID, userName
}

func carritoResponse(car *Carrito) fiber.Map {
	lineas := car.Lineas
	if lineas == nil {
		lineas = []Linea{}
	}
	return fiber.Map{
		"lineas": lineas,
		"total":  car.Total(),
	}
}

// GET /api/carrito
func VerCarritoHandler(carritos *Almacen) fiber.Handler {
	return func(c *fiber.Ctx) error {
		vendedorID, _ := vendedorActual(c)
		return c.JSON(carritoResponse(carritos.Del(vendedorID)))
	}
}

// POST /api/carrito
func AgregarAlCarritoHandler(carritos *Almacen) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body AgregarLineaRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		producto, err := catalog.ResolverProducto(database.DB, body.Producto)
		if err != nil {
			return traducirError(err)
		}

		vendedorID, _ := vendedorActual(c)
		carrito := carritos.Del(vendedorID)
		if err := carrito.Agregar(producto, body.Cantidad); err != nil {
			return traducirError(err)
		}

		return c.JSON(carritoResponse(carrito))
	}
}

// DELETE /api/carrito/:codigo
func QuitarDelCarritoHandler(carritos *Almacen) fiber.Handler {
	return func(c *fiber.Ctx) error {
		codigo, err := strconv.ParseUint(c.Params("codigo"), 10, 64)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Código inválido")
		}

		vendedorID, _ := vendedorActual(c)
		carrito := carritos.Del(vendedorID)
		carrito.Quitar(uint(codigo))

		return c.JSON(carritoResponse(carrito))
	}
}

// POST /api/carrito/cancelar
func CancelarCarritoHandler(carritos *Almacen) fiber.Handler {
	return func(c *fiber.Ctx) error {
		vendedorID, _ := vendedorActual(c)
		carritos.Vaciar(vendedorID)
		return c.JSON(fiber.Map{"status": "success"})
	}
}

// POST /api/ventas
func RegistrarVentaHandler(carritos *Almacen) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body RegistrarVentaRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		vendedorID, vendedorNombre := vendedorActual(c)
		carrito := carritos.Del(vendedorID)

		venta, err := RegistrarVenta(database.DB, carrito, models.MetodoPago(body.MetodoPago), body.IDCliente, vendedorID)
		if err != nil {
			return traducirError(err)
		}

		_ = audit.WriteLog(audit.LogOptions{
			UserID:      vendedorID,
			UserName:    vendedorNombre,
			EntityType:  "venta",
			EntityID:    venta.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Venta %d por un total de %d (%s)", venta.ID, venta.Total, venta.MetodoPago),
			After:       venta,
		})

		return c.Status(fiber.StatusCreated).JSON(venta)
	}
}

// GET /api/ventas
func HistorialVentasHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ventas, cantidad, suma, err := HistorialVentas(database.DB)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo obtener el historial de ventas")
		}
		return c.JSON(fiber.Map{
			"ventas":      ventas,
			"cantidad":    cantidad,
			"suma_ventas": suma,
		})
	}
}

// traducirError convierte los errores de dominio del flujo de venta en
// respuestas HTTP con mensajes para el vendedor.
func traducirError(err error) error {
	var errStock *catalog.StockInsuficienteError
	var errLimite *clientes.LimiteCreditoError
	var errIntegridad *IntegridadVentaError

	switch {
	case errors.Is(err, catalog.ErrProductoNoExiste):
		return fiber.NewError(fiber.StatusNotFound, "El producto no existe")
	case errors.Is(err, catalog.ErrBusquedaAmbigua):
		return fiber.NewError(fiber.StatusBadRequest, "La búsqueda coincide con más de un producto, usa el código")
	case errors.Is(err, catalog.ErrCantidadInvalida):
		return fiber.NewError(fiber.StatusBadRequest, "La cantidad debe ser mayor a 0")
	case errors.Is(err, ErrCarritoVacio):
		return fiber.NewError(fiber.StatusBadRequest, "El carrito está vacío")
	case errors.Is(err, ErrMetodoPagoInvalido):
		return fiber.NewError(fiber.StatusBadRequest, "Método de pago inválido")
	case errors.Is(err, ErrVentaSinCliente):
		return fiber.NewError(fiber.StatusBadRequest, "Una venta con deuda requiere un cliente")
	case errors.Is(err, clientes.ErrClienteNoExiste):
		return fiber.NewError(fiber.StatusNotFound, "El cliente no existe")
	case errors.As(err, &errStock):
		return fiber.NewError(fiber.StatusConflict,
			fmt.Sprintf("Stock insuficiente para '%s'. Solo quedan %d unidades.", errStock.Nombre, errStock.Disponible))
	case errors.As(err, &errLimite):
		return fiber.NewError(fiber.StatusConflict,
			fmt.Sprintf("La venta excede el límite de crédito del cliente (%d)", errLimite.Limite))
	case errors.As(err, &errIntegridad):
		return fiber.NewError(fiber.StatusInternalServerError, "Fallo de integridad al registrar la venta, revisa el stock y la deuda")
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "No se pudo completar la operación")
	}
}
