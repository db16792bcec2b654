package clientes

import (
	"errors"
	"fmt"
	"strconv"

	"minimarket-backend/internal/audit"
	"minimarket-backend/internal/auth"
	"minimarket-backend/internal/database"
	"minimarket-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type ClienteRequest struct {
	Nombre        string `json:"nombre"`
	Apellido      string `json:"apellido"`
	Telefono      string `json:"telefono"`
	Direccion     string `json:"direccion"`
	LimiteCredito int    `json:"limite_credito"`
}

type MontoRequest struct {
	Monto int `json:"monto"`
}

func validarLimiteCredito(limite, deuda int) error {
	if limite < models.LimiteCreditoIlimitado {
		return fiber.NewError(fiber.StatusBadRequest, "El límite de crédito debe ser -1 (sin límite) o mayor o igual a 0")
	}
	if limite != models.LimiteCreditoIlimitado && deuda > limite {
		return fiber.NewError(fiber.StatusBadRequest,
			fmt.Sprintf("El límite de crédito (%d) no puede ser menor que la deuda actual (%d)", limite, deuda))
	}
	return nil
}

func usuarioActual(c *fiber.Ctx) (uint, string) {
	userID, _ := c.Locals(auth.CtxUserIDKey).(uint)
	userName, _ := c.Locals(auth.CtxUsernameKey).(string)
	return userID, userName
}

// GET /api/clientes
func ListarClientesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var lista []models.Cliente
		if err := database.DB.Order("apellido, nombre").Find(&lista).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar los clientes")
		}
		return c.JSON(lista)
	}
}

// GET /api/clientes/:id
func VerClienteHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.ParseUint(c.Params("id"), 10, 64)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "ID inválido")
		}

		cliente, err := BuscarCliente(database.DB, uint(id))
		if err != nil {
			if errors.Is(err, ErrClienteNoExiste) {
				return fiber.NewError(fiber.StatusNotFound, "El cliente no existe")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo buscar el cliente")
		}
		return c.JSON(cliente)
	}
}

// POST /api/clientes
func CrearClienteHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ClienteRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}
		if body.Nombre == "" || body.Apellido == "" {
			return fiber.NewError(fiber.StatusBadRequest, "El nombre y apellido del cliente son obligatorios")
		}
		if err := validarLimiteCredito(body.LimiteCredito, 0); err != nil {
			return err
		}

		cliente := models.Cliente{
			Nombre:        body.Nombre,
			Apellido:      body.Apellido,
			Telefono:      body.Telefono,
			Direccion:     body.Direccion,
			LimiteCredito: body.LimiteCredito,
		}
		if err := database.DB.Create(&cliente).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo crear el cliente")
		}

		userID, userName := usuarioActual(c)
		_ = audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "cliente",
			EntityID:    cliente.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Cliente creado: %s %s", cliente.Nombre, cliente.Apellido),
			After:       cliente,
		})

		return c.Status(fiber.StatusCreated).JSON(cliente)
	}
}

// PUT /api/clientes/:id
// La deuda no se modifica por aquí; solo con abonos y cargos.
func ModificarClienteHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.ParseUint(c.Params("id"), 10, 64)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "ID inválido")
		}

		cliente, err := BuscarCliente(database.DB, uint(id))
		if err != nil {
			if errors.Is(err, ErrClienteNoExiste) {
				return fiber.NewError(fiber.StatusNotFound, "El cliente no existe")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo buscar el cliente")
		}

		var body ClienteRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}
		if body.Nombre == "" || body.Apellido == "" {
			return fiber.NewError(fiber.StatusBadRequest, "El nombre y apellido del cliente son obligatorios")
		}
		if err := validarLimiteCredito(body.LimiteCredito, cliente.Deuda); err != nil {
			return err
		}

		before := *cliente
		cliente.Nombre = body.Nombre
		cliente.Apellido = body.Apellido
		cliente.Telefono = body.Telefono
		cliente.Direccion = body.Direccion
		cliente.LimiteCredito = body.LimiteCredito

		if err := database.DB.Save(cliente).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo modificar el cliente")
		}

		userID, userName := usuarioActual(c)
		_ = audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "cliente",
			EntityID:    cliente.ID,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Cliente modificado: %s %s", cliente.Nombre, cliente.Apellido),
			Before:      before,
			After:       cliente,
		})

		return c.JSON(cliente)
	}
}

// DELETE /api/clientes/:id
// No se puede eliminar un cliente con deuda pendiente.
func EliminarClienteHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.ParseUint(c.Params("id"), 10, 64)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "ID inválido")
		}

		cliente, err := BuscarCliente(database.DB, uint(id))
		if err != nil {
			if errors.Is(err, ErrClienteNoExiste) {
				return fiber.NewError(fiber.StatusNotFound, "El cliente no existe")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo buscar el cliente")
		}
		if cliente.Deuda > 0 {
			return fiber.NewError(fiber.StatusConflict,
				fmt.Sprintf("El cliente tiene una deuda pendiente de %d y no puede ser eliminado", cliente.Deuda))
		}

		if err := database.DB.Delete(cliente).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo eliminar el cliente")
		}

		userID, userName := usuarioActual(c)
		_ = audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "cliente",
			EntityID:    cliente.ID,
			Action:      models.AuditActionDelete,
			Description: fmt.Sprintf("Cliente eliminado: %s %s", cliente.Nombre, cliente.Apellido),
			Before:      cliente,
		})

		return c.SendStatus(fiber.StatusNoContent)
	}
}

// POST /api/clientes/:id/abonos
func AbonarDeudaHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.ParseUint(c.Params("id"), 10, 64)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "ID inválido")
		}

		var body MontoRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		cliente, err := AbonarDeuda(database.DB, uint(id), body.Monto)
		if err != nil {
			return traducirError(err)
		}

		userID, userName := usuarioActual(c)
		_ = audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "cliente",
			EntityID:    cliente.ID,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Abono de %d a la deuda de %s %s", body.Monto, cliente.Nombre, cliente.Apellido),
			After:       cliente,
		})

		return c.JSON(cliente)
	}
}

// POST /api/clientes/:id/cargos
// Cargo manual a la deuda, sujeto al mismo límite de crédito que una
// venta a crédito.
func CargarDeudaHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.ParseUint(c.Params("id"), 10, 64)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "ID inválido")
		}

		var body MontoRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		cliente, err := AumentarDeuda(database.DB, uint(id), body.Monto)
		if err != nil {
			return traducirError(err)
		}

		userID, userName := usuarioActual(c)
		_ = audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "cliente",
			EntityID:    cliente.ID,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Cargo de %d a la deuda de %s %s", body.Monto, cliente.Nombre, cliente.Apellido),
			After:       cliente,
		})

		return c.JSON(cliente)
	}
}

func traducirError(err error) error {
	var errLimite *LimiteCreditoError
	switch {
	case errors.Is(err, ErrClienteNoExiste):
		return fiber.NewError(fiber.StatusNotFound, "El cliente no existe")
	case errors.Is(err, ErrMontoInvalido):
		return fiber.NewError(fiber.StatusBadRequest, "El monto no es válido")
	case errors.As(err, &errLimite):
		return fiber.NewError(fiber.StatusConflict,
			fmt.Sprintf("El cargo excede el límite de crédito del cliente (%d)", errLimite.Limite))
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "No se pudo actualizar la deuda")
	}
}
