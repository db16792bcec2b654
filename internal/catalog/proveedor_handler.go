package catalog

import (
	"strconv"

	"minimarket-backend/internal/database"
	"minimarket-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type ProveedorRequest struct {
	Nombre    string `json:"nombre"`
	Direccion string `json:"direccion"`
	Telefono  string `json:"telefono"`
	Detalles  string `json:"detalles"`
}

// GET /api/proveedores
func ListarProveedoresHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var proveedores []models.Proveedor
		if err := database.DB.Order("id").Find(&proveedores).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar los proveedores")
		}
		return c.JSON(proveedores)
	}
}

// POST /api/proveedores
func CrearProveedorHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ProveedorRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}
		if body.Nombre == "" {
			return fiber.NewError(fiber.StatusBadRequest, "El nombre del proveedor es obligatorio")
		}

		proveedor := models.Proveedor{
			Nombre:    body.Nombre,
			Direccion: body.Direccion,
			Telefono:  body.Telefono,
			Detalles:  body.Detalles,
		}
		if err := database.DB.Create(&proveedor).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo crear el proveedor")
		}

		return c.Status(fiber.StatusCreated).JSON(proveedor)
	}
}

// PUT /api/proveedores/:id
func ModificarProveedorHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.ParseUint(c.Params("id"), 10, 64)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "ID inválido")
		}

		var proveedor models.Proveedor
		if err := database.DB.First(&proveedor, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "El proveedor no existe")
		}

		var body ProveedorRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}
		if body.Nombre == "" {
			return fiber.NewError(fiber.StatusBadRequest, "El nombre del proveedor es obligatorio")
		}

		proveedor.Nombre = body.Nombre
		proveedor.Direccion = body.Direccion
		proveedor.Telefono = body.Telefono
		proveedor.Detalles = body.Detalles

		if err := database.DB.Save(&proveedor).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo modificar el proveedor")
		}

		return c.JSON(proveedor)
	}
}

// DELETE /api/proveedores/:id
func EliminarProveedorHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.ParseUint(c.Params("id"), 10, 64)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "ID inválido")
		}

		var proveedor models.Proveedor
		if err := database.DB.First(&proveedor, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "El proveedor no existe")
		}

		if err := database.DB.Delete(&proveedor).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo eliminar el proveedor")
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
