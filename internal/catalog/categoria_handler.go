package catalog

import (
	"strconv"

	"minimarket-backend/internal/database"
	"minimarket-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CategoriaRequest struct {
	Nombre string `json:"nombre"`
}

// GET /api/categorias
func ListarCategoriasHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var categorias []models.Categoria
		if err := database.DB.Order("nombre").Find(&categorias).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar las categorías")
		}
		return c.JSON(categorias)
	}
}

// GET /api/categorias/:id/productos
func ProductosDeCategoriaHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.ParseUint(c.Params("id"), 10, 64)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "ID inválido")
		}

		var categoria models.Categoria
		if err := database.DB.First(&categoria, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "La categoría no existe")
		}

		var productos []models.Producto
		if err := database.DB.Where("categoria_id = ?", id).Order("codigo_producto").Find(&productos).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar los productos")
		}

		resp := make([]ProductoResponse, 0, len(productos))
		for i := range productos {
			resp = append(resp, productoToResponse(&productos[i]))
		}

		return c.JSON(fiber.Map{
			"categoria": categoria,
			"productos": resp,
		})
	}
}

// POST /api/categorias
func CrearCategoriaHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CategoriaRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}
		if body.Nombre == "" {
			return fiber.NewError(fiber.StatusBadRequest, "El nombre de la categoría es obligatorio")
		}

		var count int64
		database.DB.Model(&models.Categoria{}).Where("nombre = ?", body.Nombre).Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusConflict, "Ya existe una categoría con ese nombre")
		}

		categoria := models.Categoria{Nombre: body.Nombre}
		if err := database.DB.Create(&categoria).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo crear la categoría")
		}

		return c.Status(fiber.StatusCreated).JSON(categoria)
	}
}

// PUT /api/categorias/:id
func ModificarCategoriaHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.ParseUint(c.Params("id"), 10, 64)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "ID inválido")
		}

		var categoria models.Categoria
		if err := database.DB.First(&categoria, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "La categoría no existe")
		}

		var body CategoriaRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}
		if body.Nombre == "" {
			return fiber.NewError(fiber.StatusBadRequest, "El nombre de la categoría es obligatorio")
		}

		categoria.Nombre = body.Nombre
		if err := database.DB.Save(&categoria).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo modificar la categoría")
		}

		return c.JSON(categoria)
	}
}

// DELETE /api/categorias/:id
// Eliminar una categoría elimina también sus productos.
func EliminarCategoriaHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.ParseUint(c.Params("id"), 10, 64)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "ID inválido")
		}

		var categoria models.Categoria
		if err := database.DB.First(&categoria, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "La categoría no existe")
		}

		if err := database.DB.Where("categoria_id = ?", id).
			Delete(&models.Producto{}).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo eliminar la categoría")
		}

		if err := database.DB.Delete(&categoria).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo eliminar la categoría")
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
