package catalog

import (
	"fmt"
	"strconv"

	"minimarket-backend/internal/audit"
	"minimarket-backend/internal/auth"
	"minimarket-backend/internal/database"
	"minimarket-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// -------------------------
// Request/Response
// -------------------------

type CrearProductoRequest struct {
	CodigoProducto uint   `json:"codigo_producto"`
	NombreProducto string `json:"nombre_producto"`
	PrecioCosto    int    `json:"precio_costo"`
	StockMinimo    int    `json:"stock_minimo"`
	StockActual    int    `json:"stock_actual"`
	CategoriaID    *uint  `json:"categoria_id"`
}

type ModificarProductoRequest struct {
	NombreProducto *string `json:"nombre_producto"`
	PrecioCosto    *int    `json:"precio_costo"`
	StockMinimo    *int    `json:"stock_minimo"`
	StockActual    *int    `json:"stock_actual"`
	CategoriaID    *uint   `json:"categoria_id"`
}

type ProductoResponse struct {
	CodigoProducto uint   `json:"codigo_producto"`
	NombreProducto string `json:"nombre_producto"`
	PrecioCosto    int    `json:"precio_costo"`
	PrecioVenta    int    `json:"precio_venta"`
	StockMinimo    int    `json:"stock_minimo"`
	StockActual    int    `json:"stock_actual"`
	CategoriaID    *uint  `json:"categoria_id"`
}

func productoToResponse(p *models.Producto) ProductoResponse {
	return ProductoResponse{
		CodigoProducto: p.CodigoProducto,
		NombreProducto: p.NombreProducto,
		PrecioCosto:    p.PrecioCosto,
		PrecioVenta:    p.PrecioVenta,
		StockMinimo:    p.StockMinimo,
		StockActual:    p.StockActual,
		CategoriaID:    p.CategoriaID,
	}
}

func usuarioActual(c *fiber.Ctx) (uint, string) {
	userID, _ := c.Locals(auth.CtxUserIDKey).(uint)
	userName, _ := c.Locals(auth.CtxUsernameKey).(string)
	return userID, userName
}

// -------------------------
// Handlers
// -------------------------

// GET /api/productos
// Devuelve el catálogo completo más los agregados que muestra la pantalla
// de gestión: total de productos y valor de costo del stock.
func ListarProductosHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var productos []models.Producto
		if err := database.DB.Order("codigo_producto").Find(&productos).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar los productos")
		}

		var totalProductos int64
		database.DB.Model(&models.Producto{}).Count(&totalProductos)

		var totalPrecioCosto int64
		database.DB.Model(&models.Producto{}).
			Select("COALESCE(SUM(precio_costo * stock_actual), 0)").
			Scan(&totalPrecioCosto)

		resp := make([]ProductoResponse, 0, len(productos))
		for i := range productos {
			resp = append(resp, productoToResponse(&productos[i]))
		}

		return c.JSON(fiber.Map{
			"productos":          resp,
			"total_productos":    totalProductos,
			"total_precio_costo": totalPrecioCosto,
		})
	}
}

// GET /api/productos/buscar?q=...
// Autocompletado del punto de venta: primeras 10 coincidencias por código o nombre.
func BuscarProductosHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := c.Query("q")
		if q == "" {
			return c.JSON(fiber.Map{"productos": []fiber.Map{}})
		}

		var productos []models.Producto
		patron := "%" + q + "%"
		if err := database.DB.
			Where("lower(nombre_producto) LIKE lower(?) OR CAST(codigo_producto AS TEXT) LIKE ?", patron, patron).
			Limit(10).
			Find(&productos).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo buscar")
		}

		resultados := make([]fiber.Map, 0, len(productos))
		for _, p := range productos {
			resultados = append(resultados, fiber.Map{
				"codigo": p.CodigoProducto,
				"nombre": p.NombreProducto,
			})
		}
		return c.JSON(fiber.Map{"productos": resultados})
	}
}

// POST /api/productos
func CrearProductoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CrearProductoRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		if body.CodigoProducto == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "El código del producto debe ser mayor a 0")
		}
		if body.NombreProducto == "" {
			return fiber.NewError(fiber.StatusBadRequest, "El nombre del producto es obligatorio")
		}
		if body.PrecioCosto < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "El precio de costo no puede ser negativo")
		}
		if body.StockActual < 0 || body.StockMinimo < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "El stock no puede ser negativo")
		}

		var count int64
		database.DB.Model(&models.Producto{}).
			Where("codigo_producto = ?", body.CodigoProducto).
			Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusConflict, "Ya existe un producto con ese código")
		}

		producto := models.Producto{
			CodigoProducto: body.CodigoProducto,
			NombreProducto: body.NombreProducto,
			PrecioCosto:    body.PrecioCosto,
			PrecioVenta:    CalcularPrecioVenta(body.PrecioCosto),
			StockMinimo:    body.StockMinimo,
			StockActual:    body.StockActual,
			CategoriaID:    body.CategoriaID,
		}

		if err := database.DB.Create(&producto).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo crear el producto")
		}

		userID, userName := usuarioActual(c)
		_ = audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "producto",
			EntityID:    producto.CodigoProducto,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Producto creado: %s (código %d)", producto.NombreProducto, producto.CodigoProducto),
			After:       productoToResponse(&producto),
		})

		return c.Status(fiber.StatusCreated).JSON(productoToResponse(&producto))
	}
}

// PUT /api/productos/:codigo
// El código no se puede modificar; el precio de venta se recalcula si
// cambia el costo.
func ModificarProductoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		codigo, err := strconv.ParseUint(c.Params("codigo"), 10, 64)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Código inválido")
		}

		var producto models.Producto
		if err := database.DB.First(&producto, "codigo_producto = ?", codigo).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "El producto no existe")
		}

		var body ModificarProductoRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		before := productoToResponse(&producto)

		if body.NombreProducto != nil {
			if *body.NombreProducto == "" {
				return fiber.NewError(fiber.StatusBadRequest, "El nombre del producto es obligatorio")
			}
			producto.NombreProducto = *body.NombreProducto
		}
		if body.PrecioCosto != nil {
			if *body.PrecioCosto < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "El precio de costo no puede ser negativo")
			}
			producto.PrecioCosto = *body.PrecioCosto
			producto.PrecioVenta = CalcularPrecioVenta(*body.PrecioCosto)
		}
		if body.StockMinimo != nil {
			if *body.StockMinimo < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "El stock no puede ser negativo")
			}
			producto.StockMinimo = *body.StockMinimo
		}
		if body.StockActual != nil {
			if *body.StockActual < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "El stock no puede ser negativo")
			}
			producto.StockActual = *body.StockActual
		}
		if body.CategoriaID != nil {
			producto.CategoriaID = body.CategoriaID
		}

		if err := database.DB.Save(&producto).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo modificar el producto")
		}

		userID, userName := usuarioActual(c)
		_ = audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "producto",
			EntityID:    producto.CodigoProducto,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Producto modificado: %s (código %d)", producto.NombreProducto, producto.CodigoProducto),
			Before:      before,
			After:       productoToResponse(&producto),
		})

		return c.JSON(productoToResponse(&producto))
	}
}

// DELETE /api/productos/:codigo
func EliminarProductoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		codigo, err := strconv.ParseUint(c.Params("codigo"), 10, 64)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Código inválido")
		}

		var producto models.Producto
		if err := database.DB.First(&producto, "codigo_producto = ?", codigo).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "El producto no existe")
		}

		before := productoToResponse(&producto)

		if err := database.DB.Delete(&producto).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo eliminar el producto")
		}

		userID, userName := usuarioActual(c)
		_ = audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "producto",
			EntityID:    producto.CodigoProducto,
			Action:      models.AuditActionDelete,
			Description: fmt.Sprintf("Producto eliminado: %s (código %d)", producto.NombreProducto, producto.CodigoProducto),
			Before:      before,
		})

		return c.SendStatus(fiber.StatusNoContent)
	}
}
