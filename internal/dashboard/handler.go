package dashboard

import (
	"time"

	"minimarket-backend/internal/database"
	"minimarket-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GET /api/dashboard
// Resumen de la pantalla principal: inventario valorizado, ventas del día
// y deuda total de los clientes.
func ResumenHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var totalProductos int64
		if err := database.DB.Model(&models.Producto{}).Count(&totalProductos).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo generar el resumen")
		}

		var valorCostoTotal int64
		database.DB.Model(&models.Producto{}).
			Select("COALESCE(SUM(precio_costo * stock_actual), 0)").
			Scan(&valorCostoTotal)

		var bajoStock int64
		database.DB.Model(&models.Producto{}).
			Where("stock_actual <= stock_minimo").
			Count(&bajoStock)

		hoy := time.Now()
		inicio := time.Date(hoy.Year(), hoy.Month(), hoy.Day(), 0, 0, 0, 0, hoy.Location())
		fin := inicio.Add(24 * time.Hour)

		var ventasHoy int64
		database.DB.Model(&models.Venta{}).
			Where("fecha >= ? AND fecha < ?", inicio, fin).
			Count(&ventasHoy)

		var sumaVentasHoy int64
		database.DB.Model(&models.Venta{}).
			Where("fecha >= ? AND fecha < ?", inicio, fin).
			Select("COALESCE(SUM(total), 0)").
			Scan(&sumaVentasHoy)

		var deudaTotal int64
		database.DB.Model(&models.Cliente{}).
			Select("COALESCE(SUM(deuda), 0)").
			Scan(&deudaTotal)

		return c.JSON(fiber.Map{
			"total_productos":     totalProductos,
			"valor_costo_total":   valorCostoTotal,
			"productos_bajo_stock": bajoStock,
			"ventas_hoy":          ventasHoy,
			"suma_ventas_hoy":     sumaVentasHoy,
			"deuda_total":         deudaTotal,
		})
	}
}
