package reportes

import (
	"fmt"
	"time"

	"minimarket-backend/internal/database"

	"github.com/gofiber/fiber/v2"
)

// GET /api/reportes/ventas?fecha=YYYY-MM-DD&formato=txt|xlsx
// Sin fecha se reporta el día de hoy. El formato por defecto es txt.
func ReporteVentasHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dia := time.Now()
		if v := c.Query("fecha"); v != "" {
			parsed, err := time.ParseInLocation("2006-01-02", v, time.Local)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Fecha inválida")
			}
			dia = parsed
		}

		ventas, err := VentasDelDia(database.DB, dia)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo generar el reporte")
		}

		formato := c.Query("formato", "txt")
		nombre := fmt.Sprintf("ventas_%s", dia.Format("2006-01-02"))

		switch formato {
		case "txt":
			c.Set(fiber.HeaderContentType, "text/plain; charset=utf-8")
			c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s.txt", nombre))
			return c.SendString(GenerarTexto(ventas, dia))
		case "xlsx":
			buf, err := GenerarExcel(ventas, dia)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "No se pudo generar el reporte")
			}
			c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
			c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s.xlsx", nombre))
			return c.Send(buf.Bytes())
		default:
			return fiber.NewError(fiber.StatusBadRequest, "Formato inválido, usa txt o xlsx")
		}
	}
}
