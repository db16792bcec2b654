package main

import (
	"log"
	"strings"

	"minimarket-backend/internal/audit"
	"minimarket-backend/internal/auth"
	"minimarket-backend/internal/catalog"
	"minimarket-backend/internal/clientes"
	"minimarket-backend/internal/config"
	"minimarket-backend/internal/dashboard"
	"minimarket-backend/internal/database"
	"minimarket-backend/internal/models"
	"minimarket-backend/internal/reportes"
	"minimarket-backend/internal/venta"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Error inesperado:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Error inesperado del servidor",
			})
		},
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	// Los carritos viven en memoria, uno por vendedor autenticado.
	carritos := venta.NuevoAlmacen()

	api := app.Group("/api")

	// Auth público
	api.Post("/auth/register-admin", auth.RegisterAdminHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Protegido
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// Solo admin
	adminRoutes := protected.Group("/admin")
	adminRoutes.Use(auth.RequireRole(models.RoleAdmin))

	adminRoutes.Post("/usuarios", auth.RegisterUserHandler())
	adminRoutes.Get("/audit-logs", audit.ListAuditLogsHandler())

	// La gestión del catálogo es de admin; la lectura queda abierta a
	// cualquier usuario autenticado.
	adminRoutes.Post("/productos", catalog.CrearProductoHandler())
	adminRoutes.Put("/productos/:codigo", catalog.ModificarProductoHandler())
	adminRoutes.Delete("/productos/:codigo", catalog.EliminarProductoHandler())
	adminRoutes.Post("/categorias", catalog.CrearCategoriaHandler())
	adminRoutes.Put("/categorias/:id", catalog.ModificarCategoriaHandler())
	adminRoutes.Delete("/categorias/:id", catalog.EliminarCategoriaHandler())
	adminRoutes.Post("/proveedores", catalog.CrearProveedorHandler())
	adminRoutes.Put("/proveedores/:id", catalog.ModificarProveedorHandler())
	adminRoutes.Delete("/proveedores/:id", catalog.EliminarProveedorHandler())

	// Catálogo (lectura)
	protected.Get("/productos", catalog.ListarProductosHandler())
	protected.Get("/productos/buscar", catalog.BuscarProductosHandler())
	protected.Get("/categorias", catalog.ListarCategoriasHandler())
	protected.Get("/categorias/:id/productos", catalog.ProductosDeCategoriaHandler())
	protected.Get("/proveedores", catalog.ListarProveedoresHandler())

	// Clientes y deuda
	protected.Get("/clientes", clientes.ListarClientesHandler())
	protected.Get("/clientes/:id", clientes.VerClienteHandler())
	protected.Post("/clientes", clientes.CrearClienteHandler())
	protected.Put("/clientes/:id", clientes.ModificarClienteHandler())
	protected.Delete("/clientes/:id", clientes.EliminarClienteHandler())
	protected.Post("/clientes/:id/abonos", clientes.AbonarDeudaHandler())
	protected.Post("/clientes/:id/cargos", clientes.CargarDeudaHandler())

	// Punto de venta
	protected.Get("/carrito", venta.VerCarritoHandler(carritos))
	protected.Post("/carrito", venta.AgregarAlCarritoHandler(carritos))
	protected.Delete("/carrito/:codigo", venta.QuitarDelCarritoHandler(carritos))
	protected.Post("/carrito/cancelar", venta.CancelarCarritoHandler(carritos))
	protected.Post("/ventas", venta.RegistrarVentaHandler(carritos))
	protected.Get("/ventas", venta.HistorialVentasHandler())

	// Reportes
	protected.Get("/reportes/ventas", reportes.ReporteVentasHandler())

	// Dashboard
	protected.Get("/dashboard", dashboard.ResumenHandler())

	log.Println("Servidor escuchando en el puerto", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
