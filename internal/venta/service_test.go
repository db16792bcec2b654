package venta

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"minimarket-backend/internal/catalog"
	"minimarket-backend/internal/clientes"
	"minimarket-backend/internal/database"
	"minimarket-backend/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func abrirDB(t *testing.T, nombre string) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", nombre)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("no se pudo abrir la base de prueba: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("no se pudo migrar: %v", err)
	}
	return db
}

func sembrarProducto(t *testing.T, db *gorm.DB, codigo uint, nombre string, precioVenta, stock int) *models.Producto {
	t.Helper()
	p := models.Producto{
		CodigoProducto: codigo,
		NombreProducto: nombre,
		PrecioCosto:    precioVenta / 2,
		PrecioVenta:    precioVenta,
		StockActual:    stock,
	}
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("no se pudo sembrar el producto: %v", err)
	}
	return &p
}

func sembrarCliente(t *testing.T, db *gorm.DB, limite, deuda int) uint {
	t.Helper()
	c := models.Cliente{
		Nombre:        "Rosa",
		Apellido:      "Díaz",
		LimiteCredito: limite,
		Deuda:         deuda,
	}
	if err := db.Create(&c).Error; err != nil {
		t.Fatalf("no se pudo sembrar el cliente: %v", err)
	}
	return c.ID
}

func sembrarVendedor(t *testing.T, db *gorm.DB) uint {
	t.Helper()
	u := models.User{Username: "cajero", PasswordHash: "x", Role: models.RoleVendedor}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("no se pudo sembrar el vendedor: %v", err)
	}
	return u.ID
}

func TestRegistrarVentaEfectivo(t *testing.T) {
	db := abrirDB(t, "venta_efectivo")
	p1 := sembrarProducto(t, db, 100, "Arroz", 1000, 10)
	p2 := sembrarProducto(t, db, 200, "Fideos", 500, 5)
	vendedorID := sembrarVendedor(t, db)

	var car Carrito
	if err := car.Agregar(p1, 3); err != nil {
		t.Fatal(err)
	}
	if err := car.Agregar(p2, 2); err != nil {
		t.Fatal(err)
	}

	v, err := RegistrarVenta(db, &car, models.PagoEfectivo, nil, vendedorID)
	if err != nil {
		t.Fatalf("error inesperado: %v", err)
	}

	if v.Total != 3*1000+2*500 {
		t.Errorf("total = %d, quiero 4000", v.Total)
	}
	if len(v.Items) != 2 {
		t.Errorf("items = %d, quiero 2", len(v.Items))
	}
	if !car.Vacio() {
		t.Error("el carrito debería quedar vacío tras confirmar")
	}

	var arroz, fideos models.Producto
	db.First(&arroz, "codigo_producto = ?", 100)
	db.First(&fideos, "codigo_producto = ?", 200)
	if arroz.StockActual != 7 || fideos.StockActual != 3 {
		t.Errorf("stock = %d/%d, quiero 7/3", arroz.StockActual, fideos.StockActual)
	}

	// Los ítems quedan persistidos con el precio del momento.
	var items []models.VentaItem
	db.Where("venta_id = ?", v.ID).Find(&items)
	if len(items) != 2 {
		t.Fatalf("items persistidos = %d, quiero 2", len(items))
	}
}

func TestRegistrarVentaTodoONada(t *testing.T) {
	db := abrirDB(t, "venta_atomica")
	p1 := sembrarProducto(t, db, 100, "Arroz", 1000, 10)
	p2 := sembrarProducto(t, db, 200, "Fideos", 500, 5)
	vendedorID := sembrarVendedor(t, db)

	var car Carrito
	if err := car.Agregar(p1, 3); err != nil {
		t.Fatal(err)
	}
	if err := car.Agregar(p2, 4); err != nil {
		t.Fatal(err)
	}

	// Otra venta consume el stock de fideos antes de confirmar.
	if err := catalog.DescontarStock(db, 200, 3); err != nil {
		t.Fatal(err)
	}

	_, err := RegistrarVenta(db, &car, models.PagoEfectivo, nil, vendedorID)
	var errStock *catalog.StockInsuficienteError
	if !errors.As(err, &errStock) {
		t.Fatalf("quiero StockInsuficienteError, tengo %v", err)
	}

	// Nada quedó a medias: el arroz conserva su stock y no hay venta.
	var arroz models.Producto
	db.First(&arroz, "codigo_producto = ?", 100)
	if arroz.StockActual != 10 {
		t.Errorf("stock de arroz = %d, quiero 10", arroz.StockActual)
	}
	var cuantas int64
	db.Model(&models.Venta{}).Count(&cuantas)
	if cuantas != 0 {
		t.Errorf("ventas = %d, quiero 0", cuantas)
	}
	if car.Vacio() {
		t.Error("el carrito no debe vaciarse si la venta falla")
	}
}

func TestRegistrarVentaDeuda(t *testing.T) {
	db := abrirDB(t, "venta_deuda")
	p := sembrarProducto(t, db, 100, "Arroz", 1000, 10)
	clienteID := sembrarCliente(t, db, 5000, 500)
	vendedorID := sembrarVendedor(t, db)

	var car Carrito
	if err := car.Agregar(p, 2); err != nil {
		t.Fatal(err)
	}

	v, err := RegistrarVenta(db, &car, models.PagoDeuda, &clienteID, vendedorID)
	if err != nil {
		t.Fatalf("error inesperado: %v", err)
	}
	if v.Total != 2000 {
		t.Errorf("total = %d, quiero 2000", v.Total)
	}

	var cliente models.Cliente
	db.First(&cliente, clienteID)
	if cliente.Deuda != 2500 {
		t.Errorf("deuda = %d, quiero 2500", cliente.Deuda)
	}
}

func TestRegistrarVentaDeudaSobreLimite(t *testing.T) {
	db := abrirDB(t, "venta_limite")
	p := sembrarProducto(t, db, 100, "Arroz", 1000, 10)
	clienteID := sembrarCliente(t, db, 2000, 500)
	vendedorID := sembrarVendedor(t, db)

	var car Carrito
	if err := car.Agregar(p, 2); err != nil {
		t.Fatal(err)
	}

	_, err := RegistrarVenta(db, &car, models.PagoDeuda, &clienteID, vendedorID)
	var errLimite *clientes.LimiteCreditoError
	if !errors.As(err, &errLimite) {
		t.Fatalf("quiero LimiteCreditoError, tengo %v", err)
	}
	if errLimite.Intentado != 2500 {
		t.Errorf("Intentado = %d, quiero 2500", errLimite.Intentado)
	}

	// Ni el stock ni la deuda cambian.
	var producto models.Producto
	db.First(&producto, "codigo_producto = ?", 100)
	if producto.StockActual != 10 {
		t.Errorf("stock = %d, quiero 10", producto.StockActual)
	}
	var cliente models.Cliente
	db.First(&cliente, clienteID)
	if cliente.Deuda != 500 {
		t.Errorf("deuda = %d, quiero 500", cliente.Deuda)
	}
}

func TestRegistrarVentaValidaciones(t *testing.T) {
	db := abrirDB(t, "venta_validaciones")
	p := sembrarProducto(t, db, 100, "Arroz", 1000, 10)
	vendedorID := sembrarVendedor(t, db)

	t.Run("carrito vacio", func(t *testing.T) {
		var car Carrito
		if _, err := RegistrarVenta(db, &car, models.PagoEfectivo, nil, vendedorID); !errors.Is(err, ErrCarritoVacio) {
			t.Errorf("quiero ErrCarritoVacio, tengo %v", err)
		}
	})

	t.Run("metodo de pago invalido", func(t *testing.T) {
		var car Carrito
		if err := car.Agregar(p, 1); err != nil {
			t.Fatal(err)
		}
		if _, err := RegistrarVenta(db, &car, "Cheque", nil, vendedorID); !errors.Is(err, ErrMetodoPagoInvalido) {
			t.Errorf("quiero ErrMetodoPagoInvalido, tengo %v", err)
		}
	})

	t.Run("deuda sin cliente", func(t *testing.T) {
		var car Carrito
		if err := car.Agregar(p, 1); err != nil {
			t.Fatal(err)
		}
		if _, err := RegistrarVenta(db, &car, models.PagoDeuda, nil, vendedorID); !errors.Is(err, ErrVentaSinCliente) {
			t.Errorf("quiero ErrVentaSinCliente, tengo %v", err)
		}
	})

	t.Run("cliente inexistente", func(t *testing.T) {
		var car Carrito
		if err := car.Agregar(p, 1); err != nil {
			t.Fatal(err)
		}
		fantasma := uint(9999)
		if _, err := RegistrarVenta(db, &car, models.PagoDeuda, &fantasma, vendedorID); !errors.Is(err, clientes.ErrClienteNoExiste) {
			t.Errorf("quiero ErrClienteNoExiste, tengo %v", err)
		}
	})
}

// Dos ventas concurrentes compiten por las últimas unidades: exactamente
// una debe confirmarse. Se usa una base en archivo para que las
// transacciones serialicen sobre el lock de escritura de sqlite.
func TestRegistrarVentaConcurrente(t *testing.T) {
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000", filepath.Join(t.TempDir(), "ventas.db"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("no se pudo abrir la base de prueba: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("no se pudo migrar: %v", err)
	}

	p := sembrarProducto(t, db, 100, "Arroz", 1000, 10)
	vendedorID := sembrarVendedor(t, db)

	var car1, car2 Carrito
	if err := car1.Agregar(p, 7); err != nil {
		t.Fatal(err)
	}
	if err := car2.Agregar(p, 7); err != nil {
		t.Fatal(err)
	}

	resultados := make([]error, 2)
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, resultados[0] = RegistrarVenta(db, &car1, models.PagoEfectivo, nil, vendedorID)
	}()
	go func() {
		defer wg.Done()
		_, resultados[1] = RegistrarVenta(db, &car2, models.PagoEfectivo, nil, vendedorID)
	}()
	wg.Wait()

	exitos, fallosStock := 0, 0
	for _, err := range resultados {
		var errStock *catalog.StockInsuficienteError
		switch {
		case err == nil:
			exitos++
		case errors.As(err, &errStock):
			fallosStock++
		default:
			t.Fatalf("error inesperado: %v", err)
		}
	}
	if exitos != 1 || fallosStock != 1 {
		t.Fatalf("exitos=%d fallos=%d, quiero 1 y 1", exitos, fallosStock)
	}

	var producto models.Producto
	db.First(&producto, "codigo_producto = ?", 100)
	if producto.StockActual != 3 {
		t.Errorf("stock = %d, quiero 3", producto.StockActual)
	}
}
