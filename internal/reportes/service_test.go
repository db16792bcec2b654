package reportes

import (
	"fmt"
	"strings"
	"testing"
	"time"

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

func sembrarVenta(t *testing.T, db *gorm.DB, fecha time.Time, total int, metodo models.MetodoPago, clienteID, vendedorID *uint) models.Venta {
	t.Helper()
	v := models.Venta{
		Fecha:      fecha,
		Total:      total,
		MetodoPago: metodo,
		ClienteID:  clienteID,
		VendedorID: vendedorID,
	}
	if err := db.Create(&v).Error; err != nil {
		t.Fatalf("no se pudo sembrar la venta: %v", err)
	}
	return v
}

func TestVentasDelDia(t *testing.T) {
	db := abrirDB(t, "reportes_dia")

	dia := time.Date(2026, 8, 15, 0, 0, 0, 0, time.Local)
	sembrarVenta(t, db, dia.Add(9*time.Hour), 1000, models.PagoEfectivo, nil, nil)
	sembrarVenta(t, db, dia.Add(18*time.Hour), 2000, models.PagoTarjeta, nil, nil)
	// Fuera del día: la víspera a las 23:59 y el día siguiente a las 00:00.
	sembrarVenta(t, db, dia.Add(-time.Minute), 9999, models.PagoEfectivo, nil, nil)
	sembrarVenta(t, db, dia.Add(24*time.Hour), 9999, models.PagoEfectivo, nil, nil)

	ventas, err := VentasDelDia(db, dia)
	if err != nil {
		t.Fatalf("error inesperado: %v", err)
	}
	if len(ventas) != 2 {
		t.Fatalf("ventas = %d, quiero 2", len(ventas))
	}
	if ventas[0].Total != 1000 || ventas[1].Total != 2000 {
		t.Errorf("orden inesperado: %d, %d", ventas[0].Total, ventas[1].Total)
	}
}

func TestGenerarTexto(t *testing.T) {
	db := abrirDB(t, "reportes_texto")

	cliente := models.Cliente{Nombre: "Rosa", Apellido: "Díaz"}
	if err := db.Create(&cliente).Error; err != nil {
		t.Fatal(err)
	}
	vendedor := models.User{Username: "cajero", PasswordHash: "x", Role: models.RoleVendedor}
	if err := db.Create(&vendedor).Error; err != nil {
		t.Fatal(err)
	}

	dia := time.Date(2026, 8, 15, 0, 0, 0, 0, time.Local)
	sembrarVenta(t, db, dia.Add(10*time.Hour), 4000, models.PagoDeuda, &cliente.ID, &vendedor.ID)
	sembrarVenta(t, db, dia.Add(11*time.Hour), 1500, models.PagoEfectivo, nil, nil)

	ventas, err := VentasDelDia(db, dia)
	if err != nil {
		t.Fatal(err)
	}

	texto := GenerarTexto(ventas, dia)

	for _, linea := range []string{
		"Historial de Ventas del Día 2026-08-15",
		fmt.Sprintf("ID: %d, Cliente: Rosa Díaz, Método de Pago: Deuda, Vendedor: cajero, Total: $4000", ventas[0].ID),
		fmt.Sprintf("ID: %d, Cliente: Sin cliente, Método de Pago: Efectivo, Vendedor: Desconocido, Total: $1500", ventas[1].ID),
		"Cantidad de ventas: 2",
		"Total del día: $5500",
	} {
		if !strings.Contains(texto, linea) {
			t.Errorf("falta la línea %q en:\n%s", linea, texto)
		}
	}
}

func TestGenerarTextoSinVentas(t *testing.T) {
	dia := time.Date(2026, 8, 15, 0, 0, 0, 0, time.Local)
	texto := GenerarTexto(nil, dia)

	if !strings.Contains(texto, "Cantidad de ventas: 0") {
		t.Errorf("reporte vacío inesperado:\n%s", texto)
	}
	if !strings.Contains(texto, "Total del día: $0") {
		t.Errorf("reporte vacío inesperado:\n%s", texto)
	}
}

func TestGenerarExcel(t *testing.T) {
	dia := time.Date(2026, 8, 15, 0, 0, 0, 0, time.Local)
	ventas := []models.Venta{
		{ID: 1, Fecha: dia.Add(10 * time.Hour), Total: 4000, MetodoPago: models.PagoEfectivo},
	}

	buf, err := GenerarExcel(ventas, dia)
	if err != nil {
		t.Fatalf("error inesperado: %v", err)
	}
	if buf.Len() == 0 {
		t.Error("la planilla no debería estar vacía")
	}
}
