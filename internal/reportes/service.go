package reportes

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"minimarket-backend/internal/models"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

const separador = "===================================="

// VentasDelDia devuelve las ventas cuya fecha cae dentro del día
// calendario indicado, en orden de registro.
func VentasDelDia(db *gorm.DB, dia time.Time) ([]models.Venta, error) {
	inicio := time.Date(dia.Year(), dia.Month(), dia.Day(), 0, 0, 0, 0, dia.Location())
	fin := inicio.Add(24 * time.Hour)

	var ventas []models.Venta
	if err := db.Preload("Cliente").Preload("Vendedor").
		Where("fecha >= ? AND fecha < ?", inicio, fin).
		Order("fecha, id").Find(&ventas).Error; err != nil {
		return nil, err
	}
	return ventas, nil
}

func nombreCliente(v *models.Venta) string {
	if v.Cliente == nil {
		return "Sin cliente"
	}
	return v.Cliente.Nombre + " " + v.Cliente.Apellido
}

func nombreVendedor(v *models.Venta) string {
	if v.Vendedor == nil {
		return "Desconocido"
	}
	return v.Vendedor.Username
}

// GenerarTexto arma el reporte plano del día, una línea por venta más el
// resumen al final.
func GenerarTexto(ventas []models.Venta, dia time.Time) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Historial de Ventas del Día %s\n", dia.Format("2006-01-02"))
	b.WriteString(separador + "\n")

	suma := 0
	for i := range ventas {
		v := &ventas[i]
		fmt.Fprintf(&b, "ID: %d, Cliente: %s, Método de Pago: %s, Vendedor: %s, Total: $%d\n",
			v.ID, nombreCliente(v), v.MetodoPago, nombreVendedor(v), v.Total)
		suma += v.Total
	}

	b.WriteString(separador + "\n")
	fmt.Fprintf(&b, "Cantidad de ventas: %d\n", len(ventas))
	fmt.Fprintf(&b, "Total del día: $%d\n", suma)

	return b.String()
}

// GenerarExcel arma el reporte del día como planilla, con una fila por
// venta y el resumen al pie.
func GenerarExcel(ventas []models.Venta, dia time.Time) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	hoja := "Ventas"
	f.SetSheetName("Sheet1", hoja)

	encabezados := []string{"ID", "Fecha", "Cliente", "Método de Pago", "Vendedor", "Total"}
	for i, h := range encabezados {
		celda, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(hoja, celda, h)
	}

	suma := 0
	fila := 2
	for i := range ventas {
		v := &ventas[i]
		f.SetCellValue(hoja, fmt.Sprintf("A%d", fila), v.ID)
		f.SetCellValue(hoja, fmt.Sprintf("B%d", fila), v.Fecha.Format("2006-01-02 15:04"))
		f.SetCellValue(hoja, fmt.Sprintf("C%d", fila), nombreCliente(v))
		f.SetCellValue(hoja, fmt.Sprintf("D%d", fila), string(v.MetodoPago))
		f.SetCellValue(hoja, fmt.Sprintf("E%d", fila), nombreVendedor(v))
		f.SetCellValue(hoja, fmt.Sprintf("F%d", fila), v.Total)
		suma += v.Total
		fila++
	}

	fila++
	f.SetCellValue(hoja, fmt.Sprintf("A%d", fila), "Cantidad de ventas")
	f.SetCellValue(hoja, fmt.Sprintf("B%d", fila), len(ventas))
	fila++
	f.SetCellValue(hoja, fmt.Sprintf("A%d", fila), "Total del día")
	f.SetCellValue(hoja, fmt.Sprintf("B%d", fila), suma)

	return f.WriteToBuffer()
}
