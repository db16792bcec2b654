package venta

import (
	"fmt"
	"time"

	"minimarket-backend/internal/catalog"
	"minimarket-backend/internal/clientes"
	"minimarket-backend/internal/models"

	"gorm.io/gorm"
)

// RegistrarVenta confirma el carrito como una venta: descuenta el stock de
// cada línea, carga la deuda si corresponde y persiste la venta con sus
// ítems, todo dentro de una transacción. Si cualquier paso falla no queda
// ningún efecto. Solo si la venta se confirma se vacía el carrito.
func RegistrarVenta(db *gorm.DB, carrito *Carrito, metodo models.MetodoPago, clienteID *uint, vendedorID uint) (*models.Venta, error) {
	if carrito.Vacio() {
		return nil, ErrCarritoVacio
	}
	if !metodo.EsValido() {
		return nil, ErrMetodoPagoInvalido
	}
	if metodo == models.PagoDeuda && clienteID == nil {
		return nil, ErrVentaSinCliente
	}

	var cliente *models.Cliente
	if clienteID != nil {
		var err error
		cliente, err = clientes.BuscarCliente(db, *clienteID)
		if err != nil {
			return nil, err
		}
	}

	total := carrito.Total()

	// Chequeo temprano del límite de crédito, antes de abrir la
	// transacción. La guarda definitiva es el UPDATE condicionado de
	// AumentarDeuda.
	if metodo == models.PagoDeuda && !cliente.CreditoIlimitado() &&
		cliente.Deuda+total > cliente.LimiteCredito {
		return nil, &clientes.LimiteCreditoError{
			Limite:    cliente.LimiteCredito,
			Intentado: cliente.Deuda + total,
		}
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("no se pudo iniciar la transacción: %w", tx.Error)
	}

	abortar := func(causa error) error {
		if err := tx.Rollback().Error; err != nil {
			return &IntegridadVentaError{Causa: fmt.Errorf("rollback fallido tras %v: %w", causa, err)}
		}
		return causa
	}

	for _, linea := range carrito.Lineas {
		if err := catalog.DescontarStock(tx, linea.CodigoProducto, linea.Cantidad); err != nil {
			return nil, abortar(err)
		}
	}

	if metodo == models.PagoDeuda && total > 0 {
		if _, err := clientes.AumentarDeuda(tx, *clienteID, total); err != nil {
			return nil, abortar(err)
		}
	}

	venta := models.Venta{
		Fecha:      time.Now(),
		Total:      total,
		MetodoPago: metodo,
		ClienteID:  clienteID,
		VendedorID: &vendedorID,
	}
	for _, linea := range carrito.Lineas {
		venta.Items = append(venta.Items, models.VentaItem{
			CodigoProducto: linea.CodigoProducto,
			NombreProducto: linea.NombreProducto,
			PrecioUnitario: linea.PrecioVenta,
			Cantidad:       linea.Cantidad,
		})
	}

	if err := tx.Create(&venta).Error; err != nil {
		return nil, abortar(err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, &IntegridadVentaError{Causa: err}
	}

	carrito.Vaciar()
	return &venta, nil
}

// HistorialVentas devuelve las ventas más recientes primero, con el
// conteo y la suma total del historial.
func HistorialVentas(db *gorm.DB) ([]models.Venta, int64, int64, error) {
	var ventas []models.Venta
	if err := db.Preload("Cliente").Preload("Vendedor").Preload("Items").
		Order("fecha desc, id desc").Find(&ventas).Error; err != nil {
		return nil, 0, 0, err
	}

	var cantidad int64
	if err := db.Model(&models.Venta{}).Count(&cantidad).Error; err != nil {
		return nil, 0, 0, err
	}

	var suma int64
	if err := db.Model(&models.Venta{}).
		Select("COALESCE(SUM(total), 0)").Scan(&suma).Error; err != nil {
		return nil, 0, 0, err
	}

	return ventas, cantidad, suma, nil
}
