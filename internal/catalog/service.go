package catalog

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"minimarket-backend/internal/models"

	"gorm.io/gorm"
)

// CalcularPrecioVenta deriva el precio de venta del costo: IVA 19% más un
// margen de ganancia del 40%, redondeado al peso. Se calcula una sola vez
// al crear o modificar el producto; nunca al vender.
func CalcularPrecioVenta(precioCosto int) int {
	const (
		iva    = 1.19
		margen = 1.40
	)
	return int(math.Round(float64(precioCosto) * iva * margen))
}

func BuscarPorCodigo(db *gorm.DB, codigo uint) (*models.Producto, error) {
	var p models.Producto
	if err := db.First(&p, "codigo_producto = ?", codigo).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductoNoExiste
		}
		return nil, err
	}
	return &p, nil
}

// BuscarPorNombre busca por subcadena, sin distinguir mayúsculas.
func BuscarPorNombre(db *gorm.DB, nombre string) ([]models.Producto, error) {
	var productos []models.Producto
	patron := "%" + strings.ToLower(strings.TrimSpace(nombre)) + "%"
	if err := db.Where("lower(nombre_producto) LIKE ?", patron).Find(&productos).Error; err != nil {
		return nil, err
	}
	return productos, nil
}

// ResolverProducto interpreta la entrada del vendedor: si es numérica se
// busca por código; si no, por subcadena del nombre, que debe coincidir
// con exactamente un producto.
func ResolverProducto(db *gorm.DB, entrada string) (*models.Producto, error) {
	entrada = strings.TrimSpace(entrada)
	if entrada == "" {
		return nil, ErrProductoNoExiste
	}

	if codigo, err := strconv.ParseUint(entrada, 10, 64); err == nil {
		return BuscarPorCodigo(db, uint(codigo))
	}

	coincidencias, err := BuscarPorNombre(db, entrada)
	if err != nil {
		return nil, err
	}
	switch len(coincidencias) {
	case 0:
		return nil, ErrProductoNoExiste
	case 1:
		return &coincidencias[0], nil
	default:
		return nil, ErrBusquedaAmbigua
	}
}

// DescontarStock resta cantidad del stock en una sola sentencia con guarda,
// de modo que dos ventas concurrentes del mismo producto no puedan dejar el
// stock en negativo: la condición stock_actual >= cantidad se evalúa bajo
// el lock de fila del UPDATE.
func DescontarStock(db *gorm.DB, codigo uint, cantidad int) error {
	if cantidad <= 0 {
		return ErrCantidadInvalida
	}

	res := db.Model(&models.Producto{}).
		Where("codigo_producto = ? AND stock_actual >= ?", codigo, cantidad).
		UpdateColumn("stock_actual", gorm.Expr("stock_actual - ?", cantidad))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var p models.Producto
		if err := db.First(&p, "codigo_producto = ?", codigo).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductoNoExiste
			}
			return err
		}
		return &StockInsuficienteError{Codigo: codigo, Nombre: p.NombreProducto, Disponible: p.StockActual}
	}
	return nil
}
