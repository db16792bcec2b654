package clientes

import (
	"errors"

	"minimarket-backend/internal/models"

	"gorm.io/gorm"
)

func BuscarCliente(db *gorm.DB, id uint) (*models.Cliente, error) {
	var cliente models.Cliente
	if err := db.First(&cliente, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClienteNoExiste
		}
		return nil, err
	}
	return &cliente, nil
}

// AumentarDeuda suma monto a la deuda del cliente en una sola sentencia
// con guarda: la condición deuda + monto <= limite_credito se evalúa bajo
// el lock de fila del UPDATE, así dos ventas a crédito concurrentes no
// pueden dejar al cliente sobre su límite.
func AumentarDeuda(db *gorm.DB, id uint, monto int) (*models.Cliente, error) {
	if monto <= 0 {
		return nil, ErrMontoInvalido
	}

	res := db.Model(&models.Cliente{}).
		Where("id = ? AND (limite_credito = ? OR deuda + ? <= limite_credito)",
			id, models.LimiteCreditoIlimitado, monto).
		UpdateColumn("deuda", gorm.Expr("deuda + ?", monto))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		cliente, err := BuscarCliente(db, id)
		if err != nil {
			return nil, err
		}
		return nil, &LimiteCreditoError{
			Limite:    cliente.LimiteCredito,
			Intentado: cliente.Deuda + monto,
		}
	}

	return BuscarCliente(db, id)
}

// AbonarDeuda resta monto de la deuda, sin dejarla negativa: si el abono
// supera lo adeudado, la deuda queda en 0.
func AbonarDeuda(db *gorm.DB, id uint, monto int) (*models.Cliente, error) {
	if monto < 0 {
		return nil, ErrMontoInvalido
	}

	res := db.Model(&models.Cliente{}).
		Where("id = ?", id).
		UpdateColumn("deuda", gorm.Expr("CASE WHEN deuda - ? < 0 THEN 0 ELSE deuda - ? END", monto, monto))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrClienteNoExiste
	}

	return BuscarCliente(db, id)
}
