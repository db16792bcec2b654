package clientes

import (
	"errors"
	"fmt"
	"testing"

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

func sembrarCliente(t *testing.T, db *gorm.DB, limite, deuda int) uint {
	t.Helper()
	c := models.Cliente{
		Nombre:        "Ana",
		Apellido:      "Pérez",
		LimiteCredito: limite,
		Deuda:         deuda,
	}
	if err := db.Create(&c).Error; err != nil {
		t.Fatalf("no se pudo sembrar el cliente: %v", err)
	}
	return c.ID
}

func TestAumentarDeuda(t *testing.T) {
	db := abrirDB(t, "clientes_aumentar")

	t.Run("dentro del limite", func(t *testing.T) {
		id := sembrarCliente(t, db, 500, 100)
		cliente, err := AumentarDeuda(db, id, 300)
		if err != nil {
			t.Fatalf("error inesperado: %v", err)
		}
		if cliente.Deuda != 400 {
			t.Errorf("deuda = %d, quiero 400", cliente.Deuda)
		}
	})

	t.Run("hasta el limite exacto", func(t *testing.T) {
		id := sembrarCliente(t, db, 500, 100)
		cliente, err := AumentarDeuda(db, id, 400)
		if err != nil {
			t.Fatalf("error inesperado: %v", err)
		}
		if cliente.Deuda != 500 {
			t.Errorf("deuda = %d, quiero 500", cliente.Deuda)
		}
	})

	t.Run("sobre el limite", func(t *testing.T) {
		id := sembrarCliente(t, db, 500, 400)
		_, err := AumentarDeuda(db, id, 200)

		var errLimite *LimiteCreditoError
		if !errors.As(err, &errLimite) {
			t.Fatalf("quiero LimiteCreditoError, tengo %v", err)
		}
		if errLimite.Limite != 500 || errLimite.Intentado != 600 {
			t.Errorf("LimiteCreditoError{%d, %d}, quiero {500, 600}", errLimite.Limite, errLimite.Intentado)
		}

		// El cargo rechazado no toca la deuda.
		var cliente models.Cliente
		db.First(&cliente, id)
		if cliente.Deuda != 400 {
			t.Errorf("deuda cambió tras el rechazo: %d", cliente.Deuda)
		}
	})

	t.Run("credito ilimitado", func(t *testing.T) {
		id := sembrarCliente(t, db, models.LimiteCreditoIlimitado, 0)
		cliente, err := AumentarDeuda(db, id, 1_000_000)
		if err != nil {
			t.Fatalf("error inesperado: %v", err)
		}
		if cliente.Deuda != 1_000_000 {
			t.Errorf("deuda = %d, quiero 1000000", cliente.Deuda)
		}
	})

	t.Run("monto invalido", func(t *testing.T) {
		id := sembrarCliente(t, db, 500, 0)
		if _, err := AumentarDeuda(db, id, 0); !errors.Is(err, ErrMontoInvalido) {
			t.Errorf("quiero ErrMontoInvalido, tengo %v", err)
		}
		if _, err := AumentarDeuda(db, id, -10); !errors.Is(err, ErrMontoInvalido) {
			t.Errorf("quiero ErrMontoInvalido, tengo %v", err)
		}
	})

	t.Run("cliente inexistente", func(t *testing.T) {
		if _, err := AumentarDeuda(db, 9999, 100); !errors.Is(err, ErrClienteNoExiste) {
			t.Errorf("quiero ErrClienteNoExiste, tengo %v", err)
		}
	})
}

func TestAbonarDeuda(t *testing.T) {
	db := abrirDB(t, "clientes_abonar")

	t.Run("abono parcial", func(t *testing.T) {
		id := sembrarCliente(t, db, 500, 300)
		cliente, err := AbonarDeuda(db, id, 100)
		if err != nil {
			t.Fatalf("error inesperado: %v", err)
		}
		if cliente.Deuda != 200 {
			t.Errorf("deuda = %d, quiero 200", cliente.Deuda)
		}
	})

	t.Run("abono mayor que la deuda queda en cero", func(t *testing.T) {
		id := sembrarCliente(t, db, 500, 300)
		cliente, err := AbonarDeuda(db, id, 1000)
		if err != nil {
			t.Fatalf("error inesperado: %v", err)
		}
		if cliente.Deuda != 0 {
			t.Errorf("deuda = %d, quiero 0", cliente.Deuda)
		}
	})

	t.Run("monto negativo", func(t *testing.T) {
		id := sembrarCliente(t, db, 500, 300)
		if _, err := AbonarDeuda(db, id, -50); !errors.Is(err, ErrMontoInvalido) {
			t.Errorf("quiero ErrMontoInvalido, tengo %v", err)
		}
	})

	t.Run("cliente inexistente", func(t *testing.T) {
		if _, err := AbonarDeuda(db, 9999, 100); !errors.Is(err, ErrClienteNoExiste) {
			t.Errorf("quiero ErrClienteNoExiste, tengo %v", err)
		}
	})
}
