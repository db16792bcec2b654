package database

import (
	"log"

	"minimarket-backend/internal/config"
	"minimarket-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("No se pudo conectar a la base de datos: %v", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatalf("Error en AutoMigrate: %v", err)
	}

	log.Println("Conexión a la base de datos establecida. Migración completada.")
}

// Migrate crea/actualiza el esquema. Separado de Init para que los tests
// puedan migrar sus propias bases.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Categoria{},
		&models.Producto{},
		&models.Proveedor{},
		&models.Cliente{},
		&models.Venta{},
		&models.VentaItem{},
		&models.AuditLog{},
	)
}
