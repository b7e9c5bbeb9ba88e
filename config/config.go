package config

import (
	"log"
	"os"

	"food-ordering-api/models"

	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// JWTSecret used to sign tokens — set by Load from env or fallback
var JWTSecret []byte

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Load reads .env (if present) and resolves secrets from the environment
func Load() {
	_ = godotenv.Load()
	JWTSecret = []byte(getEnv("JWT_SECRET", "food_ordering_super_secret_2025"))
}

// InitDB opens the database and runs migrations. Postgres is used when
// DATABASE_URL is set, otherwise a local sqlite file.
func InitDB() {
	var dialector gorm.Dialector
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		dialector = postgres.Open(dsn)
	} else {
		dialector = sqlite.Open(getEnv("DB_PATH", "food_ordering.db"))
	}

	var err error
	DB, err = gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	log.Println("Database connected and migrated successfully")
}

// Migrate runs auto-migration for all models. Also used by tests against
// in-memory databases.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Restaurant{},
		&models.MenuItem{},
		&models.Order{},
		&models.OrderItem{},
	)
}
