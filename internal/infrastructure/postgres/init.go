package postgres

import (
	"log/slog"
	"os"

	"github.com/LavaJover/shvark-buffer-service/internal/config"
	"github.com/LavaJover/shvark-buffer-service/internal/infrastructure/postgres/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func MustInitDB(cfg *config.BufferConfig) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.BufferDB.Dsn), &gorm.Config{})
	if err != nil {
		slog.Error("failed to init db", "error", err.Error())
		os.Exit(1)
	}

	if cfg.BufferDB.AutoMigrate {
		if err := db.AutoMigrate(models.All()...); err != nil {
			slog.Error("failed to auto-migrate", "error", err.Error())
			os.Exit(1)
		}
	}

	return db
}
