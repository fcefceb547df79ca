package db

import (
	"fmt"
	"log"
	"sync"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	constant "github.com/tempview/sensor-data-service/pkg/common"
	"github.com/tempview/sensor-data-service/pkg/models"
)

type DB struct {
	Conn *gorm.DB
}

var (
	instance *DB
	once     sync.Once
)

func GetInstance(dialector gorm.Dialector) *DB {
	var logger = constant.GetLogger()
	once.Do(func() {
		conn, err := gorm.Open(dialector, &gorm.Config{})
		if err != nil {
			log.Fatal("Failed to connect to database:", err)
		}

		logger.Info("Connected to database with dialector:", zap.String("dialector", dialector.Name()))

		instance = &DB{Conn: conn}

		err = instance.Conn.AutoMigrate(&models.Reading{})
		if err != nil {
			log.Fatal("Failed to migrate database:", err)
		}

		logger.Info("Database migration completed")

		if err := instance.Conn.Exec("PRAGMA journal_mode = WAL").Error; err != nil {
			log.Fatal("Failed to set sqlite journal mode", err)
		}
	})
	return instance
}

// Ping acquires one connection from the underlying pool and releases it.
// Used both as the per-operation connection check and by the health probe.
func (d *DB) Ping() error {
	sqlDB, err := d.Conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// Health reports the probe state of the connection: "connected",
// "disconnected" when the pool is gone, or "error: ..." when ping fails.
func (d *DB) Health() string {
	sqlDB, err := d.Conn.DB()
	if err != nil {
		return "disconnected"
	}
	if err := sqlDB.Ping(); err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return "connected"
}

func UseSqliteDialector(path string) gorm.Dialector {
	if path == "" {
		path = "readings.db"
	}
	return sqlite.Open(path)
}

func UseMemorySqliteDialector() gorm.Dialector {
	return sqlite.Open("file::memory:?cache=shared")
}
