package db

import (
	"sync"
	"testing"

	"github.com/tempview/sensor-data-service/pkg/common"
	_ "github.com/tempview/sensor-data-service/pkg/testing"

	"gorm.io/gorm"
)

func tableExists(db *gorm.DB, tableName string) bool {
	var count int64
	err := db.Raw(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name=?`, tableName,
	).Scan(&count).Error
	return err == nil && count > 0
}

func TestWithMemorySqlite(t *testing.T) {
	common.SetTestLoggerNop()

	dialector := UseMemorySqliteDialector()

	instance := GetInstance(dialector)
	if instance == nil {
		t.Fatal("Expected non-nil DB instance")
	}

	if !tableExists(instance.Conn, "readings") {
		t.Error(`Expected table "readings" to exist after migration`)
	}

	if err := instance.Ping(); err != nil {
		t.Errorf("Expected Ping to succeed, got: %v", err)
	}

	if got := instance.Health(); got != "connected" {
		t.Errorf(`Expected Health to report "connected", got: %q`, got)
	}
}

func TestHealthAfterPoolClose(t *testing.T) {
	common.SetTestLoggerNop()

	// a private connection, so closing it cannot disturb the singleton
	conn, err := gorm.Open(UseMemorySqliteDialector(), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	d := &DB{Conn: conn}

	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("Failed to get sql.DB: %v", err)
	}
	if err := sqlDB.Close(); err != nil {
		t.Fatalf("Failed to close pool: %v", err)
	}

	got := d.Health()
	if got == "connected" {
		t.Error("Expected Health to report a failure after the pool is closed")
	}
}

func TestSingletonConcurrency(t *testing.T) {
	common.SetTestLoggerNop()

	const goroutineCount = 20

	var wg sync.WaitGroup
	instances := make(chan *DB, goroutineCount)

	for i := 0; i < goroutineCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			instance := GetInstance(UseMemorySqliteDialector())
			instances <- instance
		}()
	}

	wg.Wait()
	close(instances)

	var first *DB
	for inst := range instances {
		if first == nil {
			first = inst
			continue
		}
		if inst != first {
			t.Error("Expected all instances to be the same (singleton), but found different ones")
		}
	}
}
