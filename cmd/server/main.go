package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/tempview/sensor-data-service/pkg/common"
	"github.com/tempview/sensor-data-service/pkg/config"
	"github.com/tempview/sensor-data-service/pkg/db"
	sensorHttp "github.com/tempview/sensor-data-service/pkg/http"
	"github.com/tempview/sensor-data-service/pkg/mqtt"
	"github.com/tempview/sensor-data-service/pkg/sensor"
)

func main() {
	cfg := config.Load()

	var dbInstance *db.DB
	switch cfg.DB.Type {
	case "file":
		dbInstance = db.GetInstance(db.UseSqliteDialector(cfg.DB.Path))
	case "memory":
		dbInstance = db.GetInstance(db.UseMemorySqliteDialector())
	default:
		log.Fatal("Unknown SENSOR_DB_TYPE: " + cfg.DB.Type)
	}

	logger := common.GetLogger()

	core := &sensor.Core{
		Db: *dbInstance,
	}
	core.WithServices(sensor.ServiceOpts{
		Store: core.GetIStore(),
		Query: core.GetIQuery(),
	})

	listener := mqtt.NewListener(cfg.MQTT, core.Store)
	logger.Info("Starting MQTT listener",
		zap.String("broker", cfg.MQTT.BrokerURL()),
		zap.String("topic", cfg.MQTT.Topic))
	go func() {
		// paho keeps retrying the connection; a failure here must not
		// keep the synchronous endpoint from serving
		if err := listener.Start(); err != nil {
			logger.Error("MQTT listener failed to start", zap.Error(err))
		}
	}()

	var limiterStore *sensor.RateLimiterStore
	if cfg.DefaultRate > 0 {
		limiterStore = sensor.NewRateLimiterStore(rate.Limit(cfg.DefaultRate), cfg.DefaultBurst)
		logger.Info("Per-sensor rate limiting enabled",
			zap.Float64("default_rate", cfg.DefaultRate),
			zap.Int("default_burst", cfg.DefaultBurst))
	}

	rs := &sensorHttp.RestfulServer{
		Server:           gin.Default(),
		Core:             core,
		RateLimiterStore: limiterStore,
		BrokerAddr:       cfg.MQTT.BrokerAddr(),
	}
	rs.Setup()

	logger.Info("Starting HTTP server on: " + cfg.HTTP.HostPort)
	if err := rs.Server.Run(cfg.HTTP.HostPort); err != nil {
		log.Fatalf("http server failed to serve: %v", err)
	}
}
