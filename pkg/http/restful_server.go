package http

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
	"github.com/tempview/sensor-data-service/pkg/sensor"
)

type RestfulServer struct {
	Server           *gin.Engine
	Core             *sensor.Core
	RateLimiterStore *sensor.RateLimiterStore

	// BrokerAddr is echoed by the health probe; the probe never checks
	// the subscription itself.
	BrokerAddr string
}

func (rs *RestfulServer) GetLimiter(sensorID string) *rate.Limiter {
	if rs.RateLimiterStore == nil {
		return nil
	} else {
		return rs.RateLimiterStore.GetLimiter(sensorID)
	}
}

func (rs *RestfulServer) CheckSensorLimiter(sensorID string) bool {
	limiter := rs.GetLimiter(sensorID)
	if limiter == nil {
		return true
	}
	return limiter.Allow()
}

func (rs *RestfulServer) SetLimiter(sensorID string, sensorRate float64, sensorBurst int) {
	if rs.RateLimiterStore == nil {
		return
	}
	rs.RateLimiterStore.SetLimiter(sensorID, rate.Limit(sensorRate), sensorBurst)
}

func (rs *RestfulServer) Setup() {
	rs.Server.GET("/", rs.Root)
	rs.Server.GET("/health", rs.HealthCheck)
	rs.Server.POST("/data", rs.PostReading)

	sensors := rs.Server.Group("/sensors")
	{
		sensors.GET("", rs.ListSensors)
		sensors.GET("/:sensor_id/readings", rs.GetSensorReadings)
		sensors.POST("/:sensor_id/limiter", rs.PostLimiter)
	}
}
