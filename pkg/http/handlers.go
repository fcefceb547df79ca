package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/tempview/sensor-data-service/pkg/common"
	"github.com/tempview/sensor-data-service/pkg/models"

	"github.com/gin-gonic/gin"

	z "github.com/Oudwins/zog"
	"github.com/Oudwins/zog/zhttp"
)

const (
	defaultReadingsLimit = 10
	maxReadingsLimit     = 100
)

func (rs *RestfulServer) PostReading(c *gin.Context) {
	var raw map[string]any
	if err := json.NewDecoder(c.Request.Body).Decode(&raw); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "request body must be a JSON object", "field": "payload"})
		return
	}

	reading, verr := models.ParseReading(raw)
	if verr != nil {
		// rejected before any write is attempted
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": verr.Error(), "field": verr.Field})
		return
	}

	if !rs.CheckSensorLimiter(reading.SensorID) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	recordID, err := rs.Core.Store.InsertReading(reading)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":    "success",
		"message":   "Sensor data received and stored in database",
		"record_id": recordID,
		"data": gin.H{
			"sensor_id":  reading.SensorID,
			"device_id":  reading.DeviceID,
			"timestamp":  reading.Timestamp.Format(time.RFC3339),
			"temp_value": reading.TempValue,
		},
	})
}

type ReadingResponse struct {
	ID        uint      `json:"id"`
	SensorID  string    `json:"sensor_id"`
	DeviceID  string    `json:"device_id"`
	Timestamp time.Time `json:"timestamp"`
	TempValue float64   `json:"temp_value"`
}

func (rs *RestfulServer) GetSensorReadings(c *gin.Context) {
	sensorID := c.Param("sensor_id")

	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultReadingsLimit)))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be an integer"})
		return
	}
	// limit is shaped here, never by the store
	if limit < 1 {
		limit = 1
	}
	if limit > maxReadingsLimit {
		limit = maxReadingsLimit
	}

	readings, err := rs.Core.Query.LatestReadings(sensorID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if len(readings) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("No readings found for sensor: %s", sensorID)})
		return
	}

	c.JSON(http.StatusOK, common.Mapper(readings, func(r models.Reading) ReadingResponse {
		return ReadingResponse{
			ID:        r.ID,
			SensorID:  r.SensorID,
			DeviceID:  r.DeviceID,
			Timestamp: r.Timestamp,
			TempValue: r.TempValue,
		}
	}))
}

func (rs *RestfulServer) ListSensors(c *gin.Context) {
	sensors, err := rs.Core.Query.ListSensors()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if sensors == nil {
		sensors = []string{}
	}

	c.JSON(http.StatusOK, sensors)
}

type LimiterRequest struct {
	Rate  float64 `json:"rate"`
	Burst int     `json:"burst"`
}

var limiterRequestSchema = z.Struct(z.Shape{
	"rate":  z.Float64().Required(),
	"burst": z.Int().Required(),
})

func (rs *RestfulServer) PostLimiter(c *gin.Context) {
	sensorID := c.Param("sensor_id")

	var req LimiterRequest
	if err := limiterRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	rs.SetLimiter(sensorID, req.Rate, req.Burst)

	c.Status(http.StatusOK)
}

func (rs *RestfulServer) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "healthy",
		"database":    rs.Core.Db.Health(),
		"mqtt_broker": rs.BrokerAddr,
	})
}

func (rs *RestfulServer) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Sensor Data API is running",
		"endpoints": gin.H{
			"POST /data":                       "Submit sensor data",
			"GET /sensors":                     "List all sensors",
			"GET /sensors/:sensor_id/readings": "Get latest readings for a sensor",
			"GET /health":                      "Health check",
		},
	})
}
