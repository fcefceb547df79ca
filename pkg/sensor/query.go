package sensor

import (
	"github.com/tempview/sensor-data-service/pkg/models"
)

// Readings sharing a timestamp are sub-ordered by id so that "latest N"
// is deterministic even at second resolution.
func (c *Core) latestReadings(sensorID string, limit int) ([]models.Reading, error) {
	var readings []models.Reading
	err := c.Db.Conn.
		Where("sensor_id = ?", sensorID).
		Order("timestamp desc, id desc").
		Limit(limit).
		Find(&readings).Error
	return readings, err
}

func (c *Core) listSensors() ([]string, error) {
	var sensorIDs []string
	err := c.Db.Conn.
		Model(&models.Reading{}).
		Distinct("sensor_id").
		Order("sensor_id asc").
		Pluck("sensor_id", &sensorIDs).Error
	return sensorIDs, err
}

type IQueryImpl struct {
	core *Core
}

func (iq *IQueryImpl) LatestReadings(sensorID string, limit int) ([]models.Reading, error) {
	return iq.core.latestReadings(sensorID, limit)
}

func (iq *IQueryImpl) ListSensors() ([]string, error) {
	return iq.core.listSensors()
}

func (c *Core) GetIQuery() IQuery {
	return &IQueryImpl{core: c}
}
