package sensor

import (
	"go.uber.org/zap"
	"github.com/tempview/sensor-data-service/pkg/common"
	"github.com/tempview/sensor-data-service/pkg/models"
)

func (c *Core) insertReading(input *models.Reading) (uint, error) {
	logger := common.GetLoggerWith(
		common.LoggerNameSensorCore,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryReading),
	)

	reading := models.Reading{
		SensorID:  input.SensorID,
		DeviceID:  input.DeviceID,
		Timestamp: input.Timestamp,
		TempValue: input.TempValue,
	}

	if err := c.Db.Ping(); err != nil {
		return 0, &ConnectionError{Err: err}
	}

	if err := c.Db.Conn.Create(&reading).Error; err != nil {
		return 0, &WriteError{Err: err}
	}

	logger.Info("Stored reading", zap.Reflect("reading", reading))

	return reading.ID, nil
}

type IStoreImpl struct {
	core *Core
}

func (is *IStoreImpl) InsertReading(input *models.Reading) (uint, error) {
	return is.core.insertReading(input)
}

func (c *Core) GetIStore() IStore {
	return &IStoreImpl{core: c}
}
