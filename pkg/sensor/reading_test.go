package sensor

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tempview/sensor-data-service/pkg/common"
	"github.com/tempview/sensor-data-service/pkg/models"
	_ "github.com/tempview/sensor-data-service/pkg/testing"
)

func TestInsertReading(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, core, _, _ := GetMockCoreWithMemorySqliteDialector(t, false, false)
	defer ctrl.Finish()

	sensorID := uuid.NewString()

	input := &models.Reading{
		SensorID:  sensorID,
		DeviceID:  uuid.NewString(),
		Timestamp: time.Now().Truncate(time.Second),
		TempValue: 23.5,
	}
	id, err := core.Store.InsertReading(input)
	assert.NoError(t, err)
	assert.Greater(t, id, uint(0))

	// Verify that the reading was inserted
	var saved models.Reading
	err = core.Db.Conn.Where("sensor_id = ?", sensorID).First(&saved).Error
	assert.NoError(t, err)
	assert.Equal(t, input.TempValue, saved.TempValue)
	assert.Equal(t, id, saved.ID)
}

func TestInsertReading_MonotonicIDs(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, core, _, _ := GetMockCoreWithMemorySqliteDialector(t, false, false)
	defer ctrl.Finish()

	sensorID := uuid.NewString()

	var lastID uint
	for i := 0; i < 5; i++ {
		id, err := core.Store.InsertReading(&models.Reading{
			SensorID:  sensorID,
			DeviceID:  "DEVICE123",
			Timestamp: time.Now().Add(time.Duration(i) * time.Second),
			TempValue: 20.0 + float64(i),
		})
		require.NoError(t, err)
		require.Greater(t, id, lastID, "ids must strictly increase with insertion order")
		lastID = id
	}
}

func TestInsertReading_ConcurrentChannels(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, core, _, _ := GetMockCoreWithMemorySqliteDialector(t, false, false)
	defer ctrl.Finish()

	// Simulate the synchronous endpoint and the mqtt listener writing at
	// the same time for different sensors.
	sensorA := uuid.NewString()
	sensorB := uuid.NewString()

	const perSensor = 10
	ids := make(chan uint, perSensor*2)

	var wg sync.WaitGroup
	for _, sensorID := range []string{sensorA, sensorB} {
		sensorID := sensorID
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perSensor; i++ {
				id, err := core.Store.InsertReading(&models.Reading{
					SensorID:  sensorID,
					DeviceID:  "DEVICE123",
					Timestamp: time.Now(),
					TempValue: float64(i),
				})
				assert.NoError(t, err)
				ids <- id
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := map[uint]bool{}
	for id := range ids {
		assert.False(t, seen[id], "id %d assigned twice", id)
		seen[id] = true
	}
	assert.Len(t, seen, perSensor*2, "no write may be lost")

	var countA, countB int64
	assert.NoError(t, core.Db.Conn.Model(&models.Reading{}).Where("sensor_id = ?", sensorA).Count(&countA).Error)
	assert.NoError(t, core.Db.Conn.Model(&models.Reading{}).Where("sensor_id = ?", sensorB).Count(&countB).Error)
	assert.EqualValues(t, perSensor, countA)
	assert.EqualValues(t, perSensor, countB)
}
