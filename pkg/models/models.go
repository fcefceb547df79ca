package models

import "time"

// Reading is one temperature observation reported by a sensor. ID is
// assigned by the database on insert and is never reused or mutated.
type Reading struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	SensorID  string    `gorm:"index:idx_readings_sensor_time,priority:1" json:"sensor_id"`
	DeviceID  string    `json:"device_id"`
	Timestamp time.Time `gorm:"index:idx_readings_sensor_time,priority:2" json:"timestamp"`
	TempValue float64   `json:"temp_value"`
}
