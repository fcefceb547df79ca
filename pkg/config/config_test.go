package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	constant "github.com/tempview/sensor-data-service/pkg/common"
	_ "github.com/tempview/sensor-data-service/pkg/testing"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		constant.EnvKeySensorDBType,
		constant.EnvKeySensorDBPath,
		constant.EnvKeySensorHttpHostPort,
		constant.EnvKeyMQTTBrokerHost,
		constant.EnvKeyMQTTBrokerPort,
		constant.EnvKeyMQTTTopic,
		constant.EnvKeyMQTTClientID,
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg := Load()

	assert.Equal(t, "file", cfg.DB.Type)
	assert.Equal(t, "readings.db", cfg.DB.Path)
	assert.Equal(t, ":8000", cfg.HTTP.HostPort)
	assert.Equal(t, "sensor/data", cfg.MQTT.Topic)
	assert.Equal(t, "tcp://localhost:1883", cfg.MQTT.BrokerURL())
	assert.Equal(t, "localhost:1883", cfg.MQTT.BrokerAddr())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv(constant.EnvKeySensorDBType, "memory")
	t.Setenv(constant.EnvKeyMQTTBrokerHost, "broker.internal")
	t.Setenv(constant.EnvKeyMQTTBrokerPort, "8883")
	t.Setenv(constant.EnvKeyMQTTTopic, "plant/sensors")

	cfg := Load()

	assert.Equal(t, "memory", cfg.DB.Type)
	assert.Equal(t, "tcp://broker.internal:8883", cfg.MQTT.BrokerURL())
	assert.Equal(t, "plant/sensors", cfg.MQTT.Topic)
}
