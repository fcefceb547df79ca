package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	constant "github.com/tempview/sensor-data-service/pkg/common"
)

// Config is built once at startup and handed to each component's
// constructor; nothing reads the environment after Load returns.
type Config struct {
	DB   DBConfig
	HTTP HTTPConfig
	MQTT MQTTConfig

	DefaultRate  float64
	DefaultBurst int
}

type DBConfig struct {
	// Type selects the sqlite dialector: "file" or "memory".
	Type string
	Path string
}

type HTTPConfig struct {
	HostPort string
}

type MQTTConfig struct {
	BrokerHost string
	BrokerPort int
	Topic      string
	ClientID   string
}

// BrokerURL is the paho connection URL.
func (c MQTTConfig) BrokerURL() string {
	return fmt.Sprintf("tcp://%s:%d", c.BrokerHost, c.BrokerPort)
}

// BrokerAddr is the host:port echoed by the health probe.
func (c MQTTConfig) BrokerAddr() string {
	return fmt.Sprintf("%s:%d", c.BrokerHost, c.BrokerPort)
}

func Load() *Config {
	// A missing .env is fine; environment variables may be set directly.
	_ = godotenv.Load()

	return &Config{
		DB: DBConfig{
			Type: getEnv(constant.EnvKeySensorDBType, "file"),
			Path: getEnv(constant.EnvKeySensorDBPath, "readings.db"),
		},
		HTTP: HTTPConfig{
			HostPort: getEnv(constant.EnvKeySensorHttpHostPort, ":8000"),
		},
		MQTT: MQTTConfig{
			BrokerHost: getEnv(constant.EnvKeyMQTTBrokerHost, "localhost"),
			BrokerPort: getInt(constant.EnvKeyMQTTBrokerPort, 1883),
			Topic:      getEnv(constant.EnvKeyMQTTTopic, "sensor/data"),
			ClientID:   getEnv(constant.EnvKeyMQTTClientID, "sensor_server"),
		},
		DefaultRate:  getFloat(constant.EnvKeySensorDefaultRate, 0),
		DefaultBurst: getInt(constant.EnvKeySensorDefaultBurst, 0),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Fatalf("invalid %s: %v", key, err)
	}
	return intValue
}

func getFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	floatValue, err := strconv.ParseFloat(value, 64)
	if err != nil {
		log.Fatalf("invalid %s: %v", key, err)
	}
	return floatValue
}
