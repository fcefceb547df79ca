package common

const (
	EnvKeyGoEnv string = "GO_ENV"

	EnvKeyRunIntegrationTests string = "RUN_INTEGRATION_TESTS"

	EnvKeySensorDBType string = "SENSOR_DB_TYPE"
	EnvKeySensorDBPath string = "SENSOR_DB_PATH"

	EnvKeySensorHttpHostPort string = "SENSOR_HTTP_HOST_PORT"

	EnvKeyMQTTBrokerHost string = "MQTT_BROKER_HOST"
	EnvKeyMQTTBrokerPort string = "MQTT_BROKER_PORT"
	EnvKeyMQTTTopic      string = "MQTT_TOPIC"
	EnvKeyMQTTClientID   string = "MQTT_CLIENT_ID"

	EnvKeySensorDefaultRate  string = "SENSOR_DEFAULT_RATE"
	EnvKeySensorDefaultBurst string = "SENSOR_DEFAULT_BURST"

	LoggerNameSensorCore    string = "sensor_core"
	LoggerNameRestfulServer string = "restful_server"
	LoggerNameMQTTListener  string = "mqtt_listener"
	LoggerFieldCategory     string = "category"
	LoggerCategoryReading   string = "reading"
	LoggerCategoryQuery     string = "query"
	LoggerCategoryMessage   string = "message"
)
