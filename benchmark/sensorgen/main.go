// sensorgen is a standalone load generator for the synchronous channel: it
// posts randomized temperature readings to POST /data at a fixed interval.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"math/rand"
	"net/http"
	"time"
)

var httpHostPort string = "127.0.0.1:8000"
var sendInterval = 2 * time.Second

var sensorIDs = []string{"SENSOR001", "SENSOR002", "SENSOR003", "SENSOR004"}
var deviceIDs = []string{"DEVICE123", "DEVICE456", "DEVICE789"}

var rnd *rand.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))

func main() {
	resp, err := http.Get(fmt.Sprintf("http://%s/health", httpHostPort))
	if err != nil {
		log.Fatal("Failed to connect to HTTP server:", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Fatal("HTTP server not available")
	}

	fmt.Printf("http server verified, sending a reading every %v\n", sendInterval)

	for {
		reading := generateReading()
		sendReading(reading)
		time.Sleep(sendInterval)
	}
}

func generateReading() map[string]any {
	return map[string]any{
		"sensor_id":  sensorIDs[rnd.Intn(len(sensorIDs))],
		"device_id":  deviceIDs[rnd.Intn(len(deviceIDs))],
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
		"temp_value": rndFloat64(15.0, 35.0, 2),
	}
}

func rndFloat64(min, max float64, decimal int) float64 {
	val := min + rnd.Float64()*(max-min)
	multiplier := float64(math.Pow10(decimal))
	return float64(math.Round(float64(val)*float64(multiplier))) / multiplier
}

func sendReading(reading map[string]any) {
	jsonData, _ := json.Marshal(reading)
	resp, err := http.Post(fmt.Sprintf("http://%s/data", httpHostPort), "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		fmt.Printf("connection error: %v\n", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusCreated {
		fmt.Printf("sent: %v - %v\n", reading["sensor_id"], reading["temp_value"])
	} else {
		fmt.Printf("failed to send reading, status code: %v\n", resp.StatusCode)
	}
}
