package mqtt

import (
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"

	"github.com/tempview/sensor-data-service/pkg/common"
	"github.com/tempview/sensor-data-service/pkg/config"
	"github.com/tempview/sensor-data-service/pkg/models"
	"github.com/tempview/sensor-data-service/pkg/sensor"
)

// DecodeError means a broker message could not be decoded into a reading.
// The message is dropped; the broker gets no feedback.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("cannot decode message payload: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

type inbound struct {
	topic   string
	payload []byte
}

// Listener holds one long-lived subscription and writes every decoded
// reading through the store. The paho callback only forwards messages into
// msgCh; a single goroutine drains it, so messages are handled one at a
// time in delivery order.
type Listener struct {
	cfg     config.MQTTConfig
	store   sensor.IStore
	client  mqtt.Client
	msgCh   chan inbound
	done    chan struct{}
	wg      sync.WaitGroup
	dropped atomic.Int64
}

func NewListener(cfg config.MQTTConfig, store sensor.IStore) *Listener {
	return &Listener{
		cfg:   cfg,
		store: store,
		msgCh: make(chan inbound, 1024),
		done:  make(chan struct{}),
	}
}

// Start connects to the broker and spawns the message loop. Reconnect and
// re-subscribe after an unexpected disconnect are left to the paho client.
func (l *Listener) Start() error {
	logger := common.GetLoggerWith(common.LoggerNameMQTTListener)

	opts := mqtt.NewClientOptions().
		AddBroker(l.cfg.BrokerURL()).
		SetClientID(l.cfg.ClientID).
		SetKeepAlive(30 * time.Second).
		SetPingTimeout(10 * time.Second).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second)

	opts.OnConnectionLost = func(_ mqtt.Client, err error) {
		logger.Warn("Broker connection lost", zap.Error(err))
	}
	opts.OnConnect = func(c mqtt.Client) {
		logger.Info("Connected to broker, subscribing", zap.String("topic", l.cfg.Topic))
		if token := c.Subscribe(l.cfg.Topic, 1, l.onMessage); token.Wait() && token.Error() != nil {
			logger.Error("Subscribe failed", zap.Error(token.Error()))
		}
	}

	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		l.run()
	}()

	l.client = mqtt.NewClient(opts)
	if token := l.client.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	return nil
}

func (l *Listener) Stop() {
	if l.client != nil && l.client.IsConnected() {
		l.client.Unsubscribe(l.cfg.Topic)
		l.client.Disconnect(500)
	}
	close(l.done)
	l.wg.Wait()
}

func (l *Listener) IsConnected() bool {
	return l.client != nil && l.client.IsConnected()
}

// Dropped reports how many messages were absorbed as per-message failures.
func (l *Listener) Dropped() int64 {
	return l.dropped.Load()
}

func (l *Listener) onMessage(_ mqtt.Client, m mqtt.Message) {
	// msgCh is never closed; done guards against deliveries racing Stop
	select {
	case <-l.done:
	case l.msgCh <- inbound{topic: m.Topic(), payload: m.Payload()}:
	}
}

func (l *Listener) run() {
	logger := common.GetLoggerWith(
		common.LoggerNameMQTTListener,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryMessage),
	)

	for {
		select {
		case msg := <-l.msgCh:
			l.consume(logger, msg)
		case <-l.done:
			// drain what was already queued before leaving
			for {
				select {
				case msg := <-l.msgCh:
					l.consume(logger, msg)
				default:
					return
				}
			}
		}
	}
}

// consume absorbs every per-message failure, panics included; nothing a
// single message does may halt the subscription.
func (l *Listener) consume(logger *zap.Logger, msg inbound) {
	defer func() {
		if r := recover(); r != nil {
			l.dropped.Add(1)
			logger.Error("Panic while handling message",
				zap.String("topic", msg.topic),
				zap.Any("panic", r))
		}
	}()

	if err := l.handlePayload(msg.payload); err != nil {
		l.dropped.Add(1)
		logger.Warn("Dropped message",
			zap.String("topic", msg.topic),
			zap.Error(err))
	}
}

func (l *Listener) handlePayload(payload []byte) error {
	logger := common.GetLoggerWith(
		common.LoggerNameMQTTListener,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryMessage),
	)

	var raw map[string]any
	if err := json.Unmarshal(payload, &raw); err != nil {
		return &DecodeError{Err: err}
	}

	reading, verr := models.ParseReading(raw)
	if verr != nil {
		return verr
	}

	id, err := l.store.InsertReading(reading)
	if err != nil {
		return err
	}

	logger.Info("Stored reading from broker",
		zap.Uint("record_id", id),
		zap.String("sensor_id", reading.SensorID),
		zap.Float64("temp_value", reading.TempValue))
	return nil
}
