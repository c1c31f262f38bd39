// Package kafkaclient publishes analysis results and session summaries to Kafka.
package kafkaclient

import (
	"context"
	"sync"

	"github.com/segmentio/kafka-go"

	"github.com/joeydtaylor/npulse/pkg/internal/types"
	"github.com/joeydtaylor/npulse/pkg/internal/utils"
)

// messageWriter is satisfied by *kafka.Writer.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaClientAdapter writes messages to one topic through a kafka-go writer, guarded by an
// optional circuit breaker.
type KafkaClientAdapter struct {
	componentMetadata types.ComponentMetadata

	writer messageWriter
	topic  string

	cbLock sync.Mutex
	cb     types.CircuitBreaker

	loggers     []types.Logger
	loggersLock sync.Mutex
	sensors     []types.Sensor
	sensorLock  sync.Mutex
}

var _ types.KafkaClientAdapter = (*KafkaClientAdapter)(nil)

// NewKafkaClientAdapter returns an adapter. A writer must be supplied with WithWriter or
// WithBrokers before publishing.
func NewKafkaClientAdapter(options ...types.Option[*KafkaClientAdapter]) *KafkaClientAdapter {
	a := &KafkaClientAdapter{
		componentMetadata: types.ComponentMetadata{
			ID:   utils.GenerateUniqueHash(),
			Type: "KAFKA_CLIENT",
		},
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(a)
	}
	return a
}

// GetComponentMetadata returns the adapter metadata.
func (a *KafkaClientAdapter) GetComponentMetadata() types.ComponentMetadata {
	return a.componentMetadata
}

// SetComponentMetadata sets name and id, keeping the type.
func (a *KafkaClientAdapter) SetComponentMetadata(name, id string) {
	a.componentMetadata.Name = name
	a.componentMetadata.ID = id
}

// Topic returns the configured topic.
func (a *KafkaClientAdapter) Topic() string { return a.topic }

// ConnectLogger attaches loggers.
func (a *KafkaClientAdapter) ConnectLogger(loggers ...types.Logger) {
	a.loggersLock.Lock()
	defer a.loggersLock.Unlock()
	for _, l := range loggers {
		if l != nil {
			a.loggers = append(a.loggers, l)
		}
	}
}

// ConnectSensor attaches sensors.
func (a *KafkaClientAdapter) ConnectSensor(sensors ...types.Sensor) {
	a.sensorLock.Lock()
	defer a.sensorLock.Unlock()
	for _, s := range sensors {
		if s != nil {
			a.sensors = append(a.sensors, s)
		}
	}
}

// ConnectCircuitBreaker guards Publish with cb.
func (a *KafkaClientAdapter) ConnectCircuitBreaker(cb types.CircuitBreaker) {
	a.cbLock.Lock()
	a.cb = cb
	a.cbLock.Unlock()
}

// Close closes the underlying writer.
func (a *KafkaClientAdapter) Close() error {
	if a.writer == nil {
		return nil
	}
	return a.writer.Close()
}
