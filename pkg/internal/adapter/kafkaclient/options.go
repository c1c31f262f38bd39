package kafkaclient

import (
	"github.com/segmentio/kafka-go"

	"github.com/joeydtaylor/npulse/pkg/internal/types"
)

// WithWriter uses w and takes the topic from it.
func WithWriter(w *kafka.Writer) types.Option[*KafkaClientAdapter] {
	return func(a *KafkaClientAdapter) {
		if w == nil {
			return
		}
		a.writer = w
		a.topic = w.Topic
	}
}

// WithBrokers builds a writer with NewWriter.
func WithBrokers(brokers []string, topic string, opts ...WriterOption) types.Option[*KafkaClientAdapter] {
	return WithWriter(NewWriter(brokers, topic, opts...))
}

// WithCircuitBreaker guards publishing with cb.
func WithCircuitBreaker(cb types.CircuitBreaker) types.Option[*KafkaClientAdapter] {
	return func(a *KafkaClientAdapter) { a.ConnectCircuitBreaker(cb) }
}

// WithLogger attaches loggers.
func WithLogger(l ...types.Logger) types.Option[*KafkaClientAdapter] {
	return func(a *KafkaClientAdapter) { a.ConnectLogger(l...) }
}

// WithSensor attaches sensors.
func WithSensor(s ...types.Sensor) types.Option[*KafkaClientAdapter] {
	return func(a *KafkaClientAdapter) { a.ConnectSensor(s...) }
}
