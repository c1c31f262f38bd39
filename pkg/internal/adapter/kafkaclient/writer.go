package kafkaclient

import (
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

// WriterOption adjusts a kafka-go writer built by NewWriter.
type WriterOption func(*kafka.Writer)

// NewWriter builds a synchronous, hash-balanced kafka-go writer for brokers and topic.
func NewWriter(brokers []string, topic string, opts ...WriterOption) *kafka.Writer {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		BatchTimeout:           200 * time.Millisecond,
		BatchBytes:             int64(1 << 20),
		BatchSize:              100,
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
	}
	for _, o := range opts {
		o(w)
	}
	return w
}

// WriterWithRequiredAcks sets the ack mode: "none", "leader" or "all".
func WriterWithRequiredAcks(mode string) WriterOption {
	return func(w *kafka.Writer) {
		switch strings.ToLower(mode) {
		case "0", "none":
			w.RequiredAcks = kafka.RequireNone
		case "1", "leader":
			w.RequiredAcks = kafka.RequireOne
		default:
			w.RequiredAcks = kafka.RequireAll
		}
	}
}

// WriterWithBatchTimeout sets how long the writer waits to fill a batch.
func WriterWithBatchTimeout(d time.Duration) WriterOption {
	return func(w *kafka.Writer) { w.BatchTimeout = d }
}

// WriterWithCompression sets the batch codec: "gzip", "snappy", "lz4" or "zstd".
func WriterWithCompression(name string) WriterOption {
	return func(w *kafka.Writer) {
		switch strings.ToLower(name) {
		case "gzip":
			w.Compression = kafka.Gzip
		case "snappy":
			w.Compression = kafka.Snappy
		case "lz4":
			w.Compression = kafka.Lz4
		case "zstd":
			w.Compression = kafka.Zstd
		}
	}
}
