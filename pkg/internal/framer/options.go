package framer

import "github.com/joeydtaylor/npulse/pkg/internal/types"

// WithSensor attaches sensors to the framer.
func WithSensor(sensors ...types.Sensor) types.Option[*Framer] {
	return func(f *Framer) {
		f.ConnectSensor(sensors...)
	}
}

// WithLogger attaches loggers to the framer.
func WithLogger(loggers ...types.Logger) types.Option[*Framer] {
	return func(f *Framer) {
		f.ConnectLogger(loggers...)
	}
}
