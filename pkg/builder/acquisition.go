package builder

import (
	"time"

	"github.com/joeydtaylor/npulse/pkg/internal/acquisition"
	"github.com/joeydtaylor/npulse/pkg/internal/types"
)

type (
	AcquisitionEngine = acquisition.Engine
	Observer          = acquisition.Observer
	ObserverUpdate    = acquisition.Update
	RecordFunc        = acquisition.RecordFunc
)

// NewAcquisitionEngine creates the engine owning transport t.
func NewAcquisitionEngine(t types.Transport, options ...types.Option[*acquisition.Engine]) *acquisition.Engine {
	return acquisition.NewEngine(t, options...)
}

// NewObserver creates a live-update observer with the given buffer size.
func NewObserver(size int) *acquisition.Observer {
	return acquisition.NewObserver(size)
}

func AcquisitionWithStartToken(token string) types.Option[*acquisition.Engine] {
	return acquisition.WithStartToken(token)
}

func AcquisitionWithStopToken(token string) types.Option[*acquisition.Engine] {
	return acquisition.WithStopToken(token)
}

// AcquisitionWithTick sets how often the session checks for completion and cancellation.
func AcquisitionWithTick(d time.Duration) types.Option[*acquisition.Engine] {
	return acquisition.WithTick(d)
}

func AcquisitionWithStopTimeout(d time.Duration) types.Option[*acquisition.Engine] {
	return acquisition.WithStopTimeout(d)
}

func AcquisitionWithObserver(o *acquisition.Observer) types.Option[*acquisition.Engine] {
	return acquisition.WithObserver(o)
}

// AcquisitionWithRecordFunc runs fn on the worker for every accepted record.
func AcquisitionWithRecordFunc(fn acquisition.RecordFunc) types.Option[*acquisition.Engine] {
	return acquisition.WithRecordFunc(fn)
}

func AcquisitionWithSensor(sensors ...types.Sensor) types.Option[*acquisition.Engine] {
	return acquisition.WithSensor(sensors...)
}

func AcquisitionWithLogger(loggers ...types.Logger) types.Option[*acquisition.Engine] {
	return acquisition.WithLogger(loggers...)
}

func AcquisitionWithComponentMetadata(name string, id string) types.Option[*acquisition.Engine] {
	return acquisition.WithComponentMetadata(name, id)
}
