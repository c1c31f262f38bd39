// Package framer reassembles newline-delimited sample records from byte chunks that arrive at
// arbitrary boundaries.
package framer

import (
	"sync"

	"github.com/joeydtaylor/npulse/pkg/internal/types"
	"github.com/joeydtaylor/npulse/pkg/internal/utils"
)

// Reasons reported for discarded lines.
const (
	RejectTooFewFields = "too_few_fields"
	RejectParseError   = "parse_error"
	RejectGlitch       = "glitch"
)

// Framer holds the pending partial line between chunks. It is owned by a single consumer;
// the mutex only protects diagnostics readers.
type Framer struct {
	componentMetadata types.ComponentMetadata

	mu       sync.Mutex
	pending  []byte
	lines    uint64
	accepted uint64
	rejected uint64

	sensors     []types.Sensor
	loggers     []types.Logger
	loggersLock sync.Mutex
}

// NewFramer returns an empty framer.
func NewFramer(options ...types.Option[*Framer]) *Framer {
	f := &Framer{
		componentMetadata: types.ComponentMetadata{
			ID:   utils.GenerateUniqueHash(),
			Type: "FRAMER",
		},
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(f)
	}
	return f
}
