// Package analyzer runs the per-channel conditioning, detection and aggregation pipeline over a
// record sequence and pools the channels into a combined estimate.
package analyzer

import (
	"sync"
	"time"

	"github.com/joeydtaylor/npulse/pkg/internal/dsp"
	"github.com/joeydtaylor/npulse/pkg/internal/types"
	"github.com/joeydtaylor/npulse/pkg/internal/utils"
)

// Skip reasons reported on ChannelResult.Reason.
const (
	ReasonTooShort         = "too_short"
	ReasonInsufficientData = "insufficient_data"
	ReasonFilterDesign     = "filter_design"
)

// Analyzer is safe for concurrent use once constructed.
type Analyzer struct {
	componentMetadata types.ComponentMetadata
	config            Config

	pulse       *dsp.Conditioner
	respiration *dsp.Conditioner
	designErr   error
	designOnce  sync.Once

	sensors     []types.Sensor
	loggers     []types.Logger
	loggersLock sync.Mutex
}

var _ types.Analyzer = (*Analyzer)(nil)

// NewAnalyzer returns an analyzer configured by options on top of DefaultConfig.
func NewAnalyzer(options ...types.Option[*Analyzer]) *Analyzer {
	a := &Analyzer{
		componentMetadata: types.ComponentMetadata{
			ID:   utils.GenerateUniqueHash(),
			Type: "ANALYZER",
		},
		config: DefaultConfig(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(a)
	}
	return a
}

// design builds the filters on first use so options may be applied in any order.
func (a *Analyzer) design() error {
	a.designOnce.Do(func() {
		a.pulse, a.designErr = dsp.NewConditioner(a.config.Pulse, a.config.SamplingRate)
		if a.designErr != nil {
			return
		}
		if a.config.RespirationEnabled {
			a.respiration, a.designErr = dsp.NewConditioner(a.config.Respiration, a.config.SamplingRate)
		}
	})
	return a.designErr
}

// Config returns a copy of the analyzer configuration.
func (a *Analyzer) Config() Config { return a.config }

func (a *Analyzer) now() time.Time { return time.Now().UTC() }
