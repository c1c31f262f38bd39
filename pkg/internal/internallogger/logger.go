package internallogger

import (
	"os"
	"sync"

	"github.com/joeydtaylor/npulse/pkg/logschema"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LoggerOption mutates the zap config, level and caller skip before the logger is built.
type LoggerOption func(*zap.Config, *zapcore.Level, *int)

// ZapLoggerAdapter implements types.Logger on top of zap with named, removable sinks.
type ZapLoggerAdapter struct {
	atomicLevel zap.AtomicLevel
	encConfig   zapcore.EncoderConfig
	baseCore    zapcore.Core
	baseFields  []zap.Field
	callerOn    bool
	callerDepth int

	mu     sync.Mutex
	sinks  map[string]sinkEntry
	logger *zap.Logger
}

// NewLogger builds a JSON logger writing to stdout. Sinks added later are teed with it.
func NewLogger(options ...LoggerOption) *ZapLoggerAdapter {
	cfg := zap.NewProductionConfig()
	level := zapcore.InfoLevel
	callerDepth := 3

	for _, option := range options {
		option(&cfg, &level, &callerDepth)
	}

	if cfg.InitialFields == nil {
		cfg.InitialFields = map[string]interface{}{}
	}
	if _, ok := cfg.InitialFields[logschema.FieldSchema]; !ok {
		cfg.InitialFields[logschema.FieldSchema] = logschema.SchemaID
	}

	z := &ZapLoggerAdapter{
		atomicLevel: zap.NewAtomicLevelAt(level),
		encConfig:   standardEncoderConfig(),
		baseFields:  fieldsFromMap(cfg.InitialFields),
		callerOn:    !cfg.DisableCaller,
		callerDepth: callerDepth,
		sinks:       make(map[string]sinkEntry),
	}
	z.baseCore = zapcore.NewCore(zapcore.NewJSONEncoder(z.encConfig), zapcore.Lock(os.Stdout), z.atomicLevel)

	z.mu.Lock()
	z.rebuildLoggerLocked()
	z.mu.Unlock()

	return z
}
