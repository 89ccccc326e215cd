// Package logging builds the file logger. The terminal is owned by the UI,
// so nothing here writes to stdout or stderr.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configure New.
type Options struct {
	Path  string
	Level string
	// MaxSizeMB is the size at which the file rotates. Zero means 10.
	MaxSizeMB  int
	MaxBackups int
}

// New returns a JSON logger writing to a rotating file at opts.Path, plus a
// sync func to call on exit. An empty path yields a no-op logger.
func New(opts Options) (*zap.Logger, func(), error) {
	if opts.Path == "" {
		return zap.NewNop(), func() {}, nil
	}
	var level zapcore.Level
	if opts.Level == "" {
		level = zapcore.InfoLevel
	} else if err := level.UnmarshalText([]byte(opts.Level)); err != nil {
		return nil, nil, fmt.Errorf("log level %q: %w", opts.Level, err)
	}
	if err := os.MkdirAll(filepath.Dir(opts.Path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("mkdir log dir: %w", err)
	}
	size := opts.MaxSizeMB
	if size <= 0 {
		size = 10
	}
	writer := &lumberjack.Logger{
		Filename:   opts.Path,
		MaxSize:    size,
		MaxBackups: opts.MaxBackups,
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.TimeEncoderOfLayout(time.RFC3339)
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(writer), level)

	log := zap.New(core, zap.AddCaller())
	sync := func() {
		_ = log.Sync()
		_ = writer.Close()
	}
	return log, sync, nil
}
