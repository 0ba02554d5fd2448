package main

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func newLogger(w io.Writer, debug bool) *zap.Logger {
	level := zapcore.InfoLevel
	if debug {
		level = zapcore.DebugLevel
	}
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(w), level)
	return zap.New(core)
}

// zapTracer reports parser transitions as debug entries.
type zapTracer struct {
	log   *zap.Logger
	depth int
}

func newZapTracer(log *zap.Logger) *zapTracer {
	return &zapTracer{log: log.Named("trace")}
}

func (t *zapTracer) Open(tag string) {
	t.log.Debug("open", zap.String("tag", tag), zap.Int("depth", t.depth))
	t.depth++
}

func (t *zapTracer) Elide() { t.log.Debug("elide", zap.Int("depth", t.depth)) }

func (t *zapTracer) Ignore(text string) {
	t.log.Debug("ignore", zap.Int("len", len(text)), zap.Int("depth", t.depth))
}

func (t *zapTracer) Content(text string) {
	t.log.Debug("content", zap.String("text", text), zap.Int("depth", t.depth))
}

func (t *zapTracer) Close(tag string) {
	t.depth--
	t.log.Debug("close", zap.String("tag", tag), zap.Int("depth", t.depth))
}
