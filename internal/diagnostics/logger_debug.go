// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

//go:build debug

package diagnostics

import "go.uber.org/zap"

var defaultLogger Logger = newZapLogger()

type zapLogger struct {
	s *zap.SugaredLogger
}

func newZapLogger() *zapLogger {
	l, err := zap.NewDevelopment()
	if err != nil {
		l = zap.NewNop()
	}
	return &zapLogger{s: l.Sugar()}
}

func (z *zapLogger) Debugw(msg string, keysAndValues ...interface{}) {
	z.s.Debugw(msg, keysAndValues...)
}

// Default returns the process-wide diagnostics logger. Built with the debug
// tag, this is backed by zap; in release builds it is a no-op (see
// logger_release.go).
func Default() Logger {
	return defaultLogger
}
