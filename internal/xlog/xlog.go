// Package xlog is the narrow structured-logging seam the core packages are
// built against, mirroring the teacher's logger.Logger injection
// (massifs/logdircache.go, massifs/masssifreader.go): callers pass a Logger
// into a constructor rather than reaching for a package-global.
package xlog

import "go.uber.org/zap"

// Logger is the sugared subset of zap's API the core consumes. Small on
// purpose: dcbor, envelope, and pattern log compile/verify diagnostics,
// never request/response bodies or secret material.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// nopLogger discards everything. It is the default when no Logger is
// injected, so constructors never need a nil check at every call site.
type nopLogger struct{}

func (nopLogger) Debugf(string, ...interface{}) {}
func (nopLogger) Infof(string, ...interface{})  {}
func (nopLogger) Warnf(string, ...interface{})  {}
func (nopLogger) Errorf(string, ...interface{}) {}

// Nop returns a Logger that discards every entry.
func Nop() Logger { return nopLogger{} }

// zapLogger adapts a zap.SugaredLogger to Logger.
type zapLogger struct {
	s *zap.SugaredLogger
}

// NewZap wraps z as a Logger. A nil z is treated the same as Nop().
func NewZap(z *zap.Logger) Logger {
	if z == nil {
		return Nop()
	}
	return zapLogger{s: z.Sugar()}
}

func (l zapLogger) Debugf(format string, args ...interface{}) { l.s.Debugf(format, args...) }
func (l zapLogger) Infof(format string, args ...interface{})  { l.s.Infof(format, args...) }
func (l zapLogger) Warnf(format string, args ...interface{})  { l.s.Warnf(format, args...) }
func (l zapLogger) Errorf(format string, args ...interface{}) { l.s.Errorf(format, args...) }
