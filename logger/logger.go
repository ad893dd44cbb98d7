package logger

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"
)

// defaultLogger implements the Interface
type defaultLogger struct {
	Writer
	Config
	infoStr, warnStr, errStr, debugStr  string
	traceStr, traceWarnStr, traceErrStr string
}

// New creates a new logger instance
func New(writer Writer, config Config) Interface {
	var (
		infoStr      = "[info] "
		warnStr      = "[warn] "
		errStr       = "[error] "
		debugStr     = "[debug] "
		traceStr     = "[%.3fms] [platform:%s] %s"
		traceWarnStr = "%s [%.3fms] [platform:%s] %s"
		traceErrStr  = "%s [%.3fms] [platform:%s] %s"
	)

	if config.Colorful {
		infoStr = Green + "[info] " + Reset
		warnStr = Magenta + "[warn] " + Reset
		errStr = Red + "[error] " + Reset
		debugStr = Blue + "[debug] " + Reset
		traceStr = Yellow + "[%.3fms] " + BlueBold + "[platform:%s]" + Reset + " %s"
		traceWarnStr = Yellow + "%s " + RedBold + "[%.3fms] " + Yellow + "[platform:%s]" + Magenta + " %s" + Reset
		traceErrStr = MagentaBold + "%s " + Yellow + "[%.3fms] " + BlueBold + "[platform:%s]" + Reset + " %s"
	}

	return &defaultLogger{
		Writer:       writer,
		Config:       config,
		infoStr:      infoStr,
		warnStr:      warnStr,
		errStr:       errStr,
		debugStr:     debugStr,
		traceStr:     traceStr,
		traceWarnStr: traceWarnStr,
		traceErrStr:  traceErrStr,
	}
}

// LogMode creates a new logger with the specified log level
func (l *defaultLogger) LogMode(level LogLevel) Interface {
	newLogger := *l
	newLogger.LogLevel = level
	return &newLogger
}

func (l *defaultLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= Info {
		l.Printf("%s", l.infoStr+msg+formatKV(data))
	}
}

func (l *defaultLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= Warn {
		l.Printf("%s", l.warnStr+msg+formatKV(data))
	}
}

func (l *defaultLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= Error {
		l.Printf("%s", l.errStr+msg+formatKV(data))
	}
}

func (l *defaultLogger) Debug(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= Debug {
		l.Printf("%s", l.debugStr+msg+formatKV(data))
	}
}

// Trace logs dispatch operations with duration
func (l *defaultLogger) Trace(ctx context.Context, begin time.Time, fc func() (operation string, platform string), err error) {
	if l.LogLevel <= Silent {
		return
	}

	elapsed := time.Since(begin)
	switch {
	case err != nil && l.LogLevel >= Error:
		operation, platform := fc()
		l.Printf(l.traceErrStr, err, float64(elapsed.Nanoseconds())/1e6, platform, operation)
	case elapsed > l.SlowThreshold && l.SlowThreshold != 0 && l.LogLevel >= Warn:
		operation, platform := fc()
		slowLog := fmt.Sprintf("SLOW DISPATCH >= %v", l.SlowThreshold)
		l.Printf(l.traceWarnStr, slowLog, float64(elapsed.Nanoseconds())/1e6, platform, operation)
	case l.LogLevel >= Info:
		operation, platform := fc()
		l.Printf(l.traceStr, float64(elapsed.Nanoseconds())/1e6, platform, operation)
	}
}

// formatKV renders trailing key-value pairs so callers can pass structured
// data without building format strings.
func formatKV(data []interface{}) string {
	var b strings.Builder
	for i := 0; i < len(data); i += 2 {
		if i+1 < len(data) {
			fmt.Fprintf(&b, " %v=%v", data[i], data[i+1])
		} else {
			fmt.Fprintf(&b, " %v", data[i])
		}
	}
	return b.String()
}

// NewStdLogger creates a logger that outputs through Go's standard log package
func NewStdLogger(level LogLevel) Interface {
	return New(stdWriter{}, Config{
		SlowThreshold: time.Second,
		LogLevel:      level,
		Colorful:      false,
	})
}

// stdWriter wraps Go's standard log package (stderr by default)
type stdWriter struct{}

func (stdWriter) Printf(msg string, data ...interface{}) {
	log.Printf(msg, data...)
}
