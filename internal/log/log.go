// Package log supports structured and unstructured logging with levels.
//
// Parsing is synchronous and does no logging (spec §5: "holds no global
// state"); this package exists for the transformer, which logs missing
// includes without failing the request (spec §4.6).
package log

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"cloud.google.com/go/logging"
	"github.com/sevenwiki/sevenmark/internal/derrors"
)

var (
	mu     sync.Mutex
	logger interface {
		log(context.Context, logging.Severity, interface{})
	} = stdlibLogger{}

	// currentLevel holds current log level.
	// No logs will be printed below currentLevel.
	currentLevel = logging.Default
)

// traceIDKey is the type of the context key for trace IDs.
type traceIDKey struct{}

// SetLevel sets the log level.
func SetLevel(v string) {
	mu.Lock()
	defer mu.Unlock()
	currentLevel = toLevel(v)
}

func getLevel() logging.Severity {
	mu.Lock()
	defer mu.Unlock()
	return currentLevel
}

// NewContextWithTraceID creates a new context from ctx that adds the trace ID.
func NewContextWithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey{}, traceID)
}

// stackdriverLogger logs to GCP Cloud Logging.
type stackdriverLogger struct {
	sdlogger *logging.Logger
}

func (l *stackdriverLogger) log(ctx context.Context, s logging.Severity, payload interface{}) {
	// Convert errors to strings, or they may serialize as the empty JSON object.
	if err, ok := payload.(error); ok {
		payload = err.Error()
	}
	traceID, _ := ctx.Value(traceIDKey{}).(string) // if not present, traceID is "", which is fine
	l.sdlogger.Log(logging.Entry{
		Severity: s,
		Payload:  payload,
		Trace:    traceID,
	})
}

// stdlibLogger uses the Go standard library logger.
type stdlibLogger struct{}

func (stdlibLogger) log(ctx context.Context, s logging.Severity, payload interface{}) {
	traceID, _ := ctx.Value(traceIDKey{}).(string)
	var extra string
	if traceID != "" {
		extra = fmt.Sprintf(" (traceID %s)", traceID)
	}
	log.Printf("%s%s: %+v", s, extra, payload)
}

// UseCloudLogging switches from the default stdlib logger to a Cloud
// Logging logger. UseCloudLogging can only be called once; calling it
// again returns an error.
func UseCloudLogging(ctx context.Context, client *logging.Client, logName string) (err error) {
	defer derrors.Wrap(&err, "UseCloudLogging(ctx, %q)", logName)
	mu.Lock()
	defer mu.Unlock()
	if _, ok := logger.(*stackdriverLogger); ok {
		return errors.New("already called once")
	}
	logger = &stackdriverLogger{client.Logger(logName)}
	return nil
}

// Infof logs a formatted string at the Info level.
func Infof(ctx context.Context, format string, args ...interface{}) {
	logf(ctx, logging.Info, format, args)
}

// Errorf logs a formatted string at the Error level.
func Errorf(ctx context.Context, format string, args ...interface{}) {
	logf(ctx, logging.Error, format, args)
}

// Warningf logs a formatted string at the Warning level. The transformer
// uses this for a missing include (spec §4.6): the pipeline continues with
// an empty Include node.
func Warningf(ctx context.Context, format string, args ...interface{}) {
	logf(ctx, logging.Warning, format, args)
}

// Debugf logs a formatted string at the Debug level.
func Debugf(ctx context.Context, format string, args ...interface{}) {
	logf(ctx, logging.Debug, format, args)
}

func logf(ctx context.Context, s logging.Severity, format string, args []interface{}) {
	doLog(ctx, s, fmt.Sprintf(format, args...))
}

// Info logs arg, which can be a string or a struct, at the Info level.
func Info(ctx context.Context, arg interface{}) { doLog(ctx, logging.Info, arg) }

// Error logs arg, which can be a string or a struct, at the Error level.
func Error(ctx context.Context, arg interface{}) { doLog(ctx, logging.Error, arg) }

// Warning logs arg, which can be a string or a struct, at the Warning level.
func Warning(ctx context.Context, arg interface{}) { doLog(ctx, logging.Warning, arg) }

func doLog(ctx context.Context, s logging.Severity, payload interface{}) {
	if getLevel() > s {
		return
	}
	mu.Lock()
	l := logger
	mu.Unlock()
	l.log(ctx, s, payload)
}

// toLevel returns the logging.Severity for a given string.
// Possible input values are "", "debug", "info", "warning", "error".
// In case of invalid string input, it maps to the default level.
func toLevel(v string) logging.Severity {
	v = strings.ToLower(v)

	switch v {
	case "":
		return logging.Default
	case "debug":
		return logging.Debug
	case "info":
		return logging.Info
	case "warning":
		return logging.Warning
	case "error":
		return logging.Error
	}

	log.Printf("Error: %s is invalid LogLevel. Possible values are [debug, info, warning, error]", v)
	return logging.Default
}
