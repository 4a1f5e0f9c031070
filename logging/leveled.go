package logging

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"
)

type LevelLogger struct {
	writer            LogWriter
	prefix            string
	logLevelWaterMark int
	context           map[string]string
	enableGRContext   bool
}

const (
	LogAllWaterMark  = -1
	LogNoneWaterMark = FATAL + 1
)

func StdOutLevelLogger(prefix string) Logger {
	return CreateLevelLogger(NewConsoleLogWriter(os.Stdout), prefix, LogAllWaterMark)
}

func NewLevelLogger(writer io.Writer, prefix string, waterMark int) Logger {
	return CreateLevelLogger(NewConsoleLogWriter(writer), prefix, waterMark)
}

// NoopLogger drops everything before any formatting happens.
func NoopLogger() Logger {
	return CreateLevelLogger(NewNoopWriter(), "", LogNoneWaterMark)
}

func CreateLevelLogger(entityWriter LogWriter, prefix string, loggingMark int) Logger {
	return &LevelLogger{
		writer:            entityWriter,
		prefix:            prefix,
		logLevelWaterMark: loggingMark,
		context:           make(map[string]string),
		enableGRContext:   true,
	}
}

func (l *LevelLogger) Enabled(level int) bool {
	return level >= l.logLevelWaterMark
}

func (l *LevelLogger) output(level int, data ...string) {
	if !l.Enabled(level) {
		return
	}
	var message string
	switch len(data) {
	case 0:
		message = "nil"
	case 1:
		message = data[0]
	default:
		message = strings.Join(data, "")
	}
	l.emit(level, message)
}

func (l *LevelLogger) outputf(level int, format string, records ...interface{}) {
	if !l.Enabled(level) {
		return
	}
	l.emit(level, fmt.Sprintf(format, records...))
}

func (l *LevelLogger) emit(level int, message string) {
	logEntity := newLogEntity(level, l.prefix, l.prepareContext(), time.Now(), message, l.getFileName())
	l.writer.Write(logEntity)
	logEntity.recycle()
}

// getFileName reports the caller of the public logging method.
func (l *LevelLogger) getFileName() string {
	_, file, line, ok := runtime.Caller(4)
	if !ok {
		file = "???"
		line = 0
	}
	if idx := strings.LastIndexByte(file, '/'); idx >= 0 {
		file = file[idx+1:]
	}
	return file + ":" + strconv.Itoa(line)
}

func (l *LevelLogger) prepareContext() map[string]string {
	allContext := make(map[string]string, len(l.context))
	for k, v := range l.context {
		allContext[k] = v
	}
	if l.enableGRContext {
		for k, v := range grContext() {
			allContext[k] = v
		}
	}
	return allContext
}

func (l *LevelLogger) Trace(records ...string) {
	l.output(TRACE, records...)
}

func (l *LevelLogger) Debug(records ...string) {
	l.output(DEBUG, records...)
}

func (l *LevelLogger) Info(records ...string) {
	l.output(INFO, records...)
}

func (l *LevelLogger) Warn(records ...string) {
	l.output(WARN, records...)
}

func (l *LevelLogger) Error(records ...string) {
	l.output(ERROR, records...)
}

func (l *LevelLogger) Fatal(records ...string) {
	l.output(FATAL, records...)
}

func (l *LevelLogger) Tracef(format string, records ...interface{}) {
	l.outputf(TRACE, format, records...)
}

func (l *LevelLogger) Debugf(format string, records ...interface{}) {
	l.outputf(DEBUG, format, records...)
}

func (l *LevelLogger) Infof(format string, records ...interface{}) {
	l.outputf(INFO, format, records...)
}

func (l *LevelLogger) Warnf(format string, records ...interface{}) {
	l.outputf(WARN, format, records...)
}

func (l *LevelLogger) Errorf(format string, records ...interface{}) {
	l.outputf(ERROR, format, records...)
}

func (l *LevelLogger) Fatalf(format string, records ...interface{}) {
	l.outputf(FATAL, format, records...)
}

func (l *LevelLogger) SetContext(k, v string) {
	l.context[k] = v
}

func (l *LevelLogger) DeleteContext(k string) {
	delete(l.context, k)
}

func (l *LevelLogger) SetWaterMark(waterMark int) {
	l.logLevelWaterMark = waterMark
}

func (l *LevelLogger) Prefix(prefix string) {
	l.prefix = prefix
}

func (l *LevelLogger) Writer(writer LogWriter) {
	l.writer = writer
}

func (l *LevelLogger) derive() *LevelLogger {
	context := make(map[string]string, len(l.context))
	for k, v := range l.context {
		context[k] = v
	}
	return &LevelLogger{
		writer:            l.writer,
		prefix:            l.prefix,
		logLevelWaterMark: l.logLevelWaterMark,
		context:           context,
		enableGRContext:   l.enableGRContext,
	}
}

func (l *LevelLogger) WithPrefix(prefix string) Logger {
	sub := l.derive()
	sub.prefix = prefix
	return sub
}

func (l *LevelLogger) WithWriter(writer LogWriter) Logger {
	sub := l.derive()
	sub.writer = writer
	return sub
}

// WithContext returns a logger whose static context is the parent's merged with context.
func (l *LevelLogger) WithContext(context map[string]string) Logger {
	sub := l.derive()
	for k, v := range context {
		sub.context[k] = v
	}
	return sub
}

func (l *LevelLogger) WithGRContextLogging(useGRCL bool) Logger {
	sub := l.derive()
	sub.enableGRContext = useGRCL
	return sub
}

func (l *LevelLogger) WithWaterMark(waterMark int) Logger {
	sub := l.derive()
	sub.logLevelWaterMark = waterMark
	return sub
}
