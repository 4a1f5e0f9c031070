package errors

import (
	"errors"
	"fmt"
	"runtime"
	"strconv"
	"strings"
)

const defaultStackDepth = 32

type stack []uintptr

func (s *stack) Format() string {
	frames := runtime.CallersFrames(*s)
	var b strings.Builder
	for {
		frame, more := frames.Next()
		b.WriteRune('\n')
		b.WriteString(frame.Function)
		b.WriteRune('\n')
		b.WriteRune('\t')
		b.WriteString(frame.File)
		b.WriteRune(':')
		b.WriteString(strconv.Itoa(frame.Line))
		if !more {
			break
		}
	}
	return b.String()
}

// TrackableError carries the stack of the call site that created it. The
// wrapped error stays reachable through errors.Is and errors.As.
type TrackableError struct {
	err        error
	stacktrace *stack
}

func (q *TrackableError) Error() string {
	return q.err.Error()
}

func (q *TrackableError) Unwrap() error {
	return q.err
}

func (q *TrackableError) Stacktrace() string {
	return q.stacktrace.Format()
}

// Verbose renders the message followed by the captured stack.
func (q *TrackableError) Verbose() string {
	return fmt.Sprintf("original error: %s\nstacktrace:\n%s", q.err.Error(), q.stacktrace.Format())
}

func Error(msg string) *TrackableError {
	return newTrackableErr(errors.New(msg), stacktraceWithDepth(defaultStackDepth, 1))
}

func newTrackableErr(err error, stacktrace *stack) *TrackableError {
	return &TrackableError{
		err:        err,
		stacktrace: stacktrace,
	}
}

func stacktraceWithDepth(depth int, frameSkips int) *stack {
	pcs := make([]uintptr, depth)
	n := runtime.Callers(frameSkips+2, pcs[:]) // Skip 2 frames(excluding runtime.Callers, stacktraceWithDepth(xxx,xxx))
	var st stack = pcs[:n]
	return &st
}

func StackTrace(frameSkips int) string {
	return stacktraceWithDepth(defaultStackDepth, frameSkips+1).Format()
}

// Errorf formats like fmt.Errorf, so %w keeps the wrapped error matchable.
func Errorf(formatter string, fields ...any) *TrackableError {
	return newTrackableErr(fmt.Errorf(formatter, fields...), stacktraceWithDepth(defaultStackDepth, 1))
}

func WrapWithStackTrace(err error) *TrackableError {
	return newTrackableErr(err, stacktraceWithDepth(defaultStackDepth, 1))
}

func New(msg string) error {
	return errors.New(msg)
}

func Is(err, target error) bool {
	return errors.Is(err, target)
}

func As(err error, target any) bool {
	return errors.As(err, target)
}
