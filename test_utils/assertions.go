package test_utils

import (
	"errors"
	"fmt"
	"strings"
)

const (
	assertionFailureError = "assertion failure: "
)

func fail(format string, args ...any) {
	panic(assertionFailureError + fmt.Sprintf(format, args...))
}

func AssertSlicesEqual[T comparable](l []T, r []T) {
	if len(l) != len(r) {
		fail("slices %v and %v differ in length (%d != %d)", l, r, len(l), len(r))
	}
	for i := range l {
		if l[i] != r[i] {
			fail("slices %v and %v differ at index %d", l, r, i)
		}
	}
}

func AssertNil(val interface{}) {
	if val != nil {
		fail("value %v isn't nil", val)
	}
}

func AssertNonNil(val interface{}) {
	if val == nil {
		fail("value %v is nil", val)
	}
}

func AssertTrue(val bool) {
	if !val {
		fail("value isn't true")
	}
}

func AssertFalse(val bool) {
	if val {
		fail("value isn't false")
	}
}

func AssertErrorIs(err error, target error) {
	if !errors.Is(err, target) {
		fail("error %v is not %v", err, target)
	}
}

func AssertPanic(cb func()) {
	defer func() {
		recovered := recover()
		if recovered == nil {
			fail("no panic value is recovered")
		}
	}()
	cb()
}

func AssertEquals[T comparable](l T, r T) {
	if l != r {
		fail("%v and %v are not equal", l, r)
	}
}

func isAssertionFailurePanic(recovered interface{}) bool {
	if panicString, ok := recovered.(string); ok {
		return strings.HasPrefix(panicString, assertionFailureError)
	}
	return false
}
