package test_utils

import (
	"fmt"
	"runtime/debug"
	"testing"
	"time"
)

type assertion struct {
	head        *assertion
	id          string
	description string
	assertion   func()
	next        *assertion
	numRuns     int
}

type Assertable interface {
	ThenWithDescription(id string, description string, assertion func()) Assertable
	Then(id string, assertion func()) Assertable
	Cases(cases ...*assertion) Assertable
	WithMultipleRuns(numRuns int) Assertable
	Do(t *testing.T)
}

func New(id string, assertionCase func()) *assertion {
	return NewWithDescription(id, "", assertionCase)
}

func NewWithDescription(id string, description string, assertionCase func()) *assertion {
	a := &assertion{
		id:          id,
		description: description,
		assertion:   assertionCase,
	}
	a.head = a
	return a
}

// NewGroup starts a chain of cases that share state through closures and run in order.
func NewGroup(id string, description string) Assertable {
	a := &assertion{
		id:          id,
		description: description,
	}
	a.head = a
	return a
}

// WithMultipleRuns repeats the last case in the chain numRuns times in series.
func (a *assertion) WithMultipleRuns(numRuns int) Assertable {
	if numRuns < 1 {
		numRuns = 1
	}
	a.numRuns = numRuns
	return a
}

func (a *assertion) Then(id string, assertionCase func()) Assertable {
	return a.ThenWithDescription(id, "", assertionCase)
}

func (a *assertion) ThenWithDescription(id string, description string, assertionCase func()) Assertable {
	a.next = &assertion{
		head:        a.head,
		id:          id,
		description: description,
		assertion:   assertionCase,
	}
	return a.next
}

func (a *assertion) Cases(cases ...*assertion) Assertable {
	curr := a
	for _, c := range cases {
		if c != nil {
			curr.next = c
			c.head = curr.head
			curr = c
		}
	}
	return curr
}

func (a *assertion) Do(t *testing.T) {
	t.Helper()
	startTime := time.Now()
	for curr := a.head; curr != nil; curr = curr.next {
		if curr.assertion == nil {
			t.Logf("group %s%s", curr.id, getDescription(curr))
			continue
		}
		node := curr
		runs := node.numRuns
		if runs < 1 {
			runs = 1
		}
		t.Run(node.id, func(t *testing.T) {
			for i := 0; i < runs; i++ {
				if msg, ok := runCase(node.assertion); !ok {
					t.Fatalf("❌ %s%s failed (run %d/%d): %s", node.id, getDescription(node), i+1, runs, msg)
				}
			}
		})
	}
	t.Log("all cases finished, overall runtime: ", time.Since(startTime))
}

func runCase(cb func()) (msg string, ok bool) {
	ok = true
	defer func() {
		if recovered := recover(); recovered != nil {
			ok = false
			if isAssertionFailurePanic(recovered) {
				msg = recovered.(string)
			} else {
				msg = fmt.Sprintf("panic recovered: %v\n%s", recovered, debug.Stack())
			}
		}
	}()
	cb()
	return
}

func getDescription(a *assertion) string {
	if a.description == "" {
		return ""
	}
	return "[" + a.description + "]"
}
