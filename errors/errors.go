package errors

import "strings"

type MultiError interface {
	List() []error
	Size() int
	Add(error)
	Error() string
	ErrorOrNil() error
}

func NewMultiError() MultiError {
	return &multiError{
		errors: make([]error, 0),
	}
}

type multiError struct {
	errors []error
}

func (e *multiError) Size() int {
	return len(e.errors)
}

func (e *multiError) List() []error {
	return e.errors
}

func (e *multiError) Add(err error) {
	if err == nil {
		return
	}
	e.errors = append(e.errors, err)
}

// ErrorOrNil returns nil when nothing was collected so callers can return it directly.
func (e *multiError) ErrorOrNil() error {
	if len(e.errors) == 0 {
		return nil
	}
	return e
}

func (e *multiError) Error() string {
	var builder strings.Builder
	for i, err := range e.errors {
		if i > 0 {
			builder.WriteRune('\n')
		}
		builder.WriteString(err.Error())
	}
	return builder.String()
}
