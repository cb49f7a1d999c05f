package shared

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyInput        = errors.New("empty input")
	ErrReportNotExist    = errors.New("report doesn't exist")
	ErrInsufficientSpace = errors.New("insufficient disk space")
)

type InputTooLongError struct {
	Max   int
	Given int
}

func (err InputTooLongError) Error() string {
	return fmt.Sprintf("input too long; expected: <= %d hex digits, given: %d", err.Max, err.Given)
}
