package futures

import (
	"errors"
	"fmt"
)

var (
	ErrClosed = errors.New("closed")
)

type ErrPanic struct {
	Cause interface{}
}

func (e ErrPanic) Error() string {
	return fmt.Sprintf("%v", e.Cause)
}
