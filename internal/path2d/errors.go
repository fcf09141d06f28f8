package path2d

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidSequence = errors.New("invalid path command sequence")
	ErrArity           = errors.New("wrong number of control points")
	ErrUnknownPoint    = errors.New("point does not belong to this path")
	ErrInvalidArgument = errors.New("invalid argument")
)

// InvalidSequenceError reports a builder call that is not allowed in the
// current state of the path. The path is left unchanged.
type InvalidSequenceError struct {
	Op     string
	Reason string
}

func (e *InvalidSequenceError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

func (e *InvalidSequenceError) Is(target error) bool {
	return target == ErrInvalidSequence
}
