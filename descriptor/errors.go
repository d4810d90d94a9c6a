package descriptor

import (
	"errors"
	"fmt"
)

var (
	ErrMissingField       = errors.New("missing required field")
	ErrUnknownDeviceClass = errors.New("unknown device class")
	ErrUnknownUnit        = errors.New("unknown unit of measurement")
	ErrUnknownStateClass  = errors.New("unknown state class")
	ErrUnknownValueRule   = errors.New("unknown value conversion")
	ErrDuplicateKey       = errors.New("duplicate key")
	ErrInvalidValue       = errors.New("value out of range")
)

// DescriptorError points at the descriptor and field that failed mapping
type DescriptorError struct {
	// position in the input list, -1 when mapping a single descriptor
	Index      int
	StateTopic string
	Name       string
	Field      string
	Value      string
	Err        error
}

func (e *DescriptorError) Error() string {
	where := fmt.Sprintf("descriptor [state_topic=%q name=%q]", e.StateTopic, e.Name)
	if e.Index >= 0 {
		where = fmt.Sprintf("descriptor #%d [state_topic=%q name=%q]", e.Index, e.StateTopic, e.Name)
	}
	return fmt.Sprintf("%s: field %s=%q: %s", where, e.Field, e.Value, e.Err)
}

func (e *DescriptorError) Unwrap() error {
	return e.Err
}
