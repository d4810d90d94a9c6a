package descriptor

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ValueRule is conversion applied to every incoming payload of a sensor
type ValueRule int

const (
	// ValueRound parses payload as decimal and rounds it to nearest integer, ties to even.
	ValueRound ValueRule = iota
	// ValueFloat parses payload as decimal and keeps precision
	ValueFloat
	// ValueRaw passes payload through as string
	ValueRaw
)

var valueRules = [...]enumEntry{
	ValueRound: {"round", "ValueRound", "lambda x: round(float(x))"},
	ValueFloat: {"float", "ValueFloat", "lambda x: float(x)"},
	ValueRaw:   {"raw", "ValueRaw", "lambda x: x"},
}

// ParseValueRule resolves raw value_fn. Empty string is ValueRound.
func ParseValueRule(s string) (ValueRule, error) {
	if s == "" {
		return ValueRound, nil
	}
	for i, e := range valueRules {
		if e.tag == s {
			return ValueRule(i), nil
		}
	}
	return ValueRound, fmt.Errorf("%w: %q", ErrUnknownValueRule, s)
}

func (v ValueRule) String() string   { return entry(valueRules[:], int(v)).tag }
func (v ValueRule) GoName() string   { return entry(valueRules[:], int(v)).goID }
func (v ValueRule) HassName() string { return entry(valueRules[:], int(v)).hass }
func (v ValueRule) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// Convert returns int64 for ValueRound, float64 for ValueFloat and string for ValueRaw
func (v ValueRule) Convert(payload string) (any, error) {
	if v == ValueRaw {
		return payload, nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(payload), 64)
	if err != nil {
		return nil, fmt.Errorf("error parsing[%s]: %w", payload, err)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidValue, payload)
	}
	switch v {
	case ValueRound:
		r := math.RoundToEven(f)
		// float64(math.MaxInt64) rounds up to 2^63
		if r >= math.MaxInt64 || r < math.MinInt64 {
			return nil, fmt.Errorf("%w: %s", ErrInvalidValue, payload)
		}
		return int64(r), nil
	case ValueFloat:
		return f, nil
	}
	return nil, fmt.Errorf("%w: %d", ErrUnknownValueRule, int(v))
}
