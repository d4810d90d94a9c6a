package descriptor

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
)

// RawSensorDescriptor is a single entry of descriptor YAML file
type RawSensorDescriptor struct {
	StateTopic        string         `yaml:"state_topic"`
	Name              string         `yaml:"name"`
	DeviceClass       string         `yaml:"device_class,omitempty"`
	UnitOfMeasurement string         `yaml:"unit_of_measurement,omitempty"`
	StateClass        string         `yaml:"state_class,omitempty"`
	Icon              string         `yaml:"icon,omitempty"`
	ValueFn           string         `yaml:"value_fn,omitempty"`
	ValueMap          map[int]string `yaml:"value_map,omitempty"`
}

// EntityDescriptor is normalized sensor description, ready to be turned into
// source code or into a live sensor.
type EntityDescriptor struct {
	Key                          string         `json:"key"`
	Name                         string         `json:"name"`
	DeviceClass                  DeviceClass    `json:"device_class"`
	Unit                         Unit           `json:"unit_of_measurement"`
	StateClass                   StateClass     `json:"state_class"`
	Icon                         string         `json:"icon"`
	EntityRegistryEnabledDefault bool           `json:"entity_registry_enabled_default"`
	ValueFn                      ValueRule      `json:"value_fn"`
	ValueMap                     map[int]string `json:"value_map,omitempty"`
}

// Map turns raw descriptor into EntityDescriptor
func Map(raw RawSensorDescriptor) (EntityDescriptor, error) {
	return mapAt(-1, raw)
}

func mapAt(idx int, raw RawSensorDescriptor) (d EntityDescriptor, err error) {
	fail := func(field, value string, err error) (EntityDescriptor, error) {
		return EntityDescriptor{}, &DescriptorError{
			Index:      idx,
			StateTopic: raw.StateTopic,
			Name:       raw.Name,
			Field:      field,
			Value:      value,
			Err:        err,
		}
	}
	if raw.StateTopic == "" {
		return fail("state_topic", "", ErrMissingField)
	}
	if raw.Name == "" {
		return fail("name", "", ErrMissingField)
	}
	d.Key = raw.StateTopic
	d.Name = raw.Name
	if d.DeviceClass, err = ParseDeviceClass(raw.DeviceClass); err != nil {
		return fail("device_class", raw.DeviceClass, err)
	}
	if d.Unit, err = ParseUnit(raw.UnitOfMeasurement); err != nil {
		return fail("unit_of_measurement", raw.UnitOfMeasurement, err)
	}
	if d.StateClass, err = ParseStateClass(raw.StateClass); err != nil {
		return fail("state_class", raw.StateClass, err)
	}
	if d.ValueFn, err = ParseValueRule(raw.ValueFn); err != nil {
		return fail("value_fn", raw.ValueFn, err)
	}
	d.Icon = raw.Icon
	if icon, ok := d.Unit.Icon(); ok {
		d.Icon = icon
	}
	d.EntityRegistryEnabledDefault = false
	if len(raw.ValueMap) > 0 {
		d.ValueMap = make(map[int]string, len(raw.ValueMap))
		for k, v := range raw.ValueMap {
			d.ValueMap[k] = v
		}
	}
	return d, nil
}

// MapAll maps every descriptor in order, stopping at first error.
// Keys have to be unique within the list.
func MapAll(raws []RawSensorDescriptor) ([]EntityDescriptor, error) {
	out := make([]EntityDescriptor, 0, len(raws))
	seen := make(map[string]int, len(raws))
	for i, raw := range raws {
		d, err := mapAt(i, raw)
		if err != nil {
			return nil, err
		}
		if first, ok := seen[d.Key]; ok {
			return nil, &DescriptorError{
				Index:      i,
				StateTopic: raw.StateTopic,
				Name:       raw.Name,
				Field:      "state_topic",
				Value:      raw.StateTopic,
				Err:        fmt.Errorf("%w: already used by descriptor #%d", ErrDuplicateKey, first),
			}
		}
		seen[d.Key] = i
		out = append(out, d)
	}
	return out, nil
}

// Coerce converts MQTT payload into entity state, remapping it via ValueMap if there is one.
// Value missing from the map yields nil (unknown state)
func (d EntityDescriptor) Coerce(payload string) (any, error) {
	v, err := d.ValueFn.Convert(payload)
	if err != nil {
		return nil, err
	}
	if d.ValueMap == nil {
		return v, nil
	}
	var k int
	switch t := v.(type) {
	case int64:
		k = int(t)
	case float64:
		k = int(t)
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return v, nil
		}
		k = i
	}
	if mapped, ok := d.ValueMap[k]; ok {
		return mapped, nil
	}
	return nil, nil
}

// Load reads whole descriptor list; any YAML error fails the whole load
func Load(r io.Reader) ([]RawSensorDescriptor, error) {
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("error reading descriptors: %w", err)
	}
	var raws []RawSensorDescriptor
	if err := yaml.Unmarshal(buf.Bytes(), &raws); err != nil {
		return nil, fmt.Errorf("error decoding descriptors: %w", err)
	}
	return raws, nil
}

func LoadFile(path string) ([]RawSensorDescriptor, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening descriptor file: %w", err)
	}
	defer f.Close()
	return Load(f)
}
