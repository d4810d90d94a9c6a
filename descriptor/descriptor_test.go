package descriptor

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapPowerTotal(t *testing.T) {
	d, err := Map(RawSensorDescriptor{
		StateTopic:        "power_total",
		Name:              "Total Power",
		DeviceClass:       "power",
		UnitOfMeasurement: "W",
		StateClass:        "measurement",
	})
	require.NoError(t, err)
	assert.Equal(t, "power_total", d.Key)
	assert.Equal(t, "Total Power", d.Name)
	assert.Equal(t, DeviceClassPower, d.DeviceClass)
	assert.Equal(t, UnitWatt, d.Unit)
	assert.Equal(t, StateClassMeasurement, d.StateClass)
	assert.Equal(t, "mdi:home-lightning-bolt-outline", d.Icon)
	assert.False(t, d.EntityRegistryEnabledDefault)
	assert.Equal(t, ValueRound, d.ValueFn)
}

func TestMapResolvesEveryKnownTag(t *testing.T) {
	for i, e := range deviceClasses {
		if i == 0 {
			continue
		}
		d, err := Map(RawSensorDescriptor{StateTopic: "k", Name: "n", DeviceClass: e.tag})
		require.NoError(t, err, e.tag)
		assert.Equal(t, DeviceClass(i), d.DeviceClass)
		assert.Equal(t, e.tag, d.DeviceClass.String())
	}
	for i, e := range units {
		if i == 0 {
			continue
		}
		d, err := Map(RawSensorDescriptor{StateTopic: "k", Name: "n", UnitOfMeasurement: e.tag})
		require.NoError(t, err, e.tag)
		assert.Equal(t, Unit(i), d.Unit)
	}
	for i, e := range stateClasses {
		if i == 0 {
			continue
		}
		d, err := Map(RawSensorDescriptor{StateTopic: "k", Name: "n", StateClass: e.tag})
		require.NoError(t, err, e.tag)
		assert.Equal(t, StateClass(i), d.StateClass)
	}
}

func TestMapAbsentFields(t *testing.T) {
	d, err := Map(RawSensorDescriptor{StateTopic: "serial", Name: "Serial"})
	require.NoError(t, err)
	assert.Equal(t, DeviceClassNone, d.DeviceClass)
	assert.Equal(t, UnitNone, d.Unit)
	assert.Equal(t, StateClassNone, d.StateClass)
	assert.Equal(t, "", d.Icon)
	assert.Nil(t, d.ValueMap)
}

func TestMapErrors(t *testing.T) {
	tests := []struct {
		name  string
		raw   RawSensorDescriptor
		err   error
		field string
	}{
		{"no topic", RawSensorDescriptor{Name: "n"}, ErrMissingField, "state_topic"},
		{"no name", RawSensorDescriptor{StateTopic: "k"}, ErrMissingField, "name"},
		{"device class", RawSensorDescriptor{StateTopic: "k", Name: "n", DeviceClass: "humidity"}, ErrUnknownDeviceClass, "device_class"},
		{"unit", RawSensorDescriptor{StateTopic: "k", Name: "n", UnitOfMeasurement: "furlongs"}, ErrUnknownUnit, "unit_of_measurement"},
		{"state class", RawSensorDescriptor{StateTopic: "k", Name: "n", StateClass: "sometimes"}, ErrUnknownStateClass, "state_class"},
		{"value fn", RawSensorDescriptor{StateTopic: "k", Name: "n", ValueFn: "sqrt"}, ErrUnknownValueRule, "value_fn"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Map(tt.raw)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.err)
			var de *DescriptorError
			require.True(t, errors.As(err, &de))
			assert.Equal(t, tt.field, de.Field)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestIconPrecedence(t *testing.T) {
	d, err := Map(RawSensorDescriptor{StateTopic: "k", Name: "n", UnitOfMeasurement: "W"})
	require.NoError(t, err)
	assert.Equal(t, "mdi:home-lightning-bolt-outline", d.Icon)

	d, err = Map(RawSensorDescriptor{StateTopic: "k", Name: "n", UnitOfMeasurement: "W", Icon: "mdi:custom"})
	require.NoError(t, err)
	assert.Equal(t, "mdi:home-lightning-bolt-outline", d.Icon, "unit icon wins over explicit one")

	d, err = Map(RawSensorDescriptor{StateTopic: "k", Name: "n", UnitOfMeasurement: "kOhm", Icon: "mdi:custom"})
	require.NoError(t, err)
	assert.Equal(t, "mdi:custom", d.Icon)

	d, err = Map(RawSensorDescriptor{StateTopic: "k", Name: "n", Icon: "mdi:custom"})
	require.NoError(t, err)
	assert.Equal(t, "mdi:custom", d.Icon)

	d, err = Map(RawSensorDescriptor{StateTopic: "k", Name: "n"})
	require.NoError(t, err)
	assert.Equal(t, "", d.Icon)
}

func TestMapAll(t *testing.T) {
	raws := []RawSensorDescriptor{
		{StateTopic: "a", Name: "A", UnitOfMeasurement: "V"},
		{StateTopic: "b", Name: "B", UnitOfMeasurement: "A"},
		{StateTopic: "c", Name: "C", UnitOfMeasurement: "Hz"},
	}
	out, err := MapAll(raws)
	require.NoError(t, err)
	require.Len(t, out, 3)
	for i := range raws {
		assert.Equal(t, raws[i].StateTopic, out[i].Key)
	}
}

func TestMapAllFailFast(t *testing.T) {
	_, err := MapAll([]RawSensorDescriptor{
		{StateTopic: "a", Name: "A"},
		{StateTopic: "b", Name: "B", UnitOfMeasurement: "furlongs"},
		{StateTopic: "c"},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownUnit)
	var de *DescriptorError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, 1, de.Index)
	assert.Contains(t, err.Error(), `state_topic="b"`)
	assert.Contains(t, err.Error(), `name="B"`)
}

func TestMapAllDuplicateKey(t *testing.T) {
	_, err := MapAll([]RawSensorDescriptor{
		{StateTopic: "a", Name: "A"},
		{StateTopic: "b", Name: "B"},
		{StateTopic: "a", Name: "A again"},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateKey)
	assert.Contains(t, err.Error(), "#0")
}

func TestCoerce(t *testing.T) {
	d := EntityDescriptor{Key: "power", ValueFn: ValueRound}
	v, err := d.Coerce("1234.6")
	require.NoError(t, err)
	assert.Equal(t, int64(1235), v)
	v, err = d.Coerce("2.5")
	require.NoError(t, err)
	assert.Equal(t, int64(2), v, "ties round to even")
	_, err = d.Coerce("n/a")
	assert.Error(t, err)
	for _, payload := range []string{"NaN", "inf", "-Inf", "1e30", "-1e19"} {
		v, err = d.Coerce(payload)
		assert.ErrorIs(t, err, ErrInvalidValue, payload)
		assert.Nil(t, v, payload)
	}
	v, err = d.Coerce("-9.2e18")
	require.NoError(t, err)
	assert.Equal(t, int64(-9200000000000000000), v)

	d.ValueFn = ValueFloat
	for _, payload := range []string{"NaN", "+Inf"} {
		_, err = d.Coerce(payload)
		assert.ErrorIs(t, err, ErrInvalidValue, payload)
	}
	v, err = d.Coerce("1e30")
	require.NoError(t, err)
	assert.Equal(t, 1e30, v)

	d.ValueFn = ValueRaw
	v, err = d.Coerce("NaN")
	require.NoError(t, err)
	assert.Equal(t, "NaN", v)
}

func TestCoerceValueMap(t *testing.T) {
	d := EntityDescriptor{
		Key:      "status",
		ValueFn:  ValueRound,
		ValueMap: map[int]string{0: "off", 1: "on"},
	}
	v, err := d.Coerce("1.2")
	require.NoError(t, err)
	assert.Equal(t, "on", v)
	v, err = d.Coerce("7")
	require.NoError(t, err)
	assert.Nil(t, v)
	_, err = d.Coerce("NaN")
	assert.ErrorIs(t, err, ErrInvalidValue)

	d.ValueFn = ValueRaw
	v, err = d.Coerce("standby")
	require.NoError(t, err)
	assert.Equal(t, "standby", v, "non integer values pass through map")
	v, err = d.Coerce("0")
	require.NoError(t, err)
	assert.Equal(t, "off", v)
}

func TestLoad(t *testing.T) {
	in := `
- state_topic: power_total
  name: Total Power
  device_class: power
  unit_of_measurement: W
  state_class: measurement
- state_topic: status
  name: Status
  value_fn: raw
  value_map:
    0: "off"
    1: "on"
`
	raws, err := Load(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, raws, 2)
	assert.Equal(t, "power_total", raws[0].StateTopic)
	assert.Equal(t, "W", raws[0].UnitOfMeasurement)
	assert.Equal(t, "raw", raws[1].ValueFn)
	assert.Equal(t, map[int]string{0: "off", 1: "on"}, raws[1].ValueMap)
}

func TestLoadMalformed(t *testing.T) {
	_, err := Load(strings.NewReader("- state_topic: [unterminated\n"))
	assert.Error(t, err)
}
