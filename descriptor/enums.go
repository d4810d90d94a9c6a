package descriptor

import (
	"fmt"
)

// DeviceClass is https://www.home-assistant.io/integrations/sensor/#device-class
// restricted to what SHM2 publishes. Zero value means no device class.
type DeviceClass int

const (
	DeviceClassNone DeviceClass = iota
	DeviceClassPower
	DeviceClassApparentPower
	DeviceClassReactivePower
	DeviceClassTemperature
	DeviceClassCurrent
	DeviceClassVoltage
	DeviceClassEnergy
	DeviceClassFrequency
	DeviceClassDuration
)

// Unit of measurement, zero value means unitless
type Unit int

const (
	UnitNone Unit = iota
	UnitWatt
	UnitCelsius
	UnitAmpere
	UnitVolt
	UnitKiloWatt
	UnitKiloWattHour
	UnitVoltAmpere
	UnitVoltAmpereReactive
	UnitKiloVoltAmpereHour
	UnitKiloVarHour
	UnitKiloOhm
	UnitSeconds
	UnitHertz
	UnitPercentage
	UnitDegree
)

// StateClass is https://developers.home-assistant.io/docs/core/entity/sensor/#available-state-classes
type StateClass int

const (
	StateClassNone StateClass = iota
	StateClassMeasurement
	StateClassTotal
	StateClassTotalIncreasing
)

// enumEntry carries every spelling an enumerated value has:
// the YAML/MQTT tag, the Go constant and the Home Assistant constant.
type enumEntry struct {
	tag  string
	goID string
	hass string
}

var deviceClasses = [...]enumEntry{
	DeviceClassNone:          {"", "DeviceClassNone", "None"},
	DeviceClassPower:         {"power", "DeviceClassPower", "SensorDeviceClass.POWER"},
	DeviceClassApparentPower: {"apparent_power", "DeviceClassApparentPower", "SensorDeviceClass.APPARENT_POWER"},
	DeviceClassReactivePower: {"reactive_power", "DeviceClassReactivePower", "SensorDeviceClass.REACTIVE_POWER"},
	DeviceClassTemperature:   {"temperature", "DeviceClassTemperature", "SensorDeviceClass.TEMPERATURE"},
	DeviceClassCurrent:       {"current", "DeviceClassCurrent", "SensorDeviceClass.CURRENT"},
	DeviceClassVoltage:       {"voltage", "DeviceClassVoltage", "SensorDeviceClass.VOLTAGE"},
	DeviceClassEnergy:        {"energy", "DeviceClassEnergy", "SensorDeviceClass.ENERGY"},
	DeviceClassFrequency:     {"frequency", "DeviceClassFrequency", "SensorDeviceClass.FREQUENCY"},
	DeviceClassDuration:      {"duration", "DeviceClassDuration", "SensorDeviceClass.DURATION"},
}

// HA has no constants for kVAh, kvarh and kOhm, the raw string is used there
var units = [...]enumEntry{
	UnitNone:               {"", "UnitNone", "None"},
	UnitWatt:               {"W", "UnitWatt", "UnitOfPower.WATT"},
	UnitCelsius:            {"°C", "UnitCelsius", "UnitOfTemperature.CELSIUS"},
	UnitAmpere:             {"A", "UnitAmpere", "UnitOfElectricCurrent.AMPERE"},
	UnitVolt:               {"V", "UnitVolt", "UnitOfElectricPotential.VOLT"},
	UnitKiloWatt:           {"kW", "UnitKiloWatt", "UnitOfPower.KILO_WATT"},
	UnitKiloWattHour:       {"kWh", "UnitKiloWattHour", "UnitOfEnergy.KILO_WATT_HOUR"},
	UnitVoltAmpere:         {"VA", "UnitVoltAmpere", "UnitOfApparentPower.VOLT_AMPERE"},
	UnitVoltAmpereReactive: {"var", "UnitVoltAmpereReactive", "UnitOfPower.POWER_VOLT_AMPERE_REACTIVE"},
	UnitKiloVoltAmpereHour: {"kVAh", "UnitKiloVoltAmpereHour", `"kVAh"`},
	UnitKiloVarHour:        {"kvarh", "UnitKiloVarHour", `"kvarh"`},
	UnitKiloOhm:            {"kOhm", "UnitKiloOhm", `"kOhm"`},
	UnitSeconds:            {"s", "UnitSeconds", "UnitOfTime.SECONDS"},
	UnitHertz:              {"Hz", "UnitHertz", "UnitOfFrequency.HERTZ"},
	UnitPercentage:         {"%", "UnitPercentage", "PERCENTAGE"},
	UnitDegree:             {"°", "UnitDegree", "DEGREE"},
}

var stateClasses = [...]enumEntry{
	StateClassNone:            {"", "StateClassNone", "None"},
	StateClassMeasurement:     {"measurement", "StateClassMeasurement", "SensorStateClass.MEASUREMENT"},
	StateClassTotal:           {"total", "StateClassTotal", "SensorStateClass.TOTAL"},
	StateClassTotalIncreasing: {"total_increasing", "StateClassTotalIncreasing", "SensorStateClass.TOTAL_INCREASING"},
}

// keyed by raw unit string
var unitIcons = map[string]string{
	"W":  "mdi:home-lightning-bolt-outline",
	"°C": "mdi:thermometer",
	"A":  "mdi:flash",
	"V":  "mdi:flash-outline",
}

func lookup(table []enumEntry, tag string) (int, bool) {
	for i, e := range table {
		if i > 0 && e.tag == tag {
			return i, true
		}
	}
	return 0, false
}

func entry(table []enumEntry, i int) enumEntry {
	if i < 0 || i >= len(table) {
		return enumEntry{tag: fmt.Sprintf("invalid(%d)", i)}
	}
	return table[i]
}

// ParseDeviceClass resolves a raw device class. Empty string is DeviceClassNone.
func ParseDeviceClass(s string) (DeviceClass, error) {
	if s == "" {
		return DeviceClassNone, nil
	}
	if i, ok := lookup(deviceClasses[:], s); ok {
		return DeviceClass(i), nil
	}
	return DeviceClassNone, fmt.Errorf("%w: %q", ErrUnknownDeviceClass, s)
}

func (d DeviceClass) String() string   { return entry(deviceClasses[:], int(d)).tag }
func (d DeviceClass) GoName() string   { return entry(deviceClasses[:], int(d)).goID }
func (d DeviceClass) HassName() string { return entry(deviceClasses[:], int(d)).hass }
func (d DeviceClass) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// ParseUnit resolves a raw unit of measurement. Empty string is UnitNone.
func ParseUnit(s string) (Unit, error) {
	if s == "" {
		return UnitNone, nil
	}
	if i, ok := lookup(units[:], s); ok {
		return Unit(i), nil
	}
	return UnitNone, fmt.Errorf("%w: %q", ErrUnknownUnit, s)
}

func (u Unit) String() string   { return entry(units[:], int(u)).tag }
func (u Unit) GoName() string   { return entry(units[:], int(u)).goID }
func (u Unit) HassName() string { return entry(units[:], int(u)).hass }
func (u Unit) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

// Icon returns default icon for the unit, if it has one
func (u Unit) Icon() (string, bool) {
	icon, ok := unitIcons[u.String()]
	return icon, ok
}

// ParseStateClass resolves a raw state class. Empty string is StateClassNone.
func ParseStateClass(s string) (StateClass, error) {
	if s == "" {
		return StateClassNone, nil
	}
	if i, ok := lookup(stateClasses[:], s); ok {
		return StateClass(i), nil
	}
	return StateClassNone, fmt.Errorf("%w: %q", ErrUnknownStateClass, s)
}

func (s StateClass) String() string   { return entry(stateClasses[:], int(s)).tag }
func (s StateClass) GoName() string   { return entry(stateClasses[:], int(s)).goID }
func (s StateClass) HassName() string { return entry(stateClasses[:], int(s)).hass }
func (s StateClass) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
