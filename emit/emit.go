package emit

import (
	"errors"
	"fmt"
	"go/format"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/XANi/shm2mqtt/descriptor"
	"go.uber.org/zap"
)

var ErrOutputWrite = errors.New("cannot write output")

type Format string

const (
	// FormatGo renders descriptor.EntityDescriptor composite literals
	FormatGo Format = "go"
	// FormatHass renders Home Assistant entity description constructor calls
	FormatHass Format = "hass"
)

func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", FormatGo:
		return FormatGo, nil
	case FormatHass:
		return FormatHass, nil
	}
	return "", fmt.Errorf("unknown output format %q, must be one of go, hass", s)
}

type Mode string

const (
	ModeOverwrite Mode = "overwrite"
	ModeAppend    Mode = "append"
)

func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeOverwrite:
		return ModeOverwrite, nil
	case ModeAppend:
		return ModeAppend, nil
	}
	return "", fmt.Errorf("unknown output mode %q, must be one of overwrite, append", s)
}

type Config struct {
	Format Format
	// Package, when set with FormatGo, makes Document produce complete Go file
	Package string
	// Var is name of the generated slice, "Sensors" if empty
	Var    string
	Logger *zap.SugaredLogger
}

type Emitter struct {
	format  Format
	pkg     string
	varName string
	l       *zap.SugaredLogger
}

func New(cfg Config) (*Emitter, error) {
	f, err := ParseFormat(string(cfg.Format))
	if err != nil {
		return nil, err
	}
	if cfg.Package != "" && f != FormatGo {
		return nil, fmt.Errorf("package can only be set for %s format", FormatGo)
	}
	e := &Emitter{
		format:  f,
		pkg:     cfg.Package,
		varName: cfg.Var,
		l:       cfg.Logger,
	}
	if e.varName == "" {
		e.varName = "Sensors"
	}
	if e.l == nil {
		e.l = zap.NewNop().Sugar()
	}
	return e, nil
}

// Emit maps every raw descriptor and renders it. Nothing is rendered if any descriptor fails.
func (e *Emitter) Emit(raws []descriptor.RawSensorDescriptor) ([]string, error) {
	descs, err := descriptor.MapAll(raws)
	if err != nil {
		return nil, err
	}
	blocks := make([]string, 0, len(descs))
	for _, d := range descs {
		e.l.Debugf("rendering %s [%s]", d.Key, d.Name)
		blocks = append(blocks, e.Render(d))
	}
	return blocks, nil
}

func (e *Emitter) Render(d descriptor.EntityDescriptor) string {
	if e.format == FormatHass {
		return renderHass(d)
	}
	return renderGo(d)
}

// Document joins blocks into the content of output artifact
func (e *Emitter) Document(blocks []string) ([]byte, error) {
	body := strings.Join(blocks, "")
	if e.format != FormatGo || e.pkg == "" {
		return []byte(body), nil
	}
	var b strings.Builder
	b.WriteString("// Code generated by shm2mqtt generate; DO NOT EDIT.\n\n")
	fmt.Fprintf(&b, "package %s\n\n", e.pkg)
	b.WriteString("import \"github.com/XANi/shm2mqtt/descriptor\"\n\n")
	fmt.Fprintf(&b, "var %s = []descriptor.EntityDescriptor{\n", e.varName)
	b.WriteString(body)
	b.WriteString("}\n")
	src, err := format.Source([]byte(b.String()))
	if err != nil {
		return nil, fmt.Errorf("generated code does not parse: %w", err)
	}
	return src, nil
}

func renderGo(d descriptor.EntityDescriptor) string {
	var b strings.Builder
	field := func(name, value string) {
		fmt.Fprintf(&b, "\t%-30s%s,\n", name+":", value)
	}
	b.WriteString("{\n")
	field("Key", strconv.Quote(d.Key))
	field("Name", strconv.Quote(d.Name))
	field("DeviceClass", "descriptor."+d.DeviceClass.GoName())
	field("Unit", "descriptor."+d.Unit.GoName())
	field("StateClass", "descriptor."+d.StateClass.GoName())
	field("EntityRegistryEnabledDefault", strconv.FormatBool(d.EntityRegistryEnabledDefault))
	field("ValueFn", "descriptor."+d.ValueFn.GoName())
	if len(d.ValueMap) > 0 {
		field("ValueMap", "map[int]string{"+valueMapEntries(d.ValueMap)+"}")
	}
	field("Icon", strconv.Quote(d.Icon))
	b.WriteString("},\n")
	return b.String()
}

func renderHass(d descriptor.EntityDescriptor) string {
	var b strings.Builder
	field := func(name, value string) {
		fmt.Fprintf(&b, "    %s=%s,\n", name, value)
	}
	b.WriteString("Shm2SensorEntityDescription(\n")
	field("key", strconv.Quote(d.Key))
	field("name", strconv.Quote(d.Name))
	field("device_class", d.DeviceClass.HassName())
	field("native_unit_of_measurement", d.Unit.HassName())
	field("state_class", d.StateClass.HassName())
	if d.EntityRegistryEnabledDefault {
		field("entity_registry_enabled_default", "True")
	} else {
		field("entity_registry_enabled_default", "False")
	}
	field("value_fn", d.ValueFn.HassName())
	if len(d.ValueMap) > 0 {
		field("valueMap", "{"+valueMapEntries(d.ValueMap)+"}")
	}
	field("icon", strconv.Quote(d.Icon))
	b.WriteString("),\n")
	return b.String()
}

// sorted so output does not depend on map iteration order
func valueMapEntries(m map[int]string) string {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%d: %s", k, strconv.Quote(m[k])))
	}
	return strings.Join(parts, ", ")
}

// WriteFile writes whole document in one open/close cycle
func WriteFile(path string, data []byte, mode Mode) (err error) {
	flags := os.O_WRONLY | os.O_CREATE
	switch mode {
	case ModeAppend:
		flags |= os.O_APPEND
	case ModeOverwrite, "":
		flags |= os.O_TRUNC
	default:
		return fmt.Errorf("%w: unknown mode %q", ErrOutputWrite, mode)
	}
	f, err := os.OpenFile(path, flags, 0644)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrOutputWrite, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: %w", ErrOutputWrite, cerr)
		}
	}()
	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("%w: %w", ErrOutputWrite, err)
	}
	return nil
}

// GenerateFile loads descriptors from in, renders them and writes them to out
func (e *Emitter) GenerateFile(in, out string, mode Mode) (int, error) {
	raws, err := descriptor.LoadFile(in)
	if err != nil {
		return 0, err
	}
	blocks, err := e.Emit(raws)
	if err != nil {
		return 0, err
	}
	doc, err := e.Document(blocks)
	if err != nil {
		return 0, err
	}
	if err := WriteFile(out, doc, mode); err != nil {
		return 0, err
	}
	return len(blocks), nil
}
