package entity

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/XANi/shm2mqtt/descriptor"
)

var ErrDuplicateID = errors.New("duplicate entity id")

type UpdateKind int

const (
	// UpdateState sets entity value
	UpdateState UpdateKind = iota
	// UpdateVersion sets device firmware version
	UpdateVersion
)

// Update is a single processed MQTT message
type Update struct {
	Kind  UpdateKind
	Key   string
	Topic string
	Value any
	TS    time.Time
}

// Sink consumes processed updates
type Sink interface {
	Update(u Update)
}

type Device struct {
	Identifiers  []string `json:"identifiers"`
	Name         string   `json:"name"`
	Manufacturer string   `json:"manufacturer"`
	Model        string   `json:"model"`
	SerialNumber string   `json:"serial_number"`
	SwVersion    string   `json:"sw_version,omitempty"`
}

type Entity struct {
	UniqueID   string                      `json:"unique_id"`
	EntityID   string                      `json:"entity_id"`
	Name       string                      `json:"name"`
	Topic      string                      `json:"topic"`
	Enabled    bool                        `json:"enabled"`
	Value      any                         `json:"value"`
	Updated    time.Time                   `json:"updated,omitempty"`
	Descriptor descriptor.EntityDescriptor `json:"descriptor"`
}

type Registry struct {
	uniqueID string
	root     string
	serial   string
	device   Device
	entities map[string]*Entity
	// unique id -> key
	ids   map[string]string
	order []string
	sync.RWMutex
}

// UniqueID of the integration instance, one per MQTT root and device serial
func UniqueID(root, serial string) string {
	return root + "_" + serial
}

// Topic returns data topic of the sensor
func Topic(root, serial, key string) string {
	return root + "/" + serial + "/" + key
}

func NewRegistry(root, serial string) *Registry {
	uid := UniqueID(root, serial)
	return &Registry{
		uniqueID: uid,
		root:     root,
		serial:   serial,
		device: Device{
			Identifiers:  []string{uid},
			Name:         uid,
			Manufacturer: "SMA",
			Model:        "Sunny Home Manager 2.0",
			SerialNumber: serial,
		},
		entities: map[string]*Entity{},
		ids:      map[string]string{},
	}
}

func (r *Registry) UniqueID() string {
	return r.uniqueID
}

// Add creates entity for the descriptor. Keys must be unique within the device.
func (r *Registry) Add(d descriptor.EntityDescriptor) (Entity, error) {
	r.Lock()
	defer r.Unlock()
	if _, ok := r.entities[d.Key]; ok {
		return Entity{}, fmt.Errorf("%w: %s", descriptor.ErrDuplicateKey, d.Key)
	}
	uid := Slugify(r.uniqueID + "-" + d.Name)
	if other, ok := r.ids[uid]; ok {
		return Entity{}, fmt.Errorf("%w: %s of %s is already used by %s", ErrDuplicateID, uid, d.Key, other)
	}
	e := &Entity{
		UniqueID:   uid,
		EntityID:   "sensor." + uid,
		Name:       d.Name,
		Topic:      Topic(r.root, r.serial, d.Key),
		Enabled:    d.EntityRegistryEnabledDefault,
		Descriptor: d,
	}
	r.entities[d.Key] = e
	r.ids[uid] = d.Key
	r.order = append(r.order, d.Key)
	return *e, nil
}

func (r *Registry) SetEnabled(key string, enabled bool) error {
	r.Lock()
	defer r.Unlock()
	e, ok := r.entities[key]
	if !ok {
		return fmt.Errorf("no entity with key %s", key)
	}
	e.Enabled = enabled
	return nil
}

// Update applies processed message. State of disabled entities is not tracked.
func (r *Registry) Update(u Update) {
	r.Lock()
	defer r.Unlock()
	switch u.Kind {
	case UpdateVersion:
		if v, ok := u.Value.(string); ok {
			r.device.SwVersion = v
		} else {
			r.device.SwVersion = fmt.Sprint(u.Value)
		}
	case UpdateState:
		e, ok := r.entities[u.Key]
		if !ok || !e.Enabled {
			return
		}
		e.Value = u.Value
		e.Updated = u.TS
	}
}

func (r *Registry) Device() Device {
	r.RLock()
	defer r.RUnlock()
	d := r.device
	d.Identifiers = append([]string(nil), r.device.Identifiers...)
	return d
}

// Enabled reports whether state of the entity is tracked
func (r *Registry) Enabled(key string) bool {
	r.RLock()
	defer r.RUnlock()
	e, ok := r.entities[key]
	return ok && e.Enabled
}

func (r *Registry) Entity(key string) (Entity, bool) {
	r.RLock()
	defer r.RUnlock()
	e, ok := r.entities[key]
	if !ok {
		return Entity{}, false
	}
	return *e, true
}

// Entities returns snapshot in order of addition
func (r *Registry) Entities() []Entity {
	r.RLock()
	defer r.RUnlock()
	out := make([]Entity, 0, len(r.order))
	for _, k := range r.order {
		out = append(out, *r.entities[k])
	}
	return out
}

// Slugify lowercases s and replaces every run of non-alphanumeric characters with single underscore
func Slugify(s string) string {
	var b strings.Builder
	sep := false
	for _, c := range strings.ToLower(s) {
		if unicode.IsLetter(c) || unicode.IsDigit(c) {
			if sep && b.Len() > 0 {
				b.WriteByte('_')
			}
			sep = false
			b.WriteRune(c)
			continue
		}
		sep = true
	}
	return b.String()
}
