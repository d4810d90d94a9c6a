package queue

import (
	"encoding/json"
	"fmt"

	"github.com/XANi/shm2mqtt/entity"
)

// Discovery is Home Assistant MQTT discovery payload, using abbreviated keys
type Discovery struct {
	// https://www.home-assistant.io/integrations/sensor/#device-class
	DeviceClass string `json:"dev_cla,omitempty"`
	Unit        string `json:"unit_of_meas,omitempty"`
	// https://developers.home-assistant.io/docs/core/entity/sensor/#available-state-classes
	StateClass       string        `json:"stat_cla,omitempty"`
	Name             string        `json:"name"`
	StateTopic       string        `json:"stat_t"`
	UniqID           string        `json:"uniq_id"`
	ObjectID         string        `json:"obj_id"`
	Icon             string        `json:"ic,omitempty"`
	EnabledByDefault bool          `json:"en"`
	Dev              *DiscoveryDev `json:"dev"`
}

type DiscoveryDev struct {
	IDs             []string `json:"ids"`
	Name            string   `json:"name"`
	SoftwareVersion string   `json:"sw,omitempty"`
	Model           string   `json:"mdl"`
	Manufacturer    string   `json:"mf"`
	SerialNumber    string   `json:"sn"`
}

func StateTopic(e entity.Entity) string {
	return e.Topic + "/state"
}

func NewDiscovery(e entity.Entity, dev entity.Device) Discovery {
	d := e.Descriptor
	return Discovery{
		DeviceClass:      d.DeviceClass.String(),
		Unit:             d.Unit.String(),
		StateClass:       d.StateClass.String(),
		Name:             d.Name,
		StateTopic:       StateTopic(e),
		UniqID:           e.UniqueID,
		ObjectID:         e.UniqueID,
		Icon:             d.Icon,
		EnabledByDefault: d.EntityRegistryEnabledDefault,
		Dev: &DiscoveryDev{
			IDs:             dev.Identifiers,
			Name:            dev.Name,
			SoftwareVersion: dev.SwVersion,
			Model:           dev.Model,
			Manufacturer:    dev.Manufacturer,
			SerialNumber:    dev.SerialNumber,
		},
	}
}

func (q *Queue) discoveryTopic(e entity.Entity) string {
	return fmt.Sprintf("%s/sensor/%s/%s/config", q.cfg.DiscoveryPrefix, q.cfg.Registry.UniqueID(), e.Descriptor.Key)
}

// Announce publishes retained discovery config of every entity. Noop if discovery is disabled.
func (q *Queue) Announce() error {
	if q.cfg.DiscoveryPrefix == "" {
		return nil
	}
	c := q.getClient()
	dev := q.cfg.Registry.Device()
	for _, e := range q.cfg.Registry.Entities() {
		// version goes into device info instead
		q.RLock()
		_, isVersion := q.sensorMap[e.Topic].(*VersionSensor)
		q.RUnlock()
		if isVersion {
			continue
		}
		payload, err := json.Marshal(NewDiscovery(e, dev))
		if err != nil {
			return fmt.Errorf("error encoding discovery of %s: %w", e.Descriptor.Key, err)
		}
		token := c.Publish(q.discoveryTopic(e), 1, true, payload)
		if token.Wait() && token.Error() != nil {
			return fmt.Errorf("error publishing discovery of %s: %w", e.Descriptor.Key, token.Error())
		}
	}
	return nil
}

// StatePayload renders converted value the way HA MQTT sensor expects it, nil is unknown state
func StatePayload(v any) string {
	switch t := v.(type) {
	case nil:
		return "None"
	case float64:
		return fmt.Sprintf("%g", t)
	default:
		return fmt.Sprint(t)
	}
}

func (q *Queue) republish(u entity.Update) {
	if u.Kind == entity.UpdateVersion {
		v := fmt.Sprint(u.Value)
		if v == q.swVersion {
			return
		}
		q.swVersion = v
		// device sw version changed, refresh device info
		if err := q.Announce(); err != nil {
			q.l.Warnf("error refreshing discovery: %s", err)
		}
		return
	}
	e, ok := q.cfg.Registry.Entity(u.Key)
	if !ok || !e.Enabled {
		return
	}
	token := q.getClient().Publish(StateTopic(e), 0, false, StatePayload(u.Value))
	if token.Wait() && token.Error() != nil {
		q.l.Warnf("error publishing state of %s: %s", u.Key, token.Error())
	}
}
