package queue

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/XANi/shm2mqtt/descriptor"
	"github.com/XANi/shm2mqtt/entity"
	mqtt "github.com/eclipse/paho.mqtt.golang"
)

type Sensor interface {
	ProcessMessage(msg mqtt.Message) error
}

// NewSensor picks sensor implementation for the entity.
// Anything with "version" in key reports device firmware instead of state.
func NewSensor(ctx context.Context, e entity.Entity, out chan entity.Update) Sensor {
	if strings.Contains(e.Descriptor.Key, "version") {
		return &VersionSensor{ctx: ctx, key: e.Descriptor.Key, queue: out}
	}
	return &ValueSensor{ctx: ctx, desc: e.Descriptor, queue: out}
}

func send(ctx context.Context, queue chan entity.Update, u entity.Update) error {
	select {
	case queue <- u:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(time.Second):
		return fmt.Errorf("timeout on send queue")
	}
}

type ValueSensor struct {
	ctx   context.Context
	desc  descriptor.EntityDescriptor
	queue chan entity.Update
}

func (s *ValueSensor) ProcessMessage(msg mqtt.Message) error {
	v, err := s.desc.Coerce(string(msg.Payload()))
	if err != nil {
		return err
	}
	return send(s.ctx, s.queue, entity.Update{
		Kind:  entity.UpdateState,
		Key:   s.desc.Key,
		Topic: msg.Topic(),
		Value: v,
		TS:    time.Now(),
	})
}

type VersionSensor struct {
	ctx   context.Context
	key   string
	queue chan entity.Update
}

func (s *VersionSensor) ProcessMessage(msg mqtt.Message) error {
	return send(s.ctx, s.queue, entity.Update{
		Kind:  entity.UpdateVersion,
		Key:   s.key,
		Topic: msg.Topic(),
		Value: strings.TrimSpace(string(msg.Payload())),
		TS:    time.Now(),
	})
}
