package queue

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/XANi/shm2mqtt/entity"
	mqtt "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"
)

// Client is the part of mqtt.Client queue uses
type Client interface {
	Subscribe(topic string, qos byte, callback mqtt.MessageHandler) mqtt.Token
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
}

type Queue struct {
	client    Client
	sensorMap map[string]Sensor
	updates   chan entity.Update
	cfg       *Config
	l         *zap.SugaredLogger
	// last version seen by run loop
	swVersion string
	sync.RWMutex
}

type Config struct {
	MQTTAddr string
	// ClientID defaults to shm2mqtt-<random>
	ClientID string
	Registry *entity.Registry
	Sinks    []entity.Sink
	// DiscoveryPrefix enables Home Assistant MQTT discovery under given prefix,
	// with converted values republished to <topic>/state
	DiscoveryPrefix string
	Logger          *zap.SugaredLogger
	Debug           bool
}

// New connects to the broker and subscribes to every entity topic on each (re)connect
func New(ctx context.Context, cfg *Config) (*Queue, error) {
	mqttURL, err := url.Parse(cfg.MQTTAddr)
	if err != nil {
		return nil, fmt.Errorf("cannot parse MQTT URL: %w", err)
	}
	if cfg.ClientID == "" {
		cfg.ClientID = defaultClientID()
	}
	q, err := newQueue(ctx, cfg)
	if err != nil {
		return nil, err
	}
	p, _ := mqttURL.User.Password()
	broker := *mqttURL
	broker.User = nil
	opts := mqtt.NewClientOptions().
		AddBroker(broker.String()).
		SetUsername(mqttURL.User.Username()).
		SetPassword(p).
		SetClientID(cfg.ClientID).
		SetKeepAlive(30 * time.Second).
		SetPingTimeout(5 * time.Second).
		SetAutoReconnect(true).
		SetOnConnectHandler(func(c mqtt.Client) {
			q.l.Infof("connected to %s", broker.String())
			if err := q.Subscribe(c); err != nil {
				q.l.Errorf("error subscribing: %s", err)
			}
			if err := q.Announce(); err != nil {
				q.l.Errorf("error announcing discovery: %s", err)
			}
		}).
		SetConnectionLostHandler(func(c mqtt.Client, err error) {
			q.l.Warnf("connection lost: %s", err)
		})
	client := mqtt.NewClient(opts)
	q.setClient(client)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("error connecting to %s: %w", broker.String(), token.Error())
	}
	go func() {
		<-ctx.Done()
		client.Disconnect(250)
	}()
	return q, nil
}

// NewWithClient uses already connected client
func NewWithClient(ctx context.Context, cfg *Config, client Client) (*Queue, error) {
	q, err := newQueue(ctx, cfg)
	if err != nil {
		return nil, err
	}
	q.setClient(client)
	if err := q.Subscribe(client); err != nil {
		return nil, err
	}
	return q, q.Announce()
}

func (q *Queue) setClient(c Client) {
	q.Lock()
	q.client = c
	q.Unlock()
}

func (q *Queue) getClient() Client {
	q.RLock()
	defer q.RUnlock()
	return q.client
}

func newQueue(ctx context.Context, cfg *Config) (*Queue, error) {
	if cfg.Registry == nil {
		return nil, fmt.Errorf("registry is required")
	}
	q := &Queue{
		sensorMap: map[string]Sensor{},
		updates:   make(chan entity.Update, 128),
		cfg:       cfg,
		l:         cfg.Logger,
	}
	if q.l == nil {
		q.l = zap.NewNop().Sugar()
	}
	for _, e := range cfg.Registry.Entities() {
		q.sensorMap[e.Topic] = NewSensor(ctx, e, q.updates)
	}
	go q.run(ctx)
	return q, nil
}

func (q *Queue) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case u := <-q.updates:
			if q.cfg.Debug {
				q.l.Debugf("%s: %v", u.Topic, u.Value)
			}
			for _, s := range q.cfg.Sinks {
				s.Update(u)
			}
			if q.cfg.DiscoveryPrefix != "" {
				q.republish(u)
			}
		}
	}
}

// Subscribe subscribes to topic of every sensor
func (q *Queue) Subscribe(c Client) error {
	q.RLock()
	topics := make([]string, 0, len(q.sensorMap))
	for t := range q.sensorMap {
		topics = append(topics, t)
	}
	q.RUnlock()
	for _, t := range topics {
		token := c.Subscribe(t, 1, q.handle)
		if token.Wait() && token.Error() != nil {
			return fmt.Errorf("error subscribing to %s: %w", t, token.Error())
		}
		q.l.Debugf("subscribed to %s", t)
	}
	return nil
}

func (q *Queue) handle(c mqtt.Client, m mqtt.Message) {
	q.RLock()
	f, ok := q.sensorMap[m.Topic()]
	q.RUnlock()
	if !ok {
		q.l.Warnf("message on unknown topic %s: %s", m.Topic(), string(m.Payload()))
		return
	}
	if err := f.ProcessMessage(m); err != nil {
		q.l.Warnf("could not process message %s [%s]: %s", m.Topic(), string(m.Payload()), err)
	}
}
