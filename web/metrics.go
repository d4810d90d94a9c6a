package web

import (
	"net/http"

	"github.com/XANi/shm2mqtt/entity"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics exports sensor values, it is an entity.Sink
type Metrics struct {
	reg     *prometheus.Registry
	value   *prometheus.GaugeVec
	updates *prometheus.CounterVec
	info    *prometheus.GaugeVec
	units   map[string]string
	serial  string
	r       *entity.Registry
}

func NewMetrics(r *entity.Registry) *Metrics {
	m := &Metrics{
		reg: prometheus.NewRegistry(),
		value: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "shm2",
			Subsystem: "sensor",
			Name:      "value",
			Help:      "last converted value of numeric sensor",
		}, []string{"key", "unit"}),
		updates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "shm2",
			Subsystem: "sensor",
			Name:      "updates_total",
			Help:      "processed messages per sensor",
		}, []string{"key"}),
		info: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "shm2",
			Subsystem: "device",
			Name:      "info",
			Help:      "device firmware version",
		}, []string{"serial", "sw_version"}),
		units:  map[string]string{},
		serial: r.Device().SerialNumber,
		r:      r,
	}
	for _, e := range r.Entities() {
		m.units[e.Descriptor.Key] = e.Descriptor.Unit.String()
	}
	m.reg.MustRegister(collectors.NewBuildInfoCollector())
	m.reg.MustRegister(collectors.NewGoCollector())
	m.reg.MustRegister(m.value, m.updates, m.info)
	return m
}

func (m *Metrics) Update(u entity.Update) {
	m.updates.WithLabelValues(u.Key).Inc()
	switch u.Kind {
	case entity.UpdateVersion:
		m.info.Reset()
		v, _ := u.Value.(string)
		m.info.WithLabelValues(m.serial, v).Set(1)
	case entity.UpdateState:
		if !m.r.Enabled(u.Key) {
			m.value.DeleteLabelValues(u.Key, m.units[u.Key])
			return
		}
		var f float64
		switch t := u.Value.(type) {
		case int64:
			f = float64(t)
		case float64:
			f = t
		default:
			return
		}
		m.value.WithLabelValues(u.Key, m.units[u.Key]).Set(f)
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}
