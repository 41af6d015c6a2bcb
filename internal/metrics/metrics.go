// Package metrics exposes room engine activity to Prometheus.
package metrics

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/nfrund/pollchat/internal/pubsub"
	"github.com/nfrund/pollchat/internal/rooms"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "pollchat"

// Collector owns a registry with the room counters. Counters are fed by room
// events; the active room gauge reads the store directly.
type Collector struct {
	registry *prometheus.Registry
	logger   *slog.Logger

	roomsCreated   prometheus.Counter
	roomsExpired   prometheus.Counter
	membersJoined  prometheus.Counter
	membersLeft    prometheus.Counter
	membersExpired prometheus.Counter
	messagesSent   prometheus.Counter
}

// NewCollector creates the collectors on a fresh registry, together with the
// Go runtime and process collectors.
func NewCollector(logger *slog.Logger) *Collector {
	if logger == nil {
		logger = slog.Default()
	}
	counter := func(name, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
		})
	}

	c := &Collector{
		registry:       prometheus.NewRegistry(),
		logger:         logger.With("service", "metrics"),
		roomsCreated:   counter("rooms_created_total", "Rooms created."),
		roomsExpired:   counter("rooms_expired_total", "Idle rooms removed by the sweeper."),
		membersJoined:  counter("members_joined_total", "Successful joins."),
		membersLeft:    counter("members_left_total", "Explicit leaves."),
		membersExpired: counter("members_expired_total", "Members removed after the presence timeout."),
		messagesSent:   counter("messages_sent_total", "Chat messages appended."),
	}

	c.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		c.roomsCreated,
		c.roomsExpired,
		c.membersJoined,
		c.membersLeft,
		c.membersExpired,
		c.messagesSent,
	)
	return c
}

// Registry returns the underlying registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// TrackRooms registers the active room gauge backed by count.
func (c *Collector) TrackRooms(count func() int) error {
	gauge := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "rooms_active",
		Help:      "Rooms currently held in memory.",
	}, func() float64 {
		return float64(count())
	})
	if err := c.registry.Register(gauge); err != nil {
		return fmt.Errorf("register rooms gauge: %w", err)
	}
	return nil
}

// Subscribe attaches the counters to the room events on the bus until ctx ends.
func (c *Collector) Subscribe(ctx context.Context, sub pubsub.Subscriber) error {
	counters := map[string]prometheus.Counter{
		rooms.EventRoomCreated.Name():   c.roomsCreated,
		rooms.EventRoomExpired.Name():   c.roomsExpired,
		rooms.EventMemberJoined.Name():  c.membersJoined,
		rooms.EventMemberLeft.Name():    c.membersLeft,
		rooms.EventMemberExpired.Name(): c.membersExpired,
		rooms.EventMessageSent.Name():   c.messagesSent,
	}

	for _, event := range rooms.AllEvents {
		counter := counters[event.Name()]
		err := pubsub.Subscribe(ctx, sub, event, func(ctx context.Context, room string, ev rooms.RoomEvent) error {
			counter.Inc()
			return nil
		})
		if err != nil {
			return fmt.Errorf("subscribe to %s: %w", event.Name(), err)
		}
		c.logger.Debug("Subscribed to room event", "topic", event.Name())
	}
	return nil
}

// Handler exposes the registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}
