package metrics

import (
	"context"
	"log/slog"

	"github.com/labstack/echo/v4"
	roommetrics "github.com/nfrund/pollchat/internal/metrics"
	"github.com/nfrund/pollchat/internal/module"
	"github.com/nfrund/pollchat/internal/pubsub"
	"github.com/nfrund/pollchat/internal/rooms"
	"github.com/samber/do/v2"
)

// Path is where the Prometheus registry is exposed.
const Path = "/metrics"

// MetricsModule serves room engine metrics. It reads the room store the chat
// module provides.
type MetricsModule struct {
	module.BaseModule
}

// New creates a new instance of the MetricsModule.
func New() *MetricsModule {
	return &MetricsModule{}
}

// Name returns the module name.
func (m *MetricsModule) Name() string {
	return "metrics"
}

// Register provides the collector to the injector.
func (m *MetricsModule) Register(i do.Injector) error {
	do.Provide(i, func(i do.Injector) (*roommetrics.Collector, error) {
		return roommetrics.NewCollector(do.MustInvoke[*slog.Logger](i)), nil
	})
	return nil
}

// Boot wires the collector to the room store and the event bus and mounts
// the scrape endpoint.
func (m *MetricsModule) Boot(ctx context.Context, g *echo.Group, i do.Injector) error {
	collector := do.MustInvoke[*roommetrics.Collector](i)
	store, err := do.Invoke[*rooms.Store](i)
	if err != nil {
		return err
	}
	bus := do.MustInvoke[*pubsub.WatermillBridge](i)

	if err := collector.TrackRooms(store.Len); err != nil {
		return err
	}
	if err := collector.Subscribe(ctx, bus); err != nil {
		return err
	}

	g.GET(Path, echo.WrapHandler(collector.Handler()))
	return nil
}
