package app

import (
	"log/slog"

	"github.com/jonboulle/clockwork"
	"github.com/nfrund/pollchat/internal/config"
	"github.com/nfrund/pollchat/internal/pubsub"
	"github.com/samber/do/v2"
)

// NewInjector creates the root injector with the core services every module
// may depend on: configuration, logger, clock and the event bus.
func NewInjector(cfg *config.Config, logger *slog.Logger, clock clockwork.Clock) *do.RootScope {
	i := do.New()

	do.ProvideValue(i, cfg)
	do.ProvideValue(i, logger)
	do.ProvideValue(i, clock)
	do.Provide(i, func(i do.Injector) (*pubsub.WatermillBridge, error) {
		return pubsub.NewWatermillBridge(do.MustInvoke[*slog.Logger](i)), nil
	})

	return i
}
