package chat

import (
	"context"
	"log/slog"
	"sync"

	"github.com/jonboulle/clockwork"
	"github.com/labstack/echo/v4"
	"github.com/nfrund/pollchat/internal/config"
	"github.com/nfrund/pollchat/internal/middleware"
	"github.com/nfrund/pollchat/internal/module"
	"github.com/nfrund/pollchat/internal/pubsub"
	"github.com/nfrund/pollchat/internal/rooms"
	"github.com/samber/do/v2"
)

// ChatModule implements the module.Module interface for the polling chat.
type ChatModule struct {
	module.BaseModule

	cfg     *config.Config
	cancel  context.CancelFunc
	janitor sync.WaitGroup
}

// New creates a new instance of the ChatModule.
func New(cfg *config.Config) *ChatModule {
	return &ChatModule{cfg: cfg}
}

// Name returns the module name.
func (m *ChatModule) Name() string {
	return "chat"
}

// Register provides the room store to the injector.
func (m *ChatModule) Register(i do.Injector) error {
	do.Provide(i, func(i do.Injector) (*rooms.Store, error) {
		logger := do.MustInvoke[*slog.Logger](i)
		clock := do.MustInvoke[clockwork.Clock](i)
		bus := do.MustInvoke[*pubsub.WatermillBridge](i)

		logger.Info("Initializing room store", "limits", m.cfg.Limits())
		return rooms.NewStore(
			rooms.WithClock(clock),
			rooms.WithLimits(m.cfg.Limits()),
			rooms.WithLogger(logger),
			rooms.WithPublisher(bus),
		), nil
	})
	return nil
}

// Boot sets up the routes and, when configured, the background janitor.
func (m *ChatModule) Boot(ctx context.Context, g *echo.Group, i do.Injector) error {
	store, err := do.Invoke[*rooms.Store](i)
	if err != nil {
		return err
	}
	logger := do.MustInvoke[*slog.Logger](i)

	// --- Start Background Services ---
	if m.cfg.SweepInterval > 0 {
		janitorCtx, cancel := context.WithCancel(ctx)
		m.cancel = cancel
		m.janitor.Add(1)
		go func() {
			defer m.janitor.Done()
			store.RunJanitor(janitorCtx, m.cfg.SweepInterval)
		}()
	}

	// --- Register HTTP Handlers ---
	logger.Info("Booting ChatModule: Setting up routes...", "route", m.cfg.ChatRoute)
	handler := NewHandler(store)

	limiter := middleware.RateLimiter(m.cfg.RateLimitPerMinute, func(c echo.Context) bool {
		action := c.QueryParam("action")
		return action != "create" && action != "join"
	})
	g.Any(m.cfg.ChatRoute, handler.Dispatch, limiter)

	if m.cfg.AdminEnabled {
		g.GET(AdminPath, handler.AdminRooms)
	}
	return nil
}

// Shutdown stops the janitor. Rooms are ephemeral and simply dropped.
func (m *ChatModule) Shutdown(ctx context.Context) error {
	slog.Info("Shutting down ChatModule...")
	if m.cancel == nil {
		return nil
	}
	m.cancel()

	done := make(chan struct{})
	go func() {
		m.janitor.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
