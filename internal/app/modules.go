package app

import (
	"github.com/nfrund/pollchat/internal/config"
	"github.com/nfrund/pollchat/internal/module"
	"github.com/nfrund/pollchat/internal/modules/chat"
	"github.com/nfrund/pollchat/internal/modules/metrics"
)

// NewModules creates and returns the list of all active modules for the application.
// This is the single source of truth for which features are enabled.
func NewModules(cfg *config.Config) []module.Module {
	modules := []module.Module{
		chat.New(cfg),
	}
	if cfg.MetricsEnabled {
		modules = append(modules, metrics.New())
	}
	return modules
}
