package bootstrap

import (
	"trykey-dashboard/internal/config"
	"trykey-dashboard/internal/interfaces/router"

	"github.com/gofiber/fiber/v2"
)

// New creates the Fiber app for Vercel serverless (api handler imports this
// package, not internal). The background status poller is not started here;
// serverless instances are short-lived and statuses refresh on demand.
func New() (*fiber.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	app, _, _, _, err := router.CreateApp(cfg)
	return app, err
}
