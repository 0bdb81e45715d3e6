package http

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/swagger"

	_ "solar-wind-forecast/docs"
	"solar-wind-forecast/internal/render"
	"solar-wind-forecast/internal/services/forecast"
	"solar-wind-forecast/internal/session"
	"solar-wind-forecast/pkg/logger"
	"solar-wind-forecast/web"
)

// Options carries the cookie settings the handlers need.
type Options struct {
	AppName       string
	SessionCookie string
	ThemeCookie   string
	SessionTTL    time.Duration
	// SecureCookies marks both cookies HTTPS-only.
	SecureCookies bool
}

type routes struct {
	service *forecast.ForecastService
	store   *session.Store
	views   *render.Views
	opts    Options
	l       *logger.Logger
}

func NewRouter(
	app *fiber.App,
	forecastService *forecast.ForecastService,
	store *session.Store,
	views *render.Views,
	opts Options,
	l *logger.Logger,
) {
	if opts.SessionCookie == "" {
		opts.SessionCookie = "sid"
	}
	if opts.ThemeCookie == "" {
		opts.ThemeCookie = "theme"
	}

	r := &routes{
		service: forecastService,
		store:   store,
		views:   views,
		opts:    opts,
		l:       l,
	}

	// Swagger documentation, served from the swag registry filled by the docs package
	app.Get("/swagger/*", swagger.New(swagger.Config{
		URL:         "/swagger/doc.json",
		DeepLinking: true,
	}))

	app.Use("/static", filesystem.New(filesystem.Config{
		Root:       http.FS(web.Static),
		PathPrefix: "static",
		MaxAge:     3600,
	}))

	// Page routes
	app.Get("/", r.handleIndex)
	app.Post("/forecast", r.handleSubmit)
	app.Post("/tables/:series", r.handleSelectPage)
	app.Post("/theme", r.handleToggleTheme)

	// API routes
	api := app.Group("/api/v1")
	api.Get("/forecast", r.handleForecastCall)
}
