package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"

	"solar-wind-forecast/config"
	v1 "solar-wind-forecast/internal/controllers/http/v1"
	"solar-wind-forecast/internal/render"
	"solar-wind-forecast/internal/repositories"
	"solar-wind-forecast/internal/services/forecast"
	"solar-wind-forecast/internal/services/geocoder"
	"solar-wind-forecast/internal/session"
	"solar-wind-forecast/pkg/httpserver"
	"solar-wind-forecast/pkg/logger"
	"solar-wind-forecast/pkg/observe"
)

// @title Solar Wind Forecast
// @version 1.0.0
// @description Hourly solar and wind power density estimates derived from the Open-Meteo forecast.

// @contact.name Solar Wind Forecast Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

// @tag.name Forecast
// @tag.description Power forecast operations
// @tag.name Page
// @tag.description Browser page interactions
func main() {
	ctx, cancel := context.WithCancel(context.Background())

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Println("cannot load .env file: ", err.Error())
	}

	cnf, err := config.NewConfig()
	if err != nil {
		log.Fatalln(err.Error())
	}

	sentryHook := observe.NewSentryHook(cnf.App.Env, cnf.App.Name, cnf.IsDevelopment() && cnf.Sentry.Debug, cnf.Sentry.DSN)

	l := logger.NewZapLoggerWithOptions(cnf.App.Name, logger.Options{
		AppEnv: cnf.App.Env,
		Level:  cnf.Log.Level,
		Format: cnf.Log.Format,
	}, os.Stdout, sentryHook)
	sentryHook.SetLogger(l)

	views, err := render.NewViews()
	if err != nil {
		l.Fatal("cannot parse page templates", map[string]any{"err": err})
	}

	app := httpserver.InitFiberServer(httpserver.Options{
		AppName:      cnf.App.Name,
		ReadTimeout:  time.Duration(cnf.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cnf.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cnf.Server.IdleTimeout) * time.Second,
	}, l)

	geocodingRepo, forecastRepo := repositories.InitRepositories(cnf, l)

	service := forecast.NewForecastService(
		geocoder.New(geocodingRepo, l),
		forecastRepo,
		cnf.Forecast.Days,
		cnf.Forecast.PageSize,
		l,
	)

	sessionTTL := time.Duration(cnf.Session.TTL) * time.Minute
	store := session.NewStore(sessionTTL, l)
	go store.Run(ctx, time.Duration(cnf.Session.JanitorInterval)*time.Minute)

	v1.NewRouter(
		app,
		service,
		store,
		views,
		v1.Options{
			AppName:       cnf.App.Name,
			SessionCookie: cnf.Session.CookieName,
			ThemeCookie:   cnf.Session.ThemeCookieName,
			SessionTTL:    sessionTTL,
			SecureCookies: cnf.IsProduction(),
		},
		l,
	)

	go func() {
		if err := app.Listen(":" + cnf.Server.Port); err != nil {
			l.Fatal("cannot run the server", map[string]any{"err": err})
		}
	}()

	l.Info("application started successfully", map[string]any{
		"port":    cnf.Server.Port,
		"env":     cnf.App.Env,
		"version": cnf.App.Version,
	})

	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer func() {
		l.Warning("stopping application services")
		signal.Stop(sigCh)
		close(sigCh)

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		_ = app.ShutdownWithContext(shutdownCtx)
		cancel()
		sentryHook.Flush()
		_ = l.Stop()
	}()

	select {
	case <-sigCh:
		fmt.Println("received shutdown signal")
	case <-ctx.Done():
		fmt.Println("context cancelled")
	}
}
