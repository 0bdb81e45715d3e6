package http

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"

	"solar-wind-forecast/internal/models"
	"solar-wind-forecast/internal/render"
	"solar-wind-forecast/internal/services/forecast"
	"solar-wind-forecast/internal/session"
)

const (
	darkTheme         = "dark-mode"
	themeCookieMaxAge = 365 * 24 * time.Hour

	// HeaderForecastError carries the error slot next to a re-rendered tables fragment.
	HeaderForecastError = "X-Forecast-Error"
)

var errInvalidPage = errors.New("page must be a non-negative integer")

// SessionResponse is the JSON view of a session after a submission
type SessionResponse struct {
	State      string            `json:"state" example:"displayed"`
	Location   string            `json:"location" example:"Berlin"`
	Label      string            `json:"label" example:"Berlin, Land Berlin, Germany"`
	Error      string            `json:"error" example:""`
	Chart      *render.ChartSpec `json:"chart"`
	TablesHTML string            `json:"tables_html"`
}

// ThemeResponse is the theme after a toggle
type ThemeResponse struct {
	Theme string `json:"theme" example:"dark-mode"`
}

// session returns the caller's session. The cookie is re-issued on every request so that it
// expires together with the server-side idle timeout.
func (r *routes) session(c *fiber.Ctx) *session.Session {
	sess, _ := r.store.GetOrCreate(c.Cookies(r.opts.SessionCookie))

	cookie := &fiber.Cookie{
		Name:     r.opts.SessionCookie,
		Value:    sess.ID,
		Path:     "/",
		HTTPOnly: true,
		Secure:   r.opts.SecureCookies,
		SameSite: fiber.CookieSameSiteLaxMode,
	}
	if r.opts.SessionTTL > 0 {
		cookie.MaxAge = int(r.opts.SessionTTL.Seconds())
	}
	c.Cookie(cookie)

	return sess
}

func (r *routes) theme(c *fiber.Ctx) string {
	if c.Cookies(r.opts.ThemeCookie) == darkTheme {
		return darkTheme
	}
	return ""
}

func wantsJSON(c *fiber.Ctx) bool {
	return strings.Contains(c.Get(fiber.HeaderAccept), fiber.MIMEApplicationJSON)
}

func (r *routes) handleIndex(c *fiber.Ctx) error {
	view := r.service.View(r.session(c))

	c.Type("html", "utf-8")
	return r.views.Page(c, render.PageData{
		Title:   r.opts.AppName,
		Theme:   r.theme(c),
		Input:   view.Input,
		Label:   view.Label,
		Loading: view.State == session.StateLoading,
		Error:   view.Error,
		Chart:   view.Chart,
		Tables:  view.Tables,
	})
}

func (r *routes) sessionResponse(view forecast.View) (SessionResponse, error) {
	tables, err := r.views.TablesHTML(view.Tables)
	if err != nil {
		return SessionResponse{}, err
	}

	return SessionResponse{
		State:      view.State.String(),
		Location:   view.Input,
		Label:      view.Label,
		Error:      view.Error,
		Chart:      view.Chart,
		TablesHTML: tables,
	}, nil
}

// SubmitForecast godoc
// @Summary Submit a location
// @Description Geocodes the location, fetches a 3-day hourly forecast and stores it in the caller's session.
// @Description Browsers are redirected back to the page; clients sending Accept: application/json get the session view.
// @Tags Page
// @Accept x-www-form-urlencoded
// @Produce json
// @Param location formData string true "Place name or latitude,longitude" example(52.52,13.41)
// @Success 200 {object} SessionResponse "Session view, including a failed submission's error message"
// @Success 303 "Redirect to the page"
// @Failure 409 {object} models.ErrorResponse "A submission for this session is still running"
// @Router /forecast [post]
func (r *routes) handleSubmit(c *fiber.Ctx) error {
	sess := r.session(c)
	location := c.FormValue("location")

	err := r.service.Submit(c.UserContext(), sess, location)
	if errors.Is(err, session.ErrBusy) {
		r.l.Warning("submission rejected, session busy", map[string]any{"session": sess.ID})
		if wantsJSON(c) {
			return c.Status(fiber.StatusConflict).JSON(models.ErrorResponse{Error: err.Error()})
		}
		return c.Redirect("/", fiber.StatusSeeOther)
	}

	if !wantsJSON(c) {
		return c.Redirect("/", fiber.StatusSeeOther)
	}

	resp, err := r.sessionResponse(r.service.View(sess))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// pageParam reads the 0-based page index from a form or JSON body.
func pageParam(c *fiber.Ctx) (int, error) {
	var page int

	if strings.HasPrefix(string(c.Request().Header.ContentType()), fiber.MIMEApplicationJSON) {
		var body struct {
			Page *int `json:"page"`
		}
		if err := c.BodyParser(&body); err != nil || body.Page == nil {
			return 0, errInvalidPage
		}
		page = *body.Page
	} else {
		p, err := strconv.Atoi(strings.TrimSpace(c.FormValue("page")))
		if err != nil {
			return 0, errInvalidPage
		}
		page = p
	}

	if page < 0 {
		return 0, errInvalidPage
	}
	return page, nil
}

// SelectPage godoc
// @Summary Change the page of one series table
// @Description Updates only this series' pagination and returns the re-rendered tables. No network call is made.
// @Tags Page
// @Accept x-www-form-urlencoded
// @Produce html
// @Param series path string true "Series" Enums(solar, wind)
// @Param page formData integer true "0-based page index" minimum(0) example(3)
// @Success 200 {string} string "Tables HTML fragment"
// @Failure 400 {string} string "Invalid page"
// @Failure 404 {string} string "Unknown series"
// @Failure 409 {string} string "No forecast to page through"
// @Router /tables/{series} [post]
func (r *routes) handleSelectPage(c *fiber.Ctx) error {
	id, ok := models.ParseSeriesID(c.Params("series"))
	if !ok {
		return c.Status(fiber.StatusNotFound).SendString("unknown series " + strconv.Quote(c.Params("series")))
	}

	page, err := pageParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(err.Error())
	}

	sess := r.session(c)
	view, err := r.service.SelectPage(sess, id, page)
	if err != nil {
		return c.Status(fiber.StatusConflict).SendString(err.Error())
	}

	if view.Error != "" {
		c.Set(HeaderForecastError, view.Error)
	}
	c.Type("html", "utf-8")
	return r.views.Tables(c, view.Tables)
}

// ToggleTheme godoc
// @Summary Toggle the colour theme
// @Description Flips the theme cookie between light and dark and returns the new value.
// @Tags Page
// @Produce json
// @Success 200 {object} ThemeResponse
// @Router /theme [post]
func (r *routes) handleToggleTheme(c *fiber.Ctx) error {
	next := darkTheme
	if r.theme(c) == darkTheme {
		next = ""
	}

	c.Cookie(&fiber.Cookie{
		Name:     r.opts.ThemeCookie,
		Value:    next,
		Path:     "/",
		Expires:  time.Now().Add(themeCookieMaxAge),
		Secure:   r.opts.SecureCookies,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return c.JSON(ThemeResponse{Theme: next})
}

func statusFor(kind models.ErrorKind) int {
	switch kind {
	case models.ValidationError:
		return fiber.StatusBadRequest
	case models.NotFoundError:
		return fiber.StatusNotFound
	case models.UpstreamError, models.InvalidDataError:
		return fiber.StatusBadGateway
	case models.NetworkError:
		return fiber.StatusServiceUnavailable
	}
	return fiber.StatusInternalServerError
}

// GetForecast godoc
// @Summary Get a solar and wind power forecast
// @Description Resolves the location and returns the hourly solar and wind power density estimates for the next 3 days.
// @Tags Forecast
// @Accept json
// @Produce json
// @Param location query string true "Place name or latitude,longitude" example(52.52,13.41)
// @Success 200 {object} models.ForecastResponse "Successful response"
// @Failure 400 {object} models.ErrorResponse "Bad request - invalid location or coordinates"
// @Failure 404 {object} models.ErrorResponse "Location not found"
// @Failure 502 {object} models.ErrorResponse "Upstream error or invalid upstream data"
// @Failure 503 {object} models.ErrorResponse "Upstream unreachable"
// @Router /api/v1/forecast [get]
// @Example {curl} Example usage:
//
//	curl -X GET "http://localhost:8080/api/v1/forecast?location=52.52,13.41"
func (r *routes) handleForecastCall(c *fiber.Ctx) error {
	location := c.Query("location")

	resp, err := r.service.Forecast(c.UserContext(), location)
	if err != nil {
		kind := models.KindOf(err)
		r.l.Error(err, map[string]any{
			"location": location,
			"kind":     string(kind),
		})

		return c.Status(statusFor(kind)).JSON(models.ErrorResponse{
			Error: models.UserMessage(err),
			Kind:  string(kind),
		})
	}

	return c.JSON(resp)
}
