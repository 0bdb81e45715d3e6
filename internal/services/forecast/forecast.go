package forecast

import (
	"context"

	"github.com/pkg/errors"

	"solar-wind-forecast/internal/models"
	"solar-wind-forecast/internal/render"
	"solar-wind-forecast/internal/repositories"
	"solar-wind-forecast/internal/services/geocoder"
	"solar-wind-forecast/internal/services/power"
	"solar-wind-forecast/internal/session"
	"solar-wind-forecast/pkg/logger"
)

// Resolver turns user input into a location.
type Resolver interface {
	Resolve(ctx context.Context, input string) (geocoder.Location, error)
}

// View is what the page shows for a session at one moment.
type View struct {
	State  session.State
	Input  string
	Label  string
	Error  string
	Chart  *render.ChartSpec
	Tables []render.Table
}

type ForecastService struct {
	resolver Resolver
	repo     repositories.ForecastRepository
	days     int
	pageSize int
	l        *logger.Logger
}

func NewForecastService(resolver Resolver, repo repositories.ForecastRepository, days, pageSize int, l *logger.Logger) *ForecastService {
	if pageSize <= 0 {
		pageSize = render.DefaultPageSize
	}
	return &ForecastService{
		resolver: resolver,
		repo:     repo,
		days:     days,
		pageSize: pageSize,
		l:        l,
	}
}

type acquired struct {
	location geocoder.Location
	payload  *models.ForecastPayload
	series   *models.ForecastSeries
	derived  models.DerivedPower
}

// acquire geocodes and then fetches; the fetch never starts before the geocode resolved.
func (s *ForecastService) acquire(ctx context.Context, input string) (*acquired, error) {
	loc, err := s.resolver.Resolve(ctx, input)
	if err != nil {
		return nil, errors.Wrap(err, "resolve location")
	}

	payload, err := s.repo.FetchForecast(ctx, loc.Coordinates, s.days)
	if err != nil {
		return nil, errors.Wrapf(err, "fetch forecast from %s", s.repo.Name())
	}

	series, err := power.Validate(payload)
	if err != nil {
		return nil, errors.Wrap(err, "validate forecast")
	}

	return &acquired{
		location: loc,
		payload:  payload,
		series:   series,
		derived:  power.Derive(series),
	}, nil
}

// Submit runs the whole pipeline for one session. Every failure ends up in the session's
// error slot and the session never stays in Loading. session.ErrBusy is returned untouched
// when a submission for the same session is still running.
func (s *ForecastService) Submit(ctx context.Context, sess *session.Session, input string) error {
	if err := sess.BeginLoading(input); err != nil {
		return err
	}
	defer sess.EndLoading()

	a, err := s.acquire(ctx, input)
	if err != nil {
		s.l.Error(err, map[string]any{
			"session": sess.ID,
			"input":   input,
			"kind":    string(models.KindOf(err)),
		})
		sess.Fail(models.UserMessage(err))
		return err
	}

	sess.Display(&session.Forecast{
		Label:   a.location.Label,
		Coords:  a.location.Coordinates,
		Payload: a.payload,
		Chart:   render.BuildChart(a.series, a.derived, 0),
	})

	s.l.Info("forecast displayed", map[string]any{
		"session": sess.ID,
		"label":   a.location.Label,
		"coords":  a.location.Coordinates.String(),
		"hours":   a.series.Len(),
	})

	return nil
}

// SelectPage moves one series to page and re-renders from the stored forecast.
// It never touches the network.
func (s *ForecastService) SelectPage(sess *session.Session, id models.SeriesID, page int) (View, error) {
	if err := sess.SetPage(id, page); err != nil {
		return View{}, err
	}
	return s.View(sess), nil
}

// View re-validates the stored payload and derives the tables for the current pagination.
// Invalid data only fills the error slot; the stored forecast stays as it is. After a failed
// submission the stored forecast is kept but not shown, since it belongs to another input.
func (s *ForecastService) View(sess *session.Session) View {
	snap := sess.Snapshot()

	v := View{
		State: snap.State,
		Input: snap.Input,
		Error: snap.Error,
	}
	if snap.Forecast == nil || snap.State != session.StateDisplayed {
		return v
	}
	v.Label = snap.Forecast.Label
	v.Chart = snap.Forecast.Chart

	series, err := power.Validate(snap.Forecast.Payload)
	if err != nil {
		s.l.Error(errors.Wrap(err, "render stored forecast"), map[string]any{"session": sess.ID})
		sess.SetError(models.UserMessage(err))
		v.Error = models.UserMessage(err)
		return v
	}

	v.Tables = render.BuildTables(series, power.Derive(series), s.pageSize, snap.Pages)
	return v
}

// Forecast runs the pipeline without a session and returns every hour at once.
func (s *ForecastService) Forecast(ctx context.Context, input string) (*models.ForecastResponse, error) {
	a, err := s.acquire(ctx, input)
	if err != nil {
		return nil, err
	}

	n := a.series.Len()
	hours := make([]models.HourPower, n)
	for i := 0; i < n; i++ {
		hours[i] = models.HourPower{
			Time:       a.series.Timestamps[i],
			SolarPower: a.derived.Solar[i],
			WindPower:  a.derived.Wind[i],
		}
	}

	return &models.ForecastResponse{
		Location:    a.location.Label,
		Coordinates: a.location.Coordinates,
		Timezone:    a.payload.Timezone,
		PageSize:    s.pageSize,
		Pages:       render.PageCount(n, s.pageSize),
		Hours:       hours,
	}, nil
}
