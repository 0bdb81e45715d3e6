// Package session holds the per-browser forecast state: the Idle/Loading/Displayed/Error
// machine, the stored forecast, the current chart and the per-series pagination.
package session

import (
	"sync"
	"time"

	"github.com/pkg/errors"

	"solar-wind-forecast/internal/models"
	"solar-wind-forecast/internal/render"
)

type State int

const (
	StateIdle State = iota
	StateLoading
	StateDisplayed
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateDisplayed:
		return "displayed"
	case StateError:
		return "error"
	}
	return "unknown"
}

const msgInterrupted = "The forecast request was interrupted. Please try again."

var (
	ErrBusy       = errors.New("A forecast request is already in progress.")
	ErrNoForecast = errors.New("There is no forecast to page through yet.")
)

// Forecast is a successfully fetched and validated forecast as the session stores it.
type Forecast struct {
	Label   string
	Coords  models.Coordinates
	Payload *models.ForecastPayload
	Chart   *render.ChartSpec
}

// Snapshot is a copy of the session state taken under its lock.
type Snapshot struct {
	ID       string
	State    State
	Input    string
	Forecast *Forecast
	Pages    map[models.SeriesID]int
	Error    string
}

type Session struct {
	ID string

	mu       sync.Mutex
	state    State
	input    string
	forecast *Forecast
	revision int
	pages    map[models.SeriesID]int
	errMsg   string
	lastSeen time.Time
}

func newSession(id string, now time.Time) *Session {
	return &Session{
		ID:       id,
		pages:    make(map[models.SeriesID]int),
		lastSeen: now,
	}
}

// BeginLoading moves the session to Loading. A session that is already loading
// rejects the call with ErrBusy and keeps the in-flight request.
func (s *Session) BeginLoading(input string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateLoading {
		return ErrBusy
	}
	s.state = StateLoading
	s.input = input
	return nil
}

// EndLoading is deferred by every submission. If neither Display nor Fail ran the
// session is moved to Error so that it never stays in Loading.
func (s *Session) EndLoading() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateLoading {
		s.state = StateError
		s.errMsg = msgInterrupted
	}
}

// Display stores f as the current forecast, assigns its chart the next revision and
// resets pagination for both series.
func (s *Session) Display(f *Forecast) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.revision++
	if f.Chart != nil {
		f.Chart.Revision = s.revision
	}
	s.forecast = f
	s.pages = make(map[models.SeriesID]int)
	s.errMsg = ""
	s.state = StateDisplayed
}

// Fail records msg in the error slot. A previously displayed forecast is kept in the session
// but is no longer displayed.
func (s *Session) Fail(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = StateError
	s.errMsg = msg
}

// SetPage changes the page of one series of the displayed forecast and clears the error slot.
func (s *Session) SetPage(id models.SeriesID, page int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.forecast == nil || s.state != StateDisplayed {
		return ErrNoForecast
	}
	s.pages[id] = page
	s.errMsg = ""
	return nil
}

// SetError fills the error slot without changing state or the stored forecast.
func (s *Session) SetError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.errMsg = msg
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	pages := make(map[models.SeriesID]int, len(s.pages))
	for k, v := range s.pages {
		pages[k] = v
	}

	return Snapshot{
		ID:       s.ID,
		State:    s.state,
		Input:    s.input,
		Forecast: s.forecast,
		Pages:    pages,
		Error:    s.errMsg,
	}
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateLoading {
		return 0
	}
	return now.Sub(s.lastSeen)
}
