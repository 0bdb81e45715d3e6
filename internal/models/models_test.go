package models

import (
	"errors"
	"fmt"
	"math"
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestCoordinates_Valid(t *testing.T) {
	tests := []struct {
		name   string
		coords Coordinates
		want   bool
	}{
		{"berlin", Coordinates{52.52, 13.41}, true},
		{"corners", Coordinates{-90, 180}, true},
		{"lat too high", Coordinates{90.0001, 0}, false},
		{"lon too low", Coordinates{0, -180.5}, false},
		{"nan", Coordinates{math.NaN(), 0}, false},
		{"inf", Coordinates{0, math.Inf(1)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.coords.Valid())
		})
	}
}

func TestError_KindSurvivesWrapping(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := NewError(NetworkError, MsgNetwork, cause)

	wrapped := pkgerrors.Wrap(fmt.Errorf("fetch: %w", err), "pipeline")

	assert.Equal(t, NetworkError, KindOf(wrapped))
	assert.Equal(t, MsgNetwork, UserMessage(wrapped))
	assert.ErrorIs(t, wrapped, cause)
	assert.Contains(t, err.Error(), "connection refused")
	assert.NotContains(t, err.UserMessage(), "connection refused")
}

func TestError_WithPrefix(t *testing.T) {
	err := NewError(NotFoundError, `Location "x" not found.`, nil).WithPrefix("Error finding location: ")

	assert.Equal(t, `Error finding location: Location "x" not found.`, err.UserMessage())
	assert.Equal(t, NotFoundError, err.Kind)
}

func TestUserMessage_UnknownError(t *testing.T) {
	assert.Equal(t, ErrorKind(""), KindOf(errors.New("plain")))
	assert.NotEmpty(t, UserMessage(errors.New("plain")))
}

func TestParseSeriesID(t *testing.T) {
	id, ok := ParseSeriesID("wind")
	assert.True(t, ok)
	assert.Equal(t, SeriesWind, id)

	_, ok = ParseSeriesID("hydro")
	assert.False(t, ok)
}

func TestDerivedPower_Series(t *testing.T) {
	d := DerivedPower{Solar: []float64{1}, Wind: []float64{2}}
	assert.Equal(t, []float64{1}, d.Series(SeriesSolar))
	assert.Equal(t, []float64{2}, d.Series(SeriesWind))
}
