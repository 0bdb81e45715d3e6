package geocoder_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solar-wind-forecast/internal/models"
	"solar-wind-forecast/internal/services/geocoder"
	"solar-wind-forecast/pkg/logger"
)

// MockRepository implements GeocodingRepository for testing
type MockRepository struct {
	results   []models.GeocodingResult
	err       error
	callCount int
	lastName  string
}

func (m *MockRepository) Name() string {
	return "mock-geocoding"
}

func (m *MockRepository) Search(ctx context.Context, name string) ([]models.GeocodingResult, error) {
	m.callCount++
	m.lastName = name
	return m.results, m.err
}

func newGeocoder(repo *MockRepository) *geocoder.Geocoder {
	return geocoder.New(repo, logger.NewZapLoggerWithOptions("test-app", logger.Options{Level: "error"}))
}

func TestResolve_LiteralCoordinates(t *testing.T) {
	inputs := map[string]models.Coordinates{
		"52.52,13.41":       {Latitude: 52.52, Longitude: 13.41},
		" 52.52 , 13.41 ":   {Latitude: 52.52, Longitude: 13.41},
		"-90,-180":          {Latitude: -90, Longitude: -180},
		"90,180":            {Latitude: 90, Longitude: 180},
		"0,0":               {Latitude: 0, Longitude: 0},
		"-33.8688,151.2093": {Latitude: -33.8688, Longitude: 151.2093},
		"1e1,2.5e1":         {Latitude: 10, Longitude: 25},
	}

	for input, want := range inputs {
		t.Run(input, func(t *testing.T) {
			repo := &MockRepository{}
			loc, err := newGeocoder(repo).Resolve(context.Background(), input)

			require.NoError(t, err)
			assert.Equal(t, want, loc.Coordinates)
			assert.Equal(t, 0, repo.callCount)
		})
	}
}

func TestResolve_LiteralCoordinatesGrid(t *testing.T) {
	repo := &MockRepository{}
	g := newGeocoder(repo)

	for lat := -90.0; lat <= 90; lat += 22.5 {
		for lon := -180.0; lon <= 180; lon += 45 {
			loc, err := g.Resolve(context.Background(), fmt.Sprintf("%g,%g", lat, lon))
			require.NoError(t, err)
			assert.Equal(t, models.Coordinates{Latitude: lat, Longitude: lon}, loc.Coordinates)
		}
	}
	assert.Equal(t, 0, repo.callCount)
}

func TestResolve_InvalidCoordinates(t *testing.T) {
	inputs := []string{
		"91,0",
		"-90.5,0",
		"0,180.01",
		"0,-181",
		"abc,13.41",
		"52.52,east",
		"52.52,",
		",13.41",
		"1,2,3",
		"NaN,0",
		"0,Inf",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			repo := &MockRepository{}
			_, err := newGeocoder(repo).Resolve(context.Background(), input)

			require.Error(t, err)
			assert.Equal(t, models.ValidationError, models.KindOf(err))
			assert.Equal(t, "Error finding location: "+models.MsgInvalidCoordinates, models.UserMessage(err))
			assert.Equal(t, 0, repo.callCount)
		})
	}
}

func TestResolve_EmptyInput(t *testing.T) {
	repo := &MockRepository{}
	_, err := newGeocoder(repo).Resolve(context.Background(), "   ")

	require.Error(t, err)
	assert.Equal(t, models.ValidationError, models.KindOf(err))
	assert.Equal(t, 0, repo.callCount)
}

func TestResolve_PlaceName(t *testing.T) {
	repo := &MockRepository{results: []models.GeocodingResult{
		{Name: "Berlin", Admin1: "Land Berlin", Country: "Germany", Latitude: 52.52437, Longitude: 13.41053},
		{Name: "Berlin", Admin1: "New Hampshire", Country: "United States", Latitude: 44.46867, Longitude: -71.18508},
	}}

	loc, err := newGeocoder(repo).Resolve(context.Background(), " Berlin ")
	require.NoError(t, err)

	assert.Equal(t, 1, repo.callCount)
	assert.Equal(t, "Berlin", repo.lastName)
	assert.Equal(t, models.Coordinates{Latitude: 52.52437, Longitude: 13.41053}, loc.Coordinates)
	assert.Equal(t, "Berlin, Land Berlin, Germany", loc.Label)
}

func TestResolve_NotFound(t *testing.T) {
	repo := &MockRepository{}
	_, err := newGeocoder(repo).Resolve(context.Background(), "Nowhere12345")

	require.Error(t, err)
	assert.Equal(t, models.NotFoundError, models.KindOf(err))
	assert.Equal(t, 1, repo.callCount)
	msg := models.UserMessage(err)
	assert.True(t, strings.HasPrefix(msg, "Error finding location: "))
	assert.Contains(t, msg, `Location "Nowhere12345" not found`)
}

func TestResolve_RepositoryErrorsKeepKind(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want models.ErrorKind
	}{
		{"upstream", models.NewError(models.UpstreamError, "Geocoding API error: 500 Internal Server Error", nil), models.UpstreamError},
		{"network", models.NewError(models.NetworkError, "Could not reach the geocoding service.", errors.New("dial")), models.NetworkError},
		{"unclassified", errors.New("weird"), models.UpstreamError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &MockRepository{err: tt.err}
			_, err := newGeocoder(repo).Resolve(context.Background(), "Berlin")

			require.Error(t, err)
			assert.Equal(t, tt.want, models.KindOf(err))
			assert.True(t, strings.HasPrefix(models.UserMessage(err), "Error finding location: "))
		})
	}
}

func TestParseCoordinates(t *testing.T) {
	coords, err := geocoder.ParseCoordinates("45.44,12.33")
	require.NoError(t, err)
	assert.Equal(t, models.Coordinates{Latitude: 45.44, Longitude: 12.33}, coords)

	_, err = geocoder.ParseCoordinates("45.44;12.33")
	assert.Equal(t, models.ValidationError, models.KindOf(err))
}
