package geocoder

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"solar-wind-forecast/internal/models"
	"solar-wind-forecast/internal/repositories"
	"solar-wind-forecast/pkg/logger"
)

const errorPrefix = "Error finding location: "

// Location is a resolved user input.
type Location struct {
	Label       string
	Coordinates models.Coordinates
}

type Geocoder struct {
	repo repositories.GeocodingRepository
	l    *logger.Logger
}

func New(repo repositories.GeocodingRepository, l *logger.Logger) *Geocoder {
	return &Geocoder{
		repo: repo,
		l:    l,
	}
}

// Resolve turns free text or a literal "lat,lon" into coordinates. Literal coordinates never hit
// the network. Every returned error is a *models.Error whose message starts with "Error finding location: ".
func (g *Geocoder) Resolve(ctx context.Context, input string) (Location, error) {
	input = strings.TrimSpace(input)

	if input == "" {
		return Location{}, models.NewError(models.ValidationError, models.MsgEmptyLocation, nil).WithPrefix(errorPrefix)
	}

	if strings.Contains(input, ",") {
		coords, err := ParseCoordinates(input)
		if err != nil {
			return Location{}, withPrefix(err)
		}

		g.l.Debug("using literal coordinates", map[string]any{"coords": coords.String()})
		return Location{Label: coords.String(), Coordinates: coords}, nil
	}

	results, err := g.repo.Search(ctx, input)
	if err != nil {
		g.l.Warning("geocoding failed", map[string]any{"input": input, "err": err})

		return Location{}, withPrefix(err)
	}

	if len(results) == 0 {
		return Location{}, models.NewError(
			models.NotFoundError,
			fmt.Sprintf("Location %q not found. Please be more specific or use coordinates.", input),
			nil,
		).WithPrefix(errorPrefix)
	}

	best := results[0]
	g.l.Info("location resolved", map[string]any{
		"input":  input,
		"name":   best.Name,
		"coords": best.Coordinates().String(),
	})

	return Location{Label: label(best), Coordinates: best.Coordinates()}, nil
}

// ParseCoordinates accepts exactly two comma-separated numbers, latitude first.
// It returns a ValidationError for anything else, including NaN and out-of-range values.
func ParseCoordinates(input string) (models.Coordinates, error) {
	parts := strings.Split(input, ",")
	if len(parts) != 2 {
		return models.Coordinates{}, invalidCoordinates(fmt.Errorf("expected 2 values, got %d", len(parts)))
	}

	lat, err := parseComponent(parts[0])
	if err != nil {
		return models.Coordinates{}, invalidCoordinates(err)
	}
	lon, err := parseComponent(parts[1])
	if err != nil {
		return models.Coordinates{}, invalidCoordinates(err)
	}

	coords := models.Coordinates{Latitude: lat, Longitude: lon}
	if !coords.Valid() {
		return models.Coordinates{}, invalidCoordinates(fmt.Errorf("out of range: %s", input))
	}

	return coords, nil
}

func parseComponent(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("empty value")
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("not a finite number: %s", raw)
	}

	return v, nil
}

// withPrefix keeps the kind of a *models.Error; anything else becomes an UpstreamError.
func withPrefix(err error) error {
	var e *models.Error
	if errors.As(err, &e) {
		return e.WithPrefix(errorPrefix)
	}
	return models.NewError(models.UpstreamError, "Geocoding failed.", err).WithPrefix(errorPrefix)
}

func invalidCoordinates(cause error) error {
	return models.NewError(models.ValidationError, models.MsgInvalidCoordinates, cause)
}

func label(r models.GeocodingResult) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{r.Name, r.Admin1, r.Country} {
		if p != "" && (len(parts) == 0 || parts[len(parts)-1] != p) {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return r.Coordinates().String()
	}
	return strings.Join(parts, ", ")
}
