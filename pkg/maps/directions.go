package maps

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	gmaps "googlemaps.github.io/maps"

	"ridedispatch/pkg/models"
)

var (
	ErrTooFewPoints = errors.New("at least two waypoints are required")
	ErrNoRoute      = errors.New("no route found")
)

// Router computes the driving distance through an ordered list of waypoints.
type Router interface {
	Distance(ctx context.Context, points []models.LatLng) (int, error)
}

type GoogleRouter struct {
	client *gmaps.Client
}

func NewGoogleRouter(apiKey string, opts ...gmaps.ClientOption) (*GoogleRouter, error) {
	client, err := gmaps.NewClient(append([]gmaps.ClientOption{gmaps.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create directions client: %w", err)
	}
	return &GoogleRouter{client: client}, nil
}

// Distance requests a driving route and sums the distance of every leg, in metres.
func (g *GoogleRouter) Distance(ctx context.Context, points []models.LatLng) (int, error) {
	if len(points) < 2 {
		return 0, ErrTooFewPoints
	}

	req := &gmaps.DirectionsRequest{
		Origin:      FormatPoint(points[0]),
		Destination: FormatPoint(points[len(points)-1]),
		Mode:        gmaps.TravelModeDriving,
	}
	for _, p := range points[1 : len(points)-1] {
		req.Waypoints = append(req.Waypoints, FormatPoint(p))
	}

	routes, _, err := g.client.Directions(ctx, req)
	if err != nil {
		return 0, fmt.Errorf("directions request failed: %w", err)
	}
	if len(routes) == 0 {
		return 0, ErrNoRoute
	}

	meters := 0
	for _, leg := range routes[0].Legs {
		meters += leg.Distance.Meters
	}
	return meters, nil
}

func FormatPoint(p models.LatLng) string {
	return strconv.FormatFloat(p.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(p.Lng, 'f', -1, 64)
}
