package entity

import (
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

// ErrMalformedCoordinate is returned when a stored coordinate string cannot be
// parsed. Unparsable position data is a distinct condition from a store fault
// and from any business rejection.
var ErrMalformedCoordinate = errors.New("malformed coordinate string")

// Coordinates is a position as a pair of floating-point values. The store keeps
// positions as a single "lat,lon" string for compatibility with the existing
// schema; everywhere else this structured type is used.
type Coordinates struct {
	Lat float64
	Lon float64
}

// ParseCoordinates parses the "lat,lon" store encoding, splitting on the first
// comma. A missing comma or non-numeric component yields ErrMalformedCoordinate.
func ParseCoordinates(s string) (Coordinates, error) {
	delim := strings.Index(s, ",")
	if delim < 0 {
		return Coordinates{}, errors.Wrapf(ErrMalformedCoordinate, "no delimiter in %q", s)
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(s[:delim]), 64)
	if err != nil {
		return Coordinates{}, errors.Wrapf(ErrMalformedCoordinate, "bad latitude in %q", s)
	}

	lon, err := strconv.ParseFloat(strings.TrimSpace(s[delim+1:]), 64)
	if err != nil {
		return Coordinates{}, errors.Wrapf(ErrMalformedCoordinate, "bad longitude in %q", s)
	}

	return Coordinates{Lat: lat, Lon: lon}, nil
}

// String renders the "lat,lon" store encoding. Round-trips through
// ParseCoordinates without loss.
func (c Coordinates) String() string {
	return strconv.FormatFloat(c.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(c.Lon, 'f', -1, 64)
}

// Point converts the coordinates to an orb.Point for planar geometry.
// orb points are (x, y), i.e. (lon, lat).
func (c Coordinates) Point() orb.Point {
	return orb.Point{c.Lon, c.Lat}
}
