package gps

import (
	"fmt"

	"github.com/golang/geo/s2"
)

// Coordinates is a point on the earth surface in decimal degrees.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func NewCoordinates(lat, long float64) Coordinates {
	return Coordinates{Latitude: lat, Longitude: long}
}

// IsValid reports whether both components are in their geographic range.
// Out of range values are still accepted by DistanceTo.
func (c Coordinates) IsValid() bool {
	return c.Latitude >= -90 && c.Latitude <= 90 && c.Longitude >= -180 && c.Longitude <= 180
}

func (c Coordinates) String() string {
	return fmt.Sprintf("[%f;%f]", c.Latitude, c.Longitude)
}

func (c Coordinates) ISO6709() string {
	return fmt.Sprintf("%+010.6f%+011.6f/", c.Latitude, c.Longitude)
}

// DistanceTo returns the great-circle distance to other in kilometers.
func (c Coordinates) DistanceTo(other Coordinates) float64 {
	return HaversineDistance(c.Latitude, c.Longitude, other.Latitude, other.Longitude)
}

func (c Coordinates) LatLng() s2.LatLng {
	return s2.LatLngFromDegrees(c.Latitude, c.Longitude)
}
