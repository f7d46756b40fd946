package gps

import "math"

// EarthRadiusKm is the mean earth radius used for all distances.
const EarthRadiusKm = 6371.0

// MaxDistanceKm is the distance between two antipodal points.
const MaxDistanceKm = EarthRadiusKm * math.Pi

func radians(deg float64) float64 {
	return deg * (math.Pi / 180)
}

// HaversineDistance returns the great-circle distance in kilometers between
// two points given in decimal degrees.
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	lat1Rad := radians(lat1)
	lon1Rad := radians(lon1)
	lat2Rad := radians(lat2)
	lon2Rad := radians(lon2)

	dlat := lat2Rad - lat1Rad
	dlon := lon2Rad - lon1Rad

	sinLat := math.Sin(dlat / 2)
	sinLon := math.Sin(dlon / 2)
	a := sinLat*sinLat + math.Cos(lat1Rad)*math.Cos(lat2Rad)*sinLon*sinLon
	// rounding can push a slightly outside [0,1] for near-antipodal points
	a = math.Max(0, math.Min(1, a))
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusKm * c
}
