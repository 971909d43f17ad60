package utils

import (
	"math"

	"github.com/mmcloughlin/geohash"

	"github.com/gocab/gocab/internal/pkg/models"
)

// EarthRadiusKm is Earth's mean radius used for all spherical math.
const EarthRadiusKm = 6371.0

// CentralAngle returns the angle, in radians, subtended at Earth's center by
// the great-circle arc between two coordinates. A point lies within radiusKm
// of another iff CentralAngle <= radiusKm / EarthRadiusKm.
func CentralAngle(p1, p2 models.Coordinate) float64 {
	lat1 := p1.Latitude * math.Pi / 180.0
	lon1 := p1.Longitude * math.Pi / 180.0
	lat2 := p2.Latitude * math.Pi / 180.0
	lon2 := p2.Longitude * math.Pi / 180.0

	dLat := lat2 - lat1
	dLon := lon2 - lon1
	a := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// CalculateDistance returns the great-circle distance between two coordinates
// in kilometers.
func CalculateDistance(p1, p2 models.Coordinate) float64 {
	return EarthRadiusKm * CentralAngle(p1, p2)
}

// WithinRadius reports whether candidate lies within radiusKm of center,
// treating the radius as an angular distance on the sphere.
func WithinRadius(center, candidate models.Coordinate, radiusKm float64) bool {
	return CentralAngle(center, candidate) <= radiusKm/EarthRadiusKm
}

// EncodeLocation converts a coordinate to a geohash string
func EncodeLocation(coord models.Coordinate, precision uint) string {
	return geohash.EncodeWithPrecision(coord.Latitude, coord.Longitude, precision)
}

// DecodeGeohash converts a geohash string to latitude and longitude
func DecodeGeohash(hash string) (latitude, longitude float64) {
	return geohash.Decode(hash)
}

// geohashCellKm holds each precision's cell dimensions at the equator, in
// kilometers: east-west width and north-south height. The height is the same
// at every latitude; the width shrinks with cos(latitude).
var geohashCellKm = [...]struct{ width, height float64 }{
	1: {5009.4, 4992.6},
	2: {1252.3, 624.1},
	3: {156.5, 156.0},
	4: {39.1, 19.5},
	5: {4.89, 4.89},
	6: {1.22, 0.61},
	7: {0.153, 0.153},
	8: {0.0382, 0.019},
}

// PrecisionForRadius picks the finest geohash precision whose cells, at the
// given latitude, are still at least radiusKm in both dimensions, so a query
// circle is always covered by the cell of its center plus the eight
// neighbors. Cells narrow east-west toward the poles, so the same radius can
// need a coarser precision at a higher latitude.
func PrecisionForRadius(radiusKm, latitude float64) uint {
	shrink := math.Cos(latitude * math.Pi / 180.0)
	if shrink < 0.01 {
		shrink = 0.01
	}
	for p := uint(len(geohashCellKm) - 1); p > 1; p-- {
		cell := geohashCellKm[p]
		if cell.height >= radiusKm && cell.width*shrink >= radiusKm {
			return p
		}
	}
	return 1
}

// CoverRadius returns the geohash cells whose union contains every point
// within radiusKm of center: the center cell and its neighbors at the
// precision chosen for the radius and the center's latitude.
func CoverRadius(center models.Coordinate, radiusKm float64) []string {
	precision := PrecisionForRadius(radiusKm, center.Latitude)
	cell := geohash.EncodeWithPrecision(center.Latitude, center.Longitude, precision)
	return append(geohash.Neighbors(cell), cell)
}
