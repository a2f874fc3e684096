package ring

import "math"

// Record is one scanned region ("ring") from a metrics table.
// Theta/Phi are the spherical scan angles; Lat/Lon are derived once at load
// time and never recomputed afterwards.
type Record struct {
	ID     string
	Theta  float64 // colatitude, radians, 0 (north pole) .. π (south pole)
	Phi    float64 // azimuth, radians, 0 .. 2π
	HurstI float64 // fractal self-similarity score of the intensity channel
	CorrIP float64 // Pearson correlation between intensity and polarization

	// Derived sky coordinates in degrees.
	Lat float64 // -90 .. 90
	Lon float64 // -180 .. 180

	// Extra holds passthrough columns (radius, entropy, ...) keyed by header
	// name. Column order lives in Table.ExtraCols.
	Extra map[string]string
}

// Table is an immutable, in-order record set plus the passthrough schema.
type Table struct {
	Records   []Record
	ExtraCols []string
}

// LatLon converts scan angles to map coordinates in degrees.
// Latitude 0 is the galactic plane; longitude is shifted into [-180, 180).
func LatLon(theta, phi float64) (lat, lon float64) {
	lat = 90 - theta*180/math.Pi
	lon = phi*180/math.Pi - 180
	return lat, lon
}
