package skymap

import "math"

// Mollweide projects sky coordinates (degrees) onto the plane of an
// equal-area 2:1 ellipse. x spans ±2√2 at the equator, y spans ±√2 at the
// poles. The auxiliary angle is solved by Newton iteration.
func Mollweide(latDeg, lonDeg float64) (x, y float64) {
	phi := latDeg * math.Pi / 180
	lam := lonDeg * math.Pi / 180

	theta := phi
	if math.Abs(math.Abs(phi)-math.Pi/2) > 1e-10 {
		target := math.Pi * math.Sin(phi)
		for i := 0; i < 50; i++ {
			d := 2 + 2*math.Cos(2*theta)
			if math.Abs(d) < 1e-12 {
				break
			}
			delta := (2*theta + math.Sin(2*theta) - target) / d
			theta -= delta
			if math.Abs(delta) < 1e-10 {
				break
			}
		}
	}

	x = 2 * math.Sqrt2 / math.Pi * lam * math.Cos(theta)
	y = math.Sqrt2 * math.Sin(theta)
	return x, y
}
