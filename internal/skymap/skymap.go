// Package skymap renders ring records as an annotated Mollweide scatter map.
package skymap

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/AstraForge/skyhound-cli/internal/ring"
)

// Options controls what gets drawn around the record scatter.
type Options struct {
	Title string
	// GalacticCut shades the in-plane exclusion band |lat| <= cut when > 0.
	GalacticCut float64
	// LabelTop annotates the first N highlighted records with their IDs.
	LabelTop int
}

var (
	bgColor    = color.NRGBA{R: 110, G: 110, B: 110, A: 120}
	posColor   = color.NRGBA{R: 255, G: 51, B: 51, A: 255}  // positive correlation
	negColor   = color.NRGBA{R: 51, G: 255, B: 255, A: 255} // negative correlation
	bandColor  = color.NRGBA{R: 200, G: 170, B: 60, A: 45}
	frameColor = color.NRGBA{R: 60, G: 60, B: 60, A: 255}
)

// Render draws every record in all as a dim background point and the
// highlighted records on top, colored by correlation sign and sized by
// correlation strength, then saves a PNG to path. Highlighted is expected to
// already be ranked; label annotation follows its order.
func Render(path string, all, highlighted []ring.Record, opt Options) error {
	p := plot.New()
	p.Title.Text = opt.Title
	p.HideAxes()
	p.X.Min, p.X.Max = -2*math.Sqrt2, 2*math.Sqrt2
	p.Y.Min, p.Y.Max = -math.Sqrt2, math.Sqrt2

	if err := addFrame(p); err != nil {
		return fmt.Errorf("sky frame: %w", err)
	}
	if opt.GalacticCut > 0 {
		if err := addMaskBand(p, opt.GalacticCut); err != nil {
			return fmt.Errorf("mask band: %w", err)
		}
	}

	if len(all) > 0 {
		bg, err := plotter.NewScatter(projectRecords(all))
		if err != nil {
			return fmt.Errorf("background scatter: %w", err)
		}
		bg.GlyphStyle = draw.GlyphStyle{
			Color:  bgColor,
			Radius: vg.Points(1.2),
			Shape:  draw.CircleGlyph{},
		}
		p.Add(bg)
	}

	if len(highlighted) > 0 {
		hi, err := plotter.NewScatter(projectRecords(highlighted))
		if err != nil {
			return fmt.Errorf("highlight scatter: %w", err)
		}
		recs := highlighted
		hi.GlyphStyleFunc = func(i int) draw.GlyphStyle {
			c := posColor
			if recs[i].CorrIP < 0 {
				c = negColor
			}
			// 2pt floor so weak survivors stay visible.
			r := vg.Points(2 + 6*math.Min(math.Abs(recs[i].CorrIP), 1))
			return draw.GlyphStyle{Color: c, Radius: r, Shape: draw.RingGlyph{}}
		}
		p.Add(hi)

		if opt.LabelTop > 0 {
			if err := addLabels(p, highlighted, opt.LabelTop); err != nil {
				return fmt.Errorf("labels: %w", err)
			}
		}
	}

	if err := p.Save(12*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("save sky map: %w", err)
	}
	return nil
}

func projectRecords(recs []ring.Record) plotter.XYs {
	pts := make(plotter.XYs, len(recs))
	for i, r := range recs {
		x, y := Mollweide(r.Lat, r.Lon)
		pts[i] = plotter.XY{X: x, Y: y}
	}
	return pts
}

// addFrame draws the ellipse boundary and the equator line.
func addFrame(p *plot.Plot) error {
	edge := make(plotter.XYs, 0, 262)
	for i := 0; i <= 130; i++ {
		lat := -90 + float64(i)*180/130
		x, y := Mollweide(lat, 180)
		edge = append(edge, plotter.XY{X: x, Y: y})
	}
	for i := 130; i >= 0; i-- {
		lat := -90 + float64(i)*180/130
		x, y := Mollweide(lat, -180)
		edge = append(edge, plotter.XY{X: x, Y: y})
	}
	outline, err := plotter.NewLine(edge)
	if err != nil {
		return err
	}
	outline.Color = frameColor
	outline.Width = vg.Points(1)
	p.Add(outline)

	equator, err := plotter.NewLine(plotter.XYs{
		{X: -2 * math.Sqrt2, Y: 0},
		{X: 2 * math.Sqrt2, Y: 0},
	})
	if err != nil {
		return err
	}
	equator.Color = frameColor
	equator.Dashes = []vg.Length{vg.Points(2), vg.Points(3)}
	p.Add(equator)
	return nil
}

// addMaskBand shades the excluded latitude band. Mollweide y depends only on
// latitude, so the band is a polygon between the two constant-lat edges.
func addMaskBand(p *plot.Plot, cut float64) error {
	var pts plotter.XYs
	for lon := -180.0; lon <= 180; lon += 3 {
		x, y := Mollweide(cut, lon)
		pts = append(pts, plotter.XY{X: x, Y: y})
	}
	for lon := 180.0; lon >= -180; lon -= 3 {
		x, y := Mollweide(-cut, lon)
		pts = append(pts, plotter.XY{X: x, Y: y})
	}
	band, err := plotter.NewPolygon(pts)
	if err != nil {
		return err
	}
	band.Color = bandColor
	band.LineStyle.Color = color.NRGBA{A: 0}
	p.Add(band)
	return nil
}

func addLabels(p *plot.Plot, recs []ring.Record, n int) error {
	if n > len(recs) {
		n = len(recs)
	}
	xys := make(plotter.XYs, n)
	texts := make([]string, n)
	for i := 0; i < n; i++ {
		x, y := Mollweide(recs[i].Lat, recs[i].Lon)
		xys[i] = plotter.XY{X: x, Y: y + 0.05}
		texts[i] = recs[i].ID
	}
	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: texts})
	if err != nil {
		return err
	}
	p.Add(labels)
	return nil
}
