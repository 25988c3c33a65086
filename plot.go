/*
Copyright © 2025 the PINN authors.
This file is part of PINN.

PINN is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

PINN is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with PINN.  If not, see <http://www.gnu.org/licenses/>.
*/

package pinn

import (
	"fmt"
	"image/color"
	"os"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/carto"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

const (
	mapWidth  = 8 * vg.Inch
	mapHeight = 5.5 * vg.Inch
	legendH   = 0.6 * vg.Inch
)

var (
	sourceColor = color.NRGBA{R: 198, G: 40, B: 40, A: 255}
	maxColor    = color.NRGBA{R: 230, G: 57, B: 70, A: 255}
	meanColor   = color.NRGBA{R: 69, G: 123, B: 157, A: 255}
)

// fieldColorMap builds one color map shared by all per-time plume
// maps of a run. Its range covers every field plus the scale cap so
// the plots stay visually comparable across observation times.
func fieldColorMap(fields []*Field, scaleMax float64) *carto.ColorMap {
	cmap := carto.NewColorMap(carto.Linear)
	for _, f := range fields {
		cmap.AddArray(f.Conc.Elements)
	}
	cmap.AddArray([]float64{0, scaleMax})
	cmap.NumDivisions = 8
	cmap.Set()
	return cmap
}

// WritePlumeMap renders the concentration field as a filled grid-cell
// map with source markers and a color-bar legend, and writes it to
// path as a PNG.
func (f *Field) WritePlumeMap(sources []Source, cmap *carto.ColorMap, path string) error {
	img := vgimg.NewWith(vgimg.UseWH(mapWidth, mapHeight), vgimg.UseDPI(300))
	dc := draw.New(img)
	mainc := draw.Crop(dc, 0, 0, legendH, 0)
	legendc := draw.Crop(dc, 0, 0, 0, legendH-mapHeight)

	m := carto.NewCanvas(f.Grid.Y1, f.Grid.Y0, f.Grid.X1, f.Grid.X0, mainc)
	for iy := 0; iy < f.Grid.Nodes; iy++ {
		for ix := 0; ix < f.Grid.Nodes; ix++ {
			fc := cmap.GetColor(f.Conc.Get(iy, ix))
			ls := draw.LineStyle{Color: fc, Width: 0.1}
			if err := m.DrawVector(f.Grid.CellPolygon(ix, iy), fc, ls, draw.GlyphStyle{}); err != nil {
				return err
			}
		}
	}
	for _, src := range sources {
		gs := draw.GlyphStyle{
			Color:  sourceColor,
			Radius: vg.Points(5),
			Shape:  draw.PyramidGlyph{},
		}
		ls := draw.LineStyle{Color: sourceColor, Width: vg.Points(0.5)}
		if err := m.DrawVector(geom.Point{X: src.X, Y: src.Y}, color.NRGBA{}, ls, gs); err != nil {
			return err
		}
	}
	if err := cmap.Legend(&legendc, "Concentration (mg/L)"); err != nil {
		return err
	}

	w, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("pinn: creating plume map: %v", err)
	}
	defer w.Close()
	png := vgimg.PngCanvas{Canvas: img}
	_, err = png.WriteTo(w)
	return err
}

// WriteTimeSeriesPlot renders the maximum and mean concentration per
// observation time and writes the plot to path as a PNG.
func WriteTimeSeriesPlot(name string, summaries []Summary, path string) error {
	p, err := plot.New()
	if err != nil {
		return err
	}
	p.Title.Text = fmt.Sprintf("%s: concentration time series", name)
	p.X.Label.Text = "Observation time (d)"
	p.Y.Label.Text = "Concentration (mg/L)"
	p.Add(plotter.NewGrid())

	maxPts := make(plotter.XYs, len(summaries))
	meanPts := make(plotter.XYs, len(summaries))
	for i, s := range summaries {
		maxPts[i].X, maxPts[i].Y = s.Time, s.Max
		meanPts[i].X, meanPts[i].Y = s.Time, s.Mean
	}

	maxLine, maxPoints, err := plotter.NewLinePoints(maxPts)
	if err != nil {
		return err
	}
	maxLine.Color = maxColor
	maxPoints.Color = maxColor
	maxPoints.Shape = draw.CircleGlyph{}

	meanLine, meanPoints, err := plotter.NewLinePoints(meanPts)
	if err != nil {
		return err
	}
	meanLine.Color = meanColor
	meanPoints.Color = meanColor
	meanPoints.Shape = draw.BoxGlyph{}

	p.Add(maxLine, maxPoints, meanLine, meanPoints)
	p.Legend.Add("max", maxLine, maxPoints)
	p.Legend.Add("mean", meanLine, meanPoints)
	p.Legend.Top = true
	p.Legend.Left = true

	return p.Save(8*vg.Inch, 5*vg.Inch, path)
}
