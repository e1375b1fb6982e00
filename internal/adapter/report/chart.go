package report

import (
	"fmt"
	"image/color"
	"math"
	"os"

	"github.com/couchcryptid/disaster-census-report/internal/domain"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

const (
	chartTitle = "Population and Disaster Declarations by State (All States/Territories Included)"

	chartWidth     = 15 * vg.Inch
	chartHeight    = 8 * vg.Inch
	countAxisWidth = vg.Inch
	headroom       = 1.1
)

var (
	populationBarColor = color.NRGBA{R: 135, G: 206, B: 235, A: 179}
	populationColor    = color.RGBA{B: 255, A: 255}
	disasterColor      = color.RGBA{R: 255, A: 255}
)

// populationTicks labels the default tick positions with thousands separators.
type populationTicks struct {
	printer *message.Printer
}

func (t populationTicks) Ticks(lo, hi float64) []plot.Tick {
	ticks := plot.DefaultTicks{}.Ticks(lo, hi)
	for i := range ticks {
		if ticks[i].IsMinor() {
			continue
		}
		ticks[i].Label = t.printer.Sprintf("%d", int64(math.Round(ticks[i].Value)))
	}
	return ticks
}

// writeChart renders population bars against the left axis and the
// disaster count line against a right-hand axis, then saves a PNG.
func writeChart(path string, rows []domain.SummaryRow, dpi int) error {
	p, err := newChart(rows)
	if err != nil {
		return err
	}

	img := vgimg.NewWith(vgimg.UseWH(chartWidth, chartHeight), vgimg.UseDPI(dpi))
	p.draw(draw.New(img))

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart: %w", err)
	}
	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(f); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("encode chart: %w", err)
	}
	return f.Close()
}

// chart is a plot with a second value axis drawn by hand, since
// gonum/plot only knows one vertical axis per plot.
type chart struct {
	plot   *plot.Plot
	counts plot.Legend
	// scale maps a disaster count onto the population axis.
	scale    float64
	countMax float64
}

func newChart(rows []domain.SummaryRow) (*chart, error) {
	p := plot.New()
	p.Title.Text = chartTitle
	p.Title.TextStyle.Font.Size = vg.Points(14)

	p.X.Label.Text = "State"
	p.X.Tick.Label.Font.Size = vg.Points(8)
	p.X.Tick.Label.Rotation = math.Pi / 2
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter

	p.Y.Label.Text = "Population"
	p.Y.Label.TextStyle.Color = populationColor
	p.Y.Tick.Label.Color = populationColor
	p.Y.Tick.Marker = populationTicks{printer: message.NewPrinter(language.English)}

	populations := make(plotter.Values, len(rows))
	names := make([]string, len(rows))
	popMax, countMax := 0.0, 0.0
	for i, row := range rows {
		populations[i] = float64(row.Population)
		names[i] = row.State
		popMax = math.Max(popMax, float64(row.Population))
		countMax = math.Max(countMax, float64(row.DisasterDeclarations))
	}
	if countMax == 0 {
		countMax = 1
	}
	scale := popMax / countMax

	bars, err := plotter.NewBarChart(populations, barWidth(len(rows)))
	if err != nil {
		return nil, fmt.Errorf("population bars: %w", err)
	}
	bars.Color = populationBarColor
	bars.LineStyle.Width = 0

	counts := make(plotter.XYs, len(rows))
	for i, row := range rows {
		counts[i].X = float64(i)
		counts[i].Y = float64(row.DisasterDeclarations) * scale
	}
	line, points, err := plotter.NewLinePoints(counts)
	if err != nil {
		return nil, fmt.Errorf("disaster line: %w", err)
	}
	line.Color = disasterColor
	line.Width = vg.Points(1.5)
	points.GlyphStyle.Shape = draw.CircleGlyph{}
	points.GlyphStyle.Color = disasterColor
	points.GlyphStyle.Radius = vg.Points(3)

	p.Add(bars, line, points)
	p.NominalX(names...)
	p.Y.Padding = vg.Points(5)
	p.Y.Min = 0
	p.Y.Max = popMax * headroom

	p.Legend.Add("Population", bars)
	p.Legend.Top = true
	p.Legend.Left = true
	p.Legend.XOffs = vg.Points(5)

	legend := plot.NewLegend()
	legend.Add("Disaster Declarations", line, points)
	legend.Top = true
	legend.XOffs = -vg.Points(5)

	return &chart{
		plot:     p,
		counts:   legend,
		scale:    scale,
		countMax: p.Y.Max / scale,
	}, nil
}

// barWidth spreads the bars over the usable width, capped for short reports.
func barWidth(n int) vg.Length {
	w := vg.Length(float64(chartWidth-2*vg.Inch-countAxisWidth) / float64(n) * 0.8)
	return min(w, vg.Points(40))
}

func (c *chart) draw(dc draw.Canvas) {
	area := draw.Crop(dc, 0, -countAxisWidth, 0, 0)
	c.plot.Draw(area)

	data := c.plot.DataCanvas(area)
	c.drawCountAxis(data)
	c.counts.Draw(data)
}

func (c *chart) drawCountAxis(data draw.Canvas) {
	p := c.plot
	axisX := data.Max.X
	style := draw.LineStyle{Color: disasterColor, Width: p.Y.Width}
	data.StrokeLine2(style, axisX, data.Min.Y, axisX, data.Max.Y)

	label := p.Y.Tick.Label
	label.Color = disasterColor
	label.XAlign = draw.XLeft
	label.YAlign = draw.YCenter

	tickLen := p.Y.Tick.Length
	var labelWidth vg.Length
	for _, t := range (plot.DefaultTicks{}).Ticks(0, c.countMax) {
		y := data.Y(p.Y.Norm(t.Value * c.scale))
		if !data.ContainsY(y) {
			continue
		}
		// Counts are whole numbers; fractional steps only get a minor mark.
		if t.IsMinor() || t.Value != math.Trunc(t.Value) {
			data.StrokeLine2(style, axisX, y, axisX+tickLen/2, y)
			continue
		}
		data.StrokeLine2(style, axisX, y, axisX+tickLen, y)
		data.FillText(label, vg.Point{X: axisX + tickLen + vg.Points(2), Y: y}, t.Label)
		labelWidth = max(labelWidth, label.Width(t.Label))
	}

	title := p.Y.Label.TextStyle
	title.Color = disasterColor
	title.Rotation = math.Pi / 2
	title.XAlign = draw.XCenter
	title.YAlign = draw.YTop
	x := axisX + tickLen + labelWidth + vg.Points(6)
	data.FillText(title, vg.Point{X: x, Y: (data.Min.Y + data.Max.Y) / 2}, "Number of Disasters")
}
