// Command ftreport renders recorded force/torque sessions as an HTML
// chart, with an optional PNG time-series plot, plus a per-axis
// statistics table on stdout.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/netft/internal/ftstats"
	"github.com/banshee-data/netft/internal/ftstore"
	"github.com/banshee-data/netft/internal/netft"
)

var (
	dbPath  = flag.String("db", "netft_readings.db", "Path to readings database")
	session = flag.String("session", "", "Session ID to report on (required)")
	limit   = flag.Int("limit", 0, "Maximum samples to load (0 = store default)")
	outHTML = flag.String("out", "ftreport.html", "Output HTML chart path")
	outPNG  = flag.String("png", "", "Optional output PNG plot path")
)

func main() {
	flag.Parse()

	if *session == "" {
		log.Fatal("-session is required")
	}

	store, err := ftstore.Open(*dbPath)
	if err != nil {
		log.Fatalf("failed to open readings database: %v", err)
	}
	defer store.Close()

	timed, err := store.Readings(*session, *limit)
	if err != nil {
		log.Fatalf("failed to load readings: %v", err)
	}
	if len(timed) == 0 {
		log.Fatalf("no readings recorded for session %s", *session)
	}

	readings := make([]netft.Reading, len(timed))
	for i, tr := range timed {
		readings[i] = tr.Reading
	}

	printStats(readings)

	if err := renderHTML(timed, readings, *outHTML); err != nil {
		log.Fatalf("failed to render HTML chart: %v", err)
	}
	log.Printf("wrote %s (%d samples)", *outHTML, len(timed))

	if *outPNG != "" {
		if err := renderPNG(timed, readings, *outPNG); err != nil {
			log.Fatalf("failed to render PNG plot: %v", err)
		}
		log.Printf("wrote %s", *outPNG)
	}
}

func printStats(readings []netft.Reading) {
	fmt.Printf("%-4s %8s %12s %12s %12s %12s\n", "axis", "count", "mean", "stddev", "min", "max")
	for _, s := range ftstats.Summarize(readings) {
		fmt.Printf("%-4s %8d %12.4f %12.4f %12.4f %12.4f\n",
			s.Axis, s.Count, s.Mean, s.StdDev, s.Min, s.Max)
	}
}

func renderHTML(timed []ftstore.TimedReading, readings []netft.Reading, path string) error {
	xs := make([]string, len(timed))
	for i, tr := range timed {
		xs[i] = tr.SampledAt.Format("15:04:05.000")
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Net F/T session", Width: "1200px", Height: "600px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Force/torque over time",
			Subtitle: fmt.Sprintf("session=%s samples=%d", timed[0].SessionID, len(timed)),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	line.SetXAxis(xs)

	series := ftstats.AxisValues(readings)
	for i, name := range ftstats.AxisNames {
		data := make([]opts.LineData, len(series[i]))
		for j, v := range series[i] {
			data[j] = opts.LineData{Value: v}
		}
		line.AddSeries(name, data)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return line.Render(f)
}

// axisColors is a fixed palette, one distinct color per axis line.
var axisColors = [6]color.Color{
	color.RGBA{R: 220, G: 50, B: 47, A: 255},
	color.RGBA{R: 203, G: 75, B: 22, A: 255},
	color.RGBA{R: 181, G: 137, B: 0, A: 255},
	color.RGBA{R: 38, G: 139, B: 210, A: 255},
	color.RGBA{R: 108, G: 113, B: 196, A: 255},
	color.RGBA{R: 42, G: 161, B: 152, A: 255},
}

func renderPNG(timed []ftstore.TimedReading, readings []netft.Reading, path string) error {
	p := plot.New()
	p.Title.Text = "Net F/T session"
	p.X.Label.Text = "seconds since session start"
	p.Y.Label.Text = "force / torque"

	start := timed[0].SampledAt
	series := ftstats.AxisValues(readings)
	for i, name := range ftstats.AxisNames {
		pts := make(plotter.XYs, len(series[i]))
		for j, v := range series[i] {
			pts[j] = plotter.XY{X: timed[j].SampledAt.Sub(start).Seconds(), Y: v}
		}
		l, err := plotter.NewLine(pts)
		if err != nil {
			return err
		}
		l.Width = vg.Points(1)
		l.Color = axisColors[i]
		p.Add(l)
		p.Legend.Add(name, l)
	}

	return p.Save(10*vg.Inch, 5*vg.Inch, path)
}
