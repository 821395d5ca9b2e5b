// Package ftstats summarises windows of force/torque readings per axis.
package ftstats

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/banshee-data/netft/internal/netft"
)

// AxisNames in sensor order, shared by summaries and report tooling.
var AxisNames = [6]string{"Fx", "Fy", "Fz", "Tx", "Ty", "Tz"}

// AxisSummary describes one axis over a window of readings.
type AxisSummary struct {
	Axis   string  `json:"axis"`
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// AxisValues splits readings into six per-axis series in sensor order.
func AxisValues(readings []netft.Reading) [6][]float64 {
	var series [6][]float64
	for i := range series {
		series[i] = make([]float64, 0, len(readings))
	}
	for _, r := range readings {
		series[0] = append(series[0], r.Fx)
		series[1] = append(series[1], r.Fy)
		series[2] = append(series[2], r.Fz)
		series[3] = append(series[3], r.Tx)
		series[4] = append(series[4], r.Ty)
		series[5] = append(series[5], r.Tz)
	}
	return series
}

// Summarize computes per-axis statistics over the readings. An empty
// window yields six zero-count summaries.
func Summarize(readings []netft.Reading) []AxisSummary {
	series := AxisValues(readings)

	summaries := make([]AxisSummary, 6)
	for i, values := range series {
		s := AxisSummary{Axis: AxisNames[i], Count: len(values)}
		if len(values) > 0 {
			s.Mean = stat.Mean(values, nil)
			s.StdDev = stat.StdDev(values, nil)
			if math.IsNaN(s.StdDev) {
				s.StdDev = 0 // single-sample windows have no spread
			}
			s.Min, s.Max = values[0], values[0]
			for _, v := range values[1:] {
				s.Min = math.Min(s.Min, v)
				s.Max = math.Max(s.Max, v)
			}
		}
		summaries[i] = s
	}
	return summaries
}
