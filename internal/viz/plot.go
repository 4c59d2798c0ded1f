package viz

import (
	"fmt"

	"github.com/guptarohit/asciigraph"

	"github.com/Harsh-Sinha/n-body-simulation/internal/store"
)

// Axis selects a playback coordinate to plot.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	}
	return "?"
}

// ParseAxis maps "x", "y" or "z" to an Axis.
func ParseAxis(s string) (Axis, error) {
	switch s {
	case "x":
		return AxisX, nil
	case "y":
		return AxisY, nil
	case "z":
		return AxisZ, nil
	}
	return 0, fmt.Errorf("unknown axis %q (want x, y or z)", s)
}

// TrajectoryPlot renders one particle's coordinate over every frame of a
// playback as an ascii chart.
func TrajectoryPlot(pb *store.Playback, id int, axis Axis, height int) (string, error) {
	if id < 0 || id >= pb.N {
		return "", fmt.Errorf("particle id %d out of range (n=%d)", id, pb.N)
	}

	series := make([]float64, len(pb.Frames))
	for i := range pb.Frames {
		x, y, z := pb.Position(i, id)
		switch axis {
		case AxisX:
			series[i] = float64(x)
		case AxisY:
			series[i] = float64(y)
		case AxisZ:
			series[i] = float64(z)
		}
	}

	caption := fmt.Sprintf("particle %d, %s over %d frames (dt=%g)", id, axis, len(pb.Frames), pb.Dt)
	return asciigraph.Plot(series,
		asciigraph.Height(height),
		asciigraph.Caption(caption),
	), nil
}
