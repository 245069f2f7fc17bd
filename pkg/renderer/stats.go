package renderer

import (
	"bytes"
	"fmt"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/df07/go-pathtracer/pkg/geometry"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	Width           int
	Height          int
	SamplesPerPixel int
	MaxDepth        int
	TotalPixels     int // Total number of pixels rendered
	TotalSamples    int // Camera rays traced
	Tasks           int
	Workers         int
	Granularity     Granularity
	Seed            uint64
	Elapsed         time.Duration
	BVH             geometry.BVHStats
}

// SamplesPerSecond returns the camera ray throughput
func (s RenderStats) SamplesPerSecond() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.TotalSamples) / s.Elapsed.Seconds()
}

// Table renders the statistics as a text table
func (s RenderStats) Table() string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeader([]string{"Statistic", "Value"})
	table.Append([]string{"Resolution", fmt.Sprintf("%dx%d", s.Width, s.Height)})
	table.Append([]string{"Samples per pixel", fmt.Sprintf("%d", s.SamplesPerPixel)})
	table.Append([]string{"Max depth", fmt.Sprintf("%d", s.MaxDepth)})
	table.Append([]string{"Seed", fmt.Sprintf("%d", s.Seed)})
	table.Append([]string{"Camera rays", fmt.Sprintf("%d", s.TotalSamples)})
	table.Append([]string{"Tasks", fmt.Sprintf("%d (%s)", s.Tasks, s.Granularity)})
	table.Append([]string{"Workers", fmt.Sprintf("%d", s.Workers)})
	table.Append([]string{"BVH nodes", fmt.Sprintf("%d (%d leaves, depth %d)", s.BVH.Nodes, s.BVH.Leaves, s.BVH.MaxDepth)})
	table.Append([]string{"Samples/s", fmt.Sprintf("%.0f", s.SamplesPerSecond())})
	table.SetFooter([]string{"Render time", s.Elapsed.Round(time.Millisecond).String()})
	table.Render()
	return buf.String()
}
