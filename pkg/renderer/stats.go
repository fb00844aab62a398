package renderer

import "time"

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels int           // Total number of pixels rendered
	PixelsLit   int           // Pixels with a non-black color
	Rows        int           // Rows rendered
	Workers     int           // Number of parallel workers used
	Elapsed     time.Duration // Wall time of the render
}

// LitRatio returns the fraction of pixels with a non-black color
func (s RenderStats) LitRatio() float64 {
	if s.TotalPixels == 0 {
		return 0
	}
	return float64(s.PixelsLit) / float64(s.TotalPixels)
}
