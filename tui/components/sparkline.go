package components

import (
	"strings"
)

var blocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders data as one line of block characters, resampled down to
// width and left-padded when there are fewer values than columns. A flat
// series sits at mid-height.
func Sparkline(data []float64, width int) string {
	if width <= 0 {
		return ""
	}
	if len(data) == 0 {
		return strings.Repeat(" ", width)
	}
	if len(data) > width {
		data = resample(data, width)
	}
	min, max := data[0], data[0]
	for _, v := range data {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	var sb strings.Builder
	sb.WriteString(strings.Repeat(" ", width-len(data)))
	spread := max - min
	for _, v := range data {
		if spread == 0 {
			sb.WriteRune(blocks[3])
			continue
		}
		idx := int((v - min) / spread * float64(len(blocks)-1))
		if idx >= len(blocks) {
			idx = len(blocks) - 1
		}
		sb.WriteRune(blocks[idx])
	}
	return sb.String()
}

// resample picks width evenly spaced values, always keeping the last one.
func resample(data []float64, width int) []float64 {
	out := make([]float64, width)
	if width == 1 {
		out[0] = data[len(data)-1]
		return out
	}
	step := float64(len(data)-1) / float64(width-1)
	for i := range out {
		out[i] = data[int(float64(i)*step+0.5)]
	}
	return out
}
