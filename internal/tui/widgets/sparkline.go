// ABOUTME: Sparkline widget renders mini trend charts using block characters
// ABOUTME: Used for consumption trends and request latency history

package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// SparklineBlocks are the Unicode block characters for different heights
var SparklineBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders values (most recent last) into width characters
func Sparkline(values []float64, width int, color lipgloss.Color) string {
	if len(values) == 0 || width <= 0 {
		return ""
	}

	sampled := sampleValues(values, width)
	lo, hi := bounds(sampled)

	result := make([]rune, len(sampled))
	for i, v := range sampled {
		result[i] = valueToBlock(v, lo, hi)
	}

	style := lipgloss.NewStyle()
	if color != "" {
		style = style.Foreground(color)
	}
	return style.Render(string(result))
}

// SparklineWithThresholds colors each block by the value it shows
func SparklineWithThresholds(values []float64, width int, warnThreshold, critThreshold float64, okColor, warnColor, critColor lipgloss.Color) string {
	if len(values) == 0 || width <= 0 {
		return ""
	}

	sampled := sampleValues(values, width)
	lo, hi := bounds(sampled)

	var sb strings.Builder
	for _, v := range sampled {
		color := okColor
		if v >= critThreshold {
			color = critColor
		} else if v >= warnThreshold {
			color = warnColor
		}
		sb.WriteString(lipgloss.NewStyle().Foreground(color).Render(string(valueToBlock(v, lo, hi))))
	}
	return sb.String()
}

func bounds(values []float64) (lo, hi float64) {
	lo, hi = values[0], values[0]
	for _, v := range values {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

// sampleValues left-pads short series with zeros and strides long ones
func sampleValues(values []float64, width int) []float64 {
	if len(values) == width {
		return values
	}

	result := make([]float64, width)
	if len(values) < width {
		copy(result[width-len(values):], values)
		return result
	}

	ratio := float64(len(values)) / float64(width)
	for i := 0; i < width; i++ {
		idx := int(float64(i) * ratio)
		if idx >= len(values) {
			idx = len(values) - 1
		}
		result[i] = values[idx]
	}
	return result
}

func valueToBlock(value, lo, hi float64) rune {
	if hi == lo {
		return SparklineBlocks[len(SparklineBlocks)/2]
	}

	idx := int((value - lo) / (hi - lo) * float64(len(SparklineBlocks)-1))
	if idx < 0 {
		idx = 0
	}
	if idx >= len(SparklineBlocks) {
		idx = len(SparklineBlocks) - 1
	}
	return SparklineBlocks[idx]
}
