package tui

import "strings"

var sparkRunes = []rune("▁▂▃▄▅▆▇█")

// sparkline renders up to width samples as a block-character graph scaled to
// max. Only the newest samples that fit are shown. A zero or negative max
// falls back to the largest sample so the line stays visible.
func sparkline(values []float64, width int, max float64) string {
	if width <= 0 || len(values) == 0 {
		return ""
	}
	if len(values) > width {
		values = values[len(values)-width:]
	}
	if max <= 0 {
		for _, v := range values {
			if v > max {
				max = v
			}
		}
		if max <= 0 {
			max = 1
		}
	}

	var b strings.Builder
	for _, v := range values {
		if v < 0 {
			v = 0
		}
		if v > max {
			v = max
		}
		idx := int(v / max * float64(len(sparkRunes)-1))
		b.WriteRune(sparkRunes[idx])
	}
	return b.String()
}
