package pdf

import (
	"strconv"
	"strings"

	"github.com/smallbiznis/recibo/internal/config"
)

type pageMM struct {
	width  float64
	height float64
	margin float64
}

var unitMM = map[string]float64{
	"in": 25.4,
	"mm": 1,
	"cm": 10,
	"pt": 25.4 / 72,
	"px": 25.4 / 96,
}

func pageSize(l config.PageLayout) pageMM {
	def := config.DefaultLayout().Page
	return pageMM{
		width:  lengthMM(l.Width, def.Width),
		height: lengthMM(l.Height, def.Height),
		margin: lengthMM(l.Margin, def.Margin),
	}
}

// lengthMM converts a CSS length such as "8in" to millimetres.
func lengthMM(value, fallback string) float64 {
	if mm, ok := parseLength(value); ok {
		return mm
	}
	mm, _ := parseLength(fallback)
	return mm
}

func parseLength(value string) (float64, bool) {
	value = strings.TrimSpace(value)
	if len(value) < 3 {
		return 0, false
	}
	factor, ok := unitMM[value[len(value)-2:]]
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseFloat(value[:len(value)-2], 64)
	if err != nil || n < 0 {
		return 0, false
	}
	return n * factor, true
}
