// Package chart renders payoff curves for terminals and external plotting
// tools.
package chart

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/gocarina/gocsv"

	"option-tool/internal/config"
	"option-tool/internal/models"
	"option-tool/internal/payoff"
)

// Band returns the shaded spread band. In percent mode it matches the sweep
// bounds; in absolute mode it spans underlying ± spreadPct price units.
func Band(underlying, spreadPct float64, mode string) models.PriceBand {
	if mode == config.BandAbsolute {
		return models.PriceBand{Lower: underlying - spreadPct, Upper: underlying + spreadPct}
	}
	lower, upper := payoff.SweepBounds(underlying, spreadPct)
	return models.PriceBand{Lower: lower, Upper: upper}
}

// Options controls ASCII rendering.
type Options struct {
	Width  int
	Height int
	Band   models.PriceBand
}

const (
	glyphCurve = '•'
	glyphBand  = '░'
	glyphZero  = '─'
	glyphMax   = '▲'
	glyphMin   = '▼'
	labelWidth = 10
)

// RenderASCII draws the curve of res as a width × height character plot with
// the zero line, the shaded band and the max/min gain markers.
func RenderASCII(w io.Writer, res payoff.Result, opts Options) error {
	curve := res.Curve
	if len(curve) == 0 {
		_, err := fmt.Fprintln(w, "(empty curve)")
		return err
	}
	width, height := opts.Width, opts.Height
	if width < 10 {
		width = 10
	}
	if height < 5 {
		height = 5
	}

	lo, hi := res.Summary.MinGain, res.Summary.MaxGain
	if lo > 0 {
		lo = 0
	}
	if hi < 0 {
		hi = 0
	}
	if hi == lo {
		hi, lo = hi+1, lo-1
	}
	rowOf := func(y float64) int {
		r := int(math.Round((hi - y) / (hi - lo) * float64(height-1)))
		return clamp(r, 0, height-1)
	}
	sampleOf := func(col int) int {
		if width == 1 {
			return 0
		}
		return int(math.Round(float64(col) * float64(len(curve)-1) / float64(width-1)))
	}

	grid := make([][]rune, height)
	for r := range grid {
		grid[r] = []rune(strings.Repeat(" ", width))
	}

	zeroRow := rowOf(0)
	for c := 0; c < width; c++ {
		if opts.Band.Contains(curve[sampleOf(c)].Price) {
			for r := range grid {
				grid[r][c] = glyphBand
			}
		}
		grid[zeroRow][c] = glyphZero
	}
	for c := 0; c < width; c++ {
		grid[rowOf(curve[sampleOf(c)].Payoff)][c] = glyphCurve
	}

	s := res.Summary
	grid[rowOf(s.MaxGain)][columnOf(curve, s.MaxGainPrice, width)] = glyphMax
	grid[rowOf(s.MinGain)][columnOf(curve, s.MinGainPrice, width)] = glyphMin

	var b strings.Builder
	for r, line := range grid {
		label := ""
		switch r {
		case 0:
			label = formatAxis(hi)
		case zeroRow:
			label = "0"
		case height - 1:
			label = formatAxis(lo)
		}
		fmt.Fprintf(&b, "%*s │%s\n", labelWidth, label, string(line))
	}
	fmt.Fprintf(&b, "%*s └%s\n", labelWidth, "", strings.Repeat("─", width))

	first, last := curve[0].Price, curve[len(curve)-1].Price
	left, mid, right := formatAxis(first), formatAxis(res.Underlying), formatAxis(last)
	gap := width - len(left) - len(mid) - len(right)
	if gap >= 2 {
		pad := gap / 2
		fmt.Fprintf(&b, "%*s  %s%s%s%s%s\n", labelWidth, "", left, strings.Repeat(" ", pad), mid, strings.Repeat(" ", gap-pad), right)
	} else {
		fmt.Fprintf(&b, "%*s  %s .. %s\n", labelWidth, "", left, right)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// columnOf maps a price onto a plot column.
func columnOf(curve models.PayoffCurve, price float64, width int) int {
	first, last := curve[0].Price, curve[len(curve)-1].Price
	if last == first {
		return 0
	}
	c := int(math.Round((price - first) / (last - first) * float64(width-1)))
	return clamp(c, 0, width-1)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func formatAxis(v float64) string {
	if math.Abs(v) >= 1000 {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.2f", v)
}

// WriteCSV writes the curve as price,net_payoff rows with a header.
func WriteCSV(w io.Writer, curve models.PayoffCurve) error {
	rows := []models.PayoffPoint(curve)
	if rows == nil {
		rows = []models.PayoffPoint{}
	}
	return gocsv.Marshal(&rows, w)
}
