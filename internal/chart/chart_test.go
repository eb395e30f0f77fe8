package chart

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"option-tool/internal/config"
	"option-tool/internal/models"
	"option-tool/internal/payoff"
)

func straddle() payoff.Result {
	return payoff.EvaluatePosition(100, 10, []models.OptionLeg{
		{Kind: models.Call, Side: models.Long, Quantity: 1, Premium: 5, Strike: 100},
		{Kind: models.Put, Side: models.Long, Quantity: 1, Premium: 5, Strike: 100},
	})
}

func TestBandModes(t *testing.T) {
	pct := Band(200, 10, config.BandPercent)
	assert.InDelta(t, 180, pct.Lower, 1e-9)
	assert.InDelta(t, 220, pct.Upper, 1e-9)

	abs := Band(200, 10, config.BandAbsolute)
	assert.Equal(t, models.PriceBand{Lower: 190, Upper: 210}, abs)

	// both conventions agree only when the underlying is 100
	a, b := Band(100, 10, config.BandPercent), Band(100, 10, config.BandAbsolute)
	assert.InDelta(t, a.Lower, b.Lower, 1e-9)
	assert.InDelta(t, a.Upper, b.Upper, 1e-9)
}

func TestRenderASCII(t *testing.T) {
	var buf bytes.Buffer
	res := straddle()
	err := RenderASCII(&buf, res, Options{Width: 40, Height: 12, Band: Band(100, 5, config.BandAbsolute)})
	require.NoError(t, err)

	out := buf.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 12+2, "plot rows plus axis and labels")
	assert.Contains(t, out, string(glyphMax))
	assert.Contains(t, out, string(glyphMin))
	assert.Contains(t, out, string(glyphBand))
	assert.Contains(t, out, "100.00")
}

func TestRenderASCIIFlatCurve(t *testing.T) {
	var buf bytes.Buffer
	res := payoff.EvaluatePosition(100, 0, nil)
	require.NoError(t, RenderASCII(&buf, res, Options{Width: 20, Height: 6}))
	assert.Contains(t, buf.String(), "0")
}

func TestRenderASCIIEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderASCII(&buf, payoff.Result{}, Options{}))
	assert.Contains(t, buf.String(), "empty")
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	res := straddle()
	require.NoError(t, WriteCSV(&buf, res.Curve))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, payoff.SweepPoints+1)
	assert.Equal(t, "price,net_payoff", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "90"), lines[1])
}
