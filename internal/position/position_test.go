package position

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "option-tool/internal/errors"
	"option-tool/internal/models"
)

var defaults = models.Position{Underlying: 100, SpreadPct: 10}

func validPosition() models.Position {
	return models.Position{
		Underlying: 100,
		SpreadPct:  10,
		Legs: []models.OptionLeg{
			{Kind: models.Call, Side: models.Long, Quantity: 1, Premium: 5, Strike: 100},
		},
	}
}

func TestValidateAccepts(t *testing.T) {
	assert.NoError(t, Validate(validPosition()))

	p := validPosition()
	p.SpreadPct = 0
	p.Legs[0].Quantity = -3
	assert.NoError(t, Validate(p), "zero spread and negative quantity are allowed")
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *models.Position)
		field  string
	}{
		{"zero underlying", func(p *models.Position) { p.Underlying = 0 }, "underlying"},
		{"huge underlying", func(p *models.Position) { p.Underlying = 20000 }, "underlying"},
		{"NaN underlying", func(p *models.Position) { p.Underlying = math.NaN() }, "underlying"},
		{"negative spread", func(p *models.Position) { p.SpreadPct = -1 }, "spread_pct"},
		{"spread over 100", func(p *models.Position) { p.SpreadPct = 101 }, "spread_pct"},
		{"no legs", func(p *models.Position) { p.Legs = nil }, "legs"},
		{"too many legs", func(p *models.Position) {
			for len(p.Legs) <= MaxLegs {
				p.Legs = append(p.Legs, p.Legs[0])
			}
		}, "legs"},
		{"negative premium", func(p *models.Position) { p.Legs[0].Premium = -0.5 }, "premium"},
		{"negative strike", func(p *models.Position) { p.Legs[0].Strike = -1 }, "strike"},
		{"infinite premium", func(p *models.Position) { p.Legs[0].Premium = math.Inf(1) }, "premium"},
		{"NaN premium", func(p *models.Position) { p.Legs[0].Premium = math.NaN() }, "premium"},
		{"huge premium", func(p *models.Position) { p.Legs[0].Premium = 1e308 }, "premium"},
		{"infinite strike", func(p *models.Position) { p.Legs[0].Strike = math.Inf(1) }, "strike"},
		{"infinite underlying", func(p *models.Position) { p.Underlying = math.Inf(1) }, "underlying"},
		{"huge quantity", func(p *models.Position) { p.Legs[0].Quantity = -2_000_000 }, "quantity"},
		{"bad kind", func(p *models.Position) { p.Legs[0].Kind = "FUTURE" }, "kind"},
		{"bad side", func(p *models.Position) { p.Legs[0].Side = "FLAT" }, "side"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validPosition()
			tt.mutate(&p)
			err := Validate(p)
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrInputValidation)

			var ve *apperrors.ValidationError
			require.True(t, apperrors.As(err, &ve))
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestParseLeg(t *testing.T) {
	l, err := ParseLeg("put:short:2:3.5:95")
	require.NoError(t, err)
	assert.Equal(t, models.OptionLeg{Kind: models.Put, Side: models.Short, Quantity: 2, Premium: 3.5, Strike: 95}, l)

	l, err = ParseLeg(" CE : buy : -1 : 0 : 100 ")
	require.NoError(t, err)
	assert.Equal(t, models.Call, l.Kind)
	assert.Equal(t, models.Long, l.Side)
	assert.Equal(t, -1, l.Quantity)
}

func TestParseLegErrors(t *testing.T) {
	for _, s := range []string{
		"call:long:1:5",
		"swap:long:1:5:100",
		"call:flat:1:5:100",
		"call:long:one:5:100",
		"call:long:1:x:100",
		"call:long:1:5:y",
	} {
		_, err := ParseLeg(s)
		assert.ErrorIs(t, err, apperrors.ErrInputValidation, s)
	}
}

func TestParsedNonFiniteLegsFailValidation(t *testing.T) {
	for _, s := range []string{"call:long:1:inf:100", "put:long:1:5:inf", "put:long:1:nan:100"} {
		leg, err := ParseLeg(s)
		require.NoError(t, err, s)

		p := validPosition()
		p.Legs = []models.OptionLeg{leg}
		assert.ErrorIs(t, Validate(p), apperrors.ErrInputValidation, s)
	}
}

func TestParseLegsNumbersFailures(t *testing.T) {
	_, err := ParseLegs([]string{"call:long:1:5:100", "bogus"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "leg 2")
}

func TestDecodeTOML(t *testing.T) {
	data := []byte(`
name = "straddle"
underlying = 250.5

[[legs]]
kind = "call"
side = "long"
quantity = 1
premium = 5
strike = 250

[[legs]]
kind = "PE"
side = "buy"
quantity = 1
premium = 4.5
strike = 250
`)
	p, err := Decode(data, ".toml", defaults)
	require.NoError(t, err)
	assert.Equal(t, "straddle", p.Name)
	assert.Equal(t, 250.5, p.Underlying)
	assert.Equal(t, 10.0, p.SpreadPct, "spread falls back to the default")
	require.Len(t, p.Legs, 2)
	assert.Equal(t, models.Put, p.Legs[1].Kind)
	assert.Equal(t, models.Long, p.Legs[1].Side)
	assert.NoError(t, Validate(p))
}

func TestDecodeJSON(t *testing.T) {
	data := []byte(`{"underlying": 100, "spread_pct": 5, "legs": [
		{"kind": "CALL", "side": "SHORT", "quantity": 2, "premium": 1.25, "strike": 110}
	]}`)
	p, err := Decode(data, ".json", defaults)
	require.NoError(t, err)
	assert.Equal(t, 5.0, p.SpreadPct)
	require.Len(t, p.Legs, 1)
	assert.Equal(t, models.Short, p.Legs[0].Side)

	_, err = Decode([]byte(`{"underlying": 100, "legz": []}`), ".json", defaults)
	assert.Error(t, err, "unknown fields are rejected")
}

func TestDecodeBadSide(t *testing.T) {
	_, err := Decode([]byte(`{"legs":[{"kind":"call","side":"sideways"}]}`), ".json", defaults)
	assert.ErrorIs(t, err, apperrors.ErrInputValidation)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pos.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"legs":[{"kind":"put","side":"long","quantity":1,"premium":2,"strike":90}]}`), 0o644))

	p, err := Load(path, defaults)
	require.NoError(t, err)
	assert.Equal(t, 100.0, p.Underlying)

	_, err = Load(filepath.Join(dir, "pos.yaml"), defaults)
	assert.ErrorIs(t, err, apperrors.ErrPositionFileAccess)

	yaml := filepath.Join(dir, "pos.yaml")
	require.NoError(t, os.WriteFile(yaml, []byte("legs: []"), 0o644))
	_, err = Load(yaml, defaults)
	assert.ErrorIs(t, err, apperrors.ErrUnsupportedFormat)
}
