// Package position validates and loads option positions before they reach
// the payoff core.
package position

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	apperrors "option-tool/internal/errors"
	"option-tool/internal/models"
)

// Input limits.
const (
	MinLegs       = 1
	MaxLegs       = 10
	MaxUnderlying = 10000.0
	MaxSpreadPct  = 100.0
	MaxPremium    = 1e6
	MaxStrike     = 1e6
	MaxQuantity   = 1e6
)

// Validate checks a position against the input limits. Every violation is
// reported; each one matches errors.ErrInputValidation.
func Validate(p models.Position) error {
	var errs []error

	if !(p.Underlying > 0) || p.Underlying > MaxUnderlying {
		errs = append(errs, apperrors.NewValidationError("underlying", p.Underlying,
			fmt.Sprintf("must be in (0, %.0f]", MaxUnderlying)))
	}
	if !(p.SpreadPct >= 0) || p.SpreadPct > MaxSpreadPct {
		errs = append(errs, apperrors.NewValidationError("spread_pct", p.SpreadPct,
			fmt.Sprintf("must be in [0, %.0f]", MaxSpreadPct)))
	}
	if len(p.Legs) < MinLegs || len(p.Legs) > MaxLegs {
		errs = append(errs, apperrors.NewValidationError("legs", len(p.Legs),
			fmt.Sprintf("must have between %d and %d legs", MinLegs, MaxLegs)))
	}
	for i, leg := range p.Legs {
		if err := ValidateLeg(leg); err != nil {
			errs = append(errs, fmt.Errorf("leg %d: %w", i+1, err))
		}
	}

	return apperrors.Join(errs...)
}

// ValidateLeg checks a single leg.
func ValidateLeg(leg models.OptionLeg) error {
	var errs []error
	if !leg.Kind.Valid() {
		errs = append(errs, apperrors.NewValidationError("kind", leg.Kind, "must be CALL or PUT"))
	}
	if !leg.Side.Valid() {
		errs = append(errs, apperrors.NewValidationError("side", leg.Side, "must be LONG or SHORT"))
	}
	if !(leg.Premium >= 0) || leg.Premium > MaxPremium {
		errs = append(errs, apperrors.NewValidationError("premium", leg.Premium,
			fmt.Sprintf("must be in [0, %.0f]", MaxPremium)))
	}
	if !(leg.Strike >= 0) || leg.Strike > MaxStrike {
		errs = append(errs, apperrors.NewValidationError("strike", leg.Strike,
			fmt.Sprintf("must be in [0, %.0f]", MaxStrike)))
	}
	if math.Abs(float64(leg.Quantity)) > MaxQuantity {
		errs = append(errs, apperrors.NewValidationError("quantity", leg.Quantity,
			fmt.Sprintf("must be within ±%.0f", MaxQuantity)))
	}
	return apperrors.Join(errs...)
}

// Normalize canonicalizes kind and side spellings (e.g. "call", "BUY").
func Normalize(p *models.Position) error {
	for i := range p.Legs {
		kind, err := models.ParseOptionKind(string(p.Legs[i].Kind))
		if err != nil {
			return fmt.Errorf("leg %d: %w", i+1, apperrors.NewValidationError("kind", p.Legs[i].Kind, err.Error()))
		}
		side, err := models.ParsePositionSide(string(p.Legs[i].Side))
		if err != nil {
			return fmt.Errorf("leg %d: %w", i+1, apperrors.NewValidationError("side", p.Legs[i].Side, err.Error()))
		}
		p.Legs[i].Kind, p.Legs[i].Side = kind, side
	}
	return nil
}

// Load reads a position from a .toml or .json file. Fields missing from
// the file keep the values already in defaults.
func Load(path string, defaults models.Position) (models.Position, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.Position{}, fmt.Errorf("%w: %v", apperrors.ErrPositionFileAccess, err)
	}
	return Decode(data, strings.ToLower(filepath.Ext(path)), defaults)
}

// Decode parses position data in the format named by ext (".toml" or ".json").
func Decode(data []byte, ext string, defaults models.Position) (models.Position, error) {
	p := defaults
	p.Legs = nil

	switch ext {
	case ".toml":
		if _, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&p); err != nil {
			return models.Position{}, apperrors.Wrap(err, "decoding toml position")
		}
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&p); err != nil {
			return models.Position{}, apperrors.Wrap(err, "decoding json position")
		}
	default:
		return models.Position{}, fmt.Errorf("%w: %q", apperrors.ErrUnsupportedFormat, ext)
	}

	if err := Normalize(&p); err != nil {
		return models.Position{}, err
	}
	return p, nil
}

// ParseLeg parses the compact form "kind:side:qty:premium:strike",
// e.g. "call:long:1:5:100".
func ParseLeg(s string) (models.OptionLeg, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 5 {
		return models.OptionLeg{}, apperrors.NewValidationError("leg", s, "expected kind:side:qty:premium:strike")
	}

	kind, err := models.ParseOptionKind(parts[0])
	if err != nil {
		return models.OptionLeg{}, apperrors.NewValidationError("kind", parts[0], err.Error())
	}
	side, err := models.ParsePositionSide(parts[1])
	if err != nil {
		return models.OptionLeg{}, apperrors.NewValidationError("side", parts[1], err.Error())
	}
	qty, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil {
		return models.OptionLeg{}, apperrors.NewValidationError("quantity", parts[2], "must be an integer")
	}
	premium, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
	if err != nil {
		return models.OptionLeg{}, apperrors.NewValidationError("premium", parts[3], "must be a number")
	}
	strike, err := strconv.ParseFloat(strings.TrimSpace(parts[4]), 64)
	if err != nil {
		return models.OptionLeg{}, apperrors.NewValidationError("strike", parts[4], "must be a number")
	}

	return models.OptionLeg{Kind: kind, Side: side, Quantity: qty, Premium: premium, Strike: strike}, nil
}

// ParseLegs parses several compact legs.
func ParseLegs(specs []string) ([]models.OptionLeg, error) {
	legs := make([]models.OptionLeg, 0, len(specs))
	for i, s := range specs {
		l, err := ParseLeg(s)
		if err != nil {
			return nil, fmt.Errorf("leg %d: %w", i+1, err)
		}
		legs = append(legs, l)
	}
	return legs, nil
}
