package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"option-tool/internal/chart"
	apperrors "option-tool/internal/errors"
	"option-tool/internal/logging"
	"option-tool/internal/models"
	"option-tool/internal/position"
	"option-tool/internal/report"
	"option-tool/internal/strategy"
)

const maxCompareSpreads = 20

type apiResponse struct {
	Code    int            `json:"code"`
	Message string         `json:"message"`
	Data    any            `json:"data,omitempty"`
	Meta    map[string]any `json:"meta,omitempty"`
}

func ok(c *gin.Context, data any) {
	c.JSON(http.StatusOK, apiResponse{Code: 0, Message: "ok", Data: data})
}

func fail(c *gin.Context, status int, message string, meta map[string]any) {
	c.JSON(status, apiResponse{Code: status, Message: message, Meta: meta})
}

func failValidation(c *gin.Context, err error) {
	var fields []map[string]any
	for _, ve := range apperrors.ValidationErrors(err) {
		fields = append(fields, map[string]any{
			"field":   ve.Field,
			"value":   fmt.Sprint(ve.Value),
			"message": ve.Message,
		})
	}
	fail(c, http.StatusBadRequest, err.Error(), map[string]any{"fields": fields})
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// positionRequest is a position body; absent underlying and spread_pct
// fall back to config, explicit values are validated as given.
type positionRequest struct {
	Name       string             `json:"name"`
	Underlying *float64           `json:"underlying"`
	SpreadPct  *float64           `json:"spread_pct"`
	Legs       []models.OptionLeg `json:"legs"`
}

func (s *Server) resolve(req positionRequest) models.Position {
	pos := models.Position{
		Name:       req.Name,
		Underlying: s.cfg.Defaults.Underlying,
		SpreadPct:  s.cfg.Defaults.SpreadPct,
		Legs:       req.Legs,
	}
	if req.Underlying != nil {
		pos.Underlying = *req.Underlying
	}
	if req.SpreadPct != nil {
		pos.SpreadPct = *req.SpreadPct
	}
	return pos
}

// decodePosition normalizes and validates pos, answering 400 on failure.
func (s *Server) decodePosition(c *gin.Context, pos *models.Position) bool {
	if err := position.Normalize(pos); err != nil {
		failValidation(c, err)
		return false
	}
	if err := position.Validate(*pos); err != nil {
		failValidation(c, err)
		return false
	}
	return true
}

func (s *Server) report(pos models.Position) report.Report {
	res := s.evaluator.Evaluate(pos.Underlying, pos.SpreadPct, pos.Legs)
	band := chart.Band(pos.Underlying, pos.SpreadPct, s.cfg.Chart.BandMode)
	return report.New(pos, res, band, s.cfg.UI.CurrencySymbol)
}

func (s *Server) evaluate(c *gin.Context) {
	var req positionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body: "+err.Error(), nil)
		return
	}
	pos := s.resolve(req)
	if !s.decodePosition(c, &pos) {
		return
	}

	r := s.report(pos)
	logger := logging.WithOperation(logging.FromContext(c.Request.Context()), "payoff")
	sum := r.Result.Summary
	logging.LogEvaluation(logger, len(pos.Legs), pos.Underlying, pos.SpreadPct, sum.SetupCost, sum.MaxGain, sum.MinGain, string(sum.Recommendation))
	ok(c, r)
}

type compareRequest struct {
	positionRequest
	Spreads []float64 `json:"spreads"`
}

type compareRow struct {
	SpreadPct float64        `json:"spread_pct"`
	Summary   models.Summary `json:"summary"`
	Display   report.Display `json:"display"`
}

func (s *Server) compare(c *gin.Context) {
	var req compareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body: "+err.Error(), nil)
		return
	}
	if len(req.Spreads) == 0 || len(req.Spreads) > maxCompareSpreads {
		failValidation(c, apperrors.NewValidationError("spreads", len(req.Spreads),
			fmt.Sprintf("must list between 1 and %d spreads", maxCompareSpreads)))
		return
	}
	pos := s.resolve(req.positionRequest)
	// each spread must pass the same checks as a single position
	for _, sp := range req.Spreads {
		p := pos
		p.SpreadPct = sp
		if !s.decodePosition(c, &p) {
			return
		}
	}

	results, err := s.evaluator.Compare(c.Request.Context(), pos.Underlying, req.Spreads, pos.Legs)
	if err != nil {
		fail(c, http.StatusServiceUnavailable, err.Error(), nil)
		return
	}

	rows := make([]compareRow, len(results))
	for i, res := range results {
		band := chart.Band(pos.Underlying, res.SpreadPct, s.cfg.Chart.BandMode)
		r := report.New(pos, res, band, s.cfg.UI.CurrencySymbol)
		rows[i] = compareRow{SpreadPct: res.SpreadPct, Summary: res.Summary, Display: r.Display}
	}
	ok(c, gin.H{"underlying": pos.Underlying, "legs": pos.Legs, "scenarios": rows})
}

func (s *Server) listStrategies(c *gin.Context) {
	ok(c, strategy.List())
}

type strategyRequest struct {
	Underlying *float64        `json:"underlying"`
	SpreadPct  *float64        `json:"spread_pct"`
	Params     strategy.Params `json:"params"`
}

func (s *Server) buildStrategy(c *gin.Context) {
	name := c.Param("name")
	if _, found := strategy.Lookup(name); !found {
		fail(c, http.StatusNotFound, "unknown strategy: "+name, nil)
		return
	}

	var req strategyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body: "+err.Error(), nil)
		return
	}
	pos := s.resolve(positionRequest{Name: name, Underlying: req.Underlying, SpreadPct: req.SpreadPct})
	if req.Params.Strike == 0 {
		req.Params.Strike = pos.Underlying
	}

	legs, err := strategy.Build(name, req.Params)
	if err != nil {
		failValidation(c, err)
		return
	}
	pos.Legs = legs
	if !s.decodePosition(c, &pos) {
		return
	}
	ok(c, s.report(pos))
}
