// Package display turns calculator output into what the page shows: nine
// two-decimal strings, or "--" in every box when the inputs are invalid.
package display

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/FooleanBool/MBTools/internal/calculator"
	"github.com/FooleanBool/MBTools/pkg/models"
)

// Placeholder fills every result box when there is nothing to show
const Placeholder = "--"

// Render formats a calculation for display. A non-nil err blanks every box.
func Render(result *calculator.Result, err error) models.Display {
	if err != nil || result == nil {
		return placeholders()
	}

	return models.Display{
		TotalBackStake: FormatNumber(result.MainBet.TotalBackStake),
		TotalLayStake:  FormatNumber(result.MainBet.TotalLayStake),
		QualifyingLoss: FormatNumber(result.MainBet.QualifyingLoss),
		H1Combined:     FormatLeg(result.Handicap1),
		H2Combined:     FormatLeg(result.Handicap2),
		TotalLiability: FormatNumber(result.Summary.TotalLiability),
		LayH1Stake:     FormatNumber(result.Handicap1.LayStake),
		LayH2Stake:     FormatNumber(result.Handicap2.LayStake),
		CombinedProfit: FormatNumber(result.Summary.CombinedProfit),
	}
}

// FormatNumber renders two decimals, rounding ties away from zero like the
// page did. Non-finite values are spelled out the way a browser prints them.
func FormatNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	}
	// Round keeps the sign of small negatives ("-0.00"), as toFixed does
	return strconv.FormatFloat(calculator.Round(v), 'f', 2, 64)
}

// FormatLeg renders a handicap leg as "<stake> (£<liability>)"
func FormatLeg(leg calculator.HandicapResult) string {
	return fmt.Sprintf("%s (£%s)", FormatNumber(leg.LayStake), FormatNumber(leg.Liability))
}

// Response builds the API view of a calculation. Numeric fields are rounded to
// two decimals and left nil when not finite, since JSON has no NaN or Inf.
func Response(in calculator.BetInputs, result *calculator.Result, err error) models.CalculationResponse {
	resp := models.CalculationResponse{
		Inputs:   requestFromInputs(in),
		Display:  Render(result, err),
		Warnings: []string{},
	}

	if err != nil || result == nil {
		resp.Error = calculator.InvalidInputMessage
		if err != nil {
			resp.Error = err.Error()
		}
		var invalid *calculator.InvalidInputError
		if errors.As(err, &invalid) {
			resp.Fields = invalid.Fields
		}
		return resp
	}

	resp.MainBet = &models.MainBet{
		TotalBackStake: number(result.MainBet.TotalBackStake),
		TotalLayStake:  number(result.MainBet.TotalLayStake),
		BackWinProfit:  number(result.MainBet.BackWinProfit),
		QualifyingLoss: number(result.MainBet.QualifyingLoss),
	}
	resp.Handicap1 = leg(result.Handicap1)
	resp.Handicap2 = leg(result.Handicap2)
	resp.Summary = &models.Summary{
		BookmakerProfit:  number(result.BookmakerProfit),
		BookmakerReturn:  number(result.Summary.BookmakerReturn),
		MainBetLiability: number(result.Summary.MainBetLiability),
		TotalLiability:   number(result.Summary.TotalLiability),
		CombinedProfit:   number(result.Summary.CombinedProfit),
	}
	resp.Warnings = append(resp.Warnings, result.Warnings...)

	return resp
}

// InputsFromRequest converts the JSON form into calculator inputs
func InputsFromRequest(req models.CalculateRequest) calculator.BetInputs {
	return calculator.BetInputs{
		MainBackStake:     req.MainBackStake,
		MainBackOdds:      req.MainBackOdds,
		MainLayOdds:       req.MainLayOdds,
		MainLayCommission: req.MainLayCommission,
		H1LayOdds:         req.H1LayOdds,
		H1Commission:      req.H1Commission,
		H2LayOdds:         req.H2LayOdds,
		H2Commission:      req.H2Commission,
	}
}

func requestFromInputs(in calculator.BetInputs) models.CalculateRequest {
	return models.CalculateRequest{
		MainBackStake:     in.MainBackStake,
		MainBackOdds:      in.MainBackOdds,
		MainLayOdds:       in.MainLayOdds,
		MainLayCommission: in.MainLayCommission,
		H1LayOdds:         in.H1LayOdds,
		H1Commission:      in.H1Commission,
		H2LayOdds:         in.H2LayOdds,
		H2Commission:      in.H2Commission,
	}
}

func leg(h calculator.HandicapResult) *models.HandicapLeg {
	return &models.HandicapLeg{
		LayStake:  number(h.LayStake),
		Liability: number(h.Liability),
	}
}

func number(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	rounded := calculator.Round(v)
	return &rounded
}

func placeholders() models.Display {
	return models.Display{
		TotalBackStake: Placeholder,
		TotalLayStake:  Placeholder,
		QualifyingLoss: Placeholder,
		H1Combined:     Placeholder,
		H2Combined:     Placeholder,
		TotalLiability: Placeholder,
		LayH1Stake:     Placeholder,
		LayH2Stake:     Placeholder,
		CombinedProfit: Placeholder,
	}
}
