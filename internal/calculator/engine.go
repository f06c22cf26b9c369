package calculator

import "fmt"

// Calculate runs the full pipeline for one form snapshot: validation, the main
// bet, both handicap legs and the summary. It holds no state, so identical
// inputs always give identical results.
func Calculate(in BetInputs) (*Result, error) {
	if err := Validate(in); err != nil {
		return nil, err
	}

	main := CalculateMainBet(in.MainBackStake, in.MainBackOdds, in.MainLayOdds, in.MainLayCommission)

	bookmakerProfit := BookmakerProfit(in.MainBackStake, in.MainBackOdds)

	h1 := CalculateHandicap(bookmakerProfit, in.H1LayOdds)
	h2 := CalculateHandicap(bookmakerProfit, in.H2LayOdds)

	summary := CalculateSummary(main, in.MainLayOdds, h1, h2)

	result := &Result{
		Inputs:          in,
		MainBet:         main,
		BookmakerProfit: bookmakerProfit,
		Handicap1:       h1,
		Handicap2:       h2,
		Summary:         summary,
	}
	result.Warnings = buildWarnings(result)

	return result, nil
}

// buildWarnings flags results the form would still display but that a user
// should not act on
func buildWarnings(r *Result) []string {
	warnings := []string{}

	denominator := r.Inputs.MainLayOdds - r.Inputs.MainLayCommission
	if denominator <= 0 {
		warnings = append(warnings, fmt.Sprintf("Lay odds minus commission is %.2f - lay stake cannot be sized", denominator))
	}

	values := []float64{
		r.MainBet.TotalLayStake,
		r.MainBet.BackWinProfit,
		r.MainBet.QualifyingLoss,
		r.Summary.TotalLiability,
		r.Summary.CombinedProfit,
	}
	for _, v := range values {
		if !isFinite(v) {
			warnings = append(warnings, "Some results are not finite numbers")
			break
		}
	}

	return warnings
}
