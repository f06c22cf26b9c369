package calculator

// BookmakerProfit is what the back bet returns from the bookmaker, minus stake.
// It is the notional both handicap legs are laid against.
func BookmakerProfit(backStake, backOdds float64) float64 {
	return (backOdds - 1) * backStake
}

// CalculateHandicap lays bookmakerProfit across one handicap market.
// Lay odds of zero or below give an empty leg rather than a division by zero.
//
// Leg commission is not applied here even though the form collects and
// validates it.
func CalculateHandicap(bookmakerProfit, layOdds float64) HandicapResult {
	layStake := 0.0
	if layOdds > 0 {
		layStake = bookmakerProfit / layOdds
	}

	return HandicapResult{
		LayStake:  layStake,
		Liability: layStake * (layOdds - 1),
	}
}
