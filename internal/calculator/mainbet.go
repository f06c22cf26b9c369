package calculator

// CalculateMainBet sizes the lay side of the qualifying bet.
//
//	lay stake       = (back odds / (lay odds - commission)) * back stake
//	back win profit = (back odds - 1) * back stake - (lay odds - 1) * lay stake
//	qualifying loss = lay stake * (1 - commission) - back stake
//
// The denominator is not guarded: lay odds of 1.0 with a commission of 1.0
// produce an infinite lay stake, and the NaNs that follow are returned as-is.
func CalculateMainBet(backStake, backOdds, layOdds, layCommission float64) MainBetResult {
	totalLayStake := (backOdds / (layOdds - layCommission)) * backStake

	backWinProfit := (backOdds-1)*backStake - (layOdds-1)*totalLayStake

	qualifyingLoss := totalLayStake*(1-layCommission) - backStake

	return MainBetResult{
		TotalBackStake: backStake,
		TotalLayStake:  totalLayStake,
		BackWinProfit:  backWinProfit,
		QualifyingLoss: qualifyingLoss,
	}
}
