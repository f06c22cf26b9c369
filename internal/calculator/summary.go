package calculator

// CalculateSummary totals liability across the three lay bets and adds up the
// combined profit.
//
// Combined profit is the bookmaker return (back win profit) plus both
// handicap lay stakes. It is a plain sum, not an expectation.
func CalculateSummary(main MainBetResult, mainLayOdds float64, h1, h2 HandicapResult) SummaryResult {
	mainBetLiability := main.TotalLayStake * (mainLayOdds - 1)

	return SummaryResult{
		BookmakerReturn:  main.BackWinProfit,
		MainBetLiability: mainBetLiability,
		TotalLiability:   mainBetLiability + h1.Liability + h2.Liability,
		CombinedProfit:   main.BackWinProfit + h1.LayStake + h2.LayStake,
	}
}
