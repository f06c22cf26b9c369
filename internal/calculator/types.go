package calculator

import (
	"math"
	"math/big"
)

// BetInputs holds the eight values entered on the calculator form.
// Stakes are in currency units, odds are decimal, commissions are fractions (0.05 = 5%).
type BetInputs struct {
	MainBackStake     float64
	MainBackOdds      float64
	MainLayOdds       float64
	MainLayCommission float64

	H1LayOdds    float64
	H1Commission float64 // validated, not used by the leg formula

	H2LayOdds    float64
	H2Commission float64 // validated, not used by the leg formula
}

// MainBetResult is the back/lay pair of the qualifying bet
type MainBetResult struct {
	TotalBackStake float64
	TotalLayStake  float64
	BackWinProfit  float64 // profit if the back bet wins
	QualifyingLoss float64 // profit if the lay bet wins
}

// HandicapResult is one handicap lay leg
type HandicapResult struct {
	LayStake  float64
	Liability float64
}

// SummaryResult aggregates the main bet and both handicap legs
type SummaryResult struct {
	BookmakerReturn  float64
	MainBetLiability float64
	TotalLiability   float64
	CombinedProfit   float64
}

// Result is a complete calculation for one set of inputs
type Result struct {
	Inputs          BetInputs
	MainBet         MainBetResult
	BookmakerProfit float64
	Handicap1       HandicapResult
	Handicap2       HandicapResult
	Summary         SummaryResult
	Warnings        []string
}

var (
	hundred = big.NewRat(100, 1)
	half    = big.NewRat(1, 2)
)

// Round rounds a float to 2 decimal places the way the page's toFixed(2) does:
// the exact binary value is rounded, and ties go away from zero.
// Non-finite values are returned unchanged.
func Round(val float64) float64 {
	if !isFinite(val) {
		return val
	}

	r := new(big.Rat).SetFloat64(math.Abs(val))
	r.Mul(r, hundred)
	r.Add(r, half)
	cents := new(big.Int).Quo(r.Num(), r.Denom())

	rounded, _ := new(big.Rat).SetFrac(cents, big.NewInt(100)).Float64()
	if val < 0 {
		return -rounded
	}
	return rounded
}

// isFinite reports whether val is neither NaN nor ±Inf
func isFinite(val float64) bool {
	return !math.IsNaN(val) && !math.IsInf(val, 0)
}
