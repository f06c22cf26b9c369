package calculator_test

import (
	"math"
	"testing"

	"github.com/FooleanBool/MBTools/internal/calculator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tolerance = 1e-9

func TestCalculateMainBet(t *testing.T) {
	tests := []struct {
		name          string
		backStake     float64
		backOdds      float64
		layOdds       float64
		layCommission float64
	}{
		{"Even money with 5% commission", 100, 2.0, 2.1, 0.05},
		{"No commission", 50, 3.0, 3.2, 0},
		{"Short price", 10, 1.25, 1.3, 0.02},
		{"Full commission", 25, 4.0, 4.5, 1},
		{"Lay odds exactly 1.0", 20, 1.5, 1.0, 0.05},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calculator.CalculateMainBet(tt.backStake, tt.backOdds, tt.layOdds, tt.layCommission)

			wantLay := (tt.backOdds / (tt.layOdds - tt.layCommission)) * tt.backStake
			assert.InDelta(t, wantLay, got.TotalLayStake, tolerance)
			assert.Equal(t, tt.backStake, got.TotalBackStake)

			wantBackWin := (tt.backOdds-1)*tt.backStake - (tt.layOdds-1)*wantLay
			assert.InDelta(t, wantBackWin, got.BackWinProfit, tolerance)

			wantQualifying := wantLay*(1-tt.layCommission) - tt.backStake
			assert.InDelta(t, wantQualifying, got.QualifyingLoss, tolerance)

			// A matched bet returns the same amount whichever side wins
			assert.InDelta(t, got.BackWinProfit, got.QualifyingLoss, 1e-6)
		})
	}
}

func TestCalculateMainBet_Scenario(t *testing.T) {
	got := calculator.CalculateMainBet(100, 2.0, 2.1, 0.05)

	assert.InDelta(t, 97.5610, got.TotalLayStake, 1e-4)
	assert.InDelta(t, -7.3171, got.BackWinProfit, 1e-4)
	assert.InDelta(t, -7.3171, got.QualifyingLoss, 1e-4)
	assert.Less(t, math.Abs(got.BackWinProfit-got.QualifyingLoss), 1e-6)
}

func TestCalculateMainBet_ZeroDenominator(t *testing.T) {
	got := calculator.CalculateMainBet(10, 2.0, 1.0, 1.0)

	assert.True(t, math.IsInf(got.TotalLayStake, 1), "lay stake should be +Inf, got %v", got.TotalLayStake)
	assert.True(t, math.IsNaN(got.BackWinProfit))
	assert.True(t, math.IsNaN(got.QualifyingLoss))
}

func TestBookmakerProfit(t *testing.T) {
	assert.InDelta(t, 100.0, calculator.BookmakerProfit(100, 2.0), tolerance)
	assert.InDelta(t, 0.0, calculator.BookmakerProfit(100, 1.0), tolerance)
	assert.InDelta(t, 37.5, calculator.BookmakerProfit(25, 2.5), tolerance)
}

func TestCalculateHandicap(t *testing.T) {
	tests := []struct {
		name            string
		bookmakerProfit float64
		layOdds         float64
		wantStake       float64
		wantLiability   float64
	}{
		{"Lay at 3.0", 100, 3.0, 33.3333333333, 66.6666666667},
		{"Lay at 2.0", 100, 2.0, 50, 50},
		{"Lay at 1.0 has no liability", 80, 1.0, 80, 0},
		{"Zero profit", 0, 4.0, 0, 0},
		{"Zero lay odds guarded", 100, 0, 0, 0},
		{"Negative lay odds guarded", 100, -2.5, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calculator.CalculateHandicap(tt.bookmakerProfit, tt.layOdds)

			assert.InDelta(t, tt.wantStake, got.LayStake, 1e-6)
			assert.InDelta(t, tt.wantLiability, got.Liability, 1e-6)
		})
	}
}

// Leg commission is collected but never reaches the handicap formula. These
// cases pin that behaviour until someone decides it should.
func TestCalculateHandicap_CommissionIgnored(t *testing.T) {
	base := validInputs()
	withCommission := base
	withCommission.H1Commission = 0.5
	withCommission.H2Commission = 1

	a, err := calculator.Calculate(base)
	require.NoError(t, err)
	b, err := calculator.Calculate(withCommission)
	require.NoError(t, err)

	assert.Equal(t, a.Handicap1, b.Handicap1)
	assert.Equal(t, a.Handicap2, b.Handicap2)
	assert.Equal(t, a.Summary, b.Summary)
}

func TestCalculateSummary(t *testing.T) {
	main := calculator.MainBetResult{
		TotalBackStake: 100,
		TotalLayStake:  97.5609756,
		BackWinProfit:  -7.3170732,
		QualifyingLoss: -7.3170732,
	}
	h1 := calculator.HandicapResult{LayStake: 33.3333333, Liability: 66.6666667}
	h2 := calculator.HandicapResult{LayStake: 25, Liability: 75}

	got := calculator.CalculateSummary(main, 2.1, h1, h2)

	assert.InDelta(t, main.BackWinProfit, got.BookmakerReturn, tolerance)
	assert.InDelta(t, 97.5609756*1.1, got.MainBetLiability, 1e-6)
	assert.InDelta(t, 97.5609756*1.1+66.6666667+75, got.TotalLiability, 1e-6)
	assert.InDelta(t, -7.3170732+33.3333333+25, got.CombinedProfit, 1e-6)
}

func TestCalculate_FullPipeline(t *testing.T) {
	in := validInputs()

	result, err := calculator.Calculate(in)
	require.NoError(t, err)

	assert.Equal(t, in, result.Inputs)
	assert.InDelta(t, 97.5610, result.MainBet.TotalLayStake, 1e-4)
	assert.InDelta(t, 100.0, result.BookmakerProfit, tolerance)
	assert.InDelta(t, 33.3333, result.Handicap1.LayStake, 1e-4)
	assert.InDelta(t, 66.6667, result.Handicap1.Liability, 1e-4)
	assert.InDelta(t, 25.0, result.Handicap2.LayStake, 1e-4)
	assert.InDelta(t, 75.0, result.Handicap2.Liability, 1e-4)

	mainLiability := result.MainBet.TotalLayStake * (in.MainLayOdds - 1)
	assert.InDelta(t, mainLiability+66.6667+75, result.Summary.TotalLiability, 1e-3)
	assert.InDelta(t, -7.3171+33.3333+25, result.Summary.CombinedProfit, 1e-3)
	assert.Empty(t, result.Warnings)
}

func TestCalculate_Idempotent(t *testing.T) {
	in := validInputs()

	first, err := calculator.Calculate(in)
	require.NoError(t, err)
	second, err := calculator.Calculate(in)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.NotSame(t, first, second)
}

func TestCalculate_InvalidInputBlocksEverything(t *testing.T) {
	in := validInputs()
	in.MainBackStake = 0

	result, err := calculator.Calculate(in)

	assert.Nil(t, result)
	var invalid *calculator.InvalidInputError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, []string{"mainBackStake"}, invalid.Fields)
	assert.NotEmpty(t, err.Error())
}

func TestCalculate_ZeroDenominatorWarns(t *testing.T) {
	in := validInputs()
	in.MainLayOdds = 1.0
	in.MainLayCommission = 1.0

	result, err := calculator.Calculate(in)
	require.NoError(t, err)

	assert.True(t, math.IsInf(result.MainBet.TotalLayStake, 1))
	assert.Len(t, result.Warnings, 2)
}

func TestRound(t *testing.T) {
	assert.Equal(t, 97.56, calculator.Round(97.5609756))
	assert.Equal(t, -7.32, calculator.Round(-7.3170732))
	assert.Equal(t, 66.67, calculator.Round(66.6666667))
	assert.Equal(t, 0.0, calculator.Round(0.001))
	assert.Equal(t, 0.13, calculator.Round(0.125))
	assert.Equal(t, 10.13, calculator.Round(10.125))
	assert.Equal(t, -0.13, calculator.Round(-0.125))
	assert.Equal(t, 1.0, calculator.Round(1.005))
	assert.True(t, math.IsInf(calculator.Round(math.Inf(1)), 1))
	assert.True(t, math.IsNaN(calculator.Round(math.NaN())))
}

func validInputs() calculator.BetInputs {
	return calculator.BetInputs{
		MainBackStake:     100,
		MainBackOdds:      2.0,
		MainLayOdds:       2.1,
		MainLayCommission: 0.05,
		H1LayOdds:         3.0,
		H1Commission:      0.02,
		H2LayOdds:         4.0,
		H2Commission:      0.02,
	}
}
