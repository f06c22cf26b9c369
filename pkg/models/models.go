package models

// CalculateRequest is the calculator form as JSON. Field names follow the form
// input ids; anything missing decodes as 0, like an empty input box.
type CalculateRequest struct {
	MainBackStake     float64 `json:"mainBackStake"`
	MainBackOdds      float64 `json:"mainBackOdds"`
	MainLayOdds       float64 `json:"mainLayOdds"`
	MainLayCommission float64 `json:"mainLayCommission"`
	H1LayOdds         float64 `json:"h1LayOdds"`
	H1Commission      float64 `json:"h1Commission"`
	H2LayOdds         float64 `json:"h2LayOdds"`
	H2Commission      float64 `json:"h2Commission"`
}

// CalculationResponse is the unified response for the REST and live endpoints
type CalculationResponse struct {
	Inputs    CalculateRequest `json:"inputs"`
	MainBet   *MainBet         `json:"main_bet,omitempty"`
	Handicap1 *HandicapLeg     `json:"handicap_1,omitempty"`
	Handicap2 *HandicapLeg     `json:"handicap_2,omitempty"`
	Summary   *Summary         `json:"summary,omitempty"`
	Display   Display          `json:"display"`
	Error     string           `json:"error,omitempty"`
	Fields    []string         `json:"fields,omitempty"` // Inputs that failed validation
	Warnings  []string         `json:"warnings"`
}

// MainBet is the qualifying back/lay pair. Values are nil when not finite.
type MainBet struct {
	TotalBackStake *float64 `json:"total_back_stake"`
	TotalLayStake  *float64 `json:"total_lay_stake"`
	BackWinProfit  *float64 `json:"back_win_profit"`
	QualifyingLoss *float64 `json:"qualifying_loss"`
}

// HandicapLeg is one handicap lay
type HandicapLeg struct {
	LayStake  *float64 `json:"lay_stake"`
	Liability *float64 `json:"liability"`
}

// Summary aggregates all three lay bets
type Summary struct {
	BookmakerProfit  *float64 `json:"bookmaker_profit"`
	BookmakerReturn  *float64 `json:"bookmaker_return"`
	MainBetLiability *float64 `json:"main_bet_liability"`
	TotalLiability   *float64 `json:"total_liability"`
	CombinedProfit   *float64 `json:"combined_profit"`
}

// Display holds the nine result boxes exactly as the page shows them
type Display struct {
	TotalBackStake string `json:"totalBackStake"`
	TotalLayStake  string `json:"totalLayStake"`
	QualifyingLoss string `json:"qualifyingLoss"`
	H1Combined     string `json:"h1Combined"`
	H2Combined     string `json:"h2Combined"`
	TotalLiability string `json:"totalLiability"`
	LayH1Stake     string `json:"layH1Stake"`
	LayH2Stake     string `json:"layH2Stake"`
	CombinedProfit string `json:"combinedProfit"`
}
