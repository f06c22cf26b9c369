package calculator

import "strings"

// InvalidInputMessage is shown whenever any input is out of range.
const InvalidInputMessage = "Please enter valid values. Odds must be ≥ 1.0, commission between 0-1, stake > 0"

// InvalidInputError is returned by Validate when one or more inputs break a range rule.
// The message is always the single combined InvalidInputMessage; Fields lists the offenders.
type InvalidInputError struct {
	Fields []string
}

func (e *InvalidInputError) Error() string {
	return InvalidInputMessage
}

// Detail returns the combined message followed by the offending field names
func (e *InvalidInputError) Detail() string {
	if len(e.Fields) == 0 {
		return InvalidInputMessage
	}
	return InvalidInputMessage + " (" + strings.Join(e.Fields, ", ") + ")"
}

// Validate checks every input against its range. All rules are evaluated so the
// error names every violated field, but the outcome is all-or-nothing.
// Comparisons are written so that NaN fails every rule.
func Validate(in BetInputs) error {
	var fields []string

	if !(in.MainBackStake > 0) {
		fields = append(fields, "mainBackStake")
	}

	odds := []struct {
		name  string
		value float64
	}{
		{"mainBackOdds", in.MainBackOdds},
		{"mainLayOdds", in.MainLayOdds},
		{"h1LayOdds", in.H1LayOdds},
		{"h2LayOdds", in.H2LayOdds},
	}
	for _, o := range odds {
		if !(o.value >= 1) {
			fields = append(fields, o.name)
		}
	}

	commissions := []struct {
		name  string
		value float64
	}{
		{"mainLayCommission", in.MainLayCommission},
		{"h1Commission", in.H1Commission},
		{"h2Commission", in.H2Commission},
	}
	for _, c := range commissions {
		if !(c.value >= 0 && c.value <= 1) {
			fields = append(fields, c.name)
		}
	}

	if len(fields) > 0 {
		return &InvalidInputError{Fields: fields}
	}
	return nil
}
