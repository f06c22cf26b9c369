// Package form holds the raw text of the calculator's eight input boxes and
// converts it to numbers the way the page always has: anything that does not
// start with a number counts as 0.
package form

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/FooleanBool/MBTools/internal/calculator"
)

// Input box ids, in form order
const (
	MainBackStake     = "mainBackStake"
	MainBackOdds      = "mainBackOdds"
	MainLayOdds       = "mainLayOdds"
	MainLayCommission = "mainLayCommission"
	H1LayOdds         = "h1LayOdds"
	H1Commission      = "h1Commission"
	H2LayOdds         = "h2LayOdds"
	H2Commission      = "h2Commission"
)

// Fields lists every input box id in form order
var Fields = []string{
	MainBackStake, MainBackOdds, MainLayOdds, MainLayCommission,
	H1LayOdds, H1Commission,
	H2LayOdds, H2Commission,
}

var leadingNumber = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// ParseNumber reads the leading decimal number of s ("2.5abc" is 2.5). Blank,
// non-numeric and non-finite text is 0.
//
// This differs from the browser for "Infinity" and overflowing text such as
// "1e400": parseFloat(...) || 0 keeps those as Infinity, here they become 0.
func ParseNumber(s string) float64 {
	match := leadingNumber.FindString(strings.TrimLeftFunc(s, unicode.IsSpace))
	if match == "" {
		return 0
	}

	v, err := strconv.ParseFloat(match, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// Form is a snapshot of the raw input box contents keyed by box id
type Form map[string]string

// IsField reports whether name is one of the calculator's input boxes
func IsField(name string) bool {
	for _, f := range Fields {
		if f == name {
			return true
		}
	}
	return false
}

// Set updates one box. Unknown box ids are rejected.
func (f Form) Set(field, value string) error {
	if !IsField(field) {
		return fmt.Errorf("unknown field: %s", field)
	}
	f[field] = value
	return nil
}

// Inputs coerces the snapshot into calculator inputs
func (f Form) Inputs() calculator.BetInputs {
	return calculator.BetInputs{
		MainBackStake:     ParseNumber(f[MainBackStake]),
		MainBackOdds:      ParseNumber(f[MainBackOdds]),
		MainLayOdds:       ParseNumber(f[MainLayOdds]),
		MainLayCommission: ParseNumber(f[MainLayCommission]),
		H1LayOdds:         ParseNumber(f[H1LayOdds]),
		H1Commission:      ParseNumber(f[H1Commission]),
		H2LayOdds:         ParseNumber(f[H2LayOdds]),
		H2Commission:      ParseNumber(f[H2Commission]),
	}
}
