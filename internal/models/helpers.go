package models

import (
	"fmt"
	"strings"
)

const (
	MsgNumberTooLow  = "Number must be at least 1"
	MsgNumberTooHigh = "Number must be at most 100"
	MsgBetTooLow     = "Bet must be at least 1"
)

// ValidationError lists every constraint a round broke.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for round with %d error(s): %s",
		len(e.Violations), strings.Join(e.Violations, "; "))
}

// Violations returns the messages of all broken constraints, number checks first.
// An empty slice means the round is valid.
func (r Round) Violations() []string {
	violations := make([]string, 0, 2)

	if r.SelectedNumber < MinNumber {
		violations = append(violations, MsgNumberTooLow)
	}
	if r.SelectedNumber > MaxNumber {
		violations = append(violations, MsgNumberTooHigh)
	}
	// The negated form also rejects NaN.
	if !(r.PlacedBet >= MinBet) {
		violations = append(violations, MsgBetTooLow)
	}

	return violations
}

func (r Round) Validate() error {
	if violations := r.Violations(); len(violations) > 0 {
		return &ValidationError{Violations: violations}
	}
	return nil
}
