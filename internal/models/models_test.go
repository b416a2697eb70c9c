package models_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/SebastianoFazzino/number-game/internal/models"
)

func TestValidRound(t *testing.T) {
	round := models.Round{SelectedNumber: 50, PlacedBet: 10}

	if err := round.Validate(); err != nil {
		t.Errorf("Round validation failed: %v", err)
	}

	if v := round.Violations(); len(v) != 0 {
		t.Errorf("Expected no violations, got %v", v)
	}
}

func TestRoundBoundaries(t *testing.T) {
	valid := []models.Round{
		{SelectedNumber: 1, PlacedBet: 1},
		{SelectedNumber: 100, PlacedBet: 1},
		{SelectedNumber: 100, PlacedBet: 1e9},
	}

	for _, round := range valid {
		if err := round.Validate(); err != nil {
			t.Errorf("Round %+v should be valid, got %v", round, err)
		}
	}
}

func TestInvalidRounds(t *testing.T) {
	tests := []struct {
		name  string
		round models.Round
		want  []string
	}{
		{"bet below minimum", models.Round{SelectedNumber: 50, PlacedBet: 0.5}, []string{models.MsgBetTooLow}},
		{"number too low", models.Round{SelectedNumber: 0, PlacedBet: 10}, []string{models.MsgNumberTooLow}},
		{"number too high", models.Round{SelectedNumber: 150, PlacedBet: 10}, []string{models.MsgNumberTooHigh}},
		{"negative number", models.Round{SelectedNumber: -5, PlacedBet: 10}, []string{models.MsgNumberTooLow}},
		{"both invalid", models.Round{SelectedNumber: 122, PlacedBet: 0}, []string{models.MsgNumberTooHigh, models.MsgBetTooLow}},
		{"zero value round", models.Round{}, []string{models.MsgNumberTooLow, models.MsgBetTooLow}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.round.Validate()
			if err == nil {
				t.Fatal("Invalid round should fail validation")
			}

			var verr *models.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Expected *ValidationError, got %T", err)
			}

			if !reflect.DeepEqual(verr.Violations, tt.want) {
				t.Errorf("Expected violations %v, got %v", tt.want, verr.Violations)
			}
		})
	}
}

func TestValidationIsIdempotent(t *testing.T) {
	round := models.Round{SelectedNumber: 0, PlacedBet: 0.5}

	first := round.Violations()
	second := round.Violations()

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Validation should be repeatable: %v vs %v", first, second)
	}

	if round.SelectedNumber != 0 || round.PlacedBet != 0.5 {
		t.Error("Validation must not modify the round")
	}
}
