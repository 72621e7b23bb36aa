package testutil

import "testing"

func TestFixtureAssumptionsAreValid(t *testing.T) {
	if err := Assumptions().Validate(); err != nil {
		t.Fatalf("fixture assumptions failed validation: %v", err)
	}
}

func TestFixtureDecisionsAreValid(t *testing.T) {
	if err := Decision().Validate(); err != nil {
		t.Errorf("fixture decision failed validation: %v", err)
	}
	if err := ZeroDecision().Validate(); err != nil {
		t.Errorf("zero decision failed validation: %v", err)
	}
}
