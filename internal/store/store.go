// Package store persists the best feasible optimization result per
// assumptions fingerprint, so repeated searches against the same business
// parameters only ever improve on the recorded plan.
package store

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/iwvelando/startup-forecast/internal/model"
)

// Record is one persisted optimization outcome.
type Record struct {
	AssumptionsHash string
	SavedAt         time.Time
	Score           float64
	MinCash         float64
	EndCash         float64
	Trials          int
	Plan            model.Plan
}

// Store saves and retrieves optimization records.
type Store interface {
	// SaveBest persists rec unless an existing record for the same
	// assumptions hash already scores at least as high. It reports whether
	// the record was written.
	SaveBest(rec Record) (bool, error)
	// Best returns the stored record for an assumptions hash, or nil when
	// none exists.
	Best(assumptionsHash string) (*Record, error)
	Close() error
}

// HashAssumptions fingerprints a full assumptions value. The hash is over
// the canonical JSON encoding, so semantically identical assumptions map to
// the same record regardless of where they were loaded from.
func HashAssumptions(a model.Assumptions) (string, error) {
	payload, err := json.Marshal(a)
	if err != nil {
		return "", fmt.Errorf("store: hash assumptions: %w", err)
	}
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:]), nil
}
