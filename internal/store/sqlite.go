package store

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/iwvelando/startup-forecast/internal/model"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	_ "modernc.org/sqlite"
)

// SQLiteStore persists optimization records to a SQLite database.
type SQLiteStore struct {
	db     *sql.DB
	logger *zap.Logger
	mu     sync.Mutex
}

// NewSQLiteStore opens (or creates) the SQLite database and runs migrations.
func NewSQLiteStore(logger *zap.Logger, dbPath string) (*SQLiteStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("store: open sqlite: %w", err)
	}

	// WAL mode so readers are not blocked while a search writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: set WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db, logger: logger}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: migrate: %w", err)
	}

	logger.Info("optimization store opened",
		zap.String("op", "store.NewSQLiteStore"),
		zap.String("path", dbPath),
	)
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS optimization_results (
			assumptions_hash TEXT PRIMARY KEY,
			saved_at         INTEGER NOT NULL,
			score            REAL NOT NULL,
			min_cash         REAL NOT NULL,
			end_cash         REAL NOT NULL,
			trials           INTEGER NOT NULL,
			plan_yaml        TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_results_saved_at ON optimization_results(saved_at)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// SaveBest writes rec unless the stored record for the same hash already
// scores at least as high.
func (s *SQLiteStore) SaveBest(rec Record) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var existing float64
	err := s.db.QueryRow(
		`SELECT score FROM optimization_results WHERE assumptions_hash = ?`,
		rec.AssumptionsHash,
	).Scan(&existing)
	switch {
	case err == nil:
		if existing >= rec.Score {
			s.logger.Debug("existing record beats candidate, keeping it",
				zap.String("op", "store.SaveBest"),
				zap.String("hash", rec.AssumptionsHash),
				zap.Float64("existingScore", existing),
				zap.Float64("candidateScore", rec.Score),
			)
			return false, nil
		}
	case errors.Is(err, sql.ErrNoRows):
		// First record for this assumptions hash.
	default:
		return false, fmt.Errorf("store: query existing record: %w", err)
	}

	planYAML, err := marshalPlan(rec.Plan)
	if err != nil {
		return false, err
	}

	savedAt := rec.SavedAt
	if savedAt.IsZero() {
		savedAt = time.Now().UTC()
	}

	_, err = s.db.Exec(
		`INSERT INTO optimization_results
			(assumptions_hash, saved_at, score, min_cash, end_cash, trials, plan_yaml)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(assumptions_hash) DO UPDATE SET
			saved_at = excluded.saved_at,
			score = excluded.score,
			min_cash = excluded.min_cash,
			end_cash = excluded.end_cash,
			trials = excluded.trials,
			plan_yaml = excluded.plan_yaml`,
		rec.AssumptionsHash, savedAt.Unix(), rec.Score, rec.MinCash, rec.EndCash, rec.Trials, planYAML,
	)
	if err != nil {
		return false, fmt.Errorf("store: save record: %w", err)
	}
	return true, nil
}

// Best returns the stored record for an assumptions hash, or nil.
func (s *SQLiteStore) Best(assumptionsHash string) (*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		rec      Record
		savedAt  int64
		planYAML string
	)
	err := s.db.QueryRow(
		`SELECT assumptions_hash, saved_at, score, min_cash, end_cash, trials, plan_yaml
		 FROM optimization_results WHERE assumptions_hash = ?`,
		assumptionsHash,
	).Scan(&rec.AssumptionsHash, &savedAt, &rec.Score, &rec.MinCash, &rec.EndCash, &rec.Trials, &planYAML)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: load record: %w", err)
	}

	rec.SavedAt = time.Unix(savedAt, 0).UTC()
	rec.Plan, err = unmarshalPlan(planYAML)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// decisionDoc is the YAML shape for one month's decision. Price overrides
// serialize as nullable values: absent means milestone pricing applies.
type decisionDoc struct {
	AdsSpend      float64  `yaml:"adsSpend"`
	SEOSpend      float64  `yaml:"seoSpend"`
	DevSpend      float64  `yaml:"devSpend"`
	OutreachSpend float64  `yaml:"outreachSpend"`
	PartnerSpend  float64  `yaml:"partnerSpend"`
	ProPrice      *float64 `yaml:"proPrice,omitempty"`
	EntPrice      *float64 `yaml:"entPrice,omitempty"`
}

func marshalPlan(plan model.Plan) (string, error) {
	docs := make([]decisionDoc, len(plan))
	for i, d := range plan {
		docs[i] = decisionDoc{
			AdsSpend:      d.AdsSpend,
			SEOSpend:      d.SEOSpend,
			DevSpend:      d.DevSpend,
			OutreachSpend: d.OutreachSpend,
			PartnerSpend:  d.PartnerSpend,
		}
		if d.ProPrice.IsSet() {
			v := d.ProPrice.Value()
			docs[i].ProPrice = &v
		}
		if d.EntPrice.IsSet() {
			v := d.EntPrice.Value()
			docs[i].EntPrice = &v
		}
	}
	out, err := yaml.Marshal(docs)
	if err != nil {
		return "", fmt.Errorf("store: marshal plan: %w", err)
	}
	return string(out), nil
}

func unmarshalPlan(text string) (model.Plan, error) {
	var docs []decisionDoc
	if err := yaml.Unmarshal([]byte(text), &docs); err != nil {
		return nil, fmt.Errorf("store: unmarshal plan: %w", err)
	}
	plan := make(model.Plan, len(docs))
	for i, doc := range docs {
		plan[i] = model.Decision{
			AdsSpend:      doc.AdsSpend,
			SEOSpend:      doc.SEOSpend,
			DevSpend:      doc.DevSpend,
			OutreachSpend: doc.OutreachSpend,
			PartnerSpend:  doc.PartnerSpend,
		}
		if doc.ProPrice != nil {
			plan[i].ProPrice = model.OverridePrice(*doc.ProPrice)
		}
		if doc.EntPrice != nil {
			plan[i].EntPrice = model.OverridePrice(*doc.EntPrice)
		}
	}
	return plan, nil
}
