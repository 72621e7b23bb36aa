package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/iwvelando/startup-forecast/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(nil, filepath.Join(t.TempDir(), "results.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = s.Close()
	})
	return s
}

func sampleRecord(hash string, score float64) Record {
	plan := model.ConstantPlan(model.Decision{AdsSpend: 500, DevSpend: 3000}, 3)
	plan[1].ProPrice = model.OverridePrice(4200)
	return Record{
		AssumptionsHash: hash,
		SavedAt:         time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		Score:           score,
		MinCash:         12000,
		EndCash:         85000,
		Trials:          2000,
		Plan:            plan,
	}
}

func TestSaveBestFirstRecord(t *testing.T) {
	s := tempStore(t)

	saved, err := s.SaveBest(sampleRecord("abc", 1000))
	require.NoError(t, err)
	assert.True(t, saved)

	got, err := s.Best("abc")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "abc", got.AssumptionsHash)
	assert.Equal(t, 1000.0, got.Score)
	assert.Equal(t, 12000.0, got.MinCash)
	assert.Equal(t, 2000, got.Trials)
	require.Len(t, got.Plan, 3)
	assert.Equal(t, 500.0, got.Plan[0].AdsSpend)
	assert.False(t, got.Plan[0].ProPrice.IsSet())
	require.True(t, got.Plan[1].ProPrice.IsSet())
	assert.Equal(t, 4200.0, got.Plan[1].ProPrice.Value())
}

func TestSaveBestKeepsHigherScore(t *testing.T) {
	s := tempStore(t)

	saved, err := s.SaveBest(sampleRecord("abc", 1000))
	require.NoError(t, err)
	require.True(t, saved)

	// A worse candidate is rejected.
	saved, err = s.SaveBest(sampleRecord("abc", 900))
	require.NoError(t, err)
	assert.False(t, saved)

	got, err := s.Best("abc")
	require.NoError(t, err)
	assert.Equal(t, 1000.0, got.Score)

	// Equal score keeps the incumbent too.
	saved, err = s.SaveBest(sampleRecord("abc", 1000))
	require.NoError(t, err)
	assert.False(t, saved)

	// A better candidate replaces it.
	saved, err = s.SaveBest(sampleRecord("abc", 1500))
	require.NoError(t, err)
	assert.True(t, saved)

	got, err = s.Best("abc")
	require.NoError(t, err)
	assert.Equal(t, 1500.0, got.Score)
}

func TestRecordsKeyedByAssumptionsHash(t *testing.T) {
	s := tempStore(t)

	_, err := s.SaveBest(sampleRecord("aaa", 100))
	require.NoError(t, err)
	_, err = s.SaveBest(sampleRecord("bbb", 200))
	require.NoError(t, err)

	a, err := s.Best("aaa")
	require.NoError(t, err)
	b, err := s.Best("bbb")
	require.NoError(t, err)
	assert.Equal(t, 100.0, a.Score)
	assert.Equal(t, 200.0, b.Score)
}

func TestBestMissingHash(t *testing.T) {
	s := tempStore(t)

	got, err := s.Best("nothing-here")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestHashAssumptionsStable(t *testing.T) {
	a := model.Assumptions{Months: 12, StartingCash: 1000}
	h1, err := HashAssumptions(a)
	require.NoError(t, err)
	h2, err := HashAssumptions(a)
	require.NoError(t, err)
	assert.Equal(t, h1, h2)

	a.StartingCash = 2000
	h3, err := HashAssumptions(a)
	require.NoError(t, err)
	assert.NotEqual(t, h1, h3)
}

func TestNoopStore(t *testing.T) {
	var s Store = Noop{}

	saved, err := s.SaveBest(sampleRecord("abc", 1))
	require.NoError(t, err)
	assert.False(t, saved)

	got, err := s.Best("abc")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.NoError(t, s.Close())
}
