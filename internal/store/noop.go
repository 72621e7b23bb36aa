package store

// Noop discards every record. Used when persistence is disabled.
type Noop struct{}

// SaveBest discards the record.
func (Noop) SaveBest(Record) (bool, error) { return false, nil }

// Best reports no stored record.
func (Noop) Best(string) (*Record, error) { return nil, nil }

// Close is a no-op.
func (Noop) Close() error { return nil }
