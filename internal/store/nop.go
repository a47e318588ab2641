package store

import "github.com/hrakoto/tailor/internal/model"

// NopHistory is a history store that records nothing. Used for dry runs so a
// rehearsal never touches the ledger.
type NopHistory struct{}

// NewNopHistory returns a NopHistory.
func NewNopHistory() *NopHistory {
	return &NopHistory{}
}

// Append discards the entry.
func (n *NopHistory) Append(_ model.HistoryEntry) error { return nil }

// List always returns an empty ledger.
func (n *NopHistory) List() ([]model.HistoryEntry, error) { return nil, nil }

// Clear is a no-op.
func (n *NopHistory) Clear() error { return nil }
