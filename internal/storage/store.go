package storage

import "github.com/dmoreira/callsync/internal/types"

// Store defines the run-record storage interface
type Store interface {
	SaveRunRecord(record types.RunRecord) error
	GetRunRecords(dateKey string) ([]types.RunRecord, error)
}

// NoopStore is a no-op implementation when DynamoDB is disabled
type NoopStore struct{}

func NewNoopStore() *NoopStore { return &NoopStore{} }

func (s *NoopStore) SaveRunRecord(_ types.RunRecord) error             { return nil }
func (s *NoopStore) GetRunRecords(_ string) ([]types.RunRecord, error) { return nil, nil }
