package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dmoreira/callsync/internal/types"
	"github.com/rs/zerolog"
)

type fakeStore struct {
	records map[string][]types.RunRecord
	err     error
}

func (f *fakeStore) SaveRunRecord(_ types.RunRecord) error { return nil }

func (f *fakeStore) GetRunRecords(dateKey string) ([]types.RunRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.records[dateKey], nil
}

func TestRunsList(t *testing.T) {
	store := &fakeStore{
		records: map[string][]types.RunRecord{
			"2024-03-01": {
				{DateKey: "2024-03-01", RunID: "run-1", RowsAppended: 5, AppendOK: true},
			},
		},
	}
	handler := NewRunsHandler(store, zerolog.New(&bytes.Buffer{}))

	req := httptest.NewRequest(http.MethodGet, "/internal/runs?date=2024-03-01", nil)
	rec := httptest.NewRecorder()
	handler.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var body struct {
		Date string            `json:"date"`
		Runs []types.RunRecord `json:"runs"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if body.Date != "2024-03-01" {
		t.Errorf("expected date 2024-03-01, got %s", body.Date)
	}
	if len(body.Runs) != 1 || body.Runs[0].RunID != "run-1" {
		t.Errorf("unexpected runs: %+v", body.Runs)
	}
}

func TestRunsListBadDate(t *testing.T) {
	handler := NewRunsHandler(&fakeStore{}, zerolog.New(&bytes.Buffer{}))

	req := httptest.NewRequest(http.MethodGet, "/internal/runs?date=yesterday", nil)
	rec := httptest.NewRecorder()
	handler.List(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}
}

func TestRunsListStoreFailure(t *testing.T) {
	handler := NewRunsHandler(&fakeStore{err: errors.New("dynamo down")}, zerolog.New(&bytes.Buffer{}))

	req := httptest.NewRequest(http.MethodGet, "/internal/runs?date=2024-03-01", nil)
	rec := httptest.NewRecorder()
	handler.List(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", rec.Code)
	}
}
