package sync

import (
	"context"
	"time"

	"github.com/dmoreira/callsync/internal/metrics"
	"github.com/dmoreira/callsync/internal/types"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Telephony fetches call records from the CRM statistics API.
type Telephony interface {
	GetCallStatistics(ctx context.Context, userID string, direction types.Direction, start, end time.Time) ([]types.CallRecord, error)
}

// Directory resolves the per-run set of target users.
type Directory interface {
	Resolve(ctx context.Context) types.TargetUsers
}

// Sink is the spreadsheet the rows are exported to.
type Sink interface {
	KnownIDs(ctx context.Context) (map[string]bool, error)
	Append(ctx context.Context, rows []types.ExportRow) error
}

// RunStore persists per-run audit records.
type RunStore interface {
	SaveRunRecord(record types.RunRecord) error
}

// Summary is the outcome of one sync run.
type Summary struct {
	RunID          string
	StartedAt      time.Time
	FinishedAt     time.Time
	TargetUsers    int
	RecordsFetched int
	RowsAppended   int
	Duplicates     int
	Suppressed     int
	FetchErrors    int
	AppendOK       bool
}

// Runner executes one full fetch/dedup/classify/append pass. Users
// and directions are processed strictly sequentially: the known-id
// set is a single mutable value updated in fetch order and must not
// see concurrent writers.
type Runner struct {
	telephony Telephony
	directory Directory
	sink      Sink
	store     RunStore
	lookback  time.Duration
	logger    zerolog.Logger
	now       func() time.Time
}

// NewRunner creates a new sync runner
func NewRunner(telephony Telephony, directory Directory, sink Sink, store RunStore, lookback time.Duration, logger zerolog.Logger) *Runner {
	return &Runner{
		telephony: telephony,
		directory: directory,
		sink:      sink,
		store:     store,
		lookback:  lookback,
		logger:    logger,
		now:       time.Now,
	}
}

// Run executes one sync pass to completion. Every external failure is
// contained at its call site: a failed fetch means no records for
// that user/direction, a failed append is logged and reported in the
// summary, and neither aborts the run.
func (r *Runner) Run(ctx context.Context) (summary Summary) {
	summary = Summary{
		RunID:     uuid.NewString(),
		StartedAt: r.now().UTC(),
		AppendOK:  true,
	}
	m := metrics.Get()
	m.RecordRunStarted()

	defer func() {
		summary.FinishedAt = r.now().UTC()
		m.RecordRunFinished(summary.FinishedAt.Sub(summary.StartedAt), summary.RowsAppended, summary.Duplicates, summary.Suppressed, summary.FetchErrors)
		r.saveRunRecord(summary)
		r.logger.Info().
			Str("run_id", summary.RunID).
			Int("fetched", summary.RecordsFetched).
			Int("appended", summary.RowsAppended).
			Int("duplicates", summary.Duplicates).
			Int("suppressed", summary.Suppressed).
			Int("fetch_errors", summary.FetchErrors).
			Msg("sync run finished")
	}()

	known, err := r.sink.KnownIDs(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("cannot read existing identifiers, aborting run")
		summary.AppendOK = false
		return summary
	}

	users := r.directory.Resolve(ctx)
	summary.TargetUsers = len(users)
	if len(users) == 0 {
		r.logger.Warn().Msg("no target users, nothing to sync")
		return summary
	}

	window := NewWindow(r.now(), r.lookback)
	r.logger.Info().
		Time("start", window.Start).
		Time("end", window.End).
		Int("users", len(users)).
		Msg("fetching call records")

	var rows []types.ExportRow
	for userID, userName := range users {
		for _, direction := range []types.Direction{types.DirectionOutgoing, types.DirectionIncoming} {
			records, err := r.telephony.GetCallStatistics(ctx, userID, direction, window.Start, window.End)
			if err != nil {
				// degrade to "no data" for this user/direction
				summary.FetchErrors++
				continue
			}

			for _, rec := range records {
				summary.RecordsFetched++

				// a record without an identifier cannot be deduplicated
				if rec.ID == "" || known[rec.ID] {
					summary.Duplicates++
					continue
				}
				// accept immediately so the same id returned by the
				// other direction filter is rejected within this run
				known[rec.ID] = true

				if ts, perr := ParseStart(rec.StartDate); perr == nil && !window.Contains(ts) {
					continue
				}

				row, ok := Classify(rec, userName)
				if !ok {
					summary.Suppressed++
					continue
				}
				rows = append(rows, row)
			}
		}
	}

	if len(rows) == 0 {
		r.logger.Info().Msg("no new call records this cycle")
		return summary
	}

	if err := r.sink.Append(ctx, rows); err != nil {
		r.logger.Error().Err(err).Int("rows", len(rows)).Msg("failed to append rows to sheet")
		summary.AppendOK = false
		return summary
	}
	summary.RowsAppended = len(rows)
	return summary
}

func (r *Runner) saveRunRecord(s Summary) {
	record := types.RunRecord{
		DateKey:        s.StartedAt.Format("2006-01-02"),
		RunID:          s.RunID,
		StartedAt:      s.StartedAt.Format(time.RFC3339),
		FinishedAt:     s.FinishedAt.Format(time.RFC3339),
		TargetUsers:    s.TargetUsers,
		RecordsFetched: s.RecordsFetched,
		RowsAppended:   s.RowsAppended,
		Duplicates:     s.Duplicates,
		Suppressed:     s.Suppressed,
		FetchErrors:    s.FetchErrors,
		AppendOK:       s.AppendOK,
	}
	if err := r.store.SaveRunRecord(record); err != nil {
		r.logger.Error().Err(err).Str("run_id", s.RunID).Msg("failed to save run record")
	}
}
