package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"
)

// Metrics holds all application metrics
type Metrics struct {
	mu sync.RWMutex

	// Sync run metrics
	RunsStartedTotal  int64
	RunsFinishedTotal int64
	RowsAppendedTotal int64
	DuplicatesTotal   int64
	SuppressedTotal   int64
	FetchErrorsTotal  int64
	lastRunDuration   time.Duration

	// Trigger metrics
	TriggerAcceptedTotal int64
	TriggerRejectedTotal int64

	// HTTP metrics
	httpRequestsTotal map[string]map[int]int64 // endpoint -> status -> count

	// Timing
	startTime time.Time
}

// Global metrics instance
var instance *Metrics
var once sync.Once

// Get returns the singleton metrics instance
func Get() *Metrics {
	once.Do(func() {
		instance = &Metrics{
			httpRequestsTotal: make(map[string]map[int]int64),
			startTime:         time.Now(),
		}
	})
	return instance
}

// RecordRunStarted increments the started-runs counter
func (m *Metrics) RecordRunStarted() {
	m.mu.Lock()
	m.RunsStartedTotal++
	m.mu.Unlock()
}

// RecordRunFinished records the outcome of one sync run
func (m *Metrics) RecordRunFinished(duration time.Duration, appended, duplicates, suppressed, fetchErrors int) {
	m.mu.Lock()
	m.RunsFinishedTotal++
	m.RowsAppendedTotal += int64(appended)
	m.DuplicatesTotal += int64(duplicates)
	m.SuppressedTotal += int64(suppressed)
	m.FetchErrorsTotal += int64(fetchErrors)
	m.lastRunDuration = duration
	m.mu.Unlock()
}

// RecordTriggerAccepted increments the accepted-trigger counter
func (m *Metrics) RecordTriggerAccepted() {
	m.mu.Lock()
	m.TriggerAcceptedTotal++
	m.mu.Unlock()
}

// RecordTriggerRejected increments the rejected-trigger counter
func (m *Metrics) RecordTriggerRejected() {
	m.mu.Lock()
	m.TriggerRejectedTotal++
	m.mu.Unlock()
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(endpoint string, statusCode int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.httpRequestsTotal[endpoint] == nil {
		m.httpRequestsTotal[endpoint] = make(map[int]int64)
	}
	m.httpRequestsTotal[endpoint][statusCode]++
}

// Handler returns an HTTP handler for the /metrics endpoint
func (m *Metrics) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m.mu.RLock()
		defer m.mu.RUnlock()

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")

		// Helper to write metric
		write := func(name string, value interface{}, labels ...string) {
			labelStr := ""
			if len(labels) > 0 {
				labelStr = "{"
				for i := 0; i < len(labels); i += 2 {
					if i > 0 {
						labelStr += ","
					}
					labelStr += labels[i] + "=\"" + labels[i+1] + "\""
				}
				labelStr += "}"
			}

			switch v := value.(type) {
			case int:
				w.Write([]byte(name + labelStr + " " + strconv.Itoa(v) + "\n"))
			case int64:
				w.Write([]byte(name + labelStr + " " + strconv.FormatInt(v, 10) + "\n"))
			case float64:
				w.Write([]byte(name + labelStr + " " + strconv.FormatFloat(v, 'f', 6, 64) + "\n"))
			}
		}

		// System metrics
		write("callsync_uptime_seconds", time.Since(m.startTime).Seconds())

		// Sync run metrics
		write("callsync_runs_started_total", m.RunsStartedTotal)
		write("callsync_runs_finished_total", m.RunsFinishedTotal)
		write("callsync_rows_appended_total", m.RowsAppendedTotal)
		write("callsync_duplicates_skipped_total", m.DuplicatesTotal)
		write("callsync_calls_suppressed_total", m.SuppressedTotal)
		write("callsync_fetch_errors_total", m.FetchErrorsTotal)
		write("callsync_last_run_duration_seconds", m.lastRunDuration.Seconds())

		// Trigger metrics
		write("callsync_trigger_accepted_total", m.TriggerAcceptedTotal)
		write("callsync_trigger_rejected_total", m.TriggerRejectedTotal)

		// HTTP metrics
		for endpoint, statusCodes := range m.httpRequestsTotal {
			for status, count := range statusCodes {
				write("callsync_http_requests_total", count, "endpoint", endpoint, "status", strconv.Itoa(status))
			}
		}
	}
}
