package sync

import (
	"fmt"
	"time"

	"github.com/dmoreira/callsync/internal/types"
)

// shortCallSeconds is the duration threshold separating the three
// bucket columns. Incoming calls below it are considered missed or
// trivial and are not exported at all.
const shortCallSeconds = 60

// Placeholder text written when a record's timestamp cannot be
// parsed. The row itself is still exported.
const (
	placeholderDate = "DD/MM/AAAA"
	placeholderTime = "HH:MM:SS"
)

// exportZone is the fixed display offset for date/time columns. The
// worksheet's audience is in UTC-3 regardless of where the service
// runs.
var exportZone = time.FixedZone("UTC-3", -3*60*60)

// Classify maps one new call record to at most one export row.
// Returns false when the record is suppressed (incoming shorter than
// the threshold).
func Classify(rec types.CallRecord, userName string) (types.ExportRow, bool) {
	if rec.Direction != types.DirectionOutgoing && int(rec.Duration) < shortCallSeconds {
		return types.ExportRow{}, false
	}

	date, clock := placeholderDate, placeholderTime
	if ts, err := ParseStart(rec.StartDate); err == nil {
		local := ts.In(exportZone)
		date = local.Format("02/01/2006")
		clock = local.Format("15:04:05")
	}

	row := types.ExportRow{
		Date:      date,
		UserName:  userName,
		Direction: rec.Direction.Label(),
		Time:      clock,
		RecordID:  rec.ID,
	}

	formatted := FormatDuration(int(rec.Duration))
	switch {
	case int(rec.Duration) >= shortCallSeconds && rec.Direction == types.DirectionOutgoing:
		row.LongOut = formatted
	case int(rec.Duration) >= shortCallSeconds:
		row.LongIn = formatted
	default:
		// only reachable for outgoing; short incoming is suppressed above
		row.Short = formatted
	}

	return row, true
}

// ParseStart parses the record's ISO-8601 UTC timestamp.
func ParseStart(value string) (time.Time, error) {
	return time.Parse(time.RFC3339, value)
}

// FormatDuration renders whole seconds as zero-padded HH:MM:SS.
// Hours are unbounded; a 25-hour call renders as "25:00:00".
func FormatDuration(seconds int) string {
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs)
}
