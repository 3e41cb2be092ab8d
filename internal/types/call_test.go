package types

import (
	"encoding/json"
	"testing"
)

func TestDirectionUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		json string
		want Direction
	}{
		{"numeric outgoing", `1`, DirectionOutgoing},
		{"string outgoing", `"1"`, DirectionOutgoing},
		{"numeric incoming", `2`, DirectionIncoming},
		{"string incoming", `"2"`, DirectionIncoming},
		{"unknown code falls back to incoming", `7`, DirectionIncoming},
		{"garbage falls back to incoming", `"abc"`, DirectionIncoming},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Direction
			if err := json.Unmarshal([]byte(tt.json), &d); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if d != tt.want {
				t.Errorf("got %v, want %v", d, tt.want)
			}
		})
	}
}

func TestDirectionLabel(t *testing.T) {
	if DirectionOutgoing.Label() != "Efetuada" {
		t.Errorf("unexpected outgoing label: %s", DirectionOutgoing.Label())
	}
	if DirectionIncoming.Label() != "Recebida" {
		t.Errorf("unexpected incoming label: %s", DirectionIncoming.Label())
	}
}

func TestCallRecordUnmarshal(t *testing.T) {
	payload := `{
		"ID": "12345",
		"PORTAL_USER_ID": "7",
		"CALL_TYPE": "1",
		"CALL_START_DATE": "2024-03-01T12:00:00Z",
		"CALL_DURATION": "124"
	}`

	var rec CallRecord
	if err := json.Unmarshal([]byte(payload), &rec); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rec.ID != "12345" || rec.UserID != "7" {
		t.Errorf("identifiers not decoded: %+v", rec)
	}
	if rec.Direction != DirectionOutgoing {
		t.Errorf("expected outgoing direction, got %v", rec.Direction)
	}
	if rec.Duration != 124 {
		t.Errorf("expected duration 124, got %d", rec.Duration)
	}
}

func TestSecondsUnmarshalGarbage(t *testing.T) {
	var s Seconds
	if err := json.Unmarshal([]byte(`"n/a"`), &s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s != 0 {
		t.Errorf("expected 0 for unparseable duration, got %d", s)
	}
}

func TestExportRowValues(t *testing.T) {
	row := ExportRow{
		Date:      "01/03/2024",
		UserName:  "Jane Doe",
		Direction: "Efetuada",
		LongOut:   "00:02:00",
		Time:      "09:00:00",
		RecordID:  "12345",
	}

	values := row.Values()
	if len(values) != 11 {
		t.Fatalf("expected 11 columns, got %d", len(values))
	}
	if values[0] != "01/03/2024" || values[9] != "09:00:00" || values[10] != "12345" {
		t.Errorf("unexpected column layout: %v", values)
	}
}
