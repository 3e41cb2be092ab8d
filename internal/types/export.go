package types

// ExportRow is one spreadsheet row ready for the bulk append. The
// column layout is fixed by the target worksheet:
//
//	A date (DD/MM/YYYY)
//	B user display name
//	C direction label
//	D duration, outgoing >= 60s
//	E duration, incoming >= 60s
//	F duration, < 60s
//	G-I reserved (always empty)
//	J time (HH:MM:SS)
//	K call record identifier
//
// Exactly one of D/E/F is populated per row.
type ExportRow struct {
	Date      string
	UserName  string
	Direction string
	LongOut   string
	LongIn    string
	Short     string
	Time      string
	RecordID  string
}

// Values returns the row in worksheet column order.
func (r ExportRow) Values() []interface{} {
	return []interface{}{
		r.Date, r.UserName, r.Direction,
		r.LongOut, r.LongIn, r.Short,
		"", "", "",
		r.Time, r.RecordID,
	}
}

// IDColumn is the worksheet column holding record identifiers
// (column K, the 11th field of an ExportRow).
const IDColumn = "K"
