package types

import (
	"bytes"
	"strconv"
)

// Direction classifies a call as outgoing or incoming. The CRM encodes
// it as a numeric type code (1 = outgoing) but is inconsistent about
// whether the JSON value is a number or a string, so normalization
// happens once, at unmarshal time.
type Direction int

const (
	DirectionOutgoing Direction = 1
	DirectionIncoming Direction = 2
)

// Label returns the display label used in exported rows.
func (d Direction) Label() string {
	if d == DirectionOutgoing {
		return "Efetuada"
	}
	return "Recebida"
}

// UnmarshalJSON accepts both `1` and `"1"`. Any code other than 1 is
// treated as incoming, matching the CRM's statistics contract.
func (d *Direction) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	code, err := strconv.Atoi(string(data))
	if err != nil {
		*d = DirectionIncoming
		return nil
	}
	if code == 1 {
		*d = DirectionOutgoing
	} else {
		*d = DirectionIncoming
	}
	return nil
}

// Seconds is a duration in whole seconds. The CRM returns it as a
// quoted string ("124"); tolerate both forms.
type Seconds int

func (s *Seconds) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	n, err := strconv.Atoi(string(data))
	if err != nil {
		*s = 0
		return nil
	}
	*s = Seconds(n)
	return nil
}

// ID is a CRM entity identifier. The directory API emits them both as
// JSON numbers and as strings.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	*id = ID(bytes.Trim(data, `"`))
	return nil
}

// CallRecord is one call-detail record as returned by the CRM
// telephony statistics API. Immutable once fetched.
type CallRecord struct {
	ID        string    `json:"ID"`
	UserID    string    `json:"PORTAL_USER_ID"`
	Direction Direction `json:"CALL_TYPE"`
	StartDate string    `json:"CALL_START_DATE"` // ISO-8601, UTC
	Duration  Seconds   `json:"CALL_DURATION"`
}

// TargetUsers maps a CRM user identifier to the user's display name.
// Built once per run by the directory resolver.
type TargetUsers map[string]string

// CRMUser is the wire shape of one entry from the directory's user
// listing.
type CRMUser struct {
	ID       ID     `json:"ID"`
	Name     string `json:"NAME"`
	LastName string `json:"LAST_NAME"`
}

// CRMDepartment is one entry from the directory's department listing.
type CRMDepartment struct {
	ID   ID     `json:"ID"`
	Name string `json:"NAME"`
}
