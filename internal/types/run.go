package types

// RunRecord is the persisted audit trail of one sync run.
type RunRecord struct {
	DateKey        string `json:"dateKey" dynamodbav:"DateKey"`       // YYYY-MM-DD (partition key)
	RunID          string `json:"runId" dynamodbav:"RunID"`           // sort key
	StartedAt      string `json:"startedAt" dynamodbav:"StartedAt"`   // RFC3339
	FinishedAt     string `json:"finishedAt" dynamodbav:"FinishedAt"` // RFC3339
	TargetUsers    int    `json:"targetUsers" dynamodbav:"TargetUsers"`
	RecordsFetched int    `json:"recordsFetched" dynamodbav:"RecordsFetched"`
	RowsAppended   int    `json:"rowsAppended" dynamodbav:"RowsAppended"`
	Duplicates     int    `json:"duplicates" dynamodbav:"Duplicates"`
	Suppressed     int    `json:"suppressed" dynamodbav:"Suppressed"`
	FetchErrors    int    `json:"fetchErrors" dynamodbav:"FetchErrors"`
	AppendOK       bool   `json:"appendOk" dynamodbav:"AppendOK"`
}
