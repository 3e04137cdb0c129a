package dto

// RowStatus classifies the outcome of one imported row.
type RowStatus string

const (
	RowCreated RowStatus = "created"
	RowUpdated RowStatus = "updated"
	RowSkipped RowStatus = "skipped"
)

type RowOutcome struct {
	Row     int       `json:"row"` // 1-based position in the input
	Barcode string    `json:"barcode,omitempty"`
	Status  RowStatus `json:"status"`
	Reason  string    `json:"reason,omitempty"`
}

// ImportReport aggregates a bulk product import. Skipped rows never abort
// the rest of the batch.
type ImportReport struct {
	Created  int          `json:"created"`
	Updated  int          `json:"updated"`
	Skipped  int          `json:"skipped"`
	Outcomes []RowOutcome `json:"outcomes"`
}
