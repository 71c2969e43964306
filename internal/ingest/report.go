package ingest

import "fmt"

// Report summarizes one ingestion run. Every pipeline invocation returns
// one, including failed runs.
type Report struct {
	Inserted         int            `json:"inserted"`
	SkippedDuplicate int            `json:"skipped_duplicate"`
	SkippedOther     int            `json:"skipped_other"`
	Failed           int            `json:"failed"`
	MissingArenas    map[int]string `json:"missing_arenas,omitempty"`
	UnmappedPlayers  []string       `json:"unmapped_players,omitempty"`
}

// NewReport returns an empty report.
func NewReport() *Report {
	return &Report{MissingArenas: make(map[int]string)}
}

func (r *Report) String() string {
	return fmt.Sprintf("inserted=%d skipped_duplicate=%d skipped_other=%d failed=%d",
		r.Inserted, r.SkippedDuplicate, r.SkippedOther, r.Failed)
}
