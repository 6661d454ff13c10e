package analysis

import (
	"time"

	"datalens/domain/core"
)

// StoredAnalysis wraps a finished Result for persistence. The engine itself
// never writes these; the API layer saves snapshots so results can be
// revisited and re-analyzed later.
type StoredAnalysis struct {
	ID          core.AnalysisID `json:"id"`
	FileName    string          `json:"file_name"`
	RowCount    int             `json:"row_count"`
	ColumnCount int             `json:"column_count"`
	Result      *Result         `json:"result"`
	CreatedAt   core.Timestamp  `json:"created_at"`
}

// NewStoredAnalysis builds a persistable snapshot from a Result.
func NewStoredAnalysis(result *Result) *StoredAnalysis {
	return &StoredAnalysis{
		ID:          core.AnalysisID(core.NewID()),
		FileName:    result.FileName,
		RowCount:    result.RowCount,
		ColumnCount: result.ColumnCount,
		Result:      result,
		CreatedAt:   core.NewTimestamp(time.Now().UTC()),
	}
}
