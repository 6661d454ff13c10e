package ports

import (
	"context"

	"datalens/domain/analysis"
	"datalens/domain/core"
)

// AnalysisRepository persists finished analysis snapshots. Implemented by the
// postgres adapter; the engine itself has no persistence.
type AnalysisRepository interface {
	Save(ctx context.Context, stored *analysis.StoredAnalysis) error
	GetByID(ctx context.Context, id core.AnalysisID) (*analysis.StoredAnalysis, error)
	List(ctx context.Context, limit, offset int) ([]*analysis.StoredAnalysis, error)
	Delete(ctx context.Context, id core.AnalysisID) error
}
