package out

import (
	"context"
	"time"

	"assistant_server/core/domain"
)

// AnalysisFilter narrows List results.
type AnalysisFilter struct {
	Category    string
	IsImportant *bool
}

// UserStats are per-owner aggregate counts over stored analyses.
type UserStats struct {
	Total      int64            `json:"total"`
	Important  int64            `json:"important"`
	ByCategory map[string]int64 `json:"by_category"`
}

// AnalysisRepository persists completed analysis records. The pipeline only
// produces the value; storage is an external collaborator.
type AnalysisRepository interface {
	Save(ctx context.Context, record *domain.AnalysisRecord) error
	List(ctx context.Context, userID string, filter *AnalysisFilter) ([]*domain.AnalysisRecord, error)
	GetByID(ctx context.Context, id, userID string) (*domain.AnalysisRecord, error)
	Delete(ctx context.Context, id, userID string) error
	Stats(ctx context.Context, userID string) (*UserStats, error)
}

// User is the stored owner of analysis records.
type User struct {
	UserID     string    `json:"user_id" bson:"user_id"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
	LastActive time.Time `json:"last_active" bson:"last_active"`
}

// UserRepository manages record owners.
type UserRepository interface {
	GetOrCreate(ctx context.Context, userID string) (*User, error)
}
