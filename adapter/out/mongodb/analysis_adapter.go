// Package mongodb implements MongoDB adapters for the application.
package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"assistant_server/core/domain"
	"assistant_server/core/port/out"
	"assistant_server/pkg/apperr"
)

const (
	collectionAnalyses = "analyses"

	// List results are newest-first and bounded.
	maxListResults = 100
)

// AnalysisAdapter implements out.AnalysisRepository using MongoDB.
type AnalysisAdapter struct {
	collection *mongo.Collection
}

// NewAnalysisAdapter creates a new MongoDB analysis adapter.
func NewAnalysisAdapter(db *mongo.Database) *AnalysisAdapter {
	return &AnalysisAdapter{collection: db.Collection(collectionAnalyses)}
}

// EnsureIndexes creates necessary indexes for the collection.
func (a *AnalysisAdapter) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "category", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "is_important", Value: 1}},
		},
	}

	_, err := a.collection.Indexes().CreateMany(ctx, indexes)
	return err
}

// Save stores a completed analysis record.
func (a *AnalysisAdapter) Save(ctx context.Context, record *domain.AnalysisRecord) error {
	if _, err := a.collection.InsertOne(ctx, record); err != nil {
		return apperr.DatabaseError("save analysis", err)
	}
	return nil
}

// List returns a user's analysis records, newest first, optionally filtered
// by category and importance.
func (a *AnalysisAdapter) List(ctx context.Context, userID string, filter *out.AnalysisFilter) ([]*domain.AnalysisRecord, error) {
	query := bson.M{"user_id": userID}
	if filter != nil {
		if filter.Category != "" {
			query["category"] = filter.Category
		}
		if filter.IsImportant != nil {
			query["is_important"] = *filter.IsImportant
		}
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(maxListResults)

	cursor, err := a.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, apperr.DatabaseError("list analyses", err)
	}
	defer cursor.Close(ctx)

	records := make([]*domain.AnalysisRecord, 0)
	if err := cursor.All(ctx, &records); err != nil {
		return nil, apperr.DatabaseError("decode analyses", err)
	}
	return records, nil
}

// GetByID fetches one record scoped to its owner.
func (a *AnalysisAdapter) GetByID(ctx context.Context, id, userID string) (*domain.AnalysisRecord, error) {
	var record domain.AnalysisRecord
	err := a.collection.FindOne(ctx, bson.M{"id": id, "user_id": userID}).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("analysis")
		}
		return nil, apperr.DatabaseError("get analysis", err)
	}
	return &record, nil
}

// Delete removes one record scoped to its owner.
func (a *AnalysisAdapter) Delete(ctx context.Context, id, userID string) error {
	result, err := a.collection.DeleteOne(ctx, bson.M{"id": id, "user_id": userID})
	if err != nil {
		return apperr.DatabaseError("delete analysis", err)
	}
	if result.DeletedCount == 0 {
		return apperr.NotFound("analysis")
	}
	return nil
}

// Stats aggregates per-category and importance counts for one user.
func (a *AnalysisAdapter) Stats(ctx context.Context, userID string) (*out.UserStats, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"user_id": userID}}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$category",
			"count": bson.M{"$sum": 1},
			"important": bson.M{"$sum": bson.M{
				"$cond": bson.A{"$is_important", 1, 0},
			}},
		}}},
	}

	cursor, err := a.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, apperr.DatabaseError("aggregate stats", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Category  string `bson:"_id"`
		Count     int64  `bson:"count"`
		Important int64  `bson:"important"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, apperr.DatabaseError("decode stats", err)
	}

	stats := &out.UserStats{ByCategory: make(map[string]int64)}
	for _, row := range rows {
		stats.Total += row.Count
		stats.Important += row.Important
		stats.ByCategory[row.Category] = row.Count
	}
	return stats, nil
}
