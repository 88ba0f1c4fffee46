package mongo

import (
	"context"
	"errors"
	"log"
	"time"

	"fitflow/schedule-app/internal/domain"
	"fitflow/schedule-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const skipCollectionName = "skip_records"

// mongoSkipRepository implements repository.SkipRepository. The collection
// is an append-only log; the unique compound index created by
// EnsureSkipIndexes enforces at most one record per (client, assignment,
// date), which is the invariant the schedule generator relies on.
type mongoSkipRepository struct {
	collection *mongo.Collection
}

// NewMongoSkipRepository creates a new SkipRecord repository.
func NewMongoSkipRepository(db *mongo.Database) repository.SkipRepository {
	return &mongoSkipRepository{
		collection: db.Collection(skipCollectionName),
	}
}

// Append inserts a new skip record. Returns repository.ErrDuplicate when
// the (client, assignment, date) triple is already recorded.
func (r *mongoSkipRepository) Append(ctx context.Context, skip *domain.SkipRecord) (primitive.ObjectID, error) {
	if skip.ClientID == primitive.NilObjectID || skip.AssignmentID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("skip requires clientId and assignmentId")
	}
	if skip.ScheduledDate.IsZero() {
		return primitive.NilObjectID, errors.New("skip requires a scheduled date")
	}

	skip.ID = primitive.NewObjectID()
	skip.ScheduledDate = skip.ScheduledDate.UTC()
	skip.CreatedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, skip)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted skip ID")
	}
	return insertedID, nil
}

// GetByClientID retrieves the full skip history for a client. The whole
// history is needed, not just the visible week: skips before the window
// offset the flexible cycle.
func (r *mongoSkipRepository) GetByClientID(ctx context.Context, clientID primitive.ObjectID) ([]domain.SkipRecord, error) {
	var skips []domain.SkipRecord
	filter := bson.M{"clientId": clientID}
	findOptions := options.Find().SetSort(bson.D{{Key: "scheduledDate", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &skips); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return skips, nil
}

// EnsureSkipIndexes creates the uniqueness index the append contract
// depends on. Call during startup.
func EnsureSkipIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "clientId", Value: 1},
				{Key: "assignmentId", Value: 1},
				{Key: "scheduledDate", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// Without this index Append cannot report duplicates, so this one
		// is worth shouting about.
		log.Printf("ERROR: Failed to create unique skip index for collection %s: %v", collection.Name(), err)
	}
}
