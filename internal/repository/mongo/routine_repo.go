// internal/repository/mongo/routine_repo.go
package mongo

import (
	"context"
	"errors"
	"time"

	"fitflow/schedule-app/internal/domain"
	"fitflow/schedule-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const routineCollectionName = "routines"

// mongoRoutineRepository implements repository.RoutineRepository
type mongoRoutineRepository struct {
	collection *mongo.Collection
}

// NewMongoRoutineRepository creates a new Routine repository backed by MongoDB.
func NewMongoRoutineRepository(db *mongo.Database) repository.RoutineRepository {
	return &mongoRoutineRepository{
		collection: db.Collection(routineCollectionName),
	}
}

// Create inserts a new routine with its embedded days.
func (r *mongoRoutineRepository) Create(ctx context.Context, routine *domain.Routine) (primitive.ObjectID, error) {
	if routine.TrainerID == primitive.NilObjectID || routine.Name == "" {
		return primitive.NilObjectID, errors.New("routine requires trainerId and name")
	}
	if routine.DaysPerWeek < 1 || routine.DaysPerWeek > 7 {
		return primitive.NilObjectID, errors.New("routine daysPerWeek must be between 1 and 7")
	}

	routine.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	routine.CreatedAt = now
	routine.UpdatedAt = now
	// Give every embedded day its own ID so sessions can reference it.
	for i := range routine.Days {
		if routine.Days[i].ID == primitive.NilObjectID {
			routine.Days[i].ID = primitive.NewObjectID()
		}
		routine.Days[i].DayNumber = i + 1
	}

	result, err := r.collection.InsertOne(ctx, routine)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted routine ID")
	}
	return insertedID, nil
}

// GetByID retrieves a single routine by its ID.
func (r *mongoRoutineRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Routine, error) {
	var routine domain.Routine
	filter := bson.M{"_id": id}
	err := r.collection.FindOne(ctx, filter).Decode(&routine)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &routine, nil
}

// GetByTrainerID retrieves all routines owned by a specific trainer.
func (r *mongoRoutineRepository) GetByTrainerID(ctx context.Context, trainerID primitive.ObjectID) ([]domain.Routine, error) {
	var routines []domain.Routine
	filter := bson.M{"trainerId": trainerID}
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &routines); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return routines, nil
}

// Update replaces the routine's mutable fields, including the whole Days
// slice. Day edits replace rather than mutate, so the slice is written as-is.
func (r *mongoRoutineRepository) Update(ctx context.Context, routine *domain.Routine) error {
	if routine.ID == primitive.NilObjectID {
		return errors.New("routine ID is required for update")
	}

	for i := range routine.Days {
		if routine.Days[i].ID == primitive.NilObjectID {
			routine.Days[i].ID = primitive.NewObjectID()
		}
		routine.Days[i].DayNumber = i + 1
	}

	filter := bson.M{"_id": routine.ID}
	updateDoc := bson.M{
		"$set": bson.M{
			"name":        routine.Name,
			"description": routine.Description,
			"daysPerWeek": routine.DaysPerWeek,
			"days":        routine.Days,
			"updatedAt":   time.Now().UTC(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, updateDoc)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a routine, provided the given trainer owns it.
func (r *mongoRoutineRepository) Delete(ctx context.Context, id primitive.ObjectID, trainerID primitive.ObjectID) error {
	if id == primitive.NilObjectID || trainerID == primitive.NilObjectID {
		return errors.New("routine ID and trainer ID are required for deletion")
	}

	// Filter ensures the routine exists AND belongs to the specified trainer.
	filter := bson.M{
		"_id":       id,
		"trainerId": trainerID,
	}

	result, err := r.collection.DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		// Routine not found OR not owned by this trainer.
		return repository.ErrNotFound
	}
	return nil
}

// EnsureRoutineIndexes creates necessary indexes. Call during startup.
func EnsureRoutineIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "trainerId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
