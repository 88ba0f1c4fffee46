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

const assignmentCollectionName = "routine_assignments"

// mongoAssignmentRepository implements repository.AssignmentRepository
type mongoAssignmentRepository struct {
	collection *mongo.Collection
}

// NewMongoAssignmentRepository creates a new RoutineAssignment repository
// backed by MongoDB.
func NewMongoAssignmentRepository(db *mongo.Database) repository.AssignmentRepository {
	return &mongoAssignmentRepository{
		collection: db.Collection(assignmentCollectionName),
	}
}

// Create inserts a new routine assignment.
func (r *mongoAssignmentRepository) Create(ctx context.Context, assignment *domain.RoutineAssignment) (primitive.ObjectID, error) {
	if assignment.RoutineID == primitive.NilObjectID ||
		assignment.ClientID == primitive.NilObjectID ||
		assignment.TrainerID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("assignment requires routineId, clientId, and trainerId")
	}
	if assignment.PlanType != domain.PlanStrict && assignment.PlanType != domain.PlanFlexible {
		return primitive.NilObjectID, errors.New("assignment planType must be strict or flexible")
	}

	assignment.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	assignment.CreatedAt = now
	assignment.UpdatedAt = now
	if assignment.StartDate.IsZero() {
		assignment.StartDate = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	}

	result, err := r.collection.InsertOne(ctx, assignment)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted assignment ID")
	}
	return insertedID, nil
}

// GetByID retrieves an assignment by its ID.
func (r *mongoAssignmentRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.RoutineAssignment, error) {
	var assignment domain.RoutineAssignment
	filter := bson.M{"_id": id}

	err := r.collection.FindOne(ctx, filter).Decode(&assignment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &assignment, nil
}

// GetActiveByClientID retrieves the client's currently active assignments.
// These are the inputs to schedule generation.
func (r *mongoAssignmentRepository) GetActiveByClientID(ctx context.Context, clientID primitive.ObjectID) ([]domain.RoutineAssignment, error) {
	return r.findByFilter(ctx, bson.M{"clientId": clientID, "isActive": true})
}

// GetByClientID retrieves all assignments (active and superseded) for a client.
func (r *mongoAssignmentRepository) GetByClientID(ctx context.Context, clientID primitive.ObjectID) ([]domain.RoutineAssignment, error) {
	return r.findByFilter(ctx, bson.M{"clientId": clientID})
}

func (r *mongoAssignmentRepository) findByFilter(ctx context.Context, filter bson.M) ([]domain.RoutineAssignment, error) {
	var assignments []domain.RoutineAssignment
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &assignments); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return assignments, nil
}

// DeactivateByClientAndRoutine flips isActive off for every active
// assignment of the given routine to the given client. Used when a trainer
// re-assigns a routine: the old assignment is superseded, never deleted.
func (r *mongoAssignmentRepository) DeactivateByClientAndRoutine(ctx context.Context, clientID, routineID primitive.ObjectID) error {
	filter := bson.M{
		"clientId":  clientID,
		"routineId": routineID,
		"isActive":  true,
	}
	update := bson.M{
		"$set": bson.M{
			"isActive":  false,
			"updatedAt": time.Now().UTC(),
		},
	}

	// Zero matches is fine: nothing to supersede.
	_, err := r.collection.UpdateMany(ctx, filter, update)
	return err
}

// EnsureAssignmentIndexes creates necessary indexes for the
// routine_assignments collection.
func EnsureAssignmentIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			// The schedule fetch path: active assignments per client.
			Keys:    bson.D{{Key: "clientId", Value: 1}, {Key: "isActive", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "trainerId", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "routineId", Value: 1}},
			Options: options.Index(),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
