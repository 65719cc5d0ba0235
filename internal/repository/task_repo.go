package repository

import (
	"context"
	"time"

	"taskly/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// InsertResult is the outcome of Create.
type InsertResult struct {
	Acknowledged bool               `json:"acknowledged"`
	InsertedID   primitive.ObjectID `json:"insertedId"`
}

// UpdateResult is the outcome of UpdatePartial. A zero MatchedCount means
// no task had the given id.
type UpdateResult struct {
	Acknowledged  bool  `json:"acknowledged"`
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
	UpsertedCount int64 `json:"upsertedCount"`
	UpsertedID    any   `json:"upsertedId"`
}

// DeleteResult is the outcome of DeleteByID; DeletedCount is 0 or 1.
type DeleteResult struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}

type TaskRepository struct {
	coll      *mongo.Collection
	opTimeout time.Duration
}

// NewTaskRepository wraps coll. A positive opTimeout bounds every call on
// top of the caller's context.
func NewTaskRepository(coll *mongo.Collection, opTimeout time.Duration) *TaskRepository {
	return &TaskRepository{coll: coll, opTimeout: opTimeout}
}

func (r *TaskRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.opTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.opTimeout)
}

// Create stores t and sets t.ID to the assigned identifier.
func (r *TaskRepository) Create(ctx context.Context, t *domain.Task) (InsertResult, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	t.ID = primitive.NewObjectID()
	if _, err := r.coll.InsertOne(ctx, t); err != nil {
		t.ID = primitive.NilObjectID
		return InsertResult{}, storageErr("create", err)
	}
	return InsertResult{Acknowledged: true, InsertedID: t.ID}, nil
}

// ListByOwner returns every task owned by email in the collection's natural
// order. An owner without tasks gets an empty slice.
func (r *TaskRepository) ListByOwner(ctx context.Context, email string) ([]*domain.Task, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{"email": email})
	if err != nil {
		return nil, storageErr("list", err)
	}
	defer cur.Close(ctx)

	res := make([]*domain.Task, 0)
	for cur.Next(ctx) {
		var t domain.Task
		if err := cur.Decode(&t); err != nil {
			return nil, storageErr("list", err)
		}
		res = append(res, &t)
	}
	if err := cur.Err(); err != nil {
		return nil, storageErr("list", err)
	}
	return res, nil
}

// UpdatePartial merges patch into the task with the given id. Fields not in
// patch are left as stored.
func (r *TaskRepository) UpdatePartial(ctx context.Context, id primitive.ObjectID, patch domain.TaskPatch) (UpdateResult, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M(patch)})
	if err != nil {
		return UpdateResult{}, storageErr("update", err)
	}
	return UpdateResult{
		Acknowledged:  true,
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
		UpsertedCount: res.UpsertedCount,
		UpsertedID:    res.UpsertedID,
	}, nil
}

func (r *TaskRepository) DeleteByID(ctx context.Context, id primitive.ObjectID) (DeleteResult, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return DeleteResult{}, storageErr("delete", err)
	}
	return DeleteResult{Acknowledged: true, DeletedCount: res.DeletedCount}, nil
}

// IndexModels lists the indexes the tasks collection is expected to carry.
func IndexModels() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName("email_1"),
		},
	}
}

// EnsureIndexes creates the indexes from IndexModels. Existing indexes with
// the same definition are left alone by the server.
func (r *TaskRepository) EnsureIndexes(ctx context.Context) ([]string, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	names, err := r.coll.Indexes().CreateMany(ctx, IndexModels())
	if err != nil {
		return nil, storageErr("ensure indexes", err)
	}
	return names, nil
}

// Ping checks that the primary is reachable.
func (r *TaskRepository) Ping(ctx context.Context) error {
	if err := r.coll.Database().Client().Ping(ctx, readpref.Primary()); err != nil {
		return storageErr("ping", err)
	}
	return nil
}
