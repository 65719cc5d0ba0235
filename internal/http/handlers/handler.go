package handlers

import (
	"context"

	"taskly/internal/domain"
	"taskly/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TaskStore is the storage the task endpoints need.
// *repository.TaskRepository satisfies it.
type TaskStore interface {
	Create(ctx context.Context, t *domain.Task) (repository.InsertResult, error)
	ListByOwner(ctx context.Context, email string) ([]*domain.Task, error)
	UpdatePartial(ctx context.Context, id primitive.ObjectID, patch domain.TaskPatch) (repository.UpdateResult, error)
	DeleteByID(ctx context.Context, id primitive.ObjectID) (repository.DeleteResult, error)
}

type Handler struct {
	Tasks TaskStore
}

func NewHandler(tasks TaskStore) *Handler {
	return &Handler{Tasks: tasks}
}
