package handlers

import (
	"net/http"

	"taskly/internal/domain"
	"taskly/internal/logger"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Root answers the plain-text liveness probe on /.
func (h *Handler) Root(c *gin.Context) {
	c.String(http.StatusOK, "Task Management server is running")
}

func (h *Handler) CreateTask(c *gin.Context) {
	var task domain.Task
	if err := c.ShouldBindJSON(&task); err != nil {
		badRequest(c, "Invalid task payload", err)
		return
	}
	if err := task.Validate(); err != nil {
		badRequest(c, "Invalid task payload", err)
		return
	}

	ctx := c.Request.Context()
	res, err := h.Tasks.Create(ctx, &task)
	if err != nil {
		logger.WithContext(ctx).Error("create task failed", "email", task.Email, "error", err)
		serverError(c, "Failed to create Task", err, true)
		return
	}
	c.JSON(http.StatusOK, res)
}

// ListTasks returns the owner's tasks grouped by normalized category.
func (h *Handler) ListTasks(c *gin.Context) {
	email := c.Param("email")

	ctx := c.Request.Context()
	tasks, err := h.Tasks.ListByOwner(ctx, email)
	if err != nil {
		logger.WithContext(ctx).Error("list tasks failed", "email", email, "error", err)
		serverError(c, "Failed to fetch Tasks", err, false)
		return
	}
	c.JSON(http.StatusOK, domain.GroupByCategory(tasks))
}

func (h *Handler) UpdateTask(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}

	var patch domain.TaskPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, "Invalid update payload", err)
		return
	}
	if err := patch.Validate(); err != nil {
		badRequest(c, "Invalid update payload", err)
		return
	}

	ctx := c.Request.Context()
	res, err := h.Tasks.UpdatePartial(ctx, id, patch)
	if err != nil {
		logger.WithContext(ctx).Error("update task failed", "task_id", id.Hex(), "error", err)
		serverError(c, "Failed to update Task", err, false)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) DeleteTask(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	res, err := h.Tasks.DeleteByID(ctx, id)
	if err != nil {
		logger.WithContext(ctx).Error("delete task failed", "task_id", id.Hex(), "error", err)
		serverError(c, "Failed to delete Task", err, false)
		return
	}
	c.JSON(http.StatusOK, res)
}

// taskID parses the :id path parameter, answering 400 when it is not an
// ObjectID.
func taskID(c *gin.Context) (primitive.ObjectID, bool) {
	raw := c.Param("id")
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		badRequest(c, "Invalid task id", &domain.ValidationError{Field: "id", Reason: "not a valid ObjectID: " + raw})
		return primitive.NilObjectID, false
	}
	return id, true
}
