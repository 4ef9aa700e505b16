package taskrepo

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/makremffff/index.html-bota/internal/domain"
	"github.com/makremffff/index.html-bota/internal/store"
)

const (
	collection            = "tasks"
	completionsCollection = "task_completions"
)

type Repository struct {
	db store.Client
}

func New(db store.Client) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetByID(ctx context.Context, taskID int64) (*domain.Task, error) {
	records, err := r.db.List(ctx, collection, store.NewQuery().Eq("id", taskID).Limit(1))
	if err != nil {
		zap.L().Error("failed to get task", zap.Int64("taskID", taskID), zap.Error(err))
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return decodeTask(records[0]), nil
}

func (r *Repository) ListActive(ctx context.Context) ([]domain.Task, error) {
	q := store.NewQuery().Eq("is_active", true).SortAsc("id")
	records, err := r.db.List(ctx, collection, q)
	if err != nil {
		zap.L().Error("failed to list active tasks", zap.Error(err))
		return nil, err
	}

	tasks := make([]domain.Task, len(records))
	for i, rec := range records {
		tasks[i] = *decodeTask(rec)
	}
	return tasks, nil
}

func (r *Repository) Update(ctx context.Context, taskID int64, patch domain.TaskPatch) error {
	fields := store.Fields{}
	if patch.CurrentUsers != nil {
		fields["current_users"] = *patch.CurrentUsers
	}
	if patch.IsActive != nil {
		fields["is_active"] = *patch.IsActive
	}
	if len(fields) == 0 {
		return nil
	}

	if err := r.db.Update(ctx, collection, taskID, fields); err != nil {
		zap.L().Error("failed to update task", zap.Int64("taskID", taskID), zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) HasCompletion(ctx context.Context, userID, taskID int64) (bool, error) {
	q := store.NewQuery().Eq("user_id", userID).Eq("task_id", taskID).Limit(1)
	records, err := r.db.List(ctx, completionsCollection, q)
	if err != nil {
		zap.L().Error("failed to check task completion", zap.Int64("userID", userID), zap.Int64("taskID", taskID), zap.Error(err))
		return false, err
	}
	return len(records) > 0, nil
}

func (r *Repository) CreateCompletion(ctx context.Context, userID, taskID int64) error {
	_, err := r.db.Create(ctx, completionsCollection, store.Fields{
		"user_id":    userID,
		"task_id":    taskID,
		"created_at": time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		zap.L().Error("failed to create task completion", zap.Int64("userID", userID), zap.Int64("taskID", taskID), zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) ListCompletedTaskIDs(ctx context.Context, userID int64) ([]int64, error) {
	q := store.NewQuery().Eq("user_id", userID).Fields("task_id")
	records, err := r.db.List(ctx, completionsCollection, q)
	if err != nil {
		zap.L().Error("failed to list task completions", zap.Int64("userID", userID), zap.Error(err))
		return nil, err
	}

	ids := make([]int64, len(records))
	for i, rec := range records {
		ids[i] = rec.Int64("task_id")
	}
	return ids, nil
}

func decodeTask(rec store.Record) *domain.Task {
	return &domain.Task{
		ID:                   rec.Int64("id"),
		Name:                 rec.String("name"),
		Link:                 rec.String("link"),
		Reward:               rec.Decimal("reward"),
		MaxUsers:             rec.Int("max_users"),
		CurrentUsers:         rec.Int("current_users"),
		IsActive:             rec.Bool("is_active"),
		RequiresSubscription: rec.String("requires_subscription"),
	}
}
