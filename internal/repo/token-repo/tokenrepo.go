package tokenrepo

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/makremffff/index.html-bota/internal/domain"
	"github.com/makremffff/index.html-bota/internal/store"
)

const collection = "action_tokens"

type Repository struct {
	db store.Client
}

func New(db store.Client) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, token *domain.ActionToken) (*domain.ActionToken, error) {
	rec, err := r.db.Create(ctx, collection, store.Fields{
		"user_id":    token.UserID,
		"kind":       string(token.Kind),
		"value":      token.Value,
		"created_at": token.CreatedAt.UTC().Format(time.RFC3339),
	})
	if err != nil {
		zap.L().Error("failed to create action token", zap.Int64("userID", token.UserID), zap.Error(err))
		return nil, err
	}
	return decode(rec), nil
}

// Find returns nil, nil when no live token matches all three fields.
func (r *Repository) Find(ctx context.Context, userID int64, value string, kind domain.TokenKind) (*domain.ActionToken, error) {
	q := store.NewQuery().
		Eq("user_id", userID).
		Eq("value", value).
		Eq("kind", string(kind)).
		Limit(1)
	records, err := r.db.List(ctx, collection, q)
	if err != nil {
		zap.L().Error("failed to find action token", zap.Int64("userID", userID), zap.Error(err))
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return decode(records[0]), nil
}

// DeleteByID reports whether the row was removed by this call. False means a
// concurrent consumption already claimed it.
func (r *Repository) DeleteByID(ctx context.Context, id int64) (bool, error) {
	deleted, err := r.db.Delete(ctx, collection, id)
	if err != nil {
		zap.L().Error("failed to delete action token", zap.Int64("id", id), zap.Error(err))
		return false, err
	}
	return deleted, nil
}

func (r *Repository) ListOlderThan(ctx context.Context, cutoff time.Time, limit int) ([]domain.ActionToken, error) {
	q := store.NewQuery().
		Lt("created_at", cutoff.UTC().Format(time.RFC3339)).
		SortAsc("created_at").
		Limit(limit)
	records, err := r.db.List(ctx, collection, q)
	if err != nil {
		zap.L().Error("failed to list expired tokens", zap.Error(err))
		return nil, err
	}

	tokens := make([]domain.ActionToken, len(records))
	for i, rec := range records {
		tokens[i] = *decode(rec)
	}
	return tokens, nil
}

func decode(rec store.Record) *domain.ActionToken {
	return &domain.ActionToken{
		ID:        rec.Int64("id"),
		UserID:    rec.Int64("user_id"),
		Kind:      domain.TokenKind(rec.String("kind")),
		Value:     rec.String("value"),
		CreatedAt: rec.Time("created_at"),
	}
}
