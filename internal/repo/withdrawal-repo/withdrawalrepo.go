package withdrawalrepo

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/makremffff/index.html-bota/internal/domain"
	"github.com/makremffff/index.html-bota/internal/store"
)

const collection = "withdrawals"

type Repository struct {
	db store.Client
}

func New(db store.Client) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, withdrawal *domain.Withdrawal) (*domain.Withdrawal, error) {
	rec, err := r.db.Create(ctx, collection, store.Fields{
		"user_id":     withdrawal.UserID,
		"destination": withdrawal.Destination,
		"amount":      withdrawal.Amount,
		"status":      withdrawal.Status,
		"created_at":  withdrawal.CreatedAt.UTC().Format(time.RFC3339),
	})
	if err != nil {
		zap.L().Error("failed to create withdrawal record", zap.Int64("userID", withdrawal.UserID), zap.Error(err))
		return nil, err
	}
	return decode(rec), nil
}

func (r *Repository) ListByUserID(ctx context.Context, userID int64) ([]domain.Withdrawal, error) {
	q := store.NewQuery().Eq("user_id", userID).SortDesc("created_at")
	records, err := r.db.List(ctx, collection, q)
	if err != nil {
		zap.L().Error("failed to list withdrawals", zap.Int64("userID", userID), zap.Error(err))
		return nil, err
	}

	withdrawals := make([]domain.Withdrawal, len(records))
	for i, rec := range records {
		withdrawals[i] = *decode(rec)
	}
	return withdrawals, nil
}

func decode(rec store.Record) *domain.Withdrawal {
	return &domain.Withdrawal{
		ID:          rec.Int64("id"),
		UserID:      rec.Int64("user_id"),
		Destination: rec.String("destination"),
		Amount:      rec.Decimal("amount"),
		Status:      rec.String("status"),
		CreatedAt:   rec.Time("created_at"),
	}
}
