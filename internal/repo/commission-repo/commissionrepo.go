package commissionrepo

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/makremffff/index.html-bota/internal/domain"
	"github.com/makremffff/index.html-bota/internal/store"
)

const collection = "commissions"

type Repository struct {
	db store.Client
}

func New(db store.Client) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, commission *domain.Commission) error {
	_, err := r.db.Create(ctx, collection, store.Fields{
		"referrer_id":   commission.ReferrerID,
		"referee_id":    commission.RefereeID,
		"amount":        commission.Amount,
		"source_amount": commission.SourceAmount,
		"created_at":    time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		zap.L().Error("failed to create commission record",
			zap.Int64("referrerID", commission.ReferrerID),
			zap.Int64("refereeID", commission.RefereeID),
			zap.Error(err),
		)
		return err
	}
	return nil
}
