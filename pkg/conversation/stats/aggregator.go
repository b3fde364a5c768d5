package stats

import (
	"context"

	"buddyai-be/internal/dto"
	"buddyai-be/internal/repository/specification"
	"buddyai-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// Aggregator computes per-user chat statistics
type Aggregator struct{}

// NewAggregator creates a new stats aggregator
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// GetStats recomputes the user's counters on every call.
func (a *Aggregator) GetStats(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID) (*dto.ChatStatsResponse, error) {
	owned := specification.UserOwnedBy{UserID: userId}

	totalSessions, err := uow.ChatSessionRepository().Count(ctx, owned)
	if err != nil {
		return nil, err
	}

	activeSessions, err := uow.ChatSessionRepository().Count(ctx, owned, specification.ActiveSessions{})
	if err != nil {
		return nil, err
	}

	sessions, err := uow.ChatSessionRepository().FindAll(ctx, owned)
	if err != nil {
		return nil, err
	}
	var totalMessages int64
	for _, s := range sessions {
		totalMessages += int64(len(s.Messages))
	}

	return &dto.ChatStatsResponse{
		TotalSessions:  totalSessions,
		ActiveSessions: activeSessions,
		TotalMessages:  totalMessages,
	}, nil
}
