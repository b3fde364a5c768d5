package service

import (
	"context"
	"errors"
	"time"

	"buddyai-be/internal/constant"
	"buddyai-be/internal/dto"
	"buddyai-be/internal/entity"
	"buddyai-be/internal/pkg/apperror"
	"buddyai-be/internal/pkg/logger"
	"buddyai-be/internal/repository/contract"
	"buddyai-be/internal/repository/specification"
	"buddyai-be/internal/repository/unitofwork"
	"buddyai-be/pkg/conversation/history"
	"buddyai-be/pkg/conversation/message"
	"buddyai-be/pkg/conversation/session"
	"buddyai-be/pkg/conversation/stats"
	"buddyai-be/pkg/llm"

	"github.com/google/uuid"
)

type IChatService interface {
	CreateSession(ctx context.Context, userId uuid.UUID, req *dto.CreateSessionRequest) (*dto.ChatSessionResponse, error)
	ListSessions(ctx context.Context, userId uuid.UUID) ([]dto.ChatSessionSummaryResponse, error)
	GetSession(ctx context.Context, userId uuid.UUID, sessionId string) (*dto.ChatSessionResponse, error)
	UpdateSession(ctx context.Context, userId uuid.UUID, sessionId string, req *dto.UpdateSessionRequest) (*dto.ChatSessionResponse, error)
	DeleteSession(ctx context.Context, userId uuid.UUID, sessionId string) error
	SendMessage(ctx context.Context, userId uuid.UUID, req *dto.SendMessageRequest) (*dto.SendMessageResponse, error)
	GetStats(ctx context.Context, userId uuid.UUID) (*dto.ChatStatsResponse, error)
}

type chatService struct {
	uowFactory      unitofwork.RepositoryFactory
	provider        llm.LLMProvider
	providerTimeout time.Duration
	sessionManager  *session.Manager
	messageFactory  *message.Factory
	historyBuilder  *history.Builder
	statsAggregator *stats.Aggregator
	publisher       IPublisherService
	logger          logger.ILogger
}

// NewChatService bounds every provider call by providerTimeout; zero disables the bound.
func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	provider llm.LLMProvider,
	providerTimeout time.Duration,
	publisher IPublisherService,
	logger logger.ILogger,
) IChatService {
	return &chatService{
		uowFactory:      uowFactory,
		provider:        provider,
		providerTimeout: providerTimeout,
		sessionManager:  session.NewManager(),
		messageFactory:  message.NewFactory(),
		historyBuilder:  history.NewBuilder(),
		statsAggregator: stats.NewAggregator(),
		publisher:       publisher,
		logger:          logger,
	}
}

func (c *chatService) CreateSession(ctx context.Context, userId uuid.UUID, req *dto.CreateSessionRequest) (*dto.ChatSessionResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	s := c.sessionManager.New(userId, req.Title, time.Now())
	if err := uow.ChatSessionRepository().Create(ctx, s); err != nil {
		return nil, err
	}

	c.publisher.Publish(ctx, constant.EventChatSessionCreated, map[string]interface{}{
		"user_id":    userId.String(),
		"session_id": s.Id.String(),
	})

	res := toSessionResponse(s)
	return &res, nil
}

func (c *chatService) ListSessions(ctx context.Context, userId uuid.UUID) ([]dto.ChatSessionSummaryResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	sessions, err := uow.ChatSessionRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "updated_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	res := make([]dto.ChatSessionSummaryResponse, 0, len(sessions))
	for _, s := range sessions {
		res = append(res, toSessionSummary(s))
	}
	return res, nil
}

func (c *chatService) GetSession(ctx context.Context, userId uuid.UUID, sessionId string) (*dto.ChatSessionResponse, error) {
	id, err := session.ParseID(sessionId)
	if err != nil {
		return nil, err
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)
	s, err := c.sessionManager.VerifyChatSession(ctx, uow, userId, id)
	if err != nil {
		return nil, err
	}

	res := toSessionResponse(s)
	return &res, nil
}

func (c *chatService) UpdateSession(ctx context.Context, userId uuid.UUID, sessionId string, req *dto.UpdateSessionRequest) (*dto.ChatSessionResponse, error) {
	id, err := session.ParseID(sessionId)
	if err != nil {
		return nil, err
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)
	s, err := c.sessionManager.VerifyChatSession(ctx, uow, userId, id)
	if err != nil {
		return nil, err
	}

	c.sessionManager.UpdateTitle(s, req.Title, time.Now())
	if err := c.save(ctx, uow, s); err != nil {
		return nil, err
	}

	res := toSessionResponse(s)
	return &res, nil
}

func (c *chatService) DeleteSession(ctx context.Context, userId uuid.UUID, sessionId string) error {
	id, err := session.ParseID(sessionId)
	if err != nil {
		return err
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)
	deleted, err := uow.ChatSessionRepository().Delete(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return session.ErrSessionNotFound
	}

	c.publisher.Publish(ctx, constant.EventChatSessionDeleted, map[string]interface{}{
		"user_id":    userId.String(),
		"session_id": id.String(),
	})
	return nil
}

// SendMessage runs one exchange with the model. The session is written once, after the reply
// arrives, so a failed provider call leaves storage exactly as it was.
func (c *chatService) SendMessage(ctx context.Context, userId uuid.UUID, req *dto.SendMessageRequest) (*dto.SendMessageResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	// 1. Resolve or create the session
	s, created, err := c.sessionManager.Resolve(ctx, uow, userId, req.SessionId, req.Message, time.Now())
	if err != nil {
		return nil, err
	}

	// 2. Record the user's turn; history is everything before it
	c.messageFactory.Append(s, c.messageFactory.CreateUserMessage(req.Message, time.Now()))
	prior := c.historyBuilder.BuildPrior(s)

	// 3. Ask the model
	reply, err := c.callProvider(ctx, prior, req.Message)
	if err != nil {
		c.logger.Error("CHAT", "Provider call failed", map[string]interface{}{
			"session_id": s.Id.String(),
			"provider":   c.provider.Name(),
			"error":      err.Error(),
		})
		return nil, err
	}

	// 4. Record the reply and retitle after the first exchange
	c.messageFactory.Append(s, c.messageFactory.CreateModelMessage(reply, time.Now()))
	c.sessionManager.ApplyAutoTitle(s, req.Message)

	// 5. Persist
	if created {
		err = uow.ChatSessionRepository().Create(ctx, s)
	} else {
		err = c.save(ctx, uow, s)
	}
	if err != nil {
		return nil, err
	}

	c.publisher.Publish(ctx, constant.EventChatMessageSent, map[string]interface{}{
		"user_id":       userId.String(),
		"session_id":    s.Id.String(),
		"message_count": len(s.Messages),
		"provider":      c.provider.Name(),
	})

	return &dto.SendMessageResponse{
		Reply:     reply,
		Session:   toSessionResponse(s),
		SessionId: s.Id,
	}, nil
}

func (c *chatService) GetStats(ctx context.Context, userId uuid.UUID) (*dto.ChatStatsResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	return c.statsAggregator.GetStats(ctx, uow, userId)
}

func (c *chatService) callProvider(ctx context.Context, prior []llm.Message, msg string) (string, error) {
	callCtx := ctx
	if c.providerTimeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, c.providerTimeout)
		defer cancel()
	}

	reply, err := c.provider.Chat(callCtx, prior, msg)
	if err != nil {
		if errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			return "", apperror.UpstreamTimeout("AI provider did not respond in time", err)
		}
		return "", apperror.Internal("Failed to get a reply from the AI provider", err)
	}
	return reply, nil
}

// save maps a row that vanished mid-request (deleted concurrently) to NotFound.
func (c *chatService) save(ctx context.Context, uow unitofwork.UnitOfWork, s *entity.ChatSession) error {
	err := uow.ChatSessionRepository().Update(ctx, s)
	if errors.Is(err, contract.ErrNotFound) {
		return session.ErrSessionNotFound
	}
	return err
}

func toMessageResponses(messages []entity.ChatMessage) []dto.ChatMessageResponse {
	res := make([]dto.ChatMessageResponse, 0, len(messages))
	for _, m := range messages {
		res = append(res, dto.ChatMessageResponse{
			Role:      string(m.Role),
			Content:   m.Content,
			Timestamp: m.Timestamp,
		})
	}
	return res
}

func toSessionResponse(s *entity.ChatSession) dto.ChatSessionResponse {
	return dto.ChatSessionResponse{
		Id:        s.Id,
		UserId:    s.UserId,
		Title:     s.Title,
		Messages:  toMessageResponses(s.Messages),
		IsActive:  s.IsActive,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func toSessionSummary(s *entity.ChatSession) dto.ChatSessionSummaryResponse {
	summary := dto.ChatSessionSummaryResponse{
		Id:           s.Id,
		Title:        s.Title,
		MessageCount: len(s.Messages),
		IsActive:     s.IsActive,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
	if last := s.LastMessage(); last != nil {
		preview := session.Truncate(last.Content, constant.SessionPreviewMaxChars)
		summary.LastMessage = &preview
	}
	return summary
}
