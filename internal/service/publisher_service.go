package service

import (
	"context"

	"buddyai-be/internal/pkg/logger"
	"buddyai-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

// WatermillPublisher puts events on the in-process bus under a single topic.
type WatermillPublisher struct {
	pubSub    message.Publisher
	topicName string
}

var _ events.Publisher = (*WatermillPublisher)(nil)

func NewWatermillPublisher(pubSub message.Publisher, topicName string) *WatermillPublisher {
	return &WatermillPublisher{pubSub: pubSub, topicName: topicName}
}

func (p *WatermillPublisher) Publish(ctx context.Context, event events.Event) error {
	payload, err := events.Encode(event)
	if err != nil {
		return err
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("event_type", event.EventType())
	msg.SetContext(ctx)
	return p.pubSub.Publish(p.topicName, msg)
}

type IPublisherService interface {
	// Publish is fire-and-forget: failures are logged, never returned.
	Publish(ctx context.Context, eventType string, data map[string]interface{})
}

type publisherService struct {
	publisher events.Publisher
	logger    logger.ILogger
}

// NewPublisherService accepts a nil publisher, in which case events are dropped.
func NewPublisherService(publisher events.Publisher, logger logger.ILogger) IPublisherService {
	return &publisherService{publisher: publisher, logger: logger}
}

func (s *publisherService) Publish(ctx context.Context, eventType string, data map[string]interface{}) {
	if s.publisher == nil {
		return
	}
	// Detached from the request so a client disconnect does not drop the event.
	if err := s.publisher.Publish(context.WithoutCancel(ctx), events.New(eventType, data)); err != nil {
		s.logger.Warn("EVENTS", "Failed to publish event", map[string]interface{}{
			"event_type": eventType,
			"error":      err.Error(),
		})
	}
}
