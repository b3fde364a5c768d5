package service

import (
	"context"

	"buddyai-be/internal/pkg/logger"
	"buddyai-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService copies every domain event into the activity log.
type consumerService struct {
	subscriber  message.Subscriber
	topicName   string
	activityLog logger.ILogger
	logger      logger.ILogger
}

func NewConsumerService(subscriber message.Subscriber, topicName string, activityLog, logger logger.ILogger) IConsumerService {
	return &consumerService{
		subscriber:  subscriber,
		topicName:   topicName,
		activityLog: activityLog,
		logger:      logger,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(msg *message.Message) {
	// Ack even on decode failure; redelivering a malformed payload cannot help.
	defer msg.Ack()

	event, err := events.Decode(msg.Payload)
	if err != nil {
		cs.logger.Error("CONSUMER", "Failed to decode event", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		return
	}

	details := make(map[string]interface{}, len(event.Data)+1)
	for k, v := range event.Data {
		details[k] = v
	}
	details["occurred_at"] = event.OccurredAt
	cs.activityLog.Info("ACTIVITY", event.Type, details)
}
