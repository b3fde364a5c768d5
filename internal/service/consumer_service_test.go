package service

import (
	"context"
	"testing"
	"time"

	"buddyai-be/internal/constant"
	"buddyai-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestEventBus_PublishedEventsReachActivityLog(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	core, logs := observer.New(zap.InfoLevel)
	activity := logger.NewFromZap(zap.New(core))

	consumer := NewConsumerService(pubSub, "chat.activity", activity, logger.NewNopLogger())
	require.NoError(t, consumer.Consume(ctx))

	publisher := NewPublisherService(NewWatermillPublisher(pubSub, "chat.activity"), logger.NewNopLogger())
	publisher.Publish(ctx, constant.EventChatSessionCreated, map[string]interface{}{"session_id": "s-1"})

	require.Eventually(t, func() bool { return logs.Len() == 1 }, 2*time.Second, 10*time.Millisecond)

	entry := logs.All()[0]
	assert.Equal(t, constant.EventChatSessionCreated, entry.Message)
	details, ok := entry.ContextMap()["details"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "s-1", details["session_id"])
	assert.Contains(t, details, "occurred_at")
}

func TestConsumer_AcksMalformedPayload(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	core, logs := observer.New(zap.InfoLevel)
	consumer := NewConsumerService(pubSub, "chat.activity", logger.NewNopLogger(), logger.NewFromZap(zap.New(core)))
	require.NoError(t, consumer.Consume(ctx))

	require.NoError(t, pubSub.Publish("chat.activity", message.NewMessage(watermill.NewUUID(), []byte("not json"))))

	require.Eventually(t, func() bool { return logs.Len() == 1 }, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, "Failed to decode event", logs.All()[0].Message)
}
