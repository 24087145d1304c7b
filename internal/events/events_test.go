package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKafkaPublisher_Publish(t *testing.T) {
	config := mocks.NewTestConfig()
	config.Producer.Return.Successes = true
	producer := mocks.NewSyncProducer(t, config)

	var sent []byte
	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		sent = val
		return nil
	})

	pub := NewKafkaPublisherWithProducer(producer)
	pub.now = func() time.Time { return time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC) }

	err := pub.Publish(context.Background(), TopicContactSubmitted, "msg-1", map[string]string{"subject": "Wedding"})
	require.NoError(t, err)
	require.NoError(t, pub.Close())

	var evt struct {
		Type       string            `json:"event_type"`
		OccurredAt time.Time         `json:"occurred_at"`
		Data       map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(sent, &evt))
	assert.Equal(t, TopicContactSubmitted, evt.Type)
	assert.Equal(t, "Wedding", evt.Data["subject"])
	assert.True(t, evt.OccurredAt.Equal(time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)))
}

func TestKafkaPublisher_PublishFailure(t *testing.T) {
	config := mocks.NewTestConfig()
	config.Producer.Return.Successes = true
	producer := mocks.NewSyncProducer(t, config)
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	pub := NewKafkaPublisherWithProducer(producer)
	err := pub.Publish(context.Background(), TopicContactSubmitted, "msg-1", nil)
	assert.True(t, errors.Is(err, sarama.ErrOutOfBrokers))
	require.NoError(t, pub.Close())
}

func TestKafkaPublisher_CancelledContext(t *testing.T) {
	producer := mocks.NewSyncProducer(t, mocks.NewTestConfig())
	pub := NewKafkaPublisherWithProducer(producer)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, pub.Publish(ctx, TopicContactSubmitted, "k", nil), context.Canceled)
	require.NoError(t, pub.Close())
}

func TestNoopPublisher(t *testing.T) {
	var p Publisher = NoopPublisher{}
	assert.NoError(t, p.Publish(context.Background(), TopicContactSubmitted, "k", nil))
	assert.NoError(t, p.Close())
}
