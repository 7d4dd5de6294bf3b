package kafka_test

import (
	"context"
	"hotel/config"
	"hotel/infras/kafka"
	"testing"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type admitted struct {
	BookingID int64  `json:"booking_id"`
	TotalCost string `json:"total_cost"`
}

func TestMessage_RoundTrip(t *testing.T) {
	msg := kafka.Message{Key: "101", Value: admitted{BookingID: 9, TotalCost: "240.00"}}

	encoded, err := msg.ToKafkaMessage()
	require.NoError(t, err)
	assert.Equal(t, []byte("101"), encoded.Key)
	assert.JSONEq(t, `{"booking_id":9,"total_cost":"240.00"}`, string(encoded.Value))

	decoded, err := kafka.DecodeKafkaMessage[admitted](encoded)
	require.NoError(t, err)
	assert.Equal(t, "101", decoded.Key)
	assert.Equal(t, admitted{BookingID: 9, TotalCost: "240.00"}, decoded.Value)
}

func TestMessage_UnencodableValue(t *testing.T) {
	msg := kafka.Message{Key: "1", Value: make(chan int)}

	_, err := msg.ToKafkaMessage()
	assert.Error(t, err)
}

func TestDecodeKafkaMessage_InvalidJSON(t *testing.T) {
	_, err := kafka.DecodeKafkaMessage[admitted](kafkaGo.Message{Value: []byte("{")})
	assert.Error(t, err)
}

func TestNew_DisabledPublisherDropsMessages(t *testing.T) {
	cfg := &config.Config{}

	client := kafka.New(cfg)

	assert.NoError(t, client.SendMessages(context.Background(), "booking.admitted", kafka.Message{Key: "1", Value: 1}))
	assert.NoError(t, client.Close())
}
