package kafka_test

import (
	"testing"

	"clinic/infras/kafka"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bookingEvent struct {
	BookingID string `json:"booking_id"`
	Date      string `json:"date"`
	Time      string `json:"time"`
}

func TestMessage_RoundTrip(t *testing.T) {
	msg := kafka.Message{
		Key:   "b-1",
		Value: bookingEvent{BookingID: "b-1", Date: "2025-06-10", Time: "09:00"},
	}

	raw, err := msg.ToKafkaMessage()
	require.NoError(t, err)
	assert.Equal(t, []byte("b-1"), raw.Key)
	assert.JSONEq(t, `{"booking_id":"b-1","date":"2025-06-10","time":"09:00"}`, string(raw.Value))

	key, decoded, err := kafka.DecodeKafkaMessage[bookingEvent](raw)
	require.NoError(t, err)
	assert.Equal(t, "b-1", key)
	assert.Equal(t, msg.Value, decoded)
}

func TestMessage_Unmarshalable(t *testing.T) {
	msg := kafka.Message{Key: "k", Value: make(chan int)}

	_, err := msg.ToKafkaMessage()
	assert.Error(t, err)
}
