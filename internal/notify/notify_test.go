package notify

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func TestKafkaNotifier_Notify(t *testing.T) {
	w := &fakeWriter{}
	n := NewWithWriter(w)

	err := n.Notify(context.Background(), Notification{
		RecipientID:   42,
		RecipientType: RecipientSupplier,
		Template:      TemplateCustomerRejected,
		Payload:       map[string]any{"order_id": "private_move-1-5"},
	})
	require.NoError(t, err)
	require.Len(t, w.msgs, 1)

	assert.Equal(t, "supplier:42", string(w.msgs[0].Key))

	var got Notification
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &got))
	assert.Equal(t, TemplateCustomerRejected, got.Template)
	assert.Equal(t, "private_move-1-5", got.Payload["order_id"])
	assert.False(t, got.CreatedAt.IsZero())
}

func TestKafkaNotifier_NotifyError(t *testing.T) {
	w := &fakeWriter{err: errors.New("broker down")}
	n := NewWithWriter(w)

	err := n.Notify(context.Background(), Notification{RecipientID: 1, RecipientType: RecipientOperator})
	assert.Error(t, err)
}

func TestKafkaNotifier_Close(t *testing.T) {
	w := &fakeWriter{}
	require.NoError(t, NewWithWriter(w).Close())
	assert.True(t, w.closed)
}
