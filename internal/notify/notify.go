// Package notify publishes notification requests for the external
// notification service onto a Kafka topic.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type RecipientType string

const (
	RecipientSupplier RecipientType = "supplier"
	RecipientCustomer RecipientType = "customer"
	RecipientOperator RecipientType = "operator"
)

const (
	TemplateBidApproved       = "bid_approved"
	TemplateCustomerRejected  = "customer_rejected"
	TemplatePaymentCompleted  = "payment_completed"
	TemplateDisputeSubmitted  = "dispute_submitted"
	TemplateOrderStatusChange = "order_status_changed"
)

type Notification struct {
	RecipientID   int64          `json:"recipient_id"`
	RecipientType RecipientType  `json:"recipient_type"`
	Template      string         `json:"template"`
	Payload       map[string]any `json:"payload"`
	CreatedAt     time.Time      `json:"created_at"`
}

type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaNotifier struct {
	writer Writer
}

func NewKafkaNotifier(brokers []string, topic string) *KafkaNotifier {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		MaxAttempts:  3,
		WriteTimeout: 10 * time.Second,
		ReadTimeout:  10 * time.Second,
	}
	return &KafkaNotifier{writer: writer}
}

func NewWithWriter(writer Writer) *KafkaNotifier {
	return &KafkaNotifier{writer: writer}
}

// Notify publishes n keyed by recipient, so one recipient's messages stay ordered.
func (k *KafkaNotifier) Notify(ctx context.Context, n Notification) error {
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	value, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(fmt.Sprintf("%s:%d", n.RecipientType, n.RecipientID)),
		Value: value,
		Time:  n.CreatedAt,
	}
	if err := k.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to write notification to kafka: %w", err)
	}

	zap.L().Debug("Notification published",
		zap.String("template", n.Template),
		zap.String("recipient_type", string(n.RecipientType)),
		zap.Int64("recipient_id", n.RecipientID),
	)
	return nil
}

func (k *KafkaNotifier) Close() error {
	return k.writer.Close()
}
