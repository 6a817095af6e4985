// Package gateway talks to the external payment gateway: intent creation,
// status reads and verification of signed status callbacks.
package gateway

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/GlebRadaev/movebroker/internal/config"
	"github.com/GlebRadaev/movebroker/internal/domain"
	"github.com/GlebRadaev/movebroker/internal/metrics"
	"github.com/GlebRadaev/movebroker/pkg/clients"
	"go.uber.org/zap"
)

const (
	SignatureHeader = "Gateway-Signature"

	readRetryInterval = time.Millisecond * 200

	metadataOrderID        = "order_id"
	metadataIdempotencyKey = "idempotency_key"
)

var (
	ErrCardDeclined     = fmt.Errorf("%w: card declined", domain.ErrPaymentDeclined)
	ErrTimeout          = fmt.Errorf("%w: payment gateway timeout", domain.ErrUpstream)
	ErrUnavailable      = fmt.Errorf("%w: payment gateway error", domain.ErrUpstream)
	ErrIntentNotFound   = fmt.Errorf("%w: payment intent", domain.ErrNotFound)
	ErrInvalidSignature = fmt.Errorf("%w: invalid callback signature", domain.ErrUnauthorized)
	ErrInvalidEvent     = fmt.Errorf("%w: malformed callback event", domain.ErrValidation)
)

// Gateway-side intent statuses.
const (
	StatusProcessing = "processing"
	StatusSucceeded  = "succeeded"
	StatusFailed     = "failed"
)

type Intent struct {
	ID               string            `json:"id"`
	ClientSecret     string            `json:"client_secret"`
	Status           string            `json:"status"`
	AmountMinorUnits int64             `json:"amount"`
	Currency         string            `json:"currency"`
	DeclineCode      string            `json:"decline_code,omitempty"`
	Metadata         map[string]string `json:"metadata,omitempty"`
}

// IdempotencyKey returns the key the intent was created under, or "" when the
// gateway did not echo it back.
func (i Intent) IdempotencyKey() string {
	return i.Metadata[metadataIdempotencyKey]
}

type CreateIntentRequest struct {
	OrderID          string
	AmountMinorUnits int64
	PaymentMethodRef string
	IdempotencyKey   string
}

type createIntentBody struct {
	Amount        int64             `json:"amount"`
	Currency      string            `json:"currency"`
	PaymentMethod string            `json:"payment_method"`
	Confirm       bool              `json:"confirm"`
	Metadata      map[string]string `json:"metadata"`
}

// Event is the body of an asynchronous status callback.
type Event struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	IntentID string `json:"intent_id"`
	Status   string `json:"status"`
}

type Client struct {
	baseURL       string
	apiKey        string
	webhookSecret []byte
	currency      string
	timeout       time.Duration
	client        clients.HTTPClientI
}

func New(cfg *config.Config, client clients.HTTPClientI) *Client {
	return &Client{
		baseURL:       cfg.GatewayAddress,
		apiKey:        cfg.GatewayAPIKey,
		webhookSecret: []byte(cfg.GatewayWebhookSecret),
		currency:      cfg.GatewayCurrency,
		timeout:       cfg.GatewayTimeout,
		client:        client,
	}
}

func (c *Client) Currency() string {
	return c.currency
}

func (c *Client) headers() http.Header {
	h := http.Header{}
	h.Set("Authorization", "Bearer "+c.apiKey)
	h.Set("Content-Type", "application/json")
	return h
}

// CreateIntent creates and confirms an intent. It is never retried here; the
// idempotency key makes a customer-initiated retry safe on the gateway side.
func (c *Client) CreateIntent(ctx context.Context, req CreateIntentRequest) (intent Intent, err error) {
	start := time.Now()
	defer func() { metrics.ObserveGateway("create_intent", start, err) }()

	body, err := json.Marshal(createIntentBody{
		Amount:        req.AmountMinorUnits,
		Currency:      c.currency,
		PaymentMethod: req.PaymentMethodRef,
		Confirm:       true,
		Metadata: map[string]string{
			metadataOrderID:        req.OrderID,
			metadataIdempotencyKey: req.IdempotencyKey,
		},
	})
	if err != nil {
		return Intent{}, fmt.Errorf("failed to marshal intent request: %w", err)
	}

	headers := c.headers()
	headers.Set("Idempotency-Key", req.IdempotencyKey)

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	statusCode, respBody, _, err := c.client.Post(ctx, c.baseURL+"/v1/payment_intents", headers, body)
	if err != nil {
		return Intent{}, c.transportError(ctx, err)
	}

	switch {
	case statusCode == http.StatusOK || statusCode == http.StatusCreated:
		if err := json.Unmarshal(respBody, &intent); err != nil {
			return Intent{}, fmt.Errorf("%w: failed to parse intent: %v", ErrUnavailable, err)
		}
		if intent.Status == StatusFailed {
			return intent, fmt.Errorf("%w: %s", ErrCardDeclined, intent.DeclineCode)
		}
		return intent, nil
	case statusCode == http.StatusPaymentRequired:
		_ = json.Unmarshal(respBody, &intent)
		return intent, fmt.Errorf("%w: %s", ErrCardDeclined, intent.DeclineCode)
	default:
		return Intent{}, fmt.Errorf("%w: unexpected status %d", ErrUnavailable, statusCode)
	}
}

// GetIntent reads the current intent status. Reads are idempotent and retried once.
func (c *Client) GetIntent(ctx context.Context, intentID string) (intent Intent, err error) {
	start := time.Now()
	defer func() { metrics.ObserveGateway("get_intent", start, err) }()

	return c.readIntent(ctx, c.baseURL+"/v1/payment_intents/"+url.PathEscape(intentID), intentID)
}

// FindIntentByKey reads the intent created under idempotencyKey. It is how a
// charge whose creation response was lost gets its gateway handle back.
func (c *Client) FindIntentByKey(ctx context.Context, idempotencyKey string) (intent Intent, err error) {
	start := time.Now()
	defer func() { metrics.ObserveGateway("find_intent", start, err) }()

	query := url.Values{}
	query.Set(metadataIdempotencyKey, idempotencyKey)
	intent, err = c.readIntent(ctx, c.baseURL+"/v1/payment_intents/by_key?"+query.Encode(), idempotencyKey)
	if err != nil {
		return Intent{}, err
	}
	if intent.IdempotencyKey() == "" {
		if intent.Metadata == nil {
			intent.Metadata = map[string]string{}
		}
		intent.Metadata[metadataIdempotencyKey] = idempotencyKey
	}
	return intent, nil
}

func (c *Client) readIntent(ctx context.Context, endpoint, ref string) (intent Intent, err error) {
	for attempt := 1; attempt <= 2; attempt++ {
		intent, err = c.getIntent(ctx, endpoint, ref)
		if err == nil || !errors.Is(err, domain.ErrUpstream) || attempt == 2 {
			return intent, err
		}
		zap.L().Warn("Gateway read failed, retrying", zap.String("intent_ref", ref), zap.Error(err))
		select {
		case <-ctx.Done():
			return Intent{}, c.transportError(ctx, ctx.Err())
		case <-time.After(readRetryInterval):
		}
	}
	return intent, err
}

func (c *Client) getIntent(ctx context.Context, endpoint, ref string) (Intent, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	statusCode, respBody, _, err := c.client.Get(ctx, endpoint, c.headers())
	if err != nil {
		return Intent{}, c.transportError(ctx, err)
	}

	switch statusCode {
	case http.StatusOK:
		var intent Intent
		if err := json.Unmarshal(respBody, &intent); err != nil {
			return Intent{}, fmt.Errorf("%w: failed to parse intent: %v", ErrUnavailable, err)
		}
		return intent, nil
	case http.StatusNotFound:
		return Intent{}, fmt.Errorf("%w: %s", ErrIntentNotFound, ref)
	default:
		return Intent{}, fmt.Errorf("%w: unexpected status %d", ErrUnavailable, statusCode)
	}
}

func (c *Client) transportError(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}

// VerifySignature checks the hex HMAC-SHA256 of payload against signature.
func (c *Client) VerifySignature(payload []byte, signature string) error {
	got, err := hex.DecodeString(signature)
	if err != nil || len(got) == 0 {
		return ErrInvalidSignature
	}
	mac := hmac.New(sha256.New, c.webhookSecret)
	mac.Write(payload)
	if !hmac.Equal(got, mac.Sum(nil)) {
		return ErrInvalidSignature
	}
	return nil
}

// Sign produces the signature the gateway attaches to payload.
func (c *Client) Sign(payload []byte) string {
	mac := hmac.New(sha256.New, c.webhookSecret)
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

func ParseEvent(payload []byte) (Event, error) {
	var event Event
	if err := json.Unmarshal(payload, &event); err != nil {
		return Event{}, fmt.Errorf("%w: %v", ErrInvalidEvent, err)
	}
	if event.ID == "" || event.IntentID == "" {
		return Event{}, ErrInvalidEvent
	}
	return event, nil
}
