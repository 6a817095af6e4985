package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/GlebRadaev/movebroker/internal/config"
	"github.com/GlebRadaev/movebroker/internal/domain"
	"github.com/GlebRadaev/movebroker/pkg/clients"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func NewMock(t *testing.T) (*Client, *clients.MockHTTPClientI) {
	cfg := &config.Config{
		GatewayAddress:       "http://gateway",
		GatewayAPIKey:        "key",
		GatewayWebhookSecret: "whsec",
		GatewayCurrency:      "sek",
		GatewayTimeout:       time.Second,
	}
	ctrl := gomock.NewController(t)
	client := clients.NewMockHTTPClientI(ctrl)
	return New(cfg, client), client
}

func TestClient_CreateIntent(t *testing.T) {
	req := CreateIntentRequest{
		OrderID:          "private_move-1-5",
		AmountMinorUnits: 14000,
		PaymentMethodRef: "pm_card",
		IdempotencyKey:   "6f1c3b8e-0000-4000-8000-000000000001",
	}

	tests := []struct {
		name        string
		prepareMock func(client *clients.MockHTTPClientI)
		wantID      string
		wantErr     error
	}{
		{
			name: "Created",
			prepareMock: func(client *clients.MockHTTPClientI) {
				client.EXPECT().Post(gomock.Any(), "http://gateway/v1/payment_intents", gomock.Any(), gomock.Any()).
					DoAndReturn(func(ctx context.Context, url string, headers http.Header, body []byte) (int, []byte, http.Header, error) {
						assert.Equal(t, req.IdempotencyKey, headers.Get("Idempotency-Key"))
						assert.Equal(t, "Bearer key", headers.Get("Authorization"))
						_, hasDeadline := ctx.Deadline()
						assert.True(t, hasDeadline)

						var sent createIntentBody
						require.NoError(t, json.Unmarshal(body, &sent))
						assert.Equal(t, int64(14000), sent.Amount)
						assert.Equal(t, "sek", sent.Currency)
						assert.Equal(t, "private_move-1-5", sent.Metadata["order_id"])
						assert.Equal(t, req.IdempotencyKey, sent.Metadata["idempotency_key"])
						return http.StatusCreated, []byte(`{"id":"pi_1","client_secret":"cs_1","status":"processing"}`), nil, nil
					})
			},
			wantID: "pi_1",
		},
		{
			name: "Declined with 402",
			prepareMock: func(client *clients.MockHTTPClientI) {
				client.EXPECT().Post(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(http.StatusPaymentRequired, []byte(`{"decline_code":"insufficient_funds"}`), nil, nil)
			},
			wantErr: ErrCardDeclined,
		},
		{
			name: "Declined in body",
			prepareMock: func(client *clients.MockHTTPClientI) {
				client.EXPECT().Post(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(http.StatusOK, []byte(`{"id":"pi_2","status":"failed","decline_code":"expired_card"}`), nil, nil)
			},
			wantID:  "pi_2",
			wantErr: ErrCardDeclined,
		},
		{
			name: "Timeout",
			prepareMock: func(client *clients.MockHTTPClientI) {
				client.EXPECT().Post(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(0, nil, nil, context.DeadlineExceeded)
			},
			wantErr: ErrTimeout,
		},
		{
			name: "Server error is not retried",
			prepareMock: func(client *clients.MockHTTPClientI) {
				client.EXPECT().Post(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(http.StatusInternalServerError, nil, nil, nil).Times(1)
			},
			wantErr: ErrUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, client := NewMock(t)
			tt.prepareMock(client)

			intent, err := c.CreateIntent(context.Background(), req)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantID, intent.ID)
		})
	}
}

func TestClient_CreateIntent_ErrorTaxonomy(t *testing.T) {
	assert.True(t, errors.Is(ErrCardDeclined, domain.ErrPaymentDeclined))
	assert.True(t, errors.Is(ErrTimeout, domain.ErrUpstream))
	assert.True(t, errors.Is(ErrUnavailable, domain.ErrUpstream))
}

func TestClient_GetIntent(t *testing.T) {
	tests := []struct {
		name        string
		prepareMock func(client *clients.MockHTTPClientI)
		wantStatus  string
		wantErr     error
	}{
		{
			name: "Succeeded",
			prepareMock: func(client *clients.MockHTTPClientI) {
				client.EXPECT().Get(gomock.Any(), "http://gateway/v1/payment_intents/pi_1", gomock.Any()).
					Return(http.StatusOK, []byte(`{"id":"pi_1","status":"succeeded"}`), nil, nil)
			},
			wantStatus: StatusSucceeded,
		},
		{
			name: "Retried once after upstream error",
			prepareMock: func(client *clients.MockHTTPClientI) {
				gomock.InOrder(
					client.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(http.StatusBadGateway, nil, nil, nil),
					client.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).
						Return(http.StatusOK, []byte(`{"id":"pi_1","status":"processing"}`), nil, nil),
				)
			},
			wantStatus: StatusProcessing,
		},
		{
			name: "Gives up after second failure",
			prepareMock: func(client *clients.MockHTTPClientI) {
				client.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(0, nil, nil, errors.New("connection refused")).Times(2)
			},
			wantErr: ErrUnavailable,
		},
		{
			name: "Not found is not retried",
			prepareMock: func(client *clients.MockHTTPClientI) {
				client.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(http.StatusNotFound, nil, nil, nil).Times(1)
			},
			wantErr: ErrIntentNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, client := NewMock(t)
			tt.prepareMock(client)

			intent, err := c.GetIntent(context.Background(), "pi_1")
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, intent.Status)
		})
	}
}

func TestClient_FindIntentByKey(t *testing.T) {
	const key = "6f1c3b8e-0000-4000-8000-000000000001"

	tests := []struct {
		name        string
		prepareMock func(client *clients.MockHTTPClientI)
		wantID      string
		wantErr     error
	}{
		{
			name: "Found",
			prepareMock: func(client *clients.MockHTTPClientI) {
				client.EXPECT().Get(gomock.Any(), "http://gateway/v1/payment_intents/by_key?idempotency_key="+key, gomock.Any()).
					Return(http.StatusOK, []byte(`{"id":"pi_1","status":"succeeded","metadata":{"idempotency_key":"`+key+`"}}`), nil, nil)
			},
			wantID: "pi_1",
		},
		{
			name: "Never created",
			prepareMock: func(client *clients.MockHTTPClientI) {
				client.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(http.StatusNotFound, nil, nil, nil).Times(1)
			},
			wantErr: ErrIntentNotFound,
		},
		{
			name: "Retried once after timeout",
			prepareMock: func(client *clients.MockHTTPClientI) {
				gomock.InOrder(
					client.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(0, nil, nil, context.DeadlineExceeded),
					client.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).
						Return(http.StatusOK, []byte(`{"id":"pi_1","status":"processing"}`), nil, nil),
				)
			},
			wantID: "pi_1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, client := NewMock(t)
			tt.prepareMock(client)

			intent, err := c.FindIntentByKey(context.Background(), key)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, intent.ID)
			assert.Equal(t, key, intent.IdempotencyKey())
		})
	}
}

func TestIntent_IdempotencyKey(t *testing.T) {
	var intent Intent
	require.NoError(t, json.Unmarshal([]byte(`{"id":"pi_1","metadata":{"order_id":"o-1","idempotency_key":"k-1"}}`), &intent))
	assert.Equal(t, "k-1", intent.IdempotencyKey())
	assert.Equal(t, "", Intent{ID: "pi_2"}.IdempotencyKey())
}

func TestClient_VerifySignature(t *testing.T) {
	c, _ := NewMock(t)
	payload := []byte(`{"id":"evt_1","intent_id":"pi_1","status":"succeeded"}`)

	assert.NoError(t, c.VerifySignature(payload, c.Sign(payload)))
	assert.ErrorIs(t, c.VerifySignature(payload, ""), ErrInvalidSignature)
	assert.ErrorIs(t, c.VerifySignature(payload, "zz"), ErrInvalidSignature)
	assert.ErrorIs(t, c.VerifySignature([]byte(`{"id":"evt_2"}`), c.Sign(payload)), ErrInvalidSignature)
}

func TestParseEvent(t *testing.T) {
	event, err := ParseEvent([]byte(`{"id":"evt_1","type":"payment_intent.succeeded","intent_id":"pi_1","status":"succeeded"}`))
	require.NoError(t, err)
	assert.Equal(t, "evt_1", event.ID)
	assert.Equal(t, "pi_1", event.IntentID)

	_, err = ParseEvent([]byte(`{"id":"evt_1"}`))
	assert.ErrorIs(t, err, ErrInvalidEvent)

	_, err = ParseEvent([]byte(`not json`))
	assert.ErrorIs(t, err, domain.ErrValidation)
}
