package paymentrepo

import (
	"context"
	"errors"

	"github.com/GlebRadaev/movebroker/internal/domain"
	"github.com/GlebRadaev/movebroker/internal/pg"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const intentColumns = `id, order_id, idempotency_key, gateway_intent_id, amount_minor_units, currency,
        status, created_at, updated_at`

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func scanIntent(row pgx.Row) (*domain.PaymentIntent, error) {
	var pi domain.PaymentIntent
	err := row.Scan(
		&pi.ID, &pi.OrderID, &pi.IdempotencyKey, &pi.GatewayIntentID, &pi.AmountMinorUnits, &pi.Currency,
		&pi.Status, &pi.CreatedAt, &pi.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &pi, nil
}

// CreateIntent records an intent and its idempotency key before the gateway is called.
func (r *Repository) CreateIntent(ctx context.Context, intent *domain.PaymentIntent) (*domain.PaymentIntent, error) {
	query := `
        INSERT INTO payment_intents (order_id, idempotency_key, amount_minor_units, currency, status)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING ` + intentColumns
	created, err := scanIntent(r.db.QueryRow(ctx, query,
		intent.OrderID, intent.IdempotencyKey, intent.AmountMinorUnits, intent.Currency, domain.IntentCreated,
	))
	if err != nil {
		zap.L().Error("can't save payment intent", zap.String("order_id", intent.OrderID), zap.Error(err))
		return nil, err
	}
	return created, nil
}

// AttachGatewayIntent links a local intent to the gateway's handle. The status
// is only taken while the intent is still created, so a late attach never
// overwrites an outcome a callback already recorded.
func (r *Repository) AttachGatewayIntent(ctx context.Context, id int64, gatewayIntentID string, status domain.IntentStatus) error {
	query := `
        UPDATE payment_intents
        SET gateway_intent_id = $1, status = CASE WHEN status = $4 THEN $2 ELSE status END, updated_at = NOW()
        WHERE id = $3
    `
	_, err := r.db.Exec(ctx, query, gatewayIntentID, status, id, domain.IntentCreated)
	if err != nil {
		zap.L().Error("failed to attach gateway intent", zap.Int64("intent_id", id), zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.IntentStatus) error {
	query := `
        UPDATE payment_intents
        SET status = $1, updated_at = NOW()
        WHERE id = $2
    `
	_, err := r.db.Exec(ctx, query, status, id)
	if err != nil {
		zap.L().Error("failed to update payment intent", zap.Int64("intent_id", id), zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) FindByGatewayID(ctx context.Context, gatewayIntentID string) (*domain.PaymentIntent, error) {
	query := `
        SELECT ` + intentColumns + `
        FROM payment_intents
        WHERE gateway_intent_id = $1
    `
	intent, err := scanIntent(r.db.QueryRow(ctx, query, gatewayIntentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't find payment intent", zap.String("gateway_intent_id", gatewayIntentID), zap.Error(err))
		return nil, err
	}
	return intent, nil
}

func (r *Repository) FindByIdempotencyKey(ctx context.Context, idempotencyKey string) (*domain.PaymentIntent, error) {
	query := `
        SELECT ` + intentColumns + `
        FROM payment_intents
        WHERE idempotency_key = $1
    `
	intent, err := scanIntent(r.db.QueryRow(ctx, query, idempotencyKey))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't find payment intent", zap.String("idempotency_key", idempotencyKey), zap.Error(err))
		return nil, err
	}
	return intent, nil
}

// FindLatestByOrder returns the most recent intent created for orderID.
func (r *Repository) FindLatestByOrder(ctx context.Context, orderID string) (*domain.PaymentIntent, error) {
	query := `
        SELECT ` + intentColumns + `
        FROM payment_intents
        WHERE order_id = $1
        ORDER BY id DESC
        LIMIT 1
    `
	intent, err := scanIntent(r.db.QueryRow(ctx, query, orderID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't find latest payment intent", zap.String("order_id", orderID), zap.Error(err))
		return nil, err
	}
	return intent, nil
}

// MarkEventProcessed records a gateway callback id. It reports false when the
// event was already recorded.
func (r *Repository) MarkEventProcessed(ctx context.Context, eventID string) (bool, error) {
	query := `
        INSERT INTO processed_gateway_events (event_id)
        VALUES ($1)
        ON CONFLICT (event_id) DO NOTHING
    `
	tag, err := r.db.Exec(ctx, query, eventID)
	if err != nil {
		zap.L().Error("failed to record gateway event", zap.String("event_id", eventID), zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
