package orderrepo

import (
	"context"
	"errors"
	"time"

	"github.com/GlebRadaev/movebroker/internal/domain"
	"github.com/GlebRadaev/movebroker/internal/pg"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const orderColumns = `order_id, bid_id, request_type, request_id, supplier_id, final_price, insurance_fee,
        moving_price_percentage, additional_service_percentage, truck_cost_percentage,
        payment_status, order_status, payment_intent_id, customer_rejected, customer_rejected_at,
        escrow_release_date, created_at, updated_at`

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var o domain.Order
	err := row.Scan(
		&o.OrderID, &o.BidID, &o.RequestType, &o.RequestID, &o.SupplierID, &o.FinalPrice, &o.InsuranceFee,
		&o.MovingPricePercentage, &o.AdditionalServicePercentage, &o.TruckCostPercentage,
		&o.PaymentStatus, &o.OrderStatus, &o.PaymentIntentID, &o.CustomerRejected, &o.CustomerRejectedAt,
		&o.EscrowReleaseDate, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *Repository) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	query := `
        INSERT INTO orders (order_id, bid_id, request_type, request_id, supplier_id, final_price, insurance_fee,
            moving_price_percentage, additional_service_percentage, truck_cost_percentage, escrow_release_date)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
        RETURNING ` + orderColumns
	created, err := scanOrder(r.db.QueryRow(ctx, query,
		order.OrderID, order.BidID, order.RequestType, order.RequestID, order.SupplierID,
		order.FinalPrice, order.InsuranceFee,
		order.MovingPricePercentage, order.AdditionalServicePercentage, order.TruckCostPercentage,
		order.EscrowReleaseDate,
	))
	if err != nil {
		zap.L().Error("can't save order", zap.String("order_id", order.OrderID), zap.Error(err))
		return nil, err
	}
	return created, nil
}

func (r *Repository) find(ctx context.Context, where string, arg any, forUpdate bool) (*domain.Order, error) {
	query := `
        SELECT ` + orderColumns + `
        FROM orders
        WHERE ` + where
	if forUpdate {
		query += " FOR UPDATE"
	}
	order, err := scanOrder(r.db.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't find order", zap.Error(err))
		return nil, err
	}
	return order, nil
}

func (r *Repository) FindByID(ctx context.Context, orderID string, forUpdate bool) (*domain.Order, error) {
	return r.find(ctx, "order_id = $1", orderID, forUpdate)
}

func (r *Repository) FindByBidID(ctx context.Context, bidID int64, forUpdate bool) (*domain.Order, error) {
	return r.find(ctx, "bid_id = $1", bidID, forUpdate)
}

func (r *Repository) FindByPaymentIntent(ctx context.Context, intentID string, forUpdate bool) (*domain.Order, error) {
	return r.find(ctx, "payment_intent_id = $1", intentID, forUpdate)
}

// CompareAndSetPaymentStatus applies from -> to only if the order is still in
// from. It reports whether the transition was applied.
func (r *Repository) CompareAndSetPaymentStatus(ctx context.Context, orderID string, from, to domain.PaymentStatus) (bool, error) {
	query := `
        UPDATE orders
        SET payment_status = $1, updated_at = NOW()
        WHERE order_id = $2 AND payment_status = $3
    `
	tag, err := r.db.Exec(ctx, query, to, orderID, from)
	if err != nil {
		zap.L().Error("failed to update payment status", zap.String("order_id", orderID), zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *Repository) SetPaymentIntent(ctx context.Context, orderID, intentID string) error {
	query := `
        UPDATE orders
        SET payment_intent_id = $1, updated_at = NOW()
        WHERE order_id = $2
    `
	_, err := r.db.Exec(ctx, query, intentID, orderID)
	if err != nil {
		zap.L().Error("failed to store payment intent", zap.String("order_id", orderID), zap.Error(err))
		return err
	}
	return nil
}

// CompareAndSetOrderStatus applies from -> to only if the order is still in from.
func (r *Repository) CompareAndSetOrderStatus(ctx context.Context, orderID string, from, to domain.OrderStatus) (bool, error) {
	query := `
        UPDATE orders
        SET order_status = $1, updated_at = NOW()
        WHERE order_id = $2 AND order_status = $3
    `
	tag, err := r.db.Exec(ctx, query, to, orderID, from)
	if err != nil {
		zap.L().Error("failed to update order status", zap.String("order_id", orderID), zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// SetCustomerRejected raises the one-way rejection flag. It reports false when
// the flag was already set.
func (r *Repository) SetCustomerRejected(ctx context.Context, orderID string, at time.Time) (bool, error) {
	query := `
        UPDATE orders
        SET customer_rejected = TRUE, customer_rejected_at = $1, updated_at = NOW()
        WHERE order_id = $2 AND customer_rejected = FALSE
    `
	tag, err := r.db.Exec(ctx, query, at, orderID)
	if err != nil {
		zap.L().Error("failed to set customer rejection", zap.String("order_id", orderID), zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// FindStaleProcessing returns orders whose payment has been processing since
// before the given time, oldest first. Orders whose gateway handle was never
// stored are included.
func (r *Repository) FindStaleProcessing(ctx context.Context, before time.Time, limit uint32) ([]domain.Order, error) {
	query := `
        SELECT ` + orderColumns + `
        FROM orders
        WHERE payment_status = $1 AND updated_at < $2
        ORDER BY updated_at ASC
        LIMIT $3
    `
	rows, err := r.db.Query(ctx, query, domain.PaymentProcessing, before, int(limit))
	if err != nil {
		zap.L().Error("can't get orders for reconciliation", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			zap.L().Error("can't scan order row for reconciliation", zap.Error(err))
			return nil, err
		}
		orders = append(orders, *order)
	}
	return orders, rows.Err()
}
