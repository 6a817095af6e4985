package checkoutrepo

import (
	"context"
	"errors"

	"github.com/GlebRadaev/movebroker/internal/domain"
	"github.com/GlebRadaev/movebroker/internal/pg"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const checkoutColumns = `id, order_id, total_price, amount_paid, remaining_balance, rut_discount_applied,
        rut_deduction, payment_status, created_at, updated_at`

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func scanCheckout(row pgx.Row) (*domain.Checkout, error) {
	var c domain.Checkout
	err := row.Scan(
		&c.ID, &c.OrderID, &c.TotalPrice, &c.AmountPaid, &c.RemainingBalance, &c.RUTDiscountApplied,
		&c.RUTDeduction, &c.PaymentStatus, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Upsert writes the one checkout row of an order, keyed by the unique order_id.
func (r *Repository) Upsert(ctx context.Context, checkout *domain.Checkout) (*domain.Checkout, error) {
	query := `
        INSERT INTO checkouts (order_id, total_price, amount_paid, remaining_balance, rut_discount_applied, rut_deduction, payment_status)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        ON CONFLICT (order_id) DO UPDATE
        SET total_price = EXCLUDED.total_price,
            amount_paid = EXCLUDED.amount_paid,
            remaining_balance = EXCLUDED.remaining_balance,
            rut_discount_applied = EXCLUDED.rut_discount_applied,
            rut_deduction = EXCLUDED.rut_deduction,
            payment_status = EXCLUDED.payment_status,
            updated_at = NOW()
        RETURNING ` + checkoutColumns
	saved, err := scanCheckout(r.db.QueryRow(ctx, query,
		checkout.OrderID, checkout.TotalPrice, checkout.AmountPaid, checkout.RemainingBalance,
		checkout.RUTDiscountApplied, checkout.RUTDeduction, checkout.PaymentStatus,
	))
	if err != nil {
		zap.L().Error("can't upsert checkout", zap.String("order_id", checkout.OrderID), zap.Error(err))
		return nil, err
	}
	return saved, nil
}

func (r *Repository) FindByOrderID(ctx context.Context, orderID string) (*domain.Checkout, error) {
	query := `
        SELECT ` + checkoutColumns + `
        FROM checkouts
        WHERE order_id = $1
    `
	checkout, err := scanCheckout(r.db.QueryRow(ctx, query, orderID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't find checkout", zap.String("order_id", orderID), zap.Error(err))
		return nil, err
	}
	return checkout, nil
}
