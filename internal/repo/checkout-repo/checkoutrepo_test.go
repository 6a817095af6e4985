package checkoutrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/GlebRadaev/movebroker/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var columns = []string{
	"id", "order_id", "total_price", "amount_paid", "remaining_balance", "rut_discount_applied",
	"rut_deduction", "payment_status", "created_at", "updated_at",
}

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mockDB.Close)
	return New(mockDB), mockDB
}

func sampleCheckout(now time.Time) domain.Checkout {
	return domain.Checkout{
		ID:                 1,
		OrderID:            "private_move-1-5",
		TotalPrice:         decimal.NewFromInt(700),
		AmountPaid:         decimal.NewFromInt(140),
		RemainingBalance:   decimal.NewFromInt(560),
		RUTDiscountApplied: true,
		RUTDeduction:       decimal.NewFromInt(700),
		PaymentStatus:      domain.PaymentAwaitingInitial,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

func checkoutRow(c domain.Checkout) *pgxmock.Rows {
	return pgxmock.NewRows(columns).AddRow(
		c.ID, c.OrderID, c.TotalPrice, c.AmountPaid, c.RemainingBalance, c.RUTDiscountApplied,
		c.RUTDeduction, c.PaymentStatus, c.CreatedAt, c.UpdatedAt,
	)
}

func TestRepository_Upsert(t *testing.T) {
	now := time.Now().UTC()
	c := sampleCheckout(now)

	tests := []struct {
		name        string
		prepareMock func(mock pgxmock.PgxPoolIface)
		want        *domain.Checkout
		expectErr   bool
	}{
		{
			name: "Inserted or updated on the order key",
			prepareMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(regexp.QuoteMeta("ON CONFLICT (order_id) DO UPDATE")).
					WithArgs(c.OrderID, c.TotalPrice, c.AmountPaid, c.RemainingBalance, c.RUTDiscountApplied, c.RUTDeduction, c.PaymentStatus).
					WillReturnRows(checkoutRow(c))
			},
			want: &c,
		},
		{
			name: "Check constraint violated",
			prepareMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO checkouts")).
					WithArgs(c.OrderID, c.TotalPrice, c.AmountPaid, c.RemainingBalance, c.RUTDiscountApplied, c.RUTDeduction, c.PaymentStatus).
					WillReturnError(errors.New("violates check constraint"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := NewMock(t)
			tt.prepareMock(mock)

			got, err := repo.Upsert(context.Background(), &c)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_FindByOrderID(t *testing.T) {
	now := time.Now().UTC()
	c := sampleCheckout(now)

	tests := []struct {
		name        string
		prepareMock func(mock pgxmock.PgxPoolIface)
		want        *domain.Checkout
		expectErr   bool
	}{
		{
			name: "Found",
			prepareMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(regexp.QuoteMeta("FROM checkouts WHERE order_id = $1")).
					WithArgs(c.OrderID).
					WillReturnRows(checkoutRow(c))
			},
			want: &c,
		},
		{
			name: "Missing",
			prepareMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(regexp.QuoteMeta("FROM checkouts WHERE order_id = $1")).
					WithArgs(c.OrderID).
					WillReturnError(pgx.ErrNoRows)
			},
		},
		{
			name: "Database error",
			prepareMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(regexp.QuoteMeta("FROM checkouts")).
					WithArgs(c.OrderID).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := NewMock(t)
			tt.prepareMock(mock)

			got, err := repo.FindByOrderID(context.Background(), c.OrderID)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
