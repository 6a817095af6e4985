package bidrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/GlebRadaev/movebroker/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var columns = []string{
	"id", "request_type", "request_id", "supplier_id", "moving_cost", "truck_cost",
	"additional_services_cost", "status", "order_id", "created_at",
}

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mockDB.Close)
	return New(mockDB), mockDB
}

func costs() domain.Costs {
	return domain.Costs{
		MovingCost:             decimal.NewFromInt(1000),
		TruckCost:              decimal.NewFromInt(200),
		AdditionalServicesCost: decimal.NewFromInt(100),
	}
}

func TestRepository_Create(t *testing.T) {
	now := time.Now().UTC()
	c := costs()
	input := &domain.Bid{RequestType: "private_move", RequestID: 1, SupplierID: 42, Costs: c}

	tests := []struct {
		name        string
		prepareMock func(mock pgxmock.PgxPoolIface)
		want        *domain.Bid
		wantErr     error
	}{
		{
			name: "Created",
			prepareMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO bids")).
					WithArgs(domain.RequestType("private_move"), int64(1), int64(42), c.MovingCost, c.TruckCost, c.AdditionalServicesCost, domain.BidPending).
					WillReturnRows(pgxmock.NewRows(columns).AddRow(
						int64(5), domain.RequestType("private_move"), int64(1), int64(42),
						c.MovingCost, c.TruckCost, c.AdditionalServicesCost, domain.BidPending, nil, now,
					))
			},
			want: &domain.Bid{ID: 5, RequestType: "private_move", RequestID: 1, SupplierID: 42, Costs: c, Status: domain.BidPending, CreatedAt: now},
		},
		{
			name: "Duplicate pending bid",
			prepareMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO bids")).
					WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
					WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "bids_one_pending_per_supplier"})
			},
			wantErr: domain.ErrDuplicateBid,
		},
		{
			name: "Database error",
			prepareMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO bids")).
					WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
					WillReturnError(errors.New("database error"))
			},
			wantErr: errors.New("database error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := NewMock(t)
			tt.prepareMock(mock)

			got, err := repo.Create(context.Background(), input)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.Equal(t, errors.Is(tt.wantErr, domain.ErrConflict), errors.Is(err, domain.ErrConflict))
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_FindByID(t *testing.T) {
	now := time.Now().UTC()
	c := costs()
	orderID := "private_move-1-5"

	tests := []struct {
		name        string
		forUpdate   bool
		prepareMock func(mock pgxmock.PgxPoolIface)
		want        *domain.Bid
		expectErr   bool
	}{
		{
			name:      "Locked read",
			forUpdate: true,
			prepareMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(regexp.QuoteMeta("FROM bids WHERE id = $1 FOR UPDATE")).
					WithArgs(int64(5)).
					WillReturnRows(pgxmock.NewRows(columns).AddRow(
						int64(5), domain.RequestType("private_move"), int64(1), int64(42),
						c.MovingCost, c.TruckCost, c.AdditionalServicesCost, domain.BidApproved, &orderID, now,
					))
			},
			want: &domain.Bid{ID: 5, RequestType: "private_move", RequestID: 1, SupplierID: 42, Costs: c, Status: domain.BidApproved, OrderID: &orderID, CreatedAt: now},
		},
		{
			name: "Missing",
			prepareMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(regexp.QuoteMeta("FROM bids WHERE id = $1")).
					WithArgs(int64(5)).
					WillReturnError(pgx.ErrNoRows)
			},
		},
		{
			name: "Database error",
			prepareMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(regexp.QuoteMeta("FROM bids WHERE id = $1")).
					WithArgs(int64(5)).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := NewMock(t)
			tt.prepareMock(mock)

			got, err := repo.FindByID(context.Background(), 5, tt.forUpdate)
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

func TestRepository_ListByRequest(t *testing.T) {
	repo, mock := NewMock(t)
	first := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	c := costs()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE request_type = $1 AND request_id = $2 ORDER BY created_at ASC, id ASC")).
		WithArgs(domain.RequestType("company_move"), int64(3)).
		WillReturnRows(pgxmock.NewRows(columns).
			AddRow(int64(7), domain.RequestType("company_move"), int64(3), int64(1), c.MovingCost, c.TruckCost, c.AdditionalServicesCost, domain.BidPending, nil, first).
			AddRow(int64(9), domain.RequestType("company_move"), int64(3), int64(2), c.MovingCost, c.TruckCost, c.AdditionalServicesCost, domain.BidPending, nil, first))

	got, err := repo.ListByRequest(context.Background(), "company_move", 3)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(7), got[0].ID)
	assert.Equal(t, int64(9), got[1].ID)

	mock.ExpectQuery(regexp.QuoteMeta("FROM bids")).
		WithArgs(domain.RequestType("company_move"), int64(4)).
		WillReturnRows(pgxmock.NewRows(columns))
	got, err = repo.ListByRequest(context.Background(), "company_move", 4)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpdateStatus(t *testing.T) {
	orderID := "private_move-1-5"

	tests := []struct {
		name     string
		affected int64
		want     bool
	}{
		{name: "Transition applied", affected: 1, want: true},
		{name: "Status changed concurrently", affected: 0, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := NewMock(t)
			mock.ExpectExec(regexp.QuoteMeta("SET status = $1, order_id = COALESCE($2, order_id) WHERE id = $3 AND status = $4")).
				WithArgs(domain.BidApproved, &orderID, int64(5), domain.BidPending).
				WillReturnResult(pgxmock.NewResult("UPDATE", tt.affected))

			got, err := repo.UpdateStatus(context.Background(), 5, domain.BidPending, domain.BidApproved, &orderID)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_RejectOtherPending(t *testing.T) {
	repo, mock := NewMock(t)
	mock.ExpectExec(regexp.QuoteMeta("WHERE request_type = $2 AND request_id = $3 AND id <> $4 AND status = $5")).
		WithArgs(domain.BidRejected, domain.RequestType("private_move"), int64(1), int64(5), domain.BidPending).
		WillReturnResult(pgxmock.NewResult("UPDATE", 3))

	n, err := repo.RejectOtherPending(context.Background(), "private_move", 1, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Delete(t *testing.T) {
	tests := []struct {
		name        string
		prepareMock func(mock pgxmock.PgxPoolIface)
		want        bool
		expectErr   bool
	}{
		{
			name: "Pending bid deleted",
			prepareMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(regexp.QuoteMeta("DELETE FROM bids WHERE id = $1 AND supplier_id = $2 AND status = $3")).
					WithArgs(int64(5), int64(42), domain.BidPending).
					WillReturnResult(pgxmock.NewResult("DELETE", 1))
			},
			want: true,
		},
		{
			name: "Not pending",
			prepareMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(regexp.QuoteMeta("DELETE FROM bids")).
					WithArgs(int64(5), int64(42), domain.BidPending).
					WillReturnResult(pgxmock.NewResult("DELETE", 0))
			},
		},
		{
			name: "Database error",
			prepareMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(regexp.QuoteMeta("DELETE FROM bids")).
					WithArgs(int64(5), int64(42), domain.BidPending).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := NewMock(t)
			tt.prepareMock(mock)

			got, err := repo.Delete(context.Background(), 5, 42)
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
