package bidrepo

import (
	"context"
	"errors"

	"github.com/GlebRadaev/movebroker/internal/domain"
	"github.com/GlebRadaev/movebroker/internal/pg"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

const uniqueViolation = "23505"

const bidColumns = `id, request_type, request_id, supplier_id, moving_cost, truck_cost,
        additional_services_cost, status, order_id, created_at`

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func scanBid(row pgx.Row) (*domain.Bid, error) {
	var bid domain.Bid
	err := row.Scan(
		&bid.ID, &bid.RequestType, &bid.RequestID, &bid.SupplierID,
		&bid.MovingCost, &bid.TruckCost, &bid.AdditionalServicesCost,
		&bid.Status, &bid.OrderID, &bid.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &bid, nil
}

// Create inserts a pending bid. A second pending bid by the same supplier on
// the same request violates bids_one_pending_per_supplier.
func (r *Repository) Create(ctx context.Context, bid *domain.Bid) (*domain.Bid, error) {
	query := `
        INSERT INTO bids (request_type, request_id, supplier_id, moving_cost, truck_cost, additional_services_cost, status)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING ` + bidColumns
	created, err := scanBid(r.db.QueryRow(ctx, query,
		bid.RequestType, bid.RequestID, bid.SupplierID,
		bid.MovingCost, bid.TruckCost, bid.AdditionalServicesCost, domain.BidPending,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, domain.ErrDuplicateBid
		}
		zap.L().Error("can't save bid", zap.Error(err))
		return nil, err
	}
	return created, nil
}

func (r *Repository) FindByID(ctx context.Context, bidID int64, forUpdate bool) (*domain.Bid, error) {
	query := `
        SELECT ` + bidColumns + `
        FROM bids
        WHERE id = $1
    `
	if forUpdate {
		query += " FOR UPDATE"
	}
	bid, err := scanBid(r.db.QueryRow(ctx, query, bidID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't find bid", zap.Int64("bid_id", bidID), zap.Error(err))
		return nil, err
	}
	return bid, nil
}

// ListByRequest returns the bids of one request in submission order, ties
// broken by id.
func (r *Repository) ListByRequest(ctx context.Context, requestType domain.RequestType, requestID int64) ([]domain.Bid, error) {
	query := `
        SELECT ` + bidColumns + `
        FROM bids
        WHERE request_type = $1 AND request_id = $2
        ORDER BY created_at ASC, id ASC
    `
	rows, err := r.db.Query(ctx, query, requestType, requestID)
	if err != nil {
		zap.L().Error("can't list bids", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	bids := []domain.Bid{}
	for rows.Next() {
		bid, err := scanBid(rows)
		if err != nil {
			zap.L().Error("can't scan bid row", zap.Error(err))
			return nil, err
		}
		bids = append(bids, *bid)
	}
	return bids, rows.Err()
}

// UpdateStatus moves a bid from one status to another and reports whether the
// bid was still in the expected status.
func (r *Repository) UpdateStatus(ctx context.Context, bidID int64, from, to domain.BidStatus, orderID *string) (bool, error) {
	query := `
        UPDATE bids
        SET status = $1, order_id = COALESCE($2, order_id)
        WHERE id = $3 AND status = $4
    `
	tag, err := r.db.Exec(ctx, query, to, orderID, bidID, from)
	if err != nil {
		zap.L().Error("failed to update bid status", zap.Int64("bid_id", bidID), zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// RejectOtherPending rejects every pending bid on the request except keepID.
func (r *Repository) RejectOtherPending(ctx context.Context, requestType domain.RequestType, requestID, keepID int64) (int64, error) {
	query := `
        UPDATE bids
        SET status = $1
        WHERE request_type = $2 AND request_id = $3 AND id <> $4 AND status = $5
    `
	tag, err := r.db.Exec(ctx, query, domain.BidRejected, requestType, requestID, keepID, domain.BidPending)
	if err != nil {
		zap.L().Error("failed to reject competing bids", zap.Error(err))
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// Delete removes a pending bid of supplierID. It reports false when no such
// pending bid exists.
func (r *Repository) Delete(ctx context.Context, bidID, supplierID int64) (bool, error) {
	query := `
        DELETE FROM bids
        WHERE id = $1 AND supplier_id = $2 AND status = $3
    `
	tag, err := r.db.Exec(ctx, query, bidID, supplierID, domain.BidPending)
	if err != nil {
		zap.L().Error("failed to delete bid", zap.Int64("bid_id", bidID), zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
