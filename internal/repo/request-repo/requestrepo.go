package requestrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/GlebRadaev/movebroker/internal/domain"
	"github.com/GlebRadaev/movebroker/internal/pg"
	"github.com/GlebRadaev/movebroker/internal/registry"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

// source returns the FROM item for the given type, or the union of every
// registered type when requestType is nil.
func source(requestType *domain.RequestType) (string, error) {
	if requestType != nil {
		entry, err := registry.Resolve(*requestType)
		if err != nil {
			return "", err
		}
		return "(" + entry.Select() + ")", nil
	}

	types := registry.Types()
	selects := make([]string, 0, len(types))
	for _, t := range types {
		entry, _ := registry.Resolve(t)
		selects = append(selects, entry.Select())
	}
	return "(" + strings.Join(selects, " UNION ALL ") + ")", nil
}

func selectColumns() string {
	return "SELECT " + strings.Join(registry.Columns, ", ")
}

func scanRequest(row pgx.Row) (*domain.Request, error) {
	var req domain.Request
	err := row.Scan(
		&req.Type, &req.ID, &req.RequesterEmail, &req.RequesterName, &req.RequesterSSN,
		&req.PickupAddress, &req.DeliveryAddress, &req.RequestedDate, &req.LatestAcceptableDate,
		&req.RUTEligible, &req.ExtraInsurance, &req.Status, &req.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// FindForOwner returns the newest request owned by email matching the optional
// type and id. Email comparison is case-insensitive.
func (r *Repository) FindForOwner(ctx context.Context, email string, requestType *domain.RequestType, requestID *int64) (*domain.Request, error) {
	from, err := source(requestType)
	if err != nil {
		return nil, err
	}
	query := selectColumns() + `
        FROM ` + from + ` AS r
        WHERE lower(r.requester_email) = lower($1)
          AND ($2::bigint IS NULL OR r.id = $2)
        ORDER BY r.created_at DESC, r.id DESC
        LIMIT 1
    `
	req, err := scanRequest(r.db.QueryRow(ctx, query, email, requestID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't find request for owner", zap.Error(err))
		return nil, err
	}
	return req, nil
}

// ListForOwner returns every request owned by email across all types, newest first.
func (r *Repository) ListForOwner(ctx context.Context, email string) ([]domain.Request, error) {
	from, _ := source(nil)
	query := selectColumns() + `
        FROM ` + from + ` AS r
        WHERE lower(r.requester_email) = lower($1)
        ORDER BY r.created_at DESC, r.request_type, r.id DESC
    `
	rows, err := r.db.Query(ctx, query, email)
	if err != nil {
		zap.L().Error("can't list requests", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var requests []domain.Request
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			zap.L().Error("can't scan request row", zap.Error(err))
			return nil, err
		}
		requests = append(requests, *req)
	}
	return requests, rows.Err()
}

// FindByKey loads one request by its type and id. With forUpdate the row is
// locked until the surrounding transaction ends.
func (r *Repository) FindByKey(ctx context.Context, requestType domain.RequestType, requestID int64, forUpdate bool) (*domain.Request, error) {
	entry, err := registry.Resolve(requestType)
	if err != nil {
		return nil, err
	}
	query := entry.Select() + " WHERE id = $1"
	if forUpdate {
		query += " FOR UPDATE"
	}
	req, err := scanRequest(r.db.QueryRow(ctx, query, requestID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't find request", zap.String("request_type", string(requestType)), zap.Int64("request_id", requestID), zap.Error(err))
		return nil, err
	}
	return req, nil
}

// MarkAwarded moves an open request to awarded. It reports false when the
// request was not open.
func (r *Repository) MarkAwarded(ctx context.Context, requestType domain.RequestType, requestID int64) (bool, error) {
	entry, err := registry.Resolve(requestType)
	if err != nil {
		return false, err
	}
	query := fmt.Sprintf("UPDATE %s SET status = $1 WHERE id = $2 AND status = $3", entry.Table)
	tag, err := r.db.Exec(ctx, query, domain.RequestAwarded, requestID, domain.RequestOpen)
	if err != nil {
		zap.L().Error("failed to mark request awarded", zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
